package wizard

import (
	"fmt"
	"sync"

	"salon-service/pkg/response"
)

// Sessions — активные мастера записи по id. Черновики живут только в памяти
// процесса: уход без подтверждения просто удаляет сессию, компенсирующих
// действий не требуется.
type Sessions struct {
	mu   sync.RWMutex
	byID map[string]*Wizard
}

func NewSessions() *Sessions {
	return &Sessions{byID: make(map[string]*Wizard)}
}

func (s *Sessions) Put(w *Wizard) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[w.ID()] = w
}

func (s *Sessions) Get(id string) (*Wizard, error) {
	const op = "wizard.Sessions.Get"

	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return w, nil
}

func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, id)
}
