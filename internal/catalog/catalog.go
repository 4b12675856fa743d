package catalog

import (
	"fmt"

	"salon-service/internal/models"
	"salon-service/pkg/response"
)

// Catalog — справочник услуг и мастеров. Данные неизменяемые после New,
// поэтому читается без блокировок.
type Catalog struct {
	services []models.Service
	staff    []models.StaffMember

	serviceByID map[string]*models.Service
	staffByID   map[string]*models.StaffMember
}

func New() *Catalog {
	c := &Catalog{
		services: seedServices(),
		staff:    seedStaff(),
	}

	c.serviceByID = make(map[string]*models.Service, len(c.services))
	for i := range c.services {
		c.serviceByID[c.services[i].ID] = &c.services[i]
	}

	c.staffByID = make(map[string]*models.StaffMember, len(c.staff))
	for i := range c.staff {
		c.staffByID[c.staff[i].ID] = &c.staff[i]
	}

	return c
}

func (c *Catalog) Services() []models.Service {
	return c.services
}

func (c *Catalog) ServiceByID(id string) (*models.Service, error) {
	const op = "catalog.ServiceByID"

	svc, ok := c.serviceByID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return svc, nil
}

func (c *Catalog) Staff() []models.StaffMember {
	return c.staff
}

func (c *Catalog) StaffByID(id string) (*models.StaffMember, error) {
	const op = "catalog.StaffByID"

	staff, ok := c.staffByID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return staff, nil
}

// StaffForService возвращает мастеров, которые выполняют услугу.
func (c *Catalog) StaffForService(serviceID string) []models.StaffMember {
	result := make([]models.StaffMember, 0)
	for _, s := range c.staff {
		if s.Performs(serviceID) {
			result = append(result, s)
		}
	}

	return result
}
