package main

import (
	"salon-service/internal/catalog"
	"salon-service/internal/config"
	bookingCancel "salon-service/internal/http-server/handlers/bookings/cancel"
	bookingCreate "salon-service/internal/http-server/handlers/bookings/create"
	bookingGet "salon-service/internal/http-server/handlers/bookings/get"
	serviceGet "salon-service/internal/http-server/handlers/services/get"
	slotGet "salon-service/internal/http-server/handlers/slots/get"
	staffGet "salon-service/internal/http-server/handlers/staff/get"
	wizardAbandon "salon-service/internal/http-server/handlers/wizard/abandon"
	wizardBack "salon-service/internal/http-server/handlers/wizard/back"
	wizardConfirm "salon-service/internal/http-server/handlers/wizard/confirm"
	wizardContact "salon-service/internal/http-server/handlers/wizard/contact"
	wizardSelectService "salon-service/internal/http-server/handlers/wizard/selectservice"
	wizardStaffDate "salon-service/internal/http-server/handlers/wizard/staffdate"
	wizardStart "salon-service/internal/http-server/handlers/wizard/start"
	wizardState "salon-service/internal/http-server/handlers/wizard/state"
	"salon-service/internal/lock"
	"salon-service/internal/notify"
	svc "salon-service/internal/service"
	"salon-service/internal/storage/memory"
	"salon-service/internal/storage/postgres"
	slogpretty "salon-service/pkg/handlers/slogPretty"
	"salon-service/pkg/middleware/mwLogger"
	"salon-service/pkg/sl"

	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	var store svc.Store
	var pgStorage *postgres.Storage

	switch cfg.Storage.Kind {
	case "postgres":
		var err error
		pgStorage, err = postgres.New(cfg.Storage.Path)
		if err != nil {
			log.Error("Failed to init storage", sl.Err(err))
			os.Exit(1)
		}
		store = pgStorage
	case "memory":
		store = memory.New()
	default:
		log.Error("Unknown storage kind", slog.String("kind", cfg.Storage.Kind))
		os.Exit(1)
	}

	// для одиночного экземпляра с мок-хранилищем Redis не обязателен
	var locker lock.Locker = lock.NoopLock{}
	var redisLock *lock.RedisLock
	if cfg.Storage.Kind == "postgres" {
		var err error
		redisLock, err = lock.NewRedisLock(cfg.RedisAddr)
		if err != nil {
			log.Error("Failed to init redis lock", sl.Err(err))
			os.Exit(1)
		}
		locker = redisLock
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Error("Failed to init telegram notifier", sl.Err(err))
			os.Exit(1)
		}
		notifier = tg
		log.Info("Telegram notifications enabled")
	}

	service := svc.NewService(store, catalog.New(), locker, notifier, cfg.Booking)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Catalog
	router.Get("/services", serviceGet.New(log, service))
	router.Get("/services/{id}", serviceGet.New(log, service))
	router.Get("/staff", staffGet.New(log, service))

	// Slots
	router.Get("/slots", slotGet.New(log, service))

	// Bookings
	router.Post("/bookings", bookingCreate.New(log, service))
	router.Get("/bookings", bookingGet.New(log, service))
	router.Get("/bookings/{id}", bookingGet.New(log, service))
	router.Put("/bookings/{id}/cancel", bookingCancel.New(log, service))

	// Booking wizard
	router.Post("/wizard", wizardStart.New(log, service))
	router.Get("/wizard/{id}", wizardState.New(log, service))
	router.Put("/wizard/{id}/service", wizardSelectService.New(log, service))
	router.Put("/wizard/{id}/staff_date", wizardStaffDate.New(log, service))
	router.Put("/wizard/{id}/contact", wizardContact.New(log, service))
	router.Put("/wizard/{id}/back", wizardBack.New(log, service))
	router.Post("/wizard/{id}/confirm", wizardConfirm.New(log, service))
	router.Delete("/wizard/{id}", wizardAbandon.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if pgStorage != nil {
		if err := pgStorage.Close(); err != nil {
			log.Error("Failed to close storage", sl.Err(err))
		} else {
			log.Info("Storage closed")
		}
	}

	if redisLock != nil {
		if err := redisLock.Close(); err != nil {
			log.Error("Failed to close locker", sl.Err(err))
		} else {
			log.Info("Locker closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
