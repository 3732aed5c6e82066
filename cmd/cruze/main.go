// Command cruze runs the calendar engine behind its JSON API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/cruze-calendar/internal/application"
	"github.com/example/cruze-calendar/internal/config"
	httptransport "github.com/example/cruze-calendar/internal/http"
	"github.com/example/cruze-calendar/internal/logging"
	"github.com/example/cruze-calendar/internal/persistence/sqlite"
)

func main() {
	_ = godotenv.Load()

	logger := logging.New(os.Stdout, os.Getenv("CRUZE_LOG_LEVEL"))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	service := application.NewCalendarService(storage, logger,
		application.WithIDGenerator(uuid.NewString),
		application.WithClock(time.Now),
	)
	if err := service.Load(context.Background()); err != nil {
		logger.Error("failed to load collections", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Appointments: httptransport.NewAppointmentHandler(service, logger, time.Now),
		Todos:        httptransport.NewTodoHandler(service, logger),
		Directory:    httptransport.NewDirectoryHandler(service, logger),
		Share:        httptransport.NewShareHandler(service, logger, cfg.ShareParam),
	})
	handler := httptransport.RequestLogger(logger)(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("calendar API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
