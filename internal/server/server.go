package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/DocChat/internal/adapter/utils"
	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/middleware"
	"github.com/akolanti/DocChat/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

var (
	server  *http.Server
	_logger = logger_i.NewLogger("Server")
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r chi.Router) {
	r.Get("/healthz", middleware.GetHandler)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", middleware.CreateSessionHandler)
		r.Get("/{id}", middleware.GetSessionHandler)
		r.Delete("/{id}", middleware.DeleteSessionHandler)
		r.Post("/{id}/document", middleware.PostDocumentHandler)
		r.Post("/{id}/ask", middleware.AskHandler)
	})
	r.Get("/status/{id}", middleware.GetStatusHandler)
}

func CreateServer(listenAddr string) {
	r := utils.GetRouter()
	RegisterRoutes(r.Router)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err, "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		if server != nil {
			server.SetKeepAlivesEnabled(false)
			if err := server.Shutdown(ctx); err != nil {
				_logger.Error("Could not shutdown gracefully", "error", err)
			}
		}

		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Graceful shutdown complete")
		close(shutdownParams.StopExecution)
	case <-ctx.Done():
		_logger.Error("Forced shutdown")
		os.Exit(1)
	}
}
