package webserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

func NewHTTPWebServer(handler http.Handler) *httpWebServer {
	return &httpWebServer{
		handler:         handler,
		shutdownTimeout: 5 * time.Second,
	}
}

type httpWebServer struct {
	handler         http.Handler
	shutdownTimeout time.Duration
}

// Serve blocks until ctx is done or the listener fails.
func (w *httpWebServer) Serve(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           w.handler,
		ReadHeaderTimeout: 5 * time.Second,
		// upstream calls are bounded by the API client timeout
		WriteTimeout: 30 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server start error: %v", err)
			errCh <- err
		}
	}()
	log.Printf("Departure board on URL: http://localhost:%d/", port)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("initiating graceful shutdown of server...")
		ctxShutDown, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxShutDown); err != nil {
			log.Printf("error during graceful shutdown: %v", err)
		}
		return nil
	}
}
