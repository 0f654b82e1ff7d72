package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Server wraps the HTTP server around the gin engine.
type Server struct {
	http *http.Server
}

// New creates a new server instance
func New(addr string, router *gin.Engine) *Server {
	return &Server{
		http: &http.Server{
			Addr:    addr,
			Handler: router,
		},
	}
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	log.Info().Str("addr", s.http.Addr).Msg("starting server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
