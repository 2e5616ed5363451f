// Package server owns the listener lifecycle: bind, serve, shut down.
//
// Binding is split from serving so a port conflict surfaces as an error
// from Listen, on the caller's goroutine, before anything is served.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server wraps an http.Server and the listener it was bound to.
type Server struct {
	name   string
	srv    *http.Server
	ln     net.Listener
	logger *zap.Logger
}

// New prepares a server for addr. Nothing is bound until Listen.
func New(name, addr string, h http.Handler, readTimeout, writeTimeout time.Duration, logger *zap.Logger) *Server {
	return &Server{
		name: name,
		srv: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readTimeout,
			WriteTimeout:      writeTimeout,
			ErrorLog:          zap.NewStdLog(logger.Named(name)),
		},
		logger: logger.With(zap.String("listener", name)),
	}
}

// Listen binds the TCP listener. A port that is already in use, or one the
// process may not bind, is reported here.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	s.ln = ln
	return nil
}

// Addr returns the bound address, which differs from the configured one
// when port 0 was requested. Only valid after Listen.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Port returns the bound TCP port. Only valid after Listen.
func (s *Server) Port() int {
	if a, ok := s.ln.Addr().(*net.TCPAddr); ok {
		return a.Port
	}
	return 0
}

// Serve blocks accepting connections until Shutdown. It returns nil after a
// clean shutdown.
func (s *Server) Serve() error {
	if s.ln == nil {
		return errors.New("server: Serve called before Listen")
	}
	s.logger.Info("server starting", zap.String("addr", s.ln.Addr().String()))
	if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", s.ln.Addr(), err)
	}
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight
// requests until ctx expires. A listener that was bound but never served
// is closed as well.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown %s: %w", s.name, err)
	}
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("close %s listener: %w", s.name, err)
		}
	}
	return nil
}
