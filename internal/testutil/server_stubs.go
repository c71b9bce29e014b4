package testutil

import (
	"context"
	"net/http"
	"sync/atomic"
)

// StubHTTPServer stands in for the server's listeners. ListenAndServe returns
// ListenErr right away. When Block is set, Shutdown waits for Block to close
// or the context to end.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	listens   atomic.Int32
	shutdowns atomic.Int32
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.listens.Add(1)
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdowns.Add(1)
	if s.Block == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Block:
		return s.ShutdownErr
	}
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// Listens reports how many times ListenAndServe ran.
func (s *StubHTTPServer) Listens() int { return int(s.listens.Load()) }

// Shutdowns reports how many times Shutdown ran.
func (s *StubHTTPServer) Shutdowns() int { return int(s.shutdowns.Load()) }
