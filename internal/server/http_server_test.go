package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"
)

type failingListener struct{}

func (failingListener) Accept() (net.Conn, error) { return nil, errors.New("accept failure") }
func (failingListener) Close() error              { return nil }
func (failingListener) Addr() net.Addr            { return &net.TCPAddr{IP: net.IPv4zero} }

func TestNetHTTPServerReturnsListenerErrors(t *testing.T) {
	s := netHTTPServer{srv: &http.Server{Handler: http.NewServeMux()}, listener: failingListener{}}
	if err := s.ListenAndServe(); err == nil {
		t.Fatalf("expected serve error from failing listener")
	}
}

func TestNetHTTPServerServesHealthOnListener(t *testing.T) {
	srvImpl, err := newServerWithProvider(testConfig(t), nil, nil)
	if err != nil {
		t.Fatalf("server init failed: %v", err)
	}
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("loopback listener unavailable: %v", err)
	}
	s := netHTTPServer{srv: &http.Server{Handler: srvImpl.Handler()}, listener: l}
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	resp, err := http.Get("http://" + l.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	_ = s.Shutdown(context.Background())
	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("expected ErrServerClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("serve did not return after shutdown")
	}
}

func TestNetHTTPServerAccessors(t *testing.T) {
	handler := http.NewServeMux()
	s := netHTTPServer{srv: &http.Server{Addr: ":4000", Handler: handler}}
	if s.Addr() != ":4000" {
		t.Fatalf("expected addr passthrough, got %q", s.Addr())
	}
	if s.Handler() != handler {
		t.Fatalf("expected handler passthrough")
	}
}
