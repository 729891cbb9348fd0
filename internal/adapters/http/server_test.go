package http_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	adapthttp "github.com/jsamuelsen11/todolists/internal/adapters/http"
	"github.com/jsamuelsen11/todolists/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestServer_Addr(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 9090}, http.NotFoundHandler(), nil)

	if got := s.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:9090")
	}
}

func TestServer_StartFailsOnBadAddress(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(config.ServerConfig{Host: "256.0.0.1", Port: 1}, http.NotFoundHandler(), discardLogger())

	if err := s.Start(); err == nil {
		t.Fatal("Start() error = nil, want listen failure")
	}
}

// Shutdown lets an in-flight list refresh finish before Serve returns.
func TestServer_ShutdownDrainsInFlightRequests(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
		_, _ = io.WriteString(w, `{"lists":[]}`)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := adapthttp.NewServer(config.ServerConfig{ShutdownTimeout: 5 * time.Second}, handler, discardLogger())

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.Serve(ln) }()

	type result struct {
		body string
		err  error
	}
	got := make(chan result, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/lists?refresh=true")
		if err != nil {
			got <- result{err: err}
			return
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		got <- result{body: string(b), err: err}
	}()

	<-started
	shutdownErr := make(chan error, 1)
	go func() { shutdownErr <- s.Shutdown(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	close(release)

	if r := <-got; r.err != nil || r.body != `{"lists":[]}` {
		t.Errorf("in-flight response = %q, %v", r.body, r.err)
	}
	if err := <-shutdownErr; err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if err := <-serveErr; err != nil {
		t.Errorf("Serve() error = %v", err)
	}
}
