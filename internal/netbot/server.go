// Package netbot seats bots that play over a websocket connection.
package netbot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Server accepts bots on /bot?name=<name>. Each connection becomes a
// Remote seat; names are unique among connected bots.
type Server struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	remotes []*Remote
	joined  chan struct{} // closed and replaced whenever a bot joins
}

// NewServer creates a bot server
func NewServer(logger *log.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("netbot"),
		joined: make(chan struct{}),
	}
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bot", s.handleBot)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// ListenAndServe serves on addr until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Waiting for bots", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Remotes returns the connected bots in the order they joined
func (s *Server) Remotes() []*Remote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.remotes)
}

// WaitForBots blocks until at least n bots are connected and returns the
// first n in join order.
func (s *Server) WaitForBots(ctx context.Context, n int) ([]*Remote, error) {
	for {
		s.mu.Lock()
		if len(s.remotes) >= n {
			remotes := slices.Clone(s.remotes[:n])
			s.mu.Unlock()
			return remotes, nil
		}
		joined := s.joined
		s.mu.Unlock()

		select {
		case <-joined:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Close disconnects every bot
func (s *Server) Close() {
	for _, r := range s.Remotes() {
		_ = r.Close()
	}
}

func (s *Server) handleBot(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	taken := slices.ContainsFunc(s.remotes, func(r *Remote) bool { return r.name == name })
	s.mu.Unlock()
	if taken {
		s.logger.Warn("Rejected duplicate bot", "name", name)
		http.Error(w, fmt.Sprintf("name %q already connected", name), http.StatusConflict)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	remote := newRemote(conn, name, s.logger)
	if !s.register(remote) {
		// lost a race with another connection using the same name
		_ = conn.WriteJSON(ErrorMessage{Type: TypeError, Error: "duplicate name"})
		_ = conn.Close()
		return
	}
	remote.Start()
	_ = remote.enqueue(WelcomeMessage{Type: TypeWelcome, Name: name})

	go func() {
		<-remote.Done()
		s.unregister(remote)
	}()
}

func (s *Server) register(remote *Remote) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.remotes, func(r *Remote) bool { return r.name == remote.name }) {
		return false
	}
	s.remotes = append(s.remotes, remote)
	close(s.joined)
	s.joined = make(chan struct{})
	s.logger.Info("Bot connected", "name", remote.name, "total", len(s.remotes))
	return true
}

func (s *Server) unregister(remote *Remote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remotes = slices.DeleteFunc(s.remotes, func(r *Remote) bool { return r == remote })
	s.logger.Info("Bot disconnected", "name", remote.name, "total", len(s.remotes))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
