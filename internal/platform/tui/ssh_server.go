package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/lcd-dino/internal/core"
	"github.com/vovakirdan/lcd-dino/internal/dino"
	"github.com/vovakirdan/lcd-dino/internal/registry"
	"github.com/vovakirdan/lcd-dino/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.lcd-dino/host_key.
	HostKeyPath string

	// DBPath is the path to the database holding every user's cell.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Timing, Hold, Renderer and Theme configure each session's device.
	Timing   dino.Timing
	Hold     time.Duration
	Renderer string
	Theme    registry.Theme
	FPS      int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.lcd-dino/dino.db",
		IdleTimeout: 30 * time.Minute,
		Timing:      dino.DefaultTiming(),
		Hold:        180 * time.Millisecond,
		Renderer:    AutoRenderer,
		FPS:         30,
	}
}

// SSHServer wraps a Wish SSH server. Every connection powers its own device;
// the SSH user name selects the best-score cell.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "dino-ssh",
		})
	}

	hostKeyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config: cfg,
		store:  openServerStore(cfg.DBPath, logger),
		logger: logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	srv.server, err = wish.NewServer(opts...)
	if err != nil {
		if srv.store != nil {
			srv.store.Close()
		}
		return nil, fmt.Errorf("tui: ssh server: %w", err)
	}
	return srv, nil
}

// resolveHostKey defaults the host key to ~/.lcd-dino/host_key and makes sure
// its directory exists. Wish generates the key on first start.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: host key: %w", err)
		}
		path = filepath.Join(home, ".lcd-dino", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: host key directory: %w", err)
	}
	return path, nil
}

// openServerStore opens the shared database. Without one every connection
// starts from a zero best score.
func openServerStore(path string, logger *log.Logger) *storage.Store {
	if path == "" {
		return nil
	}
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("best scores will not persist", "db", path, "error", err)
		return nil
	}
	return store
}

// cellFor returns the persistence cell and run recorder for a user.
func (s *SSHServer) cellFor(user string) (dino.Cell, dino.RunRecorder) {
	if s.store == nil {
		return storage.NewMemoryCell(0), nil
	}
	cell := s.store.Cell(user)
	return cell, cell
}

// teaHandler powers a device for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	user := sess.User()
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("rejected session without a terminal", "user", user)
		return nil, nil
	}

	cell, recorder := s.cellFor(user)
	session := NewSession(cell, SessionConfig{
		Device:   user,
		Timing:   s.config.Timing,
		Hold:     s.config.Hold,
		Logger:   s.logger.With("user", user),
		Recorder: recorder,
	})

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		FPS:      s.config.FPS,
		Renderer: s.config.Renderer,
		Device:   user,
	}
	model, err := NewModel(session, s.config.Theme, cfg)
	if err != nil {
		s.logger.Error("cannot create session", "user", user, "error", err)
		return nil, nil
	}

	// The device loses power when the connection drops.
	session.Start(sess.Context())

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs connects and disconnects with their duration.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		start := time.Now()
		logger.Info("device powered")
		next(sess)
		logger.Info("device unplugged", "uptime", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("listening", "address", s.config.Address)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	failed := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case <-sig:
		s.logger.Info("shutting down")
		return s.Shutdown()
	case err := <-failed:
		s.Shutdown() //nolint:errcheck // Already failing
		return fmt.Errorf("tui: ssh server: %w", err)
	}
}

// Shutdown waits up to 10 seconds for open sessions, then closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
