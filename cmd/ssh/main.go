package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/stellarclash/internal/audio"
	"github.com/tomz197/stellarclash/internal/config"
	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/highscore"
	"github.com/tomz197/stellarclash/internal/input"
	"github.com/tomz197/stellarclash/internal/loop"
	"github.com/tomz197/stellarclash/internal/object"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	idleDisconnect = 2 * time.Minute
)

func main() {
	settings := config.Load()
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	logger, logCloser, err := config.NewLogger("ssh", settings.LogLevel, settings.LogFile, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	ship, err := object.ShipFromNumber(settings.Ship)
	if err != nil {
		logger.Warn("invalid STELLAR_SHIP, using default", "ship", settings.Ship)
		ship = object.ShipClassic
	}

	scores, scoresCloser, err := highscore.Open(context.Background(), settings.DatabaseURL, settings.HighScoreFile)
	if err != nil {
		logger.Fatal("high score store", "err", err)
	}
	defer scoresCloser.Close()

	logger.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath)

	games := &gameHandler{
		logger: logger,
		scores: scores,
		ship:   ship,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", games.active())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// gameHandler runs one independent game per SSH session. Sessions share only
// the high score store.
type gameHandler struct {
	logger *log.Logger
	scores highscore.Store
	ship   object.ShipType

	mu       sync.Mutex
	sessions int
}

func (g *gameHandler) active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessions
}

func (g *gameHandler) track(delta int) {
	g.mu.Lock()
	g.sessions += delta
	g.mu.Unlock()
}

// middleware handles SSH sessions and runs the game.
func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		id := uuid.NewString()
		logger := g.logger.With("session", id, "user", sess.User())
		logger.Info("new game session", "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		g.track(1)
		defer g.track(-1)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		display := draw.NewTerminalDisplay(sess, sizeTracker.getSize)
		if err := display.Open(); err != nil {
			logger.Warn("open display", "err", err)
			return
		}

		engine := loop.NewEngine(loop.Options{
			Sound:  audio.Nop{},
			Scores: g.scores,
			Logger: logger,
			Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
			Ship:   g.ship,
		})
		activity := newActivityReader(sess)
		stream := input.StartStream(bufio.NewReader(activity))

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		go activity.watch(ctx, idleDisconnect, func() {
			logger.Info("disconnecting idle session")
			cancel()
		})

		if err := loop.Run(ctx, engine, stream, display); err != nil {
			logger.Warn("game error", "err", err)
		}
		_ = display.Close()

		logger.Info("session ended", "score", engine.Score, "high_score", engine.HighScore)
		next(sess)
	}
}

// activityReader records when the client last sent input.
type activityReader struct {
	r    io.Reader
	last atomic.Int64
}

func newActivityReader(r io.Reader) *activityReader {
	a := &activityReader{r: r}
	a.last.Store(time.Now().UnixNano())
	return a
}

func (a *activityReader) Read(p []byte) (int, error) {
	n, err := a.r.Read(p)
	if n > 0 {
		a.last.Store(time.Now().UnixNano())
	}
	return n, err
}

// watch calls onIdle once no input has arrived for timeout.
func (a *activityReader) watch(ctx context.Context, timeout time.Duration, onIdle func()) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if time.Since(time.Unix(0, a.last.Load())) > timeout {
				onIdle()
				return
			}
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
