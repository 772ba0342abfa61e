package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/stellarclash/internal/config"
	"github.com/tomz197/stellarclash/internal/highscore"
	"github.com/tomz197/stellarclash/internal/object"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

type shipRow struct {
	Number      int
	Name        string
	Description string
}

type pageData struct {
	SSHHost   string
	SSHPort   string
	HighScore int
	Ships     []shipRow
}

func main() {
	settings := config.Load()
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_PORT", "2222")

	logger, logCloser, err := config.NewLogger("web", settings.LogLevel, settings.LogFile, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	scores, scoresCloser, err := highscore.Open(context.Background(), settings.DatabaseURL, settings.HighScoreFile)
	if err != nil {
		logger.Fatal("high score store", "err", err)
	}
	defer scoresCloser.Close()

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newHandler(sshHost, sshPort, scores, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting web server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// newHandler serves the landing page with the current high score.
func newHandler(sshHost, sshPort string, scores highscore.Store, logger *log.Logger) http.Handler {
	ships := make([]shipRow, 0, len(object.ShipTypes()))
	for i, t := range object.ShipTypes() {
		stats := t.Stats()
		ships = append(ships, shipRow{Number: i + 1, Name: stats.Name, Description: stats.Description})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		best, err := scores.Load(r.Context())
		if err != nil {
			logger.Warn("load high score", "err", err)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{SSHHost: sshHost, SSHPort: sshPort, HighScore: best, Ships: ships}
		if err := pageTemplate.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})
	return mux
}
