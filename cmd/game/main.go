package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/stellarclash/internal/audio"
	"github.com/tomz197/stellarclash/internal/config"
	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/highscore"
	"github.com/tomz197/stellarclash/internal/input"
	"github.com/tomz197/stellarclash/internal/loop"
	"github.com/tomz197/stellarclash/internal/object"
	"github.com/tomz197/stellarclash/internal/tui"
)

func main() {
	settings := config.Load()

	ansi := flag.Bool("ansi", false, "draw with raw ANSI output instead of tcell")
	ship := flag.Int("ship", settings.Ship, "ship preset 1-5")
	mute := flag.Bool("mute", !settings.Audio, "disable sound")
	seed := flag.Int64("seed", 0, "random seed for spawns, 0 uses the clock")
	flag.Parse()

	if err := run(settings, *ansi, *ship, *mute, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(settings *config.Settings, ansi bool, shipNumber int, mute bool, seed int64) error {
	// The terminal belongs to the game, so logs only go to a file.
	logger, logCloser, err := config.NewLogger("game", settings.LogLevel, settings.LogFile, io.Discard)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ship, err := object.ShipFromNumber(shipNumber)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scores, scoresCloser, err := highscore.Open(ctx, settings.DatabaseURL, settings.HighScoreFile)
	if err != nil {
		return err
	}
	defer scoresCloser.Close()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting", "ship", ship, "seed", seed, "ansi", ansi, "audio", !mute)

	engine := loop.NewEngine(loop.Options{
		Sound:  openSound(logger, mute, settings.Volume),
		Scores: scores,
		Logger: logger,
		Rand:   rand.New(rand.NewSource(seed)),
		Ship:   ship,
	})

	if ansi {
		return runANSI(ctx, engine)
	}
	return runTUI(ctx, engine)
}

// openSound falls back to silence when the audio device cannot be opened.
func openSound(logger *log.Logger, mute bool, volume float64) audio.Sink {
	if mute {
		return audio.Nop{}
	}
	sm := audio.NewSoundManager(volume)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.Nop{}
	}
	return sm
}

func runTUI(ctx context.Context, engine *loop.Engine) error {
	display, err := tui.New()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	defer display.Close()

	return loop.Run(ctx, engine, display.Stream(), display)
}

func runANSI(ctx context.Context, engine *loop.Engine) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	display := draw.NewTerminalDisplay(os.Stdout, nil)
	if err := display.Open(); err != nil {
		return err
	}
	defer display.Close()

	stream := input.StartStream(bufio.NewReader(os.Stdin))
	return loop.Run(ctx, engine, stream, display)
}
