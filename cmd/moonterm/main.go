// cmd/moonterm/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-moonstrike/pkg/config"
	"github.com/opd-ai/go-moonstrike/pkg/engine"
	"github.com/opd-ai/go-moonstrike/pkg/logging"
	"github.com/opd-ai/go-moonstrike/pkg/render"
)

const frameInterval = 33 * time.Millisecond

type app struct {
	screen   tcell.Screen
	game     *engine.Game
	renderer *render.TerminalRenderer
	keys     *keyLatch
	logger   *logging.Logger
	start    time.Time
	last     float64
}

func newApp(screen tcell.Screen, game *engine.Game, logger *logging.Logger) *app {
	return &app{
		screen:   screen,
		game:     game,
		renderer: render.NewTerminalRenderer(screen, game.Shell),
		keys:     newKeyLatch(),
		logger:   logger,
		start:    time.Now(),
	}
}

// handleEvent returns false when the player quits
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		now := time.Now()
		switch a.keys.Press(ev, now) {
		case actionQuit:
			return false
		case actionReset:
			a.game.Reset()
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) step() {
	now := time.Since(a.start).Seconds()
	a.game.Advance(a.last, now, a.keys.State(time.Now()))
	a.last = now
	a.game.Draw(a.renderer)
}

// pollEvents forwards screen events to events until the screen is finalized
// or done is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (a *app) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.step()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "Path to a JSON or YAML configuration file")
	seed := flag.String("seed", "", "Session seed (overrides config)")
	logPath := flag.String("log", "moonterm.log", "File receiving the JSON log")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := logging.NewLoggerWithWriter(logFile)
	ctx := context.Background()

	gameConfig, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *seed != "" {
		gameConfig.Seed = *seed
	}

	game, err := engine.NewGame(gameConfig, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	game.Start()
	newApp(screen, game, logger).run()

	logger.Info(ctx, "Terminal client exiting",
		"session_id", game.SessionID,
		"outcome", game.Outcome.String(),
		"collected", game.Collected,
	)
}
