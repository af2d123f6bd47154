// cmd/soak/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-moonstrike/pkg/config"
	"github.com/opd-ai/go-moonstrike/pkg/engine"
	"github.com/opd-ai/go-moonstrike/pkg/health"
	"github.com/opd-ai/go-moonstrike/pkg/logging"
	"github.com/opd-ai/go-moonstrike/pkg/render"
)

// sessionResult is how one autopiloted session ended
type sessionResult struct {
	Index     int
	Seed      string
	Outcome   engine.Outcome
	Ticks     uint64
	Collected int
	Life      int
	Frames    int
	Healthy   bool
}

// summary aggregates a soak run
type summary struct {
	Sessions   int
	Victories  int
	Defeats    int
	Unfinished int
	Unhealthy  int
	MeanTicks  float64
}

type soakOptions struct {
	Sessions    int
	Ticks       int
	DeltaTime   float64
	Concurrency int
	CheckEvery  int
}

func summarize(results []sessionResult) summary {
	s := summary{Sessions: len(results)}
	var ticks uint64
	for _, r := range results {
		switch r.Outcome {
		case engine.OutcomeVictory:
			s.Victories++
		case engine.OutcomeDefeat:
			s.Defeats++
		default:
			s.Unfinished++
		}
		if !r.Healthy {
			s.Unhealthy++
		}
		ticks += r.Ticks
	}
	if len(results) > 0 {
		s.MeanTicks = float64(ticks) / float64(len(results))
	}
	return s
}

// runSession plays one seeded session to the end or to the tick limit
func runSession(ctx context.Context, base *config.GameConfig, index int, opts soakOptions, logger *logging.Logger) (sessionResult, error) {
	cfg := *base
	cfg.Seed = fmt.Sprintf("%s-%d", base.Seed, index)

	game, err := engine.NewGame(&cfg, logger)
	if err != nil {
		return sessionResult{}, fmt.Errorf("session %d: %w", index, err)
	}
	renderer := render.NewNullRenderer(logger)
	checker := health.NewSessionChecker(game, health.DefaultTolerance)
	healthy := true

	check := func() {
		if !healthy {
			return
		}
		if status := checker.CheckHealth(ctx); !status.Healthy() {
			healthy = false
			logger.Warn(ctx, "Session invariant violated",
				"session_id", game.SessionID,
				"tick", game.CurrentTick,
				"checks", status.Checks,
			)
		}
	}

	game.Start()
	for i := 0; i < opts.Ticks && !game.GameOver; i++ {
		if i%256 == 0 && ctx.Err() != nil {
			return sessionResult{}, ctx.Err()
		}
		game.Update(opts.DeltaTime, game.Autopilot())
		game.Draw(renderer)
		if opts.CheckEvery > 0 && (i+1)%opts.CheckEvery == 0 {
			check()
		}
	}
	check()

	result := sessionResult{
		Index:     index,
		Seed:      cfg.Seed,
		Outcome:   game.Outcome,
		Ticks:     game.CurrentTick,
		Collected: game.Collected,
		Life:      game.Aircraft.Life,
		Frames:    renderer.Frames(),
		Healthy:   healthy,
	}
	logger.Info(ctx, "Soak session finished",
		"session_id", game.SessionID,
		"seed", result.Seed,
		"outcome", result.Outcome.String(),
		"ticks", result.Ticks,
		"collected", result.Collected,
		"life", result.Life,
		"healthy", result.Healthy,
	)
	return result, nil
}

// runSoak plays opts.Sessions sessions concurrently
func runSoak(ctx context.Context, base *config.GameConfig, opts soakOptions, logger *logging.Logger) ([]sessionResult, error) {
	results := make([]sessionResult, opts.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := 0; i < opts.Sessions; i++ {
		g.Go(func() error {
			r, err := runSession(ctx, base, i, opts, logger)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func main() {
	logger := logging.NewLogger()

	configPath := flag.String("config", "", "Path to a JSON or YAML configuration file")
	sessions := flag.Int("sessions", 16, "Number of sessions to play")
	ticks := flag.Int("ticks", 20000, "Tick limit per session")
	deltaTime := flag.Float64("dt", 1.0/30, "Simulated seconds per tick")
	concurrency := flag.Int("concurrency", runtime.NumCPU(), "Sessions played at once")
	checkEvery := flag.Int("check-every", 64, "Ticks between invariant checks (0 checks only at the end)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunID(ctx, "")

	gameConfig, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if gameConfig.Seed == "" {
		gameConfig.Seed = "soak"
	}

	opts := soakOptions{
		Sessions:    *sessions,
		Ticks:       *ticks,
		DeltaTime:   *deltaTime,
		Concurrency: max(*concurrency, 1),
		CheckEvery:  *checkEvery,
	}
	logger.Info(ctx, "Starting soak run",
		"sessions", opts.Sessions,
		"ticks", opts.Ticks,
		"concurrency", opts.Concurrency,
		"seed", gameConfig.Seed,
	)

	results, err := runSoak(ctx, gameConfig, opts, logger)
	if err != nil {
		logger.Error(ctx, "Soak run failed", err)
		os.Exit(1)
	}

	s := summarize(results)
	logger.Info(ctx, "Soak run complete",
		"sessions", s.Sessions,
		"victories", s.Victories,
		"defeats", s.Defeats,
		"unfinished", s.Unfinished,
		"unhealthy", s.Unhealthy,
		"mean_ticks", s.MeanTicks,
	)
	if s.Unhealthy > 0 {
		os.Exit(1)
	}
}
