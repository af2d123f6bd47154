// Package health checks a running session against the simulation's
// invariants. The soak runner uses it to flag sessions whose state drifts
// off the shell or out of bounds.
package health

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/opd-ai/go-moonstrike/pkg/engine"
	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// DefaultTolerance bounds floating point drift in the geometric checks
const DefaultTolerance = 1e-4

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of a session.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// Healthy reports whether every check passed
func (s HealthStatus) Healthy() bool {
	return s.Status == "healthy"
}

// ComponentHealth represents the result of an individual check.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// NewSessionChecker returns a checker carrying every invariant check for game
func NewSessionChecker(game *engine.Game, tolerance float64) *HealthChecker {
	hc := NewHealthChecker()
	hc.AddCheck(NewShellCheck(game, tolerance))
	hc.AddCheck(NewHeadingCheck(game, tolerance))
	hc.AddCheck(NewLifeCheck(game))
	hc.AddCheck(NewOutcomeCheck(game))
	return hc
}

// AddCheck registers a new health check with the health checker.
// If a check with the same name already exists, it will be replaced.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth executes all registered health checks and returns the aggregated status.
// The overall status is "healthy" only if all individual checks pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: "healthy",
			}
		}
	}

	return status
}

// ShellCheck verifies that every body sits on the flight shell.
type ShellCheck struct {
	game      *engine.Game
	tolerance float64
}

// NewShellCheck creates a shell radius check for game.
func NewShellCheck(game *engine.Game, tolerance float64) *ShellCheck {
	return &ShellCheck{game: game, tolerance: tolerance}
}

// Name returns the name of this health check.
func (s *ShellCheck) Name() string {
	return "shell"
}

// Check compares every moving body's distance from the moon centre with the
// shell radius.
func (s *ShellCheck) Check(ctx context.Context) error {
	g := s.game
	if err := s.onShell("aircraft", g.Aircraft.Position); err != nil {
		return err
	}
	for _, d := range g.Drones {
		if err := s.onShell(fmt.Sprintf("drone %d", d.ID), d.Position); err != nil {
			return err
		}
	}
	for _, m := range g.Missiles {
		if err := s.onShell(fmt.Sprintf("missile %d", m.ID), m.Position); err != nil {
			return err
		}
	}
	return nil
}

func (s *ShellCheck) onShell(what string, p physics.Point3) error {
	r := p.Distance(s.game.Shell.Center)
	if math.Abs(r-s.game.Shell.Radius) > s.tolerance {
		return fmt.Errorf("%s is %.6f from the centre, want %.6f", what, r, s.game.Shell.Radius)
	}
	return nil
}

// HeadingCheck verifies that headings are unit length and tangent.
type HeadingCheck struct {
	game      *engine.Game
	tolerance float64
}

// NewHeadingCheck creates a heading check for game.
func NewHeadingCheck(game *engine.Game, tolerance float64) *HeadingCheck {
	return &HeadingCheck{game: game, tolerance: tolerance}
}

// Name returns the name of this health check.
func (h *HeadingCheck) Name() string {
	return "heading"
}

// Check inspects the aircraft and drone headings.
func (h *HeadingCheck) Check(ctx context.Context) error {
	g := h.game
	if err := h.tangent("aircraft", g.Aircraft.Position, g.Aircraft.Forward); err != nil {
		return err
	}
	for _, d := range g.Drones {
		if err := h.tangent(fmt.Sprintf("drone %d", d.ID), d.Position, d.Forward); err != nil {
			return err
		}
	}
	return nil
}

func (h *HeadingCheck) tangent(what string, p physics.Point3, forward physics.Direction3) error {
	if l := forward.Length(); math.Abs(l-1) > h.tolerance {
		return fmt.Errorf("%s heading has length %.6f", what, l)
	}
	if dot := forward.Dot(h.game.Shell.Up(p)); math.Abs(dot) > h.tolerance {
		return fmt.Errorf("%s heading leaves the tangent plane (dot %.6f)", what, dot)
	}
	return nil
}

// LifeCheck verifies that life stays within [0, MaxLife].
type LifeCheck struct {
	game *engine.Game
}

// NewLifeCheck creates a life bounds check for game.
func NewLifeCheck(game *engine.Game) *LifeCheck {
	return &LifeCheck{game: game}
}

// Name returns the name of this health check.
func (l *LifeCheck) Name() string {
	return "life"
}

// Check verifies the aircraft's life bounds.
func (l *LifeCheck) Check(ctx context.Context) error {
	a := l.game.Aircraft
	if a.Life < 0 || a.Life > a.Stats.MaxLife {
		return fmt.Errorf("life %d outside [0, %d]", a.Life, a.Stats.MaxLife)
	}
	return nil
}

// OutcomeCheck verifies that the latched outcome matches the world.
type OutcomeCheck struct {
	game *engine.Game
}

// NewOutcomeCheck creates an outcome consistency check for game.
func NewOutcomeCheck(game *engine.Game) *OutcomeCheck {
	return &OutcomeCheck{game: game}
}

// Name returns the name of this health check.
func (o *OutcomeCheck) Name() string {
	return "outcome"
}

// Check verifies GameOver, Outcome, life and the checkpoint count agree.
func (o *OutcomeCheck) Check(ctx context.Context) error {
	g := o.game
	switch g.Outcome {
	case engine.OutcomeNone:
		if g.GameOver {
			return fmt.Errorf("game over without an outcome")
		}
		if g.Aircraft.Life <= 0 || len(g.Checkpoints) == 0 {
			return fmt.Errorf("terminal state left unlatched")
		}
	case engine.OutcomeDefeat:
		if !g.GameOver || g.Aircraft.Life > 0 {
			return fmt.Errorf("defeat with %d life left", g.Aircraft.Life)
		}
	case engine.OutcomeVictory:
		if !g.GameOver || len(g.Checkpoints) > 0 {
			return fmt.Errorf("victory with %d checkpoints left", len(g.Checkpoints))
		}
	}
	return nil
}
