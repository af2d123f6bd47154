package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-moonstrike/pkg/entity"
	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// Glyphs drawn on the terminal map
const (
	GlyphDrone      = 'D'
	GlyphMissile    = '*'
	GlyphCheckpoint = 'O'
	GlyphAsteroid   = '#'
)

var (
	styleAircraft        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleAircraftDamaged = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	styleDrone           = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleAircraftMissile = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDroneMissile    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleCheckpoint      = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleAsteroid        = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus          = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleVictory         = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleDefeat          = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
)

// TerminalRenderer draws the shell as an equirectangular map on a tcell
// screen. The bottom row holds the status line.
type TerminalRenderer struct {
	screen     tcell.Screen
	projection Projection
	width      int
	height     int
}

// NewTerminalRenderer creates a renderer drawing onto an initialised screen
func NewTerminalRenderer(screen tcell.Screen, shell physics.Shell) *TerminalRenderer {
	r := &TerminalRenderer{
		screen:     screen,
		projection: Projection{Shell: shell},
	}
	r.resize()
	return r
}

// MapSize returns the size of the map area in cells
func (r *TerminalRenderer) MapSize() (int, int) {
	return r.width, r.height
}

func (r *TerminalRenderer) resize() {
	w, h := r.screen.Size()
	r.width = w
	r.height = h - 1
	if r.height < 0 {
		r.height = 0
	}
}

// plot draws ch at pos if the map area is non-empty
func (r *TerminalRenderer) plot(pos physics.Point3, ch rune, style tcell.Style) {
	if r.width <= 0 || r.height <= 0 {
		return
	}
	x, y := r.projection.ToGrid(pos, r.width, r.height)
	r.screen.SetContent(x, y, ch, nil, style)
}

// Clear implements entity.Renderer. It picks up any resize since the last frame.
func (r *TerminalRenderer) Clear() {
	r.resize()
	r.screen.Clear()
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

// RenderAircraft implements entity.Renderer
func (r *TerminalRenderer) RenderAircraft(aircraft *entity.Aircraft) {
	style := styleAircraft
	if aircraft.Damaged() {
		style = styleAircraftDamaged
	}
	r.plot(aircraft.Position, r.projection.HeadingGlyph(aircraft.Position, aircraft.Forward), style)
}

// RenderDrone implements entity.Renderer
func (r *TerminalRenderer) RenderDrone(drone *entity.Drone) {
	r.plot(drone.Position, GlyphDrone, styleDrone)
}

// RenderMissile implements entity.Renderer
func (r *TerminalRenderer) RenderMissile(missile *entity.Missile) {
	style := styleAircraftMissile
	if missile.Owner == entity.OwnerDrone {
		style = styleDroneMissile
	}
	r.plot(missile.Position, GlyphMissile, style)
}

// RenderCheckpoint implements entity.Renderer
func (r *TerminalRenderer) RenderCheckpoint(checkpoint *entity.Checkpoint) {
	r.plot(checkpoint.Position, GlyphCheckpoint, styleCheckpoint)
}

// RenderAsteroid implements entity.Renderer
func (r *TerminalRenderer) RenderAsteroid(asteroid *entity.Asteroid) {
	r.plot(asteroid.Position, GlyphAsteroid, styleAsteroid)
}

// RenderStatus implements entity.Renderer
func (r *TerminalRenderer) RenderStatus(status entity.Status) {
	if r.height < 0 || r.width <= 0 {
		return
	}

	style := styleStatus
	line := StatusLine(status)
	if status.GameOver {
		if status.Outcome == "victory" {
			style = styleVictory
		} else {
			style = styleDefeat
		}
	}

	x := 0
	for _, ch := range line {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, r.height, ch, nil, style)
		x++
	}
	for ; x < r.width; x++ {
		r.screen.SetContent(x, r.height, ' ', nil, style)
	}
}

// StatusLine formats the HUD text for status
func StatusLine(status entity.Status) string {
	lives := make([]rune, 0, status.MaxLife)
	for i := 0; i < status.MaxLife; i++ {
		if i < status.Life {
			lives = append(lives, '+')
		} else {
			lives = append(lives, '-')
		}
	}

	line := fmt.Sprintf(" life [%s]  checkpoints %d left  collected %d ",
		string(lives), status.CheckpointsLeft, status.Collected)
	switch {
	case status.GameOver && status.Outcome == "victory":
		line += " VICTORY  r: restart  esc: quit"
	case status.GameOver:
		line += " DEFEAT  r: restart  esc: quit"
	case status.Damaged:
		line += " HIT!"
	}
	return line
}
