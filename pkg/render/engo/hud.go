// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-moonstrike/pkg/entity"
)

// HUD layout in pixels
const (
	hudMargin     = 10
	lifePipSize   = 14
	lifePipGap    = 4
	markerSize    = 8
	markerGap     = 4
	bannerHeight  = 24
	flashBorder   = 4
	hudMarkerRowY = hudMargin + lifePipSize + 6
)

var (
	colorLifeFull  = color.RGBA{0, 200, 80, 255}
	colorLifeEmpty = color.RGBA{60, 60, 60, 255}
	colorVictory   = color.RGBA{0, 160, 60, 200}
	colorDefeat    = color.RGBA{160, 0, 0, 200}
	colorFlash     = color.RGBA{255, 0, 0, 255}
)

// RenderStatus implements entity.Renderer. It draws life pips, one marker
// per remaining checkpoint, a red frame while the damage flash runs and a
// banner once the session is over.
func (r *EngoRenderer) RenderStatus(status entity.Status) {
	r.status = status

	for i := 0; i < status.MaxLife; i++ {
		c := colorLifeEmpty
		if i < status.Life {
			c = colorLifeFull
		}
		x := float32(hudMargin + i*(lifePipSize+lifePipGap))
		r.hudShape(fmt.Sprintf("life-%d", i), common.Rectangle{}, c,
			x, hudMargin, lifePipSize, lifePipSize, true)
	}
	r.hideFrom("life-", status.MaxLife)

	for i := 0; i < status.CheckpointsLeft; i++ {
		x := float32(hudMargin + i*(markerSize+markerGap))
		r.hudShape(fmt.Sprintf("checkpoint-%d", i), common.Circle{}, colorCheckpoint,
			x, hudMarkerRowY, markerSize, markerSize, true)
	}
	r.hideFrom("checkpoint-", status.CheckpointsLeft)

	r.hudShape("flash", common.Rectangle{BorderWidth: flashBorder, BorderColor: colorFlash}, color.Transparent,
		0, 0, r.width, r.height, status.Damaged && !status.GameOver)

	banner := colorDefeat
	if status.Outcome == "victory" {
		banner = colorVictory
	}
	r.hudShape("banner", common.Rectangle{}, banner,
		0, r.height/2-bannerHeight/2, r.width, bannerHeight, status.GameOver)
}

// hudShape creates or updates a fixed-position overlay shape
func (r *EngoRenderer) hudShape(key string, drawable common.Drawable, c color.Color, x, y, w, h float32, visible bool) {
	s, ok := r.hud[key]
	if !ok {
		s = &shape{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{
			Drawable: drawable,
			Scale:    engo.Point{X: 1, Y: 1},
		}
		s.RenderComponent.SetZIndex(zHUD)
		r.hud[key] = s
		r.shapes.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}

	s.Color = c
	s.Hidden = !visible
	s.Position = engo.Point{X: x, Y: y}
	s.Width = w
	s.Height = h
}

// hideFrom hides numbered overlay shapes at index n and above
func (r *EngoRenderer) hideFrom(prefix string, n int) {
	for i := n; ; i++ {
		s, ok := r.hud[fmt.Sprintf("%s%d", prefix, i)]
		if !ok {
			return
		}
		s.Hidden = true
	}
}

// Status returns the last status drawn
func (r *EngoRenderer) Status() entity.Status {
	return r.status
}
