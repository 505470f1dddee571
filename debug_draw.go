package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
	"github.com/milk9111/physics2d/physics"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const normalLength = 0.75

var (
	backgroundColor = color.RGBA{R: 0x1c, G: 0x1c, B: 0x22, A: 0xff}
	hudFace         = ebtext.NewGoXFace(basicfont.Face7x13)
)

func bodyColor(kind string) color.RGBA {
	switch kind {
	case "static":
		return colornames.Slategray
	case "rigid":
		return colornames.Crimson
	default:
		return colornames.Gold
	}
}

func drawBodies(screen *ebiten.Image, v view, bodies []physics.BodySnapshot) {
	for _, b := range bodies {
		x, y := v.toScreen(b.Position.Sub(b.Size.Mult(0.5)))
		w, h := float32(b.Size.X*v.zoom), float32(b.Size.Y*v.zoom)
		clr := bodyColor(b.Type)
		fill := color.NRGBA{R: clr.R, G: clr.G, B: clr.B, A: 0x50}
		vector.FillRect(screen, x, y, w, h, fill, false)
		vector.StrokeRect(screen, x, y, w, h, 1, clr, false)

		for _, a := range b.Areas {
			drawArea(screen, v, a)
		}
		if b.FlipX {
			cx, cy := v.toScreen(b.Position)
			vector.StrokeLine(screen, cx, cy, cx-float32(b.Size.X*v.zoom/2), cy, 1, clr, true)
		}
	}
}

func drawArea(screen *ebiten.Image, v view, a physics.AreaSnapshot) {
	clr := colornames.Lime
	if a.Role == "sensor" {
		clr = colornames.Deepskyblue
	}
	if !a.Active {
		clr = colornames.Dimgray
	}
	x, y := v.toScreen(cp.Vector{X: a.Bounds.L, Y: a.Bounds.B})
	w := float32((a.Bounds.R - a.Bounds.L) * v.zoom)
	h := float32((a.Bounds.T - a.Bounds.B) * v.zoom)
	vector.StrokeRect(screen, x, y, w, h, 1, clr, false)
}

// drawContacts draws each contact normal from A's position.
func drawContacts(screen *ebiten.Image, v view, contacts []physics.Contact) {
	for _, c := range contacts {
		clr := colornames.Orange
		if c.Sensor {
			clr = colornames.Deepskyblue
		}
		x1, y1 := v.toScreen(c.PositionA)
		x2, y2 := v.toScreen(c.PositionA.Add(c.Normal.Mult(normalLength)))
		vector.StrokeLine(screen, x1, y1, x2, y2, 2, clr, true)
	}
}

// playerSheet resolves the sheet the renderer would play for the player's
// current action state.
func playerSheet(store *ecs.World, player ecs.Entity) (string, bool) {
	set, ok := ecs.Get(store, player, component.AnimationSetComponent.Kind())
	if !ok {
		return "", false
	}
	st, ok := ecs.Get(store, player, component.ActionStateComponent.Kind())
	if !ok {
		return "", false
	}
	return set.Sheet(st.State)
}

func drawHUD(screen *ebiten.Image, g *Game) {
	p := g.engine.Physics()
	cfg := p.Config()
	lines := fmt.Sprintf(
		"mode: %s  step: %.4f  slop: %.2f\nsub-steps: %d (last frame %d)  accumulator: %.4f\nbodies: %d  contacts: %d\nEsc pause  N step  R reload  C copy snapshot  F1 overlay",
		cfg.Mode, cfg.FixedStep, cfg.Slop,
		p.Steps(), g.lastSubs, p.Accumulator(),
		len(p.Bodies()), len(p.LastContacts()),
	)
	if player, ok := g.engine.Player(); ok {
		if cs, err := g.engine.ContactState(player); err == nil {
			lines += fmt.Sprintf("\nplayer grounded: %v  ceiling: %v  wall: %d", cs.Grounded, cs.Ceiling, cs.Wall)
		}
		if sheet, ok := playerSheet(g.engine.Store(), player); ok {
			lines += "\nplayer animation: " + sheet
		}
	}
	for _, line := range g.feed.Lines() {
		lines += "\n" + line
	}
	if g.status != "" {
		lines += "\n" + g.status
	}

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(10, 24)
	op.LineSpacing = 16
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(screen, lines, hudFace, op)
}
