package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
)

// BodySnapshot is a read-only copy of one simulated entity for renderers.
type BodySnapshot struct {
	Entity   ecs.Entity             `yaml:"entity"`
	Type     string                 `yaml:"type"`
	Position cp.Vector              `yaml:"position"`
	Velocity cp.Vector              `yaml:"velocity"`
	Size     cp.Vector              `yaml:"size"`
	FlipX    bool                   `yaml:"flip_x,omitempty"`
	Areas    []AreaSnapshot         `yaml:"areas,omitempty"`
	Contact  component.ContactState `yaml:"-"`
}

type AreaSnapshot struct {
	ID     component.AreaID `yaml:"id"`
	Role   string           `yaml:"role"`
	Bounds cp.BB            `yaml:"bounds"`
	Mask   uint8            `yaml:"mask"`
	Layer  uint8            `yaml:"layer"`
	Active bool             `yaml:"active"`
}

// Snapshot copies the committed state of every body that has a transform in
// store, in storage order.
func (w *World) Snapshot(store *ecs.World) []BodySnapshot {
	if w == nil || store == nil {
		return nil
	}
	entities := w.bodies.Entities()
	values := w.bodies.Values()
	out := make([]BodySnapshot, 0, len(entities))
	for i, e := range entities {
		body, ok := values[i].(*component.PhysicsBody)
		if !ok || body == nil {
			continue
		}
		t, ok := ecs.Get(store, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		snap := BodySnapshot{
			Entity:   e,
			Type:     body.Type.String(),
			Position: t.Position,
			Velocity: body.Velocity,
			Size:     t.Size(),
			FlipX:    t.FlipX(),
		}
		if cs, ok := ecs.Get(store, e, component.ContactStateComponent.Kind()); ok {
			snap.Contact = *cs
		}
		for _, a := range w.Areas(e) {
			bb, _ := areaBounds(a, *t)
			snap.Areas = append(snap.Areas, AreaSnapshot{
				ID:     a.ID,
				Role:   a.Role.String(),
				Bounds: bb,
				Mask:   a.Mask,
				Layer:  a.Layer,
				Active: a.Active,
			})
		}
		out = append(out, snap)
	}
	return out
}
