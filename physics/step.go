package physics

import (
	"log"
	"math"

	"github.com/milk9111/physics2d/config"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
)

// Advance adds elapsed seconds to the accumulator and runs one sub-step per
// whole fixed step it holds. The remainder carries over to the next call.
// Negative elapsed time is ignored. It returns the number of sub-steps run.
func (w *World) Advance(store *ecs.World, elapsed float64) int {
	if w == nil || store == nil {
		return 0
	}
	if elapsed > 0 && !math.IsInf(elapsed, 0) {
		w.accumulator += elapsed
	}

	step := w.cfg.FixedStep
	n := 0
	for w.accumulator >= step {
		if w.cfg.MaxSubsteps > 0 && n >= w.cfg.MaxSubsteps {
			dropped := math.Floor(w.accumulator / step)
			w.accumulator -= dropped * step
			log.Printf("physics: dropped %d sub-steps after %d this frame", int(dropped), n)
			break
		}
		w.Step(store)
		w.accumulator -= step
		n++
	}
	if w.accumulator < 0 {
		w.accumulator = 0
	}
	return n
}

// Step runs exactly one fixed sub-step and returns its contacts. It does not
// touch the accumulator.
func (w *World) Step(store *ecs.World) []Contact {
	if w == nil || store == nil {
		return nil
	}
	dt := w.cfg.FixedStep
	gravity := w.cfg.Gravity

	current := w.states(store)
	next := make(map[ecs.Entity]*State, len(current))
	for e, st := range current {
		body, t := Predict(st.Body, st.Transform, dt, gravity)
		next[e] = &State{Body: body, Transform: t}
	}

	contacts := Detect(w.groups(), next)

	var committed map[ecs.Entity]*State
	switch w.cfg.Mode {
	case config.ModeLockstep:
		Resolve(contacts, w, current, w.cfg.Slop)
		for _, st := range current {
			Integrate(&st.Body, &st.Transform, dt, gravity)
		}
		committed = current
	default:
		Resolve(contacts, w, next, w.cfg.Slop)
		committed = next
	}

	w.commit(committed)
	w.publish(store, committed, contacts)

	w.steps++
	w.last = contacts
	if w.debug && len(contacts) > 0 {
		for _, c := range contacts {
			log.Printf("physics: step=%d contact a=%s b=%s normal=(%.0f,%.0f) pen=%.4f sensor=%v",
				w.steps, c.EntityA, c.EntityB, c.Normal.X, c.Normal.Y, c.Penetration, c.Sensor)
		}
	}
	for _, h := range w.handlers {
		h(w.steps, contacts)
	}
	return contacts
}

// states snapshots (body, transform) for every body whose entity carries a
// transform in store. Bodies without a transform are left out and so never
// move or collide.
func (w *World) states(store *ecs.World) map[ecs.Entity]*State {
	entities := w.bodies.Entities()
	values := w.bodies.Values()
	out := make(map[ecs.Entity]*State, len(entities))
	for i, e := range entities {
		body, ok := values[i].(*component.PhysicsBody)
		if !ok || body == nil {
			continue
		}
		t, ok := ecs.Get(store, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		out[e] = &State{Body: *body, Transform: *t}
	}
	return out
}

// commit writes resolved bodies back into the world.
func (w *World) commit(states map[ecs.Entity]*State) {
	for e, st := range states {
		if b, err := w.body(e); err == nil {
			*b = st.Body
		}
	}
}

// publish copies committed positions into store and refreshes the contact
// state of entities that carry one. It is the only place physics writes to
// the store.
func (w *World) publish(store *ecs.World, states map[ecs.Entity]*State, contacts []Contact) {
	for e, st := range states {
		if t, ok := ecs.Get(store, e, component.TransformComponent.Kind()); ok {
			t.Position = st.Transform.Position
		}
	}

	ecs.ForEach(store, component.ContactStateComponent.Kind(), func(_ ecs.Entity, cs *component.ContactState) {
		cs.Reset()
	})
	for _, c := range contacts {
		cs, ok := ecs.Get(store, c.EntityA, component.ContactStateComponent.Kind())
		if !ok {
			continue
		}
		if c.Sensor {
			cs.Sensed++
			continue
		}
		cs.Touching++
		switch {
		case c.Normal.Y < 0:
			cs.Grounded = true
		case c.Normal.Y > 0:
			cs.Ceiling = true
		case c.Normal.X < 0:
			cs.Wall = component.WallRight
		case c.Normal.X > 0:
			cs.Wall = component.WallLeft
		}
	}
}
