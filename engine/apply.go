package engine

import (
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
	"github.com/milk9111/physics2d/physics"
	"github.com/milk9111/physics2d/script"
)

// ApplyAll applies commands in order. A failing command is logged and
// skipped; it never stops the ones after it.
func (e *Engine) ApplyAll(cmds []script.Command) {
	for _, cmd := range cmds {
		if err := e.Apply(cmd); err != nil {
			log.Printf("engine: %s %s: %v", script.Name(cmd), cmd.Target(), err)
		}
	}
}

// Apply performs one command. Unknown entities yield a
// *physics.NotFoundError rather than a panic.
func (e *Engine) Apply(cmd script.Command) error {
	if e == nil {
		return fmt.Errorf("engine: nil engine")
	}
	switch c := cmd.(type) {
	case script.CreateBody:
		return e.createBody(c)
	case script.ApplyForce:
		return e.physics.ApplyForce(c.Entity, c.Force)
	case script.ApplyImpulse:
		return e.physics.ApplyImpulse(c.Entity, c.Impulse)
	case script.ApplyMove:
		return e.ApplyMove(c.Entity, c.Delta)
	case script.SetVelocity:
		return e.physics.SetVelocity(c.Entity, c.Velocity)
	case script.SetMasksAndLayers:
		return e.physics.SetMasksAndLayers(c.Entity, c.Mask, c.Layer)
	case script.ToggleArea:
		return e.physics.SetAreaActive(c.Entity, c.Active)
	case script.Damage:
		_, err := e.Damage(c.Entity, c.Amount)
		return err
	case script.SetState:
		st, ok := ecs.Get(e.store, c.Entity, component.ActionStateComponent.Kind())
		if !ok {
			return notFound(c.Entity, "action state")
		}
		st.State = c.State
		return nil
	case script.Flip:
		t, ok := ecs.Get(e.store, c.Entity, component.TransformComponent.Kind())
		if !ok {
			return notFound(c.Entity, "transform")
		}
		t.Scale = cp.Vector{X: signed(t.Scale.X, c.X), Y: signed(t.Scale.Y, c.Y)}
		return nil
	case script.Destroy:
		if !e.store.IsAlive(c.Entity) {
			return notFound(c.Entity, "entity")
		}
		e.physics.Remove(c.Entity)
		e.store.DestroyEntity(c.Entity)
		e.store.Events().Push(ecs.Event{Type: EventDestroyed, Entity: c.Entity})
		return nil
	case nil:
		return fmt.Errorf("engine: nil command")
	default:
		return fmt.Errorf("engine: unhandled command %T", cmd)
	}
}

func (e *Engine) createBody(c script.CreateBody) error {
	if !e.store.IsAlive(c.Entity) {
		return fmt.Errorf("engine: create_body: %w", component.ErrEntityNotAlive)
	}
	b := c.Body
	shape := component.Rectangle(b.Size.X/2, b.Size.Y/2)

	if err := ecs.Add(e.store, c.Entity, component.TransformComponent.Kind(), &component.Transform{
		Position: b.Position,
		Scale:    cp.Vector{X: 1, Y: 1},
		Shape:    shape,
	}); err != nil {
		return err
	}
	if err := ecs.Add(e.store, c.Entity, component.HealthComponent.Kind(), &component.Health{Total: b.Health, Current: b.Health}); err != nil {
		return err
	}
	if err := ecs.Add(e.store, c.Entity, component.ActionStateComponent.Kind(), &component.ActionState{State: b.State}); err != nil {
		return err
	}
	if err := ecs.Add(e.store, c.Entity, component.ContactStateComponent.Kind(), &component.ContactState{}); err != nil {
		return err
	}
	if len(b.Animations) > 0 {
		if err := ecs.Add(e.store, c.Entity, component.AnimationSetComponent.Kind(), &component.AnimationSet{Sheets: b.Animations}); err != nil {
			return err
		}
	}
	if b.IsPC {
		if err := ecs.Add(e.store, c.Entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
			return err
		}
		e.player = c.Entity
	}

	if err := e.physics.AddBody(c.Entity, component.PhysicsBody{Type: b.Type, Velocity: b.Velocity, Mass: 1}); err != nil {
		return err
	}

	if !b.Box {
		return nil
	}
	role := component.RolePhysics
	if b.Sensor {
		role = component.RoleSensor
	}
	_, err := e.physics.AddArea(c.Entity, component.Area{
		ID:     c.Area,
		Role:   role,
		Shape:  component.Rectangle(b.BoxSize.X/2, b.BoxSize.Y/2),
		Offset: b.BoxOffset,
		Size:   b.BoxSize,
		Mask:   b.Mask,
		Layer:  b.Layer,
		Active: true,
	})
	return err
}

// ApplyMove nudges the committed position of ent by delta without touching
// its velocity.
func (e *Engine) ApplyMove(ent ecs.Entity, delta cp.Vector) error {
	t, ok := ecs.Get(e.store, ent, component.TransformComponent.Kind())
	if !ok {
		return notFound(ent, "transform")
	}
	t.Position = t.Position.Add(delta)
	return nil
}

// Damage subtracts from the health of ent and reports whether it reached
// zero.
func (e *Engine) Damage(ent ecs.Entity, amount uint16) (bool, error) {
	h, ok := ecs.Get(e.store, ent, component.HealthComponent.Kind())
	if !ok {
		return false, notFound(ent, "health")
	}
	wasAlive := h.Current > 0
	dead := h.Damage(amount)
	e.store.Events().Push(ecs.Event{Type: EventDamaged, Entity: ent, Value: int(amount)})
	if dead && wasAlive {
		e.store.Events().Push(ecs.Event{Type: EventDied, Entity: ent})
	}
	return dead, nil
}

func notFound(ent ecs.Entity, what string) error {
	return &physics.NotFoundError{Entity: ent, What: what, Err: physics.ErrEntityNotFound}
}

// signed returns |v| made negative when flip is set.
func signed(v float64, flip bool) float64 {
	v = math.Abs(v)
	if v == 0 {
		v = 1
	}
	if flip {
		return -v
	}
	return v
}
