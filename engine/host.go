package engine

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
)

// The methods below make Engine the script.Host.

func (e *Engine) Reserve() ecs.Entity {
	return e.store.CreateEntity()
}

func (e *Engine) ReserveArea() component.AreaID {
	return e.physics.ReserveAreaID()
}

// Position reads the committed position from the store.
func (e *Engine) Position(ent ecs.Entity) (cp.Vector, error) {
	t, ok := ecs.Get(e.store, ent, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, notFound(ent, "transform")
	}
	return t.Position, nil
}

func (e *Engine) Velocity(ent ecs.Entity) (cp.Vector, error) {
	return e.physics.Velocity(ent)
}

func (e *Engine) Health(ent ecs.Entity) (component.Health, error) {
	h, ok := ecs.Get(e.store, ent, component.HealthComponent.Kind())
	if !ok {
		return component.Health{}, notFound(ent, "health")
	}
	return *h, nil
}

func (e *Engine) State(ent ecs.Entity) (uint8, error) {
	st, ok := ecs.Get(e.store, ent, component.ActionStateComponent.Kind())
	if !ok {
		return 0, notFound(ent, "action state")
	}
	return st.State, nil
}

func (e *Engine) ContactState(ent ecs.Entity) (component.ContactState, error) {
	cs, ok := ecs.Get(e.store, ent, component.ContactStateComponent.Kind())
	if !ok {
		return component.ContactState{}, notFound(ent, "contact state")
	}
	return *cs, nil
}

func (e *Engine) Steps() uint64 {
	return e.physics.Steps()
}
