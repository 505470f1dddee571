package script

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
)

// Host is the read side scripts get while a hook runs. Writes go through
// the command queue instead.
type Host interface {
	// Reserve allocates an entity handle for a queued CreateBody.
	Reserve() ecs.Entity
	// ReserveArea allocates a collider id for a queued CreateBody.
	ReserveArea() component.AreaID

	Position(e ecs.Entity) (cp.Vector, error)
	Velocity(e ecs.Entity) (cp.Vector, error)
	Health(e ecs.Entity) (component.Health, error)
	State(e ecs.Entity) (uint8, error)
	ContactState(e ecs.Entity) (component.ContactState, error)
	Steps() uint64
}
