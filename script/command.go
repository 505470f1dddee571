package script

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
)

// Command is an intent issued by a script. Commands are queued while a hook
// runs and applied by the host between sub-steps. The set is closed.
type Command interface {
	command()
	Target() ecs.Entity
}

// CreateBody populates an entity reserved through Host.Reserve. Area is the
// reserved collider id, zero when the body has no collision box.
type CreateBody struct {
	Entity ecs.Entity
	Area   component.AreaID
	Body   Body
}

type ApplyForce struct {
	Entity ecs.Entity
	Force  cp.Vector
}

type ApplyImpulse struct {
	Entity  ecs.Entity
	Impulse cp.Vector
}

// ApplyMove nudges the committed position directly, bypassing integration.
type ApplyMove struct {
	Entity ecs.Entity
	Delta  cp.Vector
}

type SetVelocity struct {
	Entity   ecs.Entity
	Velocity cp.Vector
}

type SetMasksAndLayers struct {
	Entity ecs.Entity
	Mask   uint8
	Layer  uint8
}

type ToggleArea struct {
	Entity ecs.Entity
	Active bool
}

type Damage struct {
	Entity ecs.Entity
	Amount uint16
}

type SetState struct {
	Entity ecs.Entity
	State  uint8
}

// Flip sets the sign of the entity's scale per axis. Size is unaffected.
type Flip struct {
	Entity ecs.Entity
	X, Y   bool
}

type Destroy struct {
	Entity ecs.Entity
}

func (CreateBody) command()        {}
func (ApplyForce) command()        {}
func (ApplyImpulse) command()      {}
func (ApplyMove) command()         {}
func (SetVelocity) command()       {}
func (SetMasksAndLayers) command() {}
func (ToggleArea) command()        {}
func (Damage) command()            {}
func (SetState) command()          {}
func (Flip) command()              {}
func (Destroy) command()           {}

func (c CreateBody) Target() ecs.Entity        { return c.Entity }
func (c ApplyForce) Target() ecs.Entity        { return c.Entity }
func (c ApplyImpulse) Target() ecs.Entity      { return c.Entity }
func (c ApplyMove) Target() ecs.Entity         { return c.Entity }
func (c SetVelocity) Target() ecs.Entity       { return c.Entity }
func (c SetMasksAndLayers) Target() ecs.Entity { return c.Entity }
func (c ToggleArea) Target() ecs.Entity        { return c.Entity }
func (c Damage) Target() ecs.Entity            { return c.Entity }
func (c SetState) Target() ecs.Entity          { return c.Entity }
func (c Flip) Target() ecs.Entity              { return c.Entity }
func (c Destroy) Target() ecs.Entity           { return c.Entity }

// Name returns the scripting name of a command, for logs.
func Name(c Command) string {
	switch c.(type) {
	case CreateBody:
		return "create_body"
	case ApplyForce:
		return "apply_force"
	case ApplyImpulse:
		return "apply_impulse"
	case ApplyMove:
		return "apply_move"
	case SetVelocity:
		return "set_velocity"
	case SetMasksAndLayers:
		return "apply_masks_and_layers"
	case ToggleArea:
		return "toggle_area"
	case Damage:
		return "damage"
	case SetState:
		return "set_state"
	case Flip:
		return "flip"
	case Destroy:
		return "destroy"
	default:
		return fmt.Sprintf("%T", c)
	}
}
