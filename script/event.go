package script

import (
	"github.com/d5/tengo/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/physics"
)

// Event is something the host tells a script about. Each variant maps onto
// one hook.
type Event interface {
	hook() string
}

// Init runs once after the script is loaded.
type Init struct{}

// Update runs once per rendered frame, before physics catches up.
type Update struct {
	DT float64
}

// Collisions carries every contact of one sub-step.
type Collisions struct {
	Step     uint64
	Contacts []physics.Contact
}

// AfterPhysics runs after each sub-step, following Collisions.
type AfterPhysics struct {
	Step uint64
	DT   float64
}

func (Init) hook() string         { return "init" }
func (Update) hook() string       { return "update" }
func (Collisions) hook() string   { return "on_collision" }
func (AfterPhysics) hook() string { return "after_physics" }

// Hooks lists every hook a script may declare.
var Hooks = []string{"init", "update", "on_collision", "after_physics"}

// ContactsObject marshals contacts into the array handed to on_collision.
func ContactsObject(contacts []physics.Contact) *tengo.Array {
	out := make([]tengo.Object, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"entity_a":    entityObject(c.EntityA),
			"entity_b":    entityObject(c.EntityB),
			"collider_a":  &tengo.Int{Value: int64(c.AreaA)},
			"collider_b":  &tengo.Int{Value: int64(c.AreaB)},
			"size_a":      vectorObject(c.SizeA),
			"size_b":      vectorObject(c.SizeB),
			"position_a":  vectorObject(c.PositionA),
			"position_b":  vectorObject(c.PositionB),
			"velocity_a":  vectorObject(c.VelocityA),
			"velocity_b":  vectorObject(c.VelocityB),
			"normal":      vectorObject(c.Normal),
			"penetration": &tengo.Float{Value: c.Penetration},
			"sensor":      boolObject(c.Sensor),
		}})
	}
	return &tengo.Array{Value: out}
}

func vectorObject(v cp.Vector) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
