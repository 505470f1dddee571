package component

import "github.com/jakecoffman/cp"

type BodyType uint8

const (
	// BodyStatic never moves and never receives velocity changes.
	BodyStatic BodyType = iota
	// BodyRigid integrates forces and impulses and is corrected on contact.
	BodyRigid
	// BodyKinematic moves under its externally set velocity only.
	BodyKinematic
)

func (t BodyType) String() string {
	switch t {
	case BodyStatic:
		return "static"
	case BodyRigid:
		return "rigid"
	case BodyKinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// ParseBodyType maps the scripting integer codes onto body types. Unknown
// codes report false.
func ParseBodyType(code int) (BodyType, bool) {
	switch code {
	case 0:
		return BodyStatic, true
	case 1:
		return BodyRigid, true
	case 2:
		return BodyKinematic, true
	default:
		return BodyRigid, false
	}
}

// PhysicsBody is the simulated state of one entity. Force and Impulse are
// accumulators drained into Velocity by the integrator every sub-step.
type PhysicsBody struct {
	Type     BodyType
	Velocity cp.Vector
	Mass     float64
	Force    cp.Vector
	Impulse  cp.Vector
}

func (b *PhysicsBody) ApplyForce(f cp.Vector) {
	b.Force = b.Force.Add(f)
}

func (b *PhysicsBody) ApplyImpulse(j cp.Vector) {
	b.Impulse = b.Impulse.Add(j)
}

func (b *PhysicsBody) ClearAccumulators() {
	b.Force = cp.Vector{}
	b.Impulse = cp.Vector{}
}
