package component

import "github.com/jakecoffman/cp"

// AreaID is the slot id of a collider. Ids are handed out by the physics
// world and are never reused.
type AreaID uint32

// AreaRole separates solid colliders from trigger areas on the same owner.
type AreaRole uint8

const (
	// RolePhysics colliders are detected and resolved.
	RolePhysics AreaRole = iota
	// RoleSensor areas are detected and reported but never resolved.
	RoleSensor
)

func (r AreaRole) String() string {
	switch r {
	case RolePhysics:
		return "physics"
	case RoleSensor:
		return "sensor"
	default:
		return "unknown"
	}
}

// Area is a collider attached to an owning entity. Its shape is independent
// of the owner's visual Transform shape. Offset is relative to the owner's
// position. Size is the configured collider size kept for reporting.
type Area struct {
	ID     AreaID
	Role   AreaRole
	Shape  Shape
	Offset cp.Vector
	Size   cp.Vector
	Mask   uint8
	Layer  uint8
	Active bool
}

// Senses reports whether a's mask admits other's layer. The relation is
// directional: a.Senses(b) says nothing about b.Senses(a).
func (a Area) Senses(other Area) bool {
	return a.Mask&other.Layer != 0
}
