package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
)

// Contact describes one overlapping ordered collider pair for one sub-step.
// Normal is a unit axis vector pointing from B toward A; Penetration is the
// overlap along that axis and is never negative.
type Contact struct {
	EntityA     ecs.Entity
	EntityB     ecs.Entity
	AreaA       component.AreaID
	AreaB       component.AreaID
	SizeA       cp.Vector
	SizeB       cp.Vector
	PositionA   cp.Vector
	PositionB   cp.Vector
	VelocityA   cp.Vector
	VelocityB   cp.Vector
	Normal      cp.Vector
	Penetration float64
	// Sensor is set when either side is a trigger area. Sensor contacts are
	// reported but never resolved.
	Sensor bool
}

// MTV is the full minimum translation vector that moves A out of B.
func (c Contact) MTV() cp.Vector {
	return c.Normal.Mult(c.Penetration)
}

// AreaGroup is the set of colliders owned by one entity.
type AreaGroup struct {
	Owner ecs.Entity
	Areas []component.Area
}

// Layers is the world-level layer group of the owner: the OR of the masks
// and layers of its active areas.
func (g AreaGroup) Layers() component.CollisionLayer {
	var out component.CollisionLayer
	for _, a := range g.Areas {
		if !a.Active {
			continue
		}
		out.Mask |= a.Mask
		out.Layer |= a.Layer
	}
	return out
}

// Detect returns every overlapping ordered pair of colliders against the
// predicted states in next. An unordered pair whose masks admit each other
// yields two contacts, one per side. Emission order follows groups order,
// then area order, so identical inputs give identical output.
//
// Every group pair is tested; there is no spatial partitioning.
func Detect(groups []AreaGroup, next map[ecs.Entity]*State) []Contact {
	var contacts []Contact
	for i := range groups {
		a := &groups[i]
		stA, okA := next[a.Owner]
		if !okA || stA == nil {
			continue
		}
		layersA := a.Layers()
		for j := range groups {
			b := &groups[j]
			if a.Owner == b.Owner {
				continue
			}
			if !layersA.Overlaps(b.Layers()) {
				continue
			}
			stB, okB := next[b.Owner]
			if !okB || stB == nil {
				continue
			}
			for _, areaA := range a.Areas {
				if !areaA.Active {
					continue
				}
				for _, areaB := range b.Areas {
					if !areaB.Active || !areaA.Senses(areaB) {
						continue
					}
					if c, ok := contactFor(a.Owner, areaA, stA, b.Owner, areaB, stB); ok {
						contacts = append(contacts, c)
					}
				}
			}
		}
	}
	return contacts
}

func contactFor(ea ecs.Entity, areaA component.Area, stA *State, eb ecs.Entity, areaB component.Area, stB *State) (Contact, bool) {
	bbA, centerA := areaBounds(areaA, stA.Transform)
	bbB, centerB := areaBounds(areaB, stB.Transform)
	if !bbA.Intersects(bbB) {
		return Contact{}, false
	}

	overlapX := math.Min(bbA.R, bbB.R) - math.Max(bbA.L, bbB.L)
	overlapY := math.Min(bbA.T, bbB.T) - math.Max(bbA.B, bbB.B)

	var normal cp.Vector
	var penetration float64
	if overlapX < overlapY {
		penetration = overlapX
		if centerA.X < centerB.X {
			normal = cp.Vector{X: -1}
		} else {
			normal = cp.Vector{X: 1}
		}
	} else {
		penetration = overlapY
		if centerA.Y < centerB.Y {
			normal = cp.Vector{Y: -1}
		} else {
			normal = cp.Vector{Y: 1}
		}
	}
	if penetration < 0 {
		penetration = 0
	}

	return Contact{
		EntityA:     ea,
		EntityB:     eb,
		AreaA:       areaA.ID,
		AreaB:       areaB.ID,
		SizeA:       bbSize(bbA),
		SizeB:       bbSize(bbB),
		PositionA:   stA.Transform.Position,
		PositionB:   stB.Transform.Position,
		VelocityA:   stA.Body.Velocity,
		VelocityB:   stB.Body.Velocity,
		Normal:      normal,
		Penetration: penetration,
		Sensor:      areaA.Role == component.RoleSensor || areaB.Role == component.RoleSensor,
	}, true
}

// areaBounds returns the collider AABB around the owner's transform. Half
// extents scale by |Scale|; the offset mirrors with the sign of Scale so a
// flipped owner flips its collider.
func areaBounds(area component.Area, t component.Transform) (cp.BB, cp.Vector) {
	half := area.Shape.Half()
	abs := t.ScaleAbs()
	half = cp.Vector{X: half.X * abs.X, Y: half.Y * abs.Y}

	offset := area.Offset
	if t.FlipX() {
		offset.X = -offset.X
	}
	if t.FlipY() {
		offset.Y = -offset.Y
	}
	center := t.Position.Add(offset)
	return cp.NewBBForExtents(center, half.X, half.Y), center
}

func bbSize(bb cp.BB) cp.Vector {
	return cp.Vector{X: bb.R - bb.L, Y: bb.T - bb.B}
}
