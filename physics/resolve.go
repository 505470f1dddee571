package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
)

// AreaLookup resolves a collider by owner and id.
type AreaLookup interface {
	Area(owner ecs.Entity, id component.AreaID) (component.Area, error)
}

// Resolve corrects the rigid side of each contact in emission order and
// returns how many contacts moved a position.
//
// Rigid vs rigid moves A by half the MTV; B is left for its own contact.
// Rigid vs static moves A by the full MTV. In both cases the correction is
// skipped when neither axis exceeds slop, and the velocity component of A
// along the normal is removed. Every other body type pairing is ignored.
// There is no restitution, friction or mass weighting.
func Resolve(contacts []Contact, areas AreaLookup, state map[ecs.Entity]*State, slop float64) int {
	moved := 0
	for i := range contacts {
		c := &contacts[i]
		if c.Sensor {
			continue
		}
		stA, okA := state[c.EntityA]
		stB, okB := state[c.EntityB]
		if !okA || !okB || stA == nil || stB == nil {
			continue
		}
		if areas != nil {
			areaA, errA := areas.Area(c.EntityA, c.AreaA)
			areaB, errB := areas.Area(c.EntityB, c.AreaB)
			if errA != nil || errB != nil || !areaA.Senses(areaB) {
				continue
			}
		}

		if stA.Body.Type != component.BodyRigid {
			continue
		}
		var mtv cp.Vector
		switch stB.Body.Type {
		case component.BodyRigid:
			mtv = c.MTV().Mult(0.5)
		case component.BodyStatic:
			mtv = c.MTV()
		default:
			continue
		}

		if math.Abs(mtv.X) > slop || math.Abs(mtv.Y) > slop {
			stA.Transform.Position = stA.Transform.Position.Add(mtv)
			moved++
		}
		stA.Body.Velocity = slide(stA.Body.Velocity, c.Normal)
	}
	return moved
}

// slide removes the component of v along the unit normal n.
func slide(v, n cp.Vector) cp.Vector {
	dot := v.Dot(n)
	if dot == 0 {
		return v
	}
	return v.Sub(n.Mult(dot))
}
