package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs/component"
)

// State is one entity's (body, transform) pair as seen by a sub-step.
type State struct {
	Body      component.PhysicsBody
	Transform component.Transform
}

// Integrate advances body and transform in place by dt with semi-implicit
// Euler. Impulses are an instantaneous velocity change, forces change
// velocity by F/m·dt. Accumulators are always cleared.
func Integrate(body *component.PhysicsBody, t *component.Transform, dt float64, gravity cp.Vector) {
	if body == nil || t == nil {
		return
	}
	switch body.Type {
	case component.BodyRigid:
		mass := body.Mass
		if mass <= 0 {
			mass = 1
		}
		inv := 1 / mass
		body.Velocity = body.Velocity.Add(body.Impulse.Mult(inv))
		accel := body.Force.Mult(inv).Add(gravity)
		body.Velocity = body.Velocity.Add(accel.Mult(dt))
		t.Position = t.Position.Add(body.Velocity.Mult(dt))
	case component.BodyKinematic:
		t.Position = t.Position.Add(body.Velocity.Mult(dt))
	}
	body.ClearAccumulators()
}

// Predict returns where body and t would be after dt without touching the
// caller's values.
func Predict(body component.PhysicsBody, t component.Transform, dt float64, gravity cp.Vector) (component.PhysicsBody, component.Transform) {
	Integrate(&body, &t, dt, gravity)
	return body, t
}
