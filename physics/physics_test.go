package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/config"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func approxVec(a, b cp.Vector) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

type box struct {
	pos   cp.Vector
	size  cp.Vector
	kind  component.BodyType
	vel   cp.Vector
	mask  uint8
	layer uint8
}

func addBox(t *testing.T, store *ecs.World, w *World, b box) ecs.Entity {
	t.Helper()
	e := store.CreateEntity()
	shape := component.Rectangle(b.size.X/2, b.size.Y/2)
	if err := ecs.Add(store, e, component.TransformComponent.Kind(), &component.Transform{
		Position: b.pos,
		Scale:    cp.Vector{X: 1, Y: 1},
		Shape:    shape,
	}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := w.AddBody(e, component.PhysicsBody{Type: b.kind, Velocity: b.vel, Mass: 1}); err != nil {
		t.Fatalf("add body: %v", err)
	}
	if _, err := w.AddArea(e, component.Area{
		Role:   component.RolePhysics,
		Shape:  shape,
		Size:   b.size,
		Mask:   b.mask,
		Layer:  b.layer,
		Active: true,
	}); err != nil {
		t.Fatalf("add area: %v", err)
	}
	return e
}

func TestIntegrate(t *testing.T) {
	dt := 1.0 / 60.0
	cases := []struct {
		name    string
		body    component.PhysicsBody
		wantVel cp.Vector
		wantPos cp.Vector
	}{
		{
			name:    "rigid_at_rest_stays",
			body:    component.PhysicsBody{Type: component.BodyRigid, Mass: 1},
			wantVel: cp.Vector{},
			wantPos: cp.Vector{},
		},
		{
			name:    "rigid_constant_velocity",
			body:    component.PhysicsBody{Type: component.BodyRigid, Mass: 1, Velocity: cp.Vector{X: 6, Y: -3}},
			wantVel: cp.Vector{X: 6, Y: -3},
			wantPos: cp.Vector{X: 6 * dt, Y: -3 * dt},
		},
		{
			name:    "force_scaled_by_mass_and_dt",
			body:    component.PhysicsBody{Type: component.BodyRigid, Mass: 2, Force: cp.Vector{X: 120}},
			wantVel: cp.Vector{X: 1},
			wantPos: cp.Vector{X: dt},
		},
		{
			name:    "impulse_is_instant",
			body:    component.PhysicsBody{Type: component.BodyRigid, Mass: 1, Impulse: cp.Vector{Y: 3}},
			wantVel: cp.Vector{Y: 3},
			wantPos: cp.Vector{Y: 3 * dt},
		},
		{
			name:    "static_ignores_everything",
			body:    component.PhysicsBody{Type: component.BodyStatic, Velocity: cp.Vector{X: 4}, Force: cp.Vector{X: 10}, Impulse: cp.Vector{X: 1}},
			wantVel: cp.Vector{X: 4},
			wantPos: cp.Vector{},
		},
		{
			name:    "kinematic_ignores_forces",
			body:    component.PhysicsBody{Type: component.BodyKinematic, Velocity: cp.Vector{X: 2}, Force: cp.Vector{X: 100}, Impulse: cp.Vector{X: 5}},
			wantVel: cp.Vector{X: 2},
			wantPos: cp.Vector{X: 2 * dt},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := tc.body
			tr := component.Transform{Scale: cp.Vector{X: 1, Y: 1}, Shape: component.Rectangle(0.5, 0.5)}
			Integrate(&body, &tr, dt, cp.Vector{})
			if !approxVec(body.Velocity, tc.wantVel) {
				t.Fatalf("velocity = %v, want %v", body.Velocity, tc.wantVel)
			}
			if !approxVec(tr.Position, tc.wantPos) {
				t.Fatalf("position = %v, want %v", tr.Position, tc.wantPos)
			}
			if body.Force != (cp.Vector{}) || body.Impulse != (cp.Vector{}) {
				t.Fatalf("accumulators not cleared: %+v", body)
			}
		})
	}
}

func TestIntegrateRepeatedZeroForce(t *testing.T) {
	dt := 0.01
	body := component.PhysicsBody{Type: component.BodyRigid, Mass: 1, Velocity: cp.Vector{X: 2}}
	tr := component.Transform{Scale: cp.Vector{X: 1, Y: 1}}
	for i := 1; i <= 10; i++ {
		Integrate(&body, &tr, dt, cp.Vector{})
		if !approx(tr.Position.X, float64(i)*2*dt) {
			t.Fatalf("step %d: x = %v", i, tr.Position.X)
		}
		if body.Velocity.X != 2 {
			t.Fatalf("step %d: velocity drifted to %v", i, body.Velocity)
		}
	}
}

func TestPredictDoesNotMutate(t *testing.T) {
	body := component.PhysicsBody{Type: component.BodyRigid, Mass: 1, Velocity: cp.Vector{X: 1}, Force: cp.Vector{X: 5}}
	tr := component.Transform{Position: cp.Vector{X: 3}, Scale: cp.Vector{X: 1, Y: 1}}

	nb, nt := Predict(body, tr, 0.5, cp.Vector{})
	if body.Force.X != 5 || tr.Position.X != 3 || body.Velocity.X != 1 {
		t.Fatalf("inputs mutated: body=%+v transform=%+v", body, tr)
	}
	if nt.Position.X == tr.Position.X || nb.Velocity.X == body.Velocity.X {
		t.Fatalf("prediction did not advance: body=%+v transform=%+v", nb, nt)
	}
}

func detectBoxes(t *testing.T, boxes ...box) ([]ecs.Entity, []Contact) {
	t.Helper()
	store := ecs.NewWorld()
	w := NewWorld(config.DefaultPhysics())
	ents := make([]ecs.Entity, 0, len(boxes))
	for _, b := range boxes {
		ents = append(ents, addBox(t, store, w, b))
	}
	return ents, Detect(w.groups(), w.states(store))
}

func TestDetect(t *testing.T) {
	square := cp.Vector{X: 2, Y: 2}

	t.Run("overlap_along_x", func(t *testing.T) {
		ents, contacts := detectBoxes(t,
			box{pos: cp.Vector{}, size: square, kind: component.BodyRigid, mask: 1, layer: 1},
			box{pos: cp.Vector{X: 1.5}, size: square, kind: component.BodyRigid, mask: 1, layer: 1},
		)
		if len(contacts) != 2 {
			t.Fatalf("expected one contact per side, got %d", len(contacts))
		}
		c := contacts[0]
		if c.EntityA != ents[0] || c.EntityB != ents[1] {
			t.Fatalf("unexpected order: %+v", c)
		}
		if !approx(c.Penetration, 0.5) {
			t.Fatalf("penetration = %v, want 0.5", c.Penetration)
		}
		if c.Normal != (cp.Vector{X: -1}) {
			t.Fatalf("normal = %v, want (-1,0) for A left of B", c.Normal)
		}
		if contacts[1].Normal != (cp.Vector{X: 1}) {
			t.Fatalf("reverse normal = %v, want (1,0)", contacts[1].Normal)
		}
		if !approxVec(c.SizeA, square) || !approxVec(c.PositionB, cp.Vector{X: 1.5}) {
			t.Fatalf("geometry not reported: %+v", c)
		}
	})

	t.Run("separated", func(t *testing.T) {
		_, contacts := detectBoxes(t,
			box{pos: cp.Vector{}, size: square, kind: component.BodyRigid, mask: 1, layer: 1},
			box{pos: cp.Vector{X: 3}, size: square, kind: component.BodyRigid, mask: 1, layer: 1},
		)
		if len(contacts) != 0 {
			t.Fatalf("expected no contacts, got %+v", contacts)
		}
	})

	t.Run("equal_overlap_resolves_along_y", func(t *testing.T) {
		_, contacts := detectBoxes(t,
			box{pos: cp.Vector{}, size: square, kind: component.BodyRigid, mask: 1, layer: 1},
			box{pos: cp.Vector{X: 1, Y: 1}, size: square, kind: component.BodyRigid, mask: 1, layer: 1},
		)
		if len(contacts) != 2 {
			t.Fatalf("expected 2 contacts, got %d", len(contacts))
		}
		if contacts[0].Normal != (cp.Vector{Y: -1}) || !approx(contacts[0].Penetration, 1) {
			t.Fatalf("tie should resolve along y: %+v", contacts[0])
		}
	})

	t.Run("mask_is_directional", func(t *testing.T) {
		ents, contacts := detectBoxes(t,
			box{pos: cp.Vector{}, size: square, kind: component.BodyRigid, mask: 0b001, layer: 0b010},
			box{pos: cp.Vector{X: 1.5}, size: square, kind: component.BodyRigid, mask: 0b010, layer: 0b100},
		)
		if len(contacts) != 1 {
			t.Fatalf("expected only the B side to sense A, got %d", len(contacts))
		}
		if contacts[0].EntityA != ents[1] || contacts[0].EntityB != ents[0] {
			t.Fatalf("mask check used the wrong side: %+v", contacts[0])
		}
	})

	t.Run("no_mask_overlap", func(t *testing.T) {
		_, contacts := detectBoxes(t,
			box{pos: cp.Vector{}, size: square, kind: component.BodyRigid, mask: 0b001, layer: 0b001},
			box{pos: cp.Vector{X: 1.5}, size: square, kind: component.BodyRigid, mask: 0b010, layer: 0b010},
		)
		if len(contacts) != 0 {
			t.Fatalf("expected empty contact set, got %+v", contacts)
		}
	})
}

func TestDetectSkips(t *testing.T) {
	square := cp.Vector{X: 2, Y: 2}

	t.Run("inactive_area", func(t *testing.T) {
		store := ecs.NewWorld()
		w := NewWorld(config.DefaultPhysics())
		a := addBox(t, store, w, box{size: square, kind: component.BodyRigid, mask: 1, layer: 1})
		addBox(t, store, w, box{pos: cp.Vector{X: 1}, size: square, kind: component.BodyRigid, mask: 1, layer: 1})
		if err := w.SetAreaActive(a, false); err != nil {
			t.Fatal(err)
		}
		if got := Detect(w.groups(), w.states(store)); len(got) != 0 {
			t.Fatalf("inactive collider produced contacts: %+v", got)
		}
	})

	t.Run("owner_without_state", func(t *testing.T) {
		store := ecs.NewWorld()
		w := NewWorld(config.DefaultPhysics())
		a := addBox(t, store, w, box{size: square, kind: component.BodyRigid, mask: 1, layer: 1})
		addBox(t, store, w, box{pos: cp.Vector{X: 1}, size: square, kind: component.BodyRigid, mask: 1, layer: 1})
		if err := w.RemoveBody(a); err != nil {
			t.Fatal(err)
		}
		if got := Detect(w.groups(), w.states(store)); len(got) != 0 {
			t.Fatalf("bodiless owner produced contacts: %+v", got)
		}
	})

	t.Run("scale_sign_does_not_change_size", func(t *testing.T) {
		store := ecs.NewWorld()
		w := NewWorld(config.DefaultPhysics())
		a := addBox(t, store, w, box{size: square, kind: component.BodyRigid, mask: 1, layer: 1})
		addBox(t, store, w, box{pos: cp.Vector{X: 1.5}, size: square, kind: component.BodyRigid, mask: 1, layer: 1})
		tr, _ := ecs.Get(store, a, component.TransformComponent.Kind())
		tr.Scale = cp.Vector{X: -1, Y: 1}
		got := Detect(w.groups(), w.states(store))
		if len(got) != 2 || !approx(got[0].Penetration, 0.5) {
			t.Fatalf("flipped body changed overlap: %+v", got)
		}
		if tr.Size() != square {
			t.Fatalf("size = %v", tr.Size())
		}
	})
}

type areaMap map[component.AreaID]component.Area

func (m areaMap) Area(_ ecs.Entity, id component.AreaID) (component.Area, error) {
	a, ok := m[id]
	if !ok {
		return component.Area{}, ErrAreaNotFound
	}
	return a, nil
}

func TestResolve(t *testing.T) {
	areas := areaMap{
		1: {ID: 1, Mask: 1, Layer: 1, Active: true},
		2: {ID: 2, Mask: 1, Layer: 1, Active: true},
		3: {ID: 3, Mask: 0, Layer: 1, Active: true},
	}

	cases := []struct {
		name     string
		typeA    component.BodyType
		typeB    component.BodyType
		areaA    component.AreaID
		pen      float64
		sensor   bool
		wantPosA cp.Vector
		wantVelA cp.Vector
	}{
		{"rigid_rigid_half_mtv", component.BodyRigid, component.BodyRigid, 1, 0.5, false, cp.Vector{X: -0.25}, cp.Vector{Y: 2}},
		{"rigid_static_full_mtv", component.BodyRigid, component.BodyStatic, 1, 0.5, false, cp.Vector{X: -0.5}, cp.Vector{Y: 2}},
		{"rigid_rigid_below_slop", component.BodyRigid, component.BodyRigid, 1, 0.15, false, cp.Vector{}, cp.Vector{Y: 2}},
		{"rigid_static_above_slop", component.BodyRigid, component.BodyStatic, 1, 0.15, false, cp.Vector{X: -0.15}, cp.Vector{Y: 2}},
		{"rigid_static_below_slop", component.BodyRigid, component.BodyStatic, 1, 0.05, false, cp.Vector{}, cp.Vector{Y: 2}},
		{"static_a_untouched", component.BodyStatic, component.BodyRigid, 1, 0.5, false, cp.Vector{}, cp.Vector{X: 3, Y: 2}},
		{"kinematic_a_untouched", component.BodyKinematic, component.BodyStatic, 1, 0.5, false, cp.Vector{}, cp.Vector{X: 3, Y: 2}},
		{"rigid_kinematic_untouched", component.BodyRigid, component.BodyKinematic, 1, 0.5, false, cp.Vector{}, cp.Vector{X: 3, Y: 2}},
		{"mask_recheck_fails", component.BodyRigid, component.BodyStatic, 3, 0.5, false, cp.Vector{}, cp.Vector{X: 3, Y: 2}},
		{"sensor_never_resolved", component.BodyRigid, component.BodyStatic, 1, 0.5, true, cp.Vector{}, cp.Vector{X: 3, Y: 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := ecs.Entity(1), ecs.Entity(2)
			state := map[ecs.Entity]*State{
				a: {Body: component.PhysicsBody{Type: tc.typeA, Velocity: cp.Vector{X: 3, Y: 2}}},
				b: {Body: component.PhysicsBody{Type: tc.typeB, Velocity: cp.Vector{X: -1}}, Transform: component.Transform{Position: cp.Vector{X: 1}}},
			}
			contacts := []Contact{{
				EntityA:     a,
				EntityB:     b,
				AreaA:       tc.areaA,
				AreaB:       2,
				Normal:      cp.Vector{X: -1},
				Penetration: tc.pen,
				Sensor:      tc.sensor,
			}}

			Resolve(contacts, areas, state, config.DefaultSlop)

			if !approxVec(state[a].Transform.Position, tc.wantPosA) {
				t.Fatalf("A position = %v, want %v", state[a].Transform.Position, tc.wantPosA)
			}
			if !approxVec(state[a].Body.Velocity, tc.wantVelA) {
				t.Fatalf("A velocity = %v, want %v", state[a].Body.Velocity, tc.wantVelA)
			}
			if state[b].Transform.Position != (cp.Vector{X: 1}) || state[b].Body.Velocity != (cp.Vector{X: -1}) {
				t.Fatalf("B was modified: %+v", state[b])
			}
		})
	}
}

func TestAdvanceAccumulator(t *testing.T) {
	store := ecs.NewWorld()
	w := NewWorld(config.DefaultPhysics())
	addBox(t, store, w, box{size: cp.Vector{X: 1, Y: 1}, kind: component.BodyRigid, vel: cp.Vector{X: 1}, mask: 1, layer: 1})

	want := []int{0, 1, 0}
	for i, elapsed := range []float64{0.01, 0.01, 0.01} {
		if got := w.Advance(store, elapsed); got != want[i] {
			t.Fatalf("frame %d: ran %d sub-steps, want %d", i, got, want[i])
		}
	}
	if w.Steps() != 1 {
		t.Fatalf("steps = %d, want 1", w.Steps())
	}
	if left := 0.03 - config.DefaultFixedStep; math.Abs(w.Accumulator()-left) > 1e-12 {
		t.Fatalf("accumulator = %v, want %v", w.Accumulator(), left)
	}

	if got := w.Advance(store, -1); got != 0 {
		t.Fatalf("negative elapsed ran %d sub-steps", got)
	}
	if got := w.Advance(store, 0.01); got != 1 {
		t.Fatalf("carried time lost: ran %d sub-steps", got)
	}
}

func TestAdvanceMaxSubsteps(t *testing.T) {
	cfg := config.DefaultPhysics()
	cfg.MaxSubsteps = 2
	store := ecs.NewWorld()
	w := NewWorld(cfg)

	if got := w.Advance(store, 10*cfg.FixedStep+0.001); got != 2 {
		t.Fatalf("ran %d sub-steps, want 2", got)
	}
	if w.Accumulator() >= cfg.FixedStep {
		t.Fatalf("excess steps not dropped: accumulator %v", w.Accumulator())
	}
}

func TestRestAgainstWall(t *testing.T) {
	cases := []struct {
		name  string
		mode  config.Mode
		speed float64
	}{
		{"predict_slow", config.ModePredict, 5},
		{"predict_fast", config.ModePredict, 30},
		{"lockstep_slow", config.ModeLockstep, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultPhysics()
			cfg.Mode = tc.mode
			store := ecs.NewWorld()
			w := NewWorld(cfg)
			unit := cp.Vector{X: 1, Y: 1}
			mover := addBox(t, store, w, box{size: unit, kind: component.BodyRigid, vel: cp.Vector{X: tc.speed}, mask: 1, layer: 1})
			wall := addBox(t, store, w, box{pos: cp.Vector{X: 1}, size: unit, kind: component.BodyStatic, mask: 1, layer: 1})

			for i := 0; i < 120; i++ {
				w.Step(store)
			}

			v, err := w.Velocity(mover)
			if err != nil {
				t.Fatal(err)
			}
			if v.X != 0 {
				t.Fatalf("residual x velocity %v", v.X)
			}
			tm, _ := ecs.Get(store, mover, component.TransformComponent.Kind())
			tw, _ := ecs.Get(store, wall, component.TransformComponent.Kind())
			gap := (tw.Position.X - 0.5) - (tm.Position.X + 0.5)
			if math.Abs(gap) > cfg.Slop {
				t.Fatalf("right edge %v not touching wall %v", tm.Position.X+0.5, tw.Position.X-0.5)
			}
			if tw.Position != (cp.Vector{X: 1}) {
				t.Fatalf("static wall moved to %v", tw.Position)
			}
		})
	}
}

func TestContactStatePublished(t *testing.T) {
	store := ecs.NewWorld()
	w := NewWorld(config.DefaultPhysics())
	unit := cp.Vector{X: 1, Y: 1}
	faller := addBox(t, store, w, box{size: unit, kind: component.BodyRigid, vel: cp.Vector{Y: 30}, mask: 1, layer: 1})
	addBox(t, store, w, box{pos: cp.Vector{Y: 1}, size: unit, kind: component.BodyStatic, mask: 1, layer: 1})
	if err := ecs.Add(store, faller, component.ContactStateComponent.Kind(), &component.ContactState{}); err != nil {
		t.Fatal(err)
	}

	var seen []uint64
	w.OnStep(func(step uint64, contacts []Contact) {
		seen = append(seen, step)
	})
	w.Step(store)

	cs, _ := ecs.Get(store, faller, component.ContactStateComponent.Kind())
	if !cs.Grounded || cs.Touching != 1 {
		t.Fatalf("contact state = %+v", cs)
	}
	if len(seen) != 1 || seen[0] != 1 {
		t.Fatalf("handler calls = %v", seen)
	}
	if len(w.LastContacts()) != 2 {
		t.Fatalf("last contacts = %+v", w.LastContacts())
	}
}

func TestLookupErrors(t *testing.T) {
	w := NewWorld(config.DefaultPhysics())
	missing := ecs.Entity(42)

	_, err := w.Body(missing)
	if !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("Body: expected ErrEntityNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Entity != missing {
		t.Fatalf("Body: expected *NotFoundError for %v, got %v", missing, err)
	}
	if err := w.ApplyForce(missing, cp.Vector{X: 1}); !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("ApplyForce: %v", err)
	}
	if err := w.SetAreaActive(missing, false); !errors.Is(err, ErrAreaNotFound) {
		t.Fatalf("SetAreaActive: %v", err)
	}
	if _, err := w.AddArea(0, component.Area{}); !errors.Is(err, ErrInvalidEntity) {
		t.Fatalf("AddArea on zero entity: %v", err)
	}
}
