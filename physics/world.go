package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/config"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
)

// StepHandler is called after every committed sub-step with the contacts
// that sub-step produced. The slice must not be retained.
type StepHandler func(step uint64, contacts []Contact)

// World owns every body and collider of the simulation. It is the only
// writer of velocities and positions during a sub-step; the entity store
// sees the result through publish.
type World struct {
	cfg config.Physics

	bodies ecs.SparseSet // *component.PhysicsBody
	areas  ecs.SparseSet // *areaList

	nextArea    component.AreaID
	accumulator float64
	steps       uint64
	last        []Contact
	handlers    []StepHandler
	debug       bool
}

type areaList struct {
	areas []component.Area
}

func NewWorld(cfg config.Physics) *World {
	return &World{cfg: cfg.Normalize()}
}

// Config returns the normalized physics settings.
func (w *World) Config() config.Physics {
	if w == nil {
		return config.Physics{}
	}
	return w.cfg
}

// SetDebug turns per-contact logging on or off.
func (w *World) SetDebug(on bool) {
	if w == nil {
		return
	}
	w.debug = on
}

// OnStep registers a handler run after each sub-step, in registration order.
func (w *World) OnStep(h StepHandler) {
	if w == nil || h == nil {
		return
	}
	w.handlers = append(w.handlers, h)
}

// AddBody inserts or replaces the body of e.
func (w *World) AddBody(e ecs.Entity, body component.PhysicsBody) error {
	if w == nil {
		return ErrInvalidEntity
	}
	if !e.Valid() {
		return ErrInvalidEntity
	}
	b := body
	w.bodies.Set(e, &b)
	return nil
}

func (w *World) RemoveBody(e ecs.Entity) error {
	if w == nil || !w.bodies.Remove(e) {
		return bodyNotFound(e)
	}
	return nil
}

// Body returns a copy of the body of e.
func (w *World) Body(e ecs.Entity) (component.PhysicsBody, error) {
	b, err := w.body(e)
	if err != nil {
		return component.PhysicsBody{}, err
	}
	return *b, nil
}

func (w *World) HasBody(e ecs.Entity) bool {
	_, err := w.body(e)
	return err == nil
}

func (w *World) body(e ecs.Entity) (*component.PhysicsBody, error) {
	if w == nil {
		return nil, bodyNotFound(e)
	}
	b, ok := w.bodies.Get(e).(*component.PhysicsBody)
	if !ok || b == nil {
		return nil, bodyNotFound(e)
	}
	return b, nil
}

// Bodies returns the entities owning a body in storage order.
func (w *World) Bodies() []ecs.Entity {
	if w == nil {
		return nil
	}
	out := make([]ecs.Entity, 0, w.bodies.Len())
	return append(out, w.bodies.Entities()...)
}

// AddArea attaches a collider to owner and returns its id. A zero area.ID
// gets a fresh id; a nonzero one must come from ReserveAreaID. Owners do not
// need a body, but a collider whose owner has no body and transform never
// produces contacts.
func (w *World) AddArea(owner ecs.Entity, area component.Area) (component.AreaID, error) {
	if w == nil || !owner.Valid() {
		return 0, ErrInvalidEntity
	}
	if area.ID == 0 {
		area.ID = w.ReserveAreaID()
	} else if area.ID > w.nextArea {
		w.nextArea = area.ID
	}
	list, ok := w.areas.Get(owner).(*areaList)
	if !ok || list == nil {
		list = &areaList{}
		w.areas.Set(owner, list)
	}
	list.areas = append(list.areas, area)
	return area.ID, nil
}

// ReserveAreaID hands out a collider id ahead of AddArea, so scripts can
// learn it before the queued creation is applied.
func (w *World) ReserveAreaID() component.AreaID {
	if w == nil {
		return 0
	}
	w.nextArea++
	return w.nextArea
}

func (w *World) RemoveArea(owner ecs.Entity, id component.AreaID) error {
	list, err := w.areaList(owner)
	if err != nil {
		return err
	}
	for i := range list.areas {
		if list.areas[i].ID == id {
			list.areas = append(list.areas[:i], list.areas[i+1:]...)
			if len(list.areas) == 0 {
				w.areas.Remove(owner)
			}
			return nil
		}
	}
	return areaNotFound(owner)
}

// Area returns a copy of one collider of owner.
func (w *World) Area(owner ecs.Entity, id component.AreaID) (component.Area, error) {
	list, err := w.areaList(owner)
	if err != nil {
		return component.Area{}, err
	}
	for _, a := range list.areas {
		if a.ID == id {
			return a, nil
		}
	}
	return component.Area{}, areaNotFound(owner)
}

// Areas returns a copy of every collider of owner in insertion order.
func (w *World) Areas(owner ecs.Entity) []component.Area {
	list, err := w.areaList(owner)
	if err != nil {
		return nil
	}
	out := make([]component.Area, len(list.areas))
	copy(out, list.areas)
	return out
}

func (w *World) areaList(owner ecs.Entity) (*areaList, error) {
	if w == nil {
		return nil, areaNotFound(owner)
	}
	list, ok := w.areas.Get(owner).(*areaList)
	if !ok || list == nil || len(list.areas) == 0 {
		return nil, areaNotFound(owner)
	}
	return list, nil
}

// SetMasksAndLayers overwrites mask and layer on every collider of owner.
func (w *World) SetMasksAndLayers(owner ecs.Entity, mask, layer uint8) error {
	list, err := w.areaList(owner)
	if err != nil {
		return err
	}
	for i := range list.areas {
		list.areas[i].Mask = mask
		list.areas[i].Layer = layer
	}
	return nil
}

// SetAreaActive toggles every collider of owner without removing it.
func (w *World) SetAreaActive(owner ecs.Entity, active bool) error {
	list, err := w.areaList(owner)
	if err != nil {
		return err
	}
	for i := range list.areas {
		list.areas[i].Active = active
	}
	return nil
}

// LayerGroup returns the world-level layer group of owner.
func (w *World) LayerGroup(owner ecs.Entity) component.CollisionLayer {
	list, err := w.areaList(owner)
	if err != nil {
		return component.CollisionLayer{}
	}
	return AreaGroup{Owner: owner, Areas: list.areas}.Layers()
}

// Remove drops the body and every collider of e. It reports whether
// anything was removed.
func (w *World) Remove(e ecs.Entity) bool {
	if w == nil {
		return false
	}
	hadBody := w.bodies.Remove(e)
	hadAreas := w.areas.Remove(e)
	return hadBody || hadAreas
}

func (w *World) ApplyForce(e ecs.Entity, f cp.Vector) error {
	b, err := w.body(e)
	if err != nil {
		return err
	}
	b.ApplyForce(f)
	return nil
}

func (w *World) ApplyImpulse(e ecs.Entity, j cp.Vector) error {
	b, err := w.body(e)
	if err != nil {
		return err
	}
	b.ApplyImpulse(j)
	return nil
}

// SetVelocity overwrites the velocity of e. Static bodies keep a zero
// velocity.
func (w *World) SetVelocity(e ecs.Entity, v cp.Vector) error {
	b, err := w.body(e)
	if err != nil {
		return err
	}
	if b.Type == component.BodyStatic {
		return nil
	}
	b.Velocity = v
	return nil
}

func (w *World) Velocity(e ecs.Entity) (cp.Vector, error) {
	b, err := w.body(e)
	if err != nil {
		return cp.Vector{}, err
	}
	return b.Velocity, nil
}

// Accumulator returns the simulated time not yet consumed by a sub-step.
func (w *World) Accumulator() float64 {
	if w == nil {
		return 0
	}
	return w.accumulator
}

// Steps returns the number of sub-steps run since creation or Reset.
func (w *World) Steps() uint64 {
	if w == nil {
		return 0
	}
	return w.steps
}

// LastContacts returns the contacts of the most recent sub-step.
func (w *World) LastContacts() []Contact {
	if w == nil {
		return nil
	}
	out := make([]Contact, len(w.last))
	copy(out, w.last)
	return out
}

// Reset zeroes the accumulator and step counter. Bodies and colliders stay.
func (w *World) Reset() {
	if w == nil {
		return
	}
	w.accumulator = 0
	w.steps = 0
	w.last = nil
}

// groups returns the collider groups in storage order.
func (w *World) groups() []AreaGroup {
	owners := w.areas.Entities()
	values := w.areas.Values()
	out := make([]AreaGroup, 0, len(owners))
	for i, owner := range owners {
		list, ok := values[i].(*areaList)
		if !ok || list == nil || len(list.areas) == 0 {
			continue
		}
		out = append(out, AreaGroup{Owner: owner, Areas: list.areas})
	}
	return out
}
