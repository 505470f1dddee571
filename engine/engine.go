package engine

import (
	"fmt"
	"log"

	"github.com/milk9111/physics2d/config"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
	"github.com/milk9111/physics2d/physics"
	"github.com/milk9111/physics2d/prefabs"
	"github.com/milk9111/physics2d/script"
)

// Event types pushed onto the store's event queue. They live for one frame.
const (
	EventDamaged   = "damaged"
	EventDied      = "died"
	EventDestroyed = "destroyed"
)

// Engine owns the entity store, the physics world and the optional script,
// and is the only place script commands are applied. Nothing here is
// global; hosts create one and pass it around.
type Engine struct {
	cfg       config.Config
	store     *ecs.World
	physics   *physics.World
	runtime   *script.Runtime
	scheduler *ecs.Scheduler
	player    ecs.Entity
	frames    uint64
}

// New creates an engine. systems run once per frame after physics.
func New(cfg config.Config, systems ...ecs.System) *Engine {
	e := &Engine{}
	e.init(cfg, systems)
	return e
}

func (e *Engine) init(cfg config.Config, systems []ecs.System) {
	*e = Engine{
		cfg:       cfg,
		store:     ecs.NewWorld(),
		physics:   physics.NewWorld(cfg.Physics),
		scheduler: ecs.NewScheduler(systems...),
	}
	e.physics.SetDebug(cfg.Log.Debug)
	e.physics.OnStep(e.afterStep)
}

func (e *Engine) Store() *ecs.World {
	if e == nil {
		return nil
	}
	return e.store
}

func (e *Engine) Physics() *physics.World {
	if e == nil {
		return nil
	}
	return e.physics
}

func (e *Engine) Scheduler() *ecs.Scheduler {
	if e == nil {
		return nil
	}
	return e.scheduler
}

// Player returns the entity created with is_pc, if any.
func (e *Engine) Player() (ecs.Entity, bool) {
	if e == nil || !e.store.IsAlive(e.player) {
		return 0, false
	}
	return e.player, true
}

func (e *Engine) Frames() uint64 {
	if e == nil {
		return 0
	}
	return e.frames
}

// LoadScript compiles src, runs its init hook and applies what it queued.
// A previously loaded script is replaced.
func (e *Engine) LoadScript(name string, src []byte) error {
	if e == nil {
		return fmt.Errorf("engine: nil engine")
	}
	rt, err := script.NewRuntime(name, src)
	if err != nil {
		return err
	}
	e.runtime = rt
	return e.dispatch(script.Init{})
}

// LoadScene spawns every body of scene and returns the created entities in
// scene order.
func (e *Engine) LoadScene(scene prefabs.Scene) ([]ecs.Entity, error) {
	if e == nil {
		return nil, fmt.Errorf("engine: nil engine")
	}
	out := make([]ecs.Entity, 0, len(scene.Bodies))
	for i, spec := range scene.Bodies {
		body, notes := script.NormalizeBody(spec)
		for _, n := range notes {
			log.Printf("engine: scene %s body %d: %s", scene.Name, i, n)
		}
		ent, _, err := e.Spawn(body)
		if err != nil {
			return out, fmt.Errorf("engine: scene %s body %d: %w", scene.Name, i, err)
		}
		out = append(out, ent)
	}
	return out, nil
}

// Spawn creates a body immediately. Scripts use the queued CreateBody path
// instead.
func (e *Engine) Spawn(body script.Body) (ecs.Entity, component.AreaID, error) {
	ent := e.Reserve()
	var area component.AreaID
	if body.Box {
		area = e.ReserveArea()
	}
	if err := e.Apply(script.CreateBody{Entity: ent, Area: area, Body: body}); err != nil {
		return 0, 0, err
	}
	return ent, area, nil
}

// Reset drops every entity and the script and restarts the tick driver.
func (e *Engine) Reset() {
	if e == nil {
		return
	}
	e.init(e.cfg, e.scheduler.Systems())
}

// Update advances one rendered frame: the script's update hook, then as
// many physics sub-steps as the elapsed time allows, then the frame
// systems. It returns the number of sub-steps run.
func (e *Engine) Update(dt float64) int {
	if e == nil {
		return 0
	}
	if err := e.dispatch(script.Update{DT: dt}); err != nil {
		log.Printf("engine: %v", err)
	}
	n := e.physics.Advance(e.store, dt)
	e.scheduler.Update(e.store)
	e.frames++
	return n
}

// Snapshot returns a read-only copy of every simulated body.
func (e *Engine) Snapshot() []physics.BodySnapshot {
	if e == nil {
		return nil
	}
	return e.physics.Snapshot(e.store)
}

func (e *Engine) afterStep(step uint64, contacts []physics.Contact) {
	if err := e.dispatch(script.Collisions{Step: step, Contacts: contacts}); err != nil {
		log.Printf("engine: %v", err)
	}
	if err := e.dispatch(script.AfterPhysics{Step: step, DT: e.physics.Config().FixedStep}); err != nil {
		log.Printf("engine: %v", err)
	}
}

// dispatch runs one hook and applies its commands in issue order. Commands
// queued before a script error are still applied.
func (e *Engine) dispatch(ev script.Event) error {
	if e.runtime == nil {
		return nil
	}
	cmds, err := e.runtime.Dispatch(e, ev)
	e.ApplyAll(cmds)
	return err
}
