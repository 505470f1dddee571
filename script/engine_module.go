package script

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
)

// queue collects the commands issued during one hook.
type queue struct {
	commands []Command
}

func (q *queue) push(c Command) {
	q.commands = append(q.commands, c)
}

func (q *queue) drain() []Command {
	out := q.commands
	q.commands = nil
	return out
}

// buildEngine returns the `engine` object handed to every hook. Mutations
// are validated here and queued; queries read the committed state through
// host.
func buildEngine(scriptName string, host Host, q *queue) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	fn := func(name string, f tengo.CallableFunc) {
		values[name] = &tengo.UserFunction{Name: name, Value: f}
	}

	fn("create_body", func(args ...tengo.Object) (tengo.Object, error) {
		var m map[string]any
		if len(args) > 0 {
			m, _ = objectToAny(args[0]).(map[string]any)
		}
		body, notes := NormalizeBody(specFromMap(m))
		for _, n := range notes {
			log.Printf("script: %s: create_body: %s", scriptName, n)
		}
		e := host.Reserve()
		var area component.AreaID
		if body.Box {
			area = host.ReserveArea()
		}
		q.push(CreateBody{Entity: e, Area: area, Body: body})
		return &tengo.Array{Value: []tengo.Object{entityObject(e), &tengo.Int{Value: int64(area)}}}, nil
	})

	vectorCommand := func(name string, build func(ecs.Entity, cp.Vector) Command) {
		fn(name, func(args ...tengo.Object) (tengo.Object, error) {
			e, v, err := entityVectorArgs(args)
			if err != nil {
				return errorObject(fmt.Errorf("%s: %w", name, err)), nil
			}
			q.push(build(e, v))
			return tengo.TrueValue, nil
		})
	}
	vectorCommand("apply_force", func(e ecs.Entity, v cp.Vector) Command { return ApplyForce{Entity: e, Force: v} })
	vectorCommand("apply_impulse", func(e ecs.Entity, v cp.Vector) Command { return ApplyImpulse{Entity: e, Impulse: v} })
	vectorCommand("apply_move", func(e ecs.Entity, v cp.Vector) Command { return ApplyMove{Entity: e, Delta: v} })
	vectorCommand("set_velocity", func(e ecs.Entity, v cp.Vector) Command { return SetVelocity{Entity: e, Velocity: v} })

	fn("apply_masks_and_layers", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return errorObject(fmt.Errorf("apply_masks_and_layers: want (id, masks, layers)")), nil
		}
		e, err := entityArg(args[0])
		if err != nil {
			return errorObject(fmt.Errorf("apply_masks_and_layers: %w", err)), nil
		}
		mask := component.BitsToMask(Bits(toBools(objectToAny(args[1]))))
		layer := component.BitsToMask(Bits(toBools(objectToAny(args[2]))))
		q.push(SetMasksAndLayers{Entity: e, Mask: mask, Layer: layer})
		return tengo.TrueValue, nil
	})

	fn("toggle_area", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return errorObject(fmt.Errorf("toggle_area: want (id, active)")), nil
		}
		e, err := entityArg(args[0])
		if err != nil {
			return errorObject(fmt.Errorf("toggle_area: %w", err)), nil
		}
		q.push(ToggleArea{Entity: e, Active: !args[1].IsFalsy()})
		return tengo.TrueValue, nil
	})

	fn("damage", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return errorObject(fmt.Errorf("damage: want (id, amount)")), nil
		}
		e, err := entityArg(args[0])
		if err != nil {
			return errorObject(fmt.Errorf("damage: %w", err)), nil
		}
		amount, ok := toInt(objectToAny(args[1]))
		if !ok || amount < 0 {
			return errorObject(fmt.Errorf("damage: amount must be a non-negative int")), nil
		}
		if amount > math.MaxUint16 {
			amount = math.MaxUint16
		}
		q.push(Damage{Entity: e, Amount: uint16(amount)})
		return tengo.TrueValue, nil
	})

	fn("set_state", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return errorObject(fmt.Errorf("set_state: want (id, state)")), nil
		}
		e, err := entityArg(args[0])
		if err != nil {
			return errorObject(fmt.Errorf("set_state: %w", err)), nil
		}
		state, ok := toInt(objectToAny(args[1]))
		if !ok || state < 0 || state > math.MaxUint8 {
			return errorObject(fmt.Errorf("set_state: state must be 0..255")), nil
		}
		q.push(SetState{Entity: e, State: uint8(state)})
		return tengo.TrueValue, nil
	})

	fn("flip", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return errorObject(fmt.Errorf("flip: want (id, x, y)")), nil
		}
		e, err := entityArg(args[0])
		if err != nil {
			return errorObject(fmt.Errorf("flip: %w", err)), nil
		}
		q.push(Flip{Entity: e, X: !args[1].IsFalsy(), Y: !args[2].IsFalsy()})
		return tengo.TrueValue, nil
	})

	fn("destroy", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return errorObject(fmt.Errorf("destroy: want (id)")), nil
		}
		e, err := entityArg(args[0])
		if err != nil {
			return errorObject(fmt.Errorf("destroy: %w", err)), nil
		}
		q.push(Destroy{Entity: e})
		return tengo.TrueValue, nil
	})

	vectorQuery := func(name string, get func(ecs.Entity) (cp.Vector, error)) {
		fn(name, func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return errorObject(fmt.Errorf("%s: want (id)", name)), nil
			}
			e, err := entityArg(args[0])
			if err != nil {
				return errorObject(fmt.Errorf("%s: %w", name, err)), nil
			}
			v, err := get(e)
			if err != nil {
				return errorObject(err), nil
			}
			return vectorObject(v), nil
		})
	}
	vectorQuery("get_position", host.Position)
	vectorQuery("get_velocity", host.Velocity)

	fn("get_health", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return errorObject(fmt.Errorf("get_health: want (id)")), nil
		}
		e, err := entityArg(args[0])
		if err != nil {
			return errorObject(fmt.Errorf("get_health: %w", err)), nil
		}
		h, err := host.Health(e)
		if err != nil {
			return errorObject(err), nil
		}
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"total":   &tengo.Int{Value: int64(h.Total)},
			"current": &tengo.Int{Value: int64(h.Current)},
		}}, nil
	})

	fn("get_state", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return errorObject(fmt.Errorf("get_state: want (id)")), nil
		}
		e, err := entityArg(args[0])
		if err != nil {
			return errorObject(fmt.Errorf("get_state: %w", err)), nil
		}
		s, err := host.State(e)
		if err != nil {
			return errorObject(err), nil
		}
		return &tengo.Int{Value: int64(s)}, nil
	})

	fn("get_contacts", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return errorObject(fmt.Errorf("get_contacts: want (id)")), nil
		}
		e, err := entityArg(args[0])
		if err != nil {
			return errorObject(fmt.Errorf("get_contacts: %w", err)), nil
		}
		cs, err := host.ContactState(e)
		if err != nil {
			return errorObject(err), nil
		}
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"grounded": boolObject(cs.Grounded),
			"ceiling":  boolObject(cs.Ceiling),
			"wall":     &tengo.Int{Value: int64(cs.Wall)},
			"touching": &tengo.Int{Value: int64(cs.Touching)},
			"sensed":   &tengo.Int{Value: int64(cs.Sensed)},
		}}, nil
	})

	fn("get_step", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(host.Steps())}, nil
	})

	fn("log", func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("script: %s: %s", scriptName, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func entityVectorArgs(args []tengo.Object) (ecs.Entity, cp.Vector, error) {
	if len(args) < 3 {
		return 0, cp.Vector{}, fmt.Errorf("want (id, x, y)")
	}
	e, err := entityArg(args[0])
	if err != nil {
		return 0, cp.Vector{}, err
	}
	x, err := floatArg(args[1], "x")
	if err != nil {
		return 0, cp.Vector{}, err
	}
	y, err := floatArg(args[2], "y")
	if err != nil {
		return 0, cp.Vector{}, err
	}
	return e, cp.Vector{X: x, Y: y}, nil
}
