package script

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/physics2d/ecs"
)

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.ImmutableArray:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int:
		return b != 0
	case float64:
		return b != 0
	default:
		return false
	}
}

// toBools reads a mask/layer table. Arrays map index i to flag i; maps with
// numeric keys use the key as a 1-based index.
func toBools(v any) []bool {
	switch t := v.(type) {
	case []any:
		out := make([]bool, len(t))
		for i, item := range t {
			out[i] = toBool(item)
		}
		return out
	case map[string]any:
		out := make([]bool, 8)
		for k, item := range t {
			idx, err := strconv.Atoi(k)
			if err != nil || idx < 1 || idx > 8 {
				continue
			}
			out[idx-1] = toBool(item)
		}
		return out
	default:
		return nil
	}
}

// specFromMap builds a BodySpec from a script table. Unknown keys and values
// of the wrong type are ignored, leaving the field unset so NormalizeBody
// applies its default.
func specFromMap(m map[string]any) BodySpec {
	var spec BodySpec
	if s, ok := m["name"].(string); ok {
		spec.Name = s
	}
	if f, ok := toFloat(m["x"]); ok {
		spec.X = f
	}
	if f, ok := toFloat(m["y"]); ok {
		spec.Y = f
	}
	if f, ok := toFloat(m["width"]); ok {
		spec.Width = &f
	}
	if f, ok := toFloat(m["height"]); ok {
		spec.Height = &f
	}
	if n, ok := toInt(m["total_health"]); ok {
		spec.TotalHealth = &n
	}
	if n, ok := toInt(m["type"]); ok {
		spec.Type = &n
	}
	if n, ok := toInt(m["state"]); ok {
		spec.State = n
	}
	spec.IsPC = toBool(m["is_pc"])
	spec.Sensor = toBool(m["sensor"])
	if vel, ok := m["velocity"].([]any); ok && len(vel) >= 2 {
		spec.Velocity[0], _ = toFloat(vel[0])
		spec.Velocity[1], _ = toFloat(vel[1])
	}
	if box, ok := m["collision_box"].(map[string]any); ok {
		spec.CollisionBox.Enabled = toBool(box["enabled"])
		spec.CollisionBox.OffsetX, _ = toFloat(box["offset_x"])
		spec.CollisionBox.OffsetY, _ = toFloat(box["offset_y"])
		spec.CollisionBox.SizeModifierX, _ = toFloat(box["size_modifier_x"])
		spec.CollisionBox.SizeModifierY, _ = toFloat(box["size_modifier_y"])
	}
	spec.Masks = toBools(m["masks"])
	spec.Layers = toBools(m["layers"])
	if anims, ok := m["animations"].(map[string]any); ok {
		spec.Animations = make(map[int]string, len(anims))
		for k, sheet := range anims {
			state, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			spec.Animations[state] = fmt.Sprint(sheet)
		}
	}
	return spec
}

func entityObject(e ecs.Entity) *tengo.Int {
	return &tengo.Int{Value: int64(e)}
}

func entityArg(obj tengo.Object) (ecs.Entity, error) {
	n, ok := toInt(objectToAny(obj))
	if !ok || n <= 0 {
		return 0, fmt.Errorf("entity id must be a positive int, got %s", obj.TypeName())
	}
	return ecs.Entity(n), nil
}

func floatArg(obj tengo.Object, name string) (float64, error) {
	f, ok := toFloat(objectToAny(obj))
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be a finite number, got %s", name, obj.TypeName())
	}
	return f, nil
}

func errorObject(err error) tengo.Object {
	return &tengo.Error{Value: &tengo.String{Value: err.Error()}}
}
