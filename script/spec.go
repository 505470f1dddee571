package script

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs/component"
)

const (
	DefaultWidth       = 1.0
	DefaultHeight      = 1.0
	DefaultTotalHealth = 10
)

// BodySpec is a body as written by a script or a scene file. Pointer fields
// distinguish "missing" from an explicit zero.
type BodySpec struct {
	Name         string           `yaml:"name"`
	X            float64          `yaml:"x"`
	Y            float64          `yaml:"y"`
	Width        *float64         `yaml:"width"`
	Height       *float64         `yaml:"height"`
	TotalHealth  *int             `yaml:"total_health"`
	Type         *int             `yaml:"type"`
	State        int              `yaml:"state"`
	IsPC         bool             `yaml:"is_pc"`
	Sensor       bool             `yaml:"sensor"`
	Velocity     [2]float64       `yaml:"velocity"`
	CollisionBox CollisionBoxSpec `yaml:"collision_box"`
	Masks        []bool           `yaml:"masks"`
	Layers       []bool           `yaml:"layers"`
	Animations   map[int]string   `yaml:"animations"`
}

type CollisionBoxSpec struct {
	Enabled       bool    `yaml:"enabled"`
	OffsetX       float64 `yaml:"offset_x"`
	OffsetY       float64 `yaml:"offset_y"`
	SizeModifierX float64 `yaml:"size_modifier_x"`
	SizeModifierY float64 `yaml:"size_modifier_y"`
}

// Body is a BodySpec with every default resolved. The physics core only
// ever sees values of this type.
type Body struct {
	Name       string
	Position   cp.Vector
	Size       cp.Vector
	Velocity   cp.Vector
	Type       component.BodyType
	Health     uint16
	State      uint8
	IsPC       bool
	Sensor     bool
	Box        bool
	BoxOffset  cp.Vector
	BoxSize    cp.Vector
	Mask       uint8
	Layer      uint8
	Animations map[uint8]string
}

// NormalizeBody resolves defaults for missing or malformed fields. It never
// fails; every substitution is reported in the returned notes.
func NormalizeBody(spec BodySpec) (Body, []string) {
	var notes []string
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}

	b := Body{
		Name:     spec.Name,
		Position: cp.Vector{X: finite(spec.X), Y: finite(spec.Y)},
		Velocity: cp.Vector{X: finite(spec.Velocity[0]), Y: finite(spec.Velocity[1])},
		IsPC:     spec.IsPC,
		Sensor:   spec.Sensor,
		Type:     component.BodyRigid,
		Health:   DefaultTotalHealth,
	}

	b.Size.X = positiveOr(spec.Width, DefaultWidth, "width", note)
	b.Size.Y = positiveOr(spec.Height, DefaultHeight, "height", note)

	if spec.TotalHealth != nil {
		switch h := *spec.TotalHealth; {
		case h < 0:
			note("total_health %d clamped to 0", h)
			b.Health = 0
		case h > math.MaxUint16:
			note("total_health %d clamped to %d", h, math.MaxUint16)
			b.Health = math.MaxUint16
		default:
			b.Health = uint16(h)
		}
	}

	if spec.Type != nil {
		t, ok := component.ParseBodyType(*spec.Type)
		if !ok {
			note("type %d unknown, using rigid", *spec.Type)
		}
		b.Type = t
	}
	if b.Type == component.BodyStatic {
		b.Velocity = cp.Vector{}
	}

	if spec.State < 0 || spec.State > math.MaxUint8 {
		note("state %d out of range, using 0", spec.State)
	} else {
		b.State = uint8(spec.State)
	}

	b.Mask = component.BitsToMask(bits8(spec.Masks, "masks", note))
	b.Layer = component.BitsToMask(bits8(spec.Layers, "layers", note))

	box := spec.CollisionBox
	b.Box = box.Enabled
	if b.Box {
		b.BoxOffset = cp.Vector{X: finite(box.OffsetX), Y: finite(box.OffsetY)}
		b.BoxSize = cp.Vector{
			X: b.Size.X * modifier(box.SizeModifierX),
			Y: b.Size.Y * modifier(box.SizeModifierY),
		}
	}

	if len(spec.Animations) > 0 {
		b.Animations = make(map[uint8]string, len(spec.Animations))
		for state, sheet := range spec.Animations {
			if state < 0 || state > math.MaxUint8 {
				note("animation for state %d ignored", state)
				continue
			}
			b.Animations[uint8(state)] = sheet
		}
	}

	return b, notes
}

// Bits converts a mask or layer table of any length into eight flags.
// Missing entries are false and entries past the eighth are dropped.
func Bits(in []bool) [8]bool {
	var out [8]bool
	copy(out[:], in)
	return out
}

func bits8(in []bool, field string, note func(string, ...any)) [8]bool {
	if len(in) > 8 {
		note("%s has %d entries, only the first 8 are used", field, len(in))
	}
	return Bits(in)
}

func positiveOr(v *float64, def float64, field string, note func(string, ...any)) float64 {
	if v == nil {
		return def
	}
	if *v <= 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		note("%s %v invalid, using %v", field, *v, def)
		return def
	}
	return *v
}

// modifier treats an unset (zero) or invalid size modifier as 1.
func modifier(m float64) float64 {
	if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return 1
	}
	return m
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
