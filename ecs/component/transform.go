package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Transform places an entity. Position is the shape's centre. The sign of
// Scale marks a visual flip only; Rotation is carried for renderers and is
// never applied to collision shapes.
type Transform struct {
	Position cp.Vector
	Scale    cp.Vector
	Rotation float64
	Shape    Shape
}

// ScaleAbs returns |Scale| per axis.
func (t Transform) ScaleAbs() cp.Vector {
	return cp.Vector{X: math.Abs(t.Scale.X), Y: math.Abs(t.Scale.Y)}
}

// Size is the shape extents times |Scale|.
func (t Transform) Size() cp.Vector {
	ext := t.Shape.Extents()
	abs := t.ScaleAbs()
	return cp.Vector{X: ext.X * abs.X, Y: ext.Y * abs.Y}
}

func (t Transform) FlipX() bool { return t.Scale.X < 0 }
func (t Transform) FlipY() bool { return t.Scale.Y < 0 }

var TransformComponent = NewComponent[Transform]()
