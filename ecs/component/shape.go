package component

import "github.com/jakecoffman/cp"

// ShapeKind tags the active variant of a Shape.
type ShapeKind uint8

const (
	ShapeRectangle ShapeKind = iota
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Shape is Rectangle{HalfExtents} or Circle{Radius}. Only the field matching
// Kind is meaningful.
type Shape struct {
	Kind        ShapeKind
	HalfExtents cp.Vector
	Radius      float64
}

func Rectangle(halfW, halfH float64) Shape {
	return Shape{Kind: ShapeRectangle, HalfExtents: cp.Vector{X: halfW, Y: halfH}}
}

func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Half returns the unscaled half extents of the shape's bounding box.
func (s Shape) Half() cp.Vector {
	if s.Kind == ShapeCircle {
		return cp.Vector{X: s.Radius, Y: s.Radius}
	}
	return s.HalfExtents
}

// Extents returns the unscaled full width and height.
func (s Shape) Extents() cp.Vector {
	return s.Half().Mult(2)
}
