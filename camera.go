package main

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/ecs/component"
)

const defaultZoom = 32

// CameraSystem keeps the view centered on the player body. It runs as a
// frame system after physics.
type CameraSystem struct {
	target ecs.Entity
	center cp.Vector
	zoom   float64
}

func NewCameraSystem(zoom float64) *CameraSystem {
	if zoom <= 0 {
		zoom = defaultZoom
	}
	return &CameraSystem{zoom: zoom}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	tag := component.PlayerTagComponent.Kind()
	if !ecs.Has(w, cs.target, tag) {
		cs.target = 0
		if e, ok := w.First(tag); ok {
			cs.target = e
		}
	}

	t, ok := ecs.Get(w, cs.target, component.TransformComponent.Kind())
	if !ok {
		return
	}
	// ease toward the target
	cs.center = cs.center.Lerp(t.Position, 0.2)
}

// View returns the world-to-screen mapping for a screen of the given size.
func (cs *CameraSystem) View(width, height float64) view {
	return view{center: cs.center, zoom: cs.zoom, half: cp.Vector{X: width / 2, Y: height / 2}}
}

type view struct {
	center cp.Vector
	zoom   float64
	half   cp.Vector
}

func (v view) toScreen(p cp.Vector) (float32, float32) {
	return float32((p.X-v.center.X)*v.zoom + v.half.X), float32((p.Y-v.center.Y)*v.zoom + v.half.Y)
}
