package main

import (
	"fmt"

	"github.com/milk9111/physics2d/ecs"
	"github.com/milk9111/physics2d/engine"
)

const feedSize = 5

// EventFeed keeps the most recent engine events for the HUD.
type EventFeed struct {
	lines []string
}

func (f *EventFeed) Update(w *ecs.World) {
	for _, kind := range []string{engine.EventDamaged, engine.EventDied, engine.EventDestroyed} {
		for _, evt := range w.Events().Peek(kind) {
			line := fmt.Sprintf("%s %s", evt.Type, evt.Entity)
			if evt.Value != 0 {
				line += fmt.Sprintf(" (%d)", evt.Value)
			}
			f.lines = append(f.lines, line)
		}
	}
	if n := len(f.lines); n > feedSize {
		f.lines = f.lines[n-feedSize:]
	}
}

func (f *EventFeed) Lines() []string {
	return f.lines
}
