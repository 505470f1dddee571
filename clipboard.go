package main

import (
	"log"
	"sync"

	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// copySnapshot puts the current body snapshot on the system clipboard as
// YAML, ready to paste into a bug report or a scene file.
func (g *Game) copySnapshot() {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		log.Printf("game: clipboard unavailable: %v", clipboardErr)
		g.status = "clipboard unavailable"
		return
	}

	data, err := yaml.Marshal(g.engine.Snapshot())
	if err != nil {
		log.Printf("game: marshal snapshot: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "snapshot copied"
}
