package engine

import (
	"fmt"
	"log"

	"github.com/milk9111/physics2d/prefabs"
)

// Boot loads a scene and its script from prefabs. scriptPath overrides the
// script named by the scene; both may be empty.
func (e *Engine) Boot(scenePath, scriptPath string) error {
	if e == nil {
		return fmt.Errorf("engine: nil engine")
	}
	if scenePath != "" {
		scene, err := prefabs.LoadScene(scenePath)
		if err != nil {
			return err
		}
		ents, err := e.LoadScene(scene)
		if err != nil {
			return err
		}
		log.Printf("engine: scene %s: %d bodies", scene.Name, len(ents))
		if scriptPath == "" {
			scriptPath = scene.Script
		}
	}
	if scriptPath == "" {
		return nil
	}
	src, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return fmt.Errorf("engine: load script %s: %w", scriptPath, err)
	}
	return e.LoadScript(scriptPath, src)
}
