package prefabs

import (
	"fmt"

	"github.com/milk9111/physics2d/script"
	"gopkg.in/yaml.v3"
)

// Scene is a list of bodies plus the script that drives them. Bodies use
// the same keys as create_body, so scenes and scripts share one set of
// defaults.
type Scene struct {
	Name   string            `yaml:"name"`
	Script string            `yaml:"script"`
	Bodies []script.BodySpec `yaml:"bodies"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadScene(filename string) (Scene, error) {
	scene, err := LoadSpec[Scene](filename)
	if err != nil {
		return Scene{}, err
	}
	if scene.Name == "" {
		scene.Name = filename
	}
	return scene, nil
}

// ParseScene decodes a scene from memory.
func ParseScene(data []byte) (Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return Scene{}, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	return scene, nil
}
