// Command sim runs a scene headless for a fixed number of frames and prints
// the final body snapshot as YAML.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/physics2d/config"
	"github.com/milk9111/physics2d/engine"
	"github.com/milk9111/physics2d/physics"
	"github.com/pkg/profile"
	"gopkg.in/yaml.v3"
)

type report struct {
	Frames   uint64                 `yaml:"frames"`
	Steps    uint64                 `yaml:"steps"`
	Contacts int                    `yaml:"contacts"`
	Bodies   []physics.BodySnapshot `yaml:"bodies"`
}

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	sceneName := flag.String("scene", "", "scene under prefabs/, overrides the config")
	scriptName := flag.String("script", "", "script under prefabs/scripts, overrides the scene's")
	frames := flag.Int("frames", 600, "frames to simulate")
	dt := flag.Float64("dt", 0, "seconds per frame (defaults to physics.fixed_step)")
	mode := flag.String("mode", "", "physics mode: predict or lockstep")
	prof := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	out := flag.String("out", "", "write the report here instead of stdout")
	flag.Parse()

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("sim: unknown profile %q", *prof)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}
	if *scriptName != "" {
		cfg.Script.Path = *scriptName
	}
	if *mode != "" {
		cfg.Physics.Mode = config.Mode(*mode)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	step := *dt
	if step <= 0 {
		step = cfg.Physics.FixedStep
	}

	e := engine.New(cfg)
	if err := e.Boot(cfg.Scene, cfg.Script.Path); err != nil {
		log.Fatal(err)
	}
	for i := 0; i < *frames; i++ {
		e.Update(step)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}
	if err := write(w, e); err != nil {
		log.Fatal(err)
	}
}

func write(w io.Writer, e *engine.Engine) error {
	r := report{
		Frames:   e.Frames(),
		Steps:    e.Physics().Steps(),
		Contacts: len(e.Physics().LastContacts()),
		Bodies:   e.Snapshot(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("sim: encode: %w", err)
	}
	return enc.Close()
}
