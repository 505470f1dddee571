package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/physics2d/config"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	sceneName := flag.String("scene", "", "scene under prefabs/, overrides the config")
	scriptName := flag.String("script", "", "script under prefabs/scripts, overrides the scene's")
	mode := flag.String("mode", "", "physics mode: predict or lockstep")
	debug := flag.Bool("debug", false, "log every sub-step")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

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
		if err := cfg.Validate(); err != nil {
			log.Fatal(err)
		}
	}
	if *debug {
		cfg.Log.Debug = true
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(int(1/cfg.Physics.FixedStep + 0.5))

	game := NewGame(cfg)
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
