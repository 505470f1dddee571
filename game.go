package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/physics2d/config"
	"github.com/milk9111/physics2d/engine"
	"github.com/milk9111/physics2d/prefabs"
)

type Game struct {
	cfg     config.Config
	engine  *engine.Engine
	camera  *CameraSystem
	feed    *EventFeed
	watcher *prefabs.Watcher

	paused   bool
	stepOnce bool
	reload   bool
	overlay  bool
	pauseUI  *ebitenui.UI
	status   string
	lastSubs int
}

func NewGame(cfg config.Config) *Game {
	g := &Game{
		cfg:     cfg,
		camera:  NewCameraSystem(cfg.Window.Zoom),
		feed:    &EventFeed{},
		overlay: true,
	}
	g.engine = engine.New(cfg, g.camera, g.feed)
	g.pauseUI = NewPauseUI(g)
	g.load()

	if dirs := prefabs.Dirs(); len(dirs) > 0 {
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// load rebuilds the world from the configured scene and script.
func (g *Game) load() {
	g.engine.Reset()
	if err := g.engine.Boot(g.cfg.Scene, g.cfg.Script.Path); err != nil {
		log.Printf("game: load: %v", err)
		g.status = err.Error()
		return
	}
	g.status = ""
}

func (g *Game) Update() error {
	g.pollWatcher()
	if g.reload {
		g.reload = false
		g.load()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay = !g.overlay
	}

	if g.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			g.stepOnce = true
		}
		g.pauseUI.Update()
		if !g.stepOnce {
			return nil
		}
		g.stepOnce = false
	}

	g.lastSubs = g.engine.Update(g.cfg.Physics.FixedStep)
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefabs: %s %s changed, reloading", change.Kind, change.Path)
			g.reload = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefabs: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	view := g.camera.View(float64(w), float64(h))

	drawBodies(screen, view, g.engine.Snapshot())
	if g.overlay {
		drawContacts(screen, view, g.engine.Physics().LastContacts())
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    TPS: %.2f", g.engine.Frames(), ebiten.ActualFPS(), ebiten.ActualTPS()))
	if g.overlay {
		drawHUD(screen, g)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
