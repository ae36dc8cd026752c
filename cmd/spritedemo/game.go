package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spriteanim/clock"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
	"github.com/milk9111/spriteanim/ecs/entity"
	"github.com/milk9111/spriteanim/ecs/system"
	"github.com/milk9111/spriteanim/prefabs"
)

const (
	baseWidth  = 320
	baseHeight = 180
)

type Game struct {
	frames int
	debug  bool

	paths   []string
	world   *ecs.World
	sched   *ecs.Scheduler
	clock   *clock.Virtual
	render  *system.RenderSystem
	scripts *system.AnimationScriptObserver
	watcher *prefabs.Watcher
}

func NewGame(paths []string, speed float64, debug, watch bool) (*Game, error) {
	g := &Game{
		debug:  debug,
		paths:  paths,
		clock:  clock.NewVirtual(),
		render: system.NewRenderSystem(),
		sched: ecs.NewScheduler(
			system.NewFacingSystem(),
			system.NewMotionSystem(),
			system.NewAnimationSystem(),
			system.NewTTLSystem(),
		),
		scripts: system.NewAnimationScriptObserver(prefabs.LoadScript),
	}
	g.clock.SetSpeed(speed)
	g.render.Debug = debug

	if err := g.spawn(); err != nil {
		return nil, err
	}

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) spawn() error {
	g.world = ecs.NewWorld()
	g.scripts.Close()
	g.scripts.Register(g.world)
	for _, p := range g.paths {
		if _, err := entity.BuildEntity(g.world, p); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) Close() {
	g.scripts.Close()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close watcher: %v", err)
		}
	}
}

func (g *Game) Update() error {
	g.frames++

	g.handleInput()
	g.drainWatcher()

	frame := time.Second / time.Duration(ebiten.TPS())
	g.sched.Update(g.world, g.clock.Advance(frame))
	g.wrap()
	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.clock.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if e, ok := g.world.First(component.SpriteAnimationComponent.Kind()); ok {
			if !ecs.Remove(g.world, e, component.AnimationStoppedComponent.Kind()) {
				_ = ecs.Add(g.world, e, component.AnimationStoppedComponent.Kind(), &component.AnimationStopped{})
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.spawn(); err != nil {
			log.Printf("respawn: %v", err)
		}
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	key := prefabs.Key(name)
	if strings.HasSuffix(key, ".tengo") {
		g.scripts.Invalidate(key)
		log.Printf("reloaded script %s", key)
		return
	}
	n, err := entity.ReloadPrefab(g.world, name)
	if err != nil {
		log.Printf("reload %s: %v", key, err)
		return
	}
	log.Printf("reloaded %s (%d entities)", key, n)
}

// wrap keeps moving sprites on screen.
func (g *Game) wrap() {
	ecs.ForEach2(g.world, component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, t *component.Transform, _ *component.Velocity) {
		switch {
		case t.X > baseWidth:
			t.X = -32 * t.ScaleX
		case t.X < -32*t.ScaleX:
			t.X = baseWidth
		}
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	state := "running"
	if g.clock.IsPaused() {
		state = "paused"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s x%.2f  entities: %d", state, g.clock.Speed(), len(ecs.Entities(g.world))))
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d  FPS: %.2f  t=%s", g.frames, ebiten.ActualFPS(), g.clock.Elapsed().Truncate(time.Millisecond)), 0, 16)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
