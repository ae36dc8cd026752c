package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spriteanim/clock"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
	"github.com/milk9111/spriteanim/ecs/entity"
	"github.com/milk9111/spriteanim/ecs/system"
	"github.com/milk9111/spriteanim/render"
)

const previewSize = 512

// previewGame plays one sprite sheet through the animation system.
type previewGame struct {
	world  *ecs.World
	sched  *ecs.Scheduler
	clock  *clock.Virtual
	render *system.RenderSystem
	sheet  ecs.Entity
}

func (g *previewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.clock.Toggle()
	}
	g.sched.Update(g.world, g.clock.Advance(time.Second/time.Duration(ebiten.TPS())))
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	g.render.Draw(g.world, screen)
	if sprite, ok := ecs.Get(g.world, g.sheet, component.SpriteComponent.Kind()); ok {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("frame %d  paused=%v", sprite.Index, g.clock.IsPaused()))
	}
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewSize, previewSize
}

// sheetAtlas lays a frameW x frameH grid over bounds.
func sheetAtlas(bounds image.Rectangle, frameW, frameH int) (*component.TextureAtlas, error) {
	if frameW <= 0 || frameH <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", frameW, frameH)
	}
	cols := bounds.Dx() / frameW
	rows := bounds.Dy() / frameH
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("sheet %dx%d is smaller than one %dx%d frame", bounds.Dx(), bounds.Dy(), frameW, frameH)
	}
	return &component.TextureAtlas{TileW: frameW, TileH: frameH, Columns: cols, Rows: rows}, nil
}

// sheetFrames returns count frames shown for 1/fps seconds each. A count
// outside the atlas plays every tile.
func sheetFrames(atlas *component.TextureAtlas, count int, fps float64) ([]component.Frame, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %v", fps)
	}
	if count <= 0 || count > atlas.Len() {
		count = atlas.Len()
	}
	frames := make([]component.Frame, count)
	for i := range frames {
		frames[i] = component.NewFrame(i, 1/fps)
	}
	return frames, nil
}

func main() {
	path := flag.String("sheet", render.PlaceholderKey, "sprite sheet png")
	frameW := flag.Int("w", 32, "frame width")
	frameH := flag.Int("h", 32, "frame height")
	count := flag.Int("frames", 0, "number of frames to play (0: all)")
	fps := flag.Float64("fps", 12, "frames per second")
	pingPong := flag.Bool("pingpong", false, "bounce between the ends of the sheet")
	backward := flag.Bool("backward", false, "start from the last frame")
	flip := flag.Bool("flip", false, "mirror horizontally")
	flag.Parse()

	img, err := render.LoadImage(*path)
	if err != nil {
		log.Fatal(err)
	}
	atlas, err := sheetAtlas(img.Bounds(), *frameW, *frameH)
	if err != nil {
		log.Fatal(err)
	}
	frames, err := sheetFrames(atlas, *count, *fps)
	if err != nil {
		log.Fatal(err)
	}

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	scale := float64(previewSize/2) / float64(max(*frameW, *frameH))
	if err := entity.SetEntityTransform(w, e, float64(previewSize-int(float64(*frameW)*scale))/2, float64(previewSize-int(float64(*frameH)*scale))/2, 0); err != nil {
		log.Fatal(err)
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.ScaleX, t.ScaleY = scale, scale
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Image: img, Atlas: atlas}); err != nil {
		log.Fatal(err)
	}
	opts := component.AnimationOptions{FlipX: *flip, PingPong: *pingPong}
	if *backward {
		opts.Direction = component.Backward
	}
	if err := system.AttachAnimation(w, e, frames, opts); err != nil {
		log.Fatal(err)
	}

	g := &previewGame{
		world:  w,
		sched:  ecs.NewScheduler(system.NewAnimationSystem()),
		clock:  clock.NewVirtual(),
		render: system.NewRenderSystem(),
		sheet:  e,
	}
	ebiten.SetWindowSize(previewSize, previewSize)
	ebiten.SetWindowTitle("Sprite Sheet Preview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
