package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteanim/prefabs"
)

func main() {
	prefabList := flag.String("prefab", "", "comma separated prefab files to spawn (default: every embedded prefab)")
	speed := flag.Float64("speed", 1, "virtual clock speed multiplier")
	debug := flag.Bool("debug", false, "draw frame indices and clock state")
	watch := flag.Bool("watch", true, "reload prefabs and scripts when they change on disk")
	prefabDir := flag.String("dir", prefabs.Dir, "directory holding disk copies of prefabs")
	flag.Parse()

	prefabs.Dir = *prefabDir

	var paths []string
	for _, p := range strings.Split(*prefabList, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		paths = prefabs.Names()
	}

	game, err := NewGame(paths, *speed, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("spritedemo")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
