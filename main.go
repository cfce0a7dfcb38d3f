package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gravityballs/common"
	"github.com/milk9111/gravityballs/scenes"
)

func main() {
	sceneName := flag.String("scene", "default", "scene name in scenes/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.Bool("watch", false, "reload the scene when its file or a generator script changes")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	list := flag.Bool("list", false, "print the embedded scene names and exit")
	flag.Parse()

	if *list {
		for _, name := range scenes.Names() {
			fmt.Println(name)
		}
		return
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(*sceneName, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if *watch {
		if err := game.Watch(scenes.Dir); err != nil {
			log.Printf("scenes: watch %s: %v", scenes.Dir, err)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("gravity balls")
	ebiten.SetTPS(game.sim.Config().UpdatesPerSecond)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
