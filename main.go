package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/robotboss/common"
)

func main() {
	debug := flag.Bool("debug", false, "draw colliders and the boss state line")
	tps := flag.Int("tps", common.TPS, "simulation ticks per second")
	mute := flag.Bool("mute", false, "disable sound effects")
	watch := flag.Bool("watch", true, "reload prefabs/ when files change")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("robotboss")
	ebiten.SetTPS(*tps)

	game, err := NewGame(Options{
		Debug: *debug,
		TPS:   *tps,
		Mute:  *mute,
		Watch: *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
