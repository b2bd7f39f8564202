package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/milk9111/cursorpal/assets"
	"github.com/milk9111/cursorpal/pack"
	"github.com/milk9111/cursorpal/settings"
)

func main() {
	settingsPath := flag.String("settings", "", "settings file (default: cursorpal/settings.yaml in the user config dir)")
	assetDir := flag.String("assets", "assets", "directory whose packs/ override the bundled ones")
	flag.Parse()

	if *settingsPath == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			log.Fatal(err)
		}
		*settingsPath = p
	}

	state, err := settings.Load(*settingsPath)
	if err != nil {
		log.Printf("settings panel: %v", err)
	}

	idx, err := pack.LoadIndex(assets.Open(*assetDir))
	if err != nil {
		log.Printf("settings panel: pack index: %v", err)
	}

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		log.Printf("settings panel: clipboard: %v", err)
		clipboardOK = false
	}

	saver := settings.NewSaver(*settingsPath, settings.SaveInterval)
	defer saver.Flush()

	ebiten.SetWindowSize(panelWidth, panelHeight)
	ebiten.SetWindowTitle("cursorpal settings")

	if err := ebiten.RunGame(NewPanel(state, idx, saver, clipboardOK)); err != nil {
		log.Fatal(err)
	}
}
