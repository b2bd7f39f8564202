package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/cursorpal/config"
	"github.com/milk9111/cursorpal/settings"
)

func main() {
	settingsPath := flag.String("settings", "", "settings file (default: cursorpal/settings.yaml in the user config dir)")
	configPath := flag.String("config", "", "engine tuning YAML file")
	assetDir := flag.String("assets", "assets", "directory whose packs/ and raw/ override the bundled ones")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	debug := flag.Bool("debug", false, "outline the sprite and print its state")
	flag.Parse()

	if *settingsPath == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			log.Fatal(err)
		}
		*settingsPath = p
	}

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetWindowTitle("cursorpal")

	overlay, err := NewOverlay(OverlayOptions{
		SettingsPath: *settingsPath,
		AssetDir:     *assetDir,
		Config:       cfg,
		Debug:        *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer overlay.Close()

	if err := ebiten.RunGameWithOptions(overlay, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		InitUnfocused:     true,
	}); err != nil {
		log.Fatal(err)
	}
}
