package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/config"
	"go.uber.org/zap"
)

func main() {
	settingsPath := flag.String("settings", "settings.toml", "settings file; the embedded defaults are used when missing")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "enable debug logging and prefab hot reload")
	inflation := flag.Float64("inflation", -1, "starting inflation; negative uses the prefab value")
	flag.Parse()

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		settings.Game.Debug = true
	}

	logger, err := common.NewLogger(settings.Game.Debug, settings.Game.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	if len(settings.Undecoded) > 0 {
		logger.Warn("unknown settings keys", zap.Strings("keys", settings.Undecoded))
	}

	game, err := NewGame(settings, Options{Level: *levelName, Inflation: *inflation}, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	defer func() { _ = game.Close() }()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetTPS(settings.Loop.TicksPerSecond)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}
