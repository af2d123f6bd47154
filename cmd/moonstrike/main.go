// cmd/moonstrike/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-moonstrike/pkg/config"
	"github.com/opd-ai/go-moonstrike/pkg/engine"
	"github.com/opd-ai/go-moonstrike/pkg/logging"
	engorender "github.com/opd-ai/go-moonstrike/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "", "Path to a JSON or YAML configuration file")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	seed := flag.String("seed", "", "Session seed (overrides config)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 512, "Window height")
	flag.Parse()

	if *createDefault {
		if *configPath == "" {
			logger.Error(ctx, "No configuration path given", nil)
			os.Exit(1)
		}
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	gameConfig, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *seed != "" {
		gameConfig.Seed = *seed
	}

	game, err := engine.NewGame(gameConfig, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		os.Exit(1)
	}

	scene := engorender.NewGameScene(game, logger.WithSession(game.SessionID))

	engo.Run(engo.RunOptions{
		Title:      "Moonstrike",
		Width:      *width,
		Height:     *height,
		Fullscreen: *fullscreen,
		VSync:      true,
	}, scene)
}
