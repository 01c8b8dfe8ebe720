package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/desertthunder/steamdex/internal/services"
	"github.com/desertthunder/steamdex/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	steam := services.NewSteamService("", config.Steam, nil)
	storefront := services.NewStorefrontService("", nil)

	var secondary services.SecondarySource
	if config.SteamDB.Enabled {
		secondary = services.NewSteamDBService(
			config.SteamDB.BaseURL,
			time.Duration(config.SteamDB.TimeoutSeconds)*time.Second,
			logger,
		)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Catalog:    steam,
		Schema:     steam,
		Storefront: storefront,
		Secondary:  secondary,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "steamdex",
		Usage:    "Cache and query Steam app metadata locally",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
