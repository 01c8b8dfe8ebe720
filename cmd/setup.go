package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/steamdex/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup bootstraps the config file, creates the database schema, and runs
// the initial catalog sync.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	r.config = config

	r.logger.Info("initializing database", "path", config.Database.Path)

	c, closer, err := r.openCache()
	if err != nil {
		return err
	}
	defer closer()

	if err := c.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	r.writePlain("✓ Catalog cache ready at %s\n", config.Database.Path)
	return nil
}
