package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Sync refreshes the local catalog, or prints the recorded refresh history
// when --history is set. Without --force the staleness policy decides
// whether a refresh actually runs.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("history") {
		return r.syncHistory(ctx)
	}

	c, closer, err := r.openCache()
	if err != nil {
		return err
	}
	defer closer()

	if cmd.Bool("force") {
		r.logger.Info("forcing full catalog refresh")
		if err := c.Initialize(ctx); err != nil {
			return fmt.Errorf("failed to prepare cache: %w", err)
		}
		if err := c.Refresh(ctx); err != nil {
			return fmt.Errorf("catalog refresh failed: %w", err)
		}
	} else {
		if err := c.Initialize(ctx); err != nil {
			return fmt.Errorf("catalog refresh failed: %w", err)
		}
	}

	r.writePlain("✓ Catalog cache up to date\n")
	return nil
}

func (r *Runner) syncHistory(ctx context.Context) error {
	c, closer, err := r.openCache()
	if err != nil {
		return err
	}
	defer closer()

	runs, err := c.SyncHistory()
	if err != nil {
		return fmt.Errorf("failed to load sync history: %w", err)
	}

	if len(runs) == 0 {
		r.writePlain("No sync runs recorded\n")
		return nil
	}

	for _, run := range runs {
		line := fmt.Sprintf("%s  %-4s  %-9s  %d apps", run.StartedAt.Format("2006-01-02 15:04:05"), run.Category, run.Status, run.AppsSeen)
		if run.Error != "" {
			line += "  " + run.Error
		}
		r.writePlain("%s\n", line)
	}

	return nil
}
