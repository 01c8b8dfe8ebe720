package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/steamdex/internal/shared"
	"github.com/desertthunder/steamdex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export bulk-exports enrichment data for every cached game matching the
// query, streaming progress to the terminal.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: a search query is required", shared.ErrMissingArgument)
	}

	c, closer, err := r.readyCache(ctx)
	if err != nil {
		return err
	}
	defer closer()

	records, err := c.SearchByName(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(records) == 0 {
		r.writePlain("No apps matched %q\n", query)
		return nil
	}

	ids := make([]int, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}

	engine := tasks.NewExportEngine(c, r.logger)
	prog := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.BulkExport(ctx, prog, ids, tasks.BulkExportOpts{
		Format:       cmd.String("format"),
		OutputDir:    cmd.String("output"),
		NumWorkers:   cmd.Int("workers"),
		RateLimit:    r.config.Steam.RequestsPerSecond,
		UseSecondary: cmd.Bool("steamdb"),
	})
	close(prog)
	<-done

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainln("✓ Exported %d/%d apps to %s", result.SuccessfulExports, result.TotalApps, result.OutputDirectory)
	return nil
}
