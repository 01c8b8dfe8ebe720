package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/steamdex/internal/cache"
	"github.com/desertthunder/steamdex/internal/formatter"
	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search lists the cached base games whose names contain every token of the
// query.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")

	c, closer, err := r.readyCache(ctx)
	if err != nil {
		return err
	}
	defer closer()

	results, err := c.SearchByName(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	if len(results) == 0 {
		r.writePlain("No apps matched %q\n", query)
		return nil
	}

	for _, rec := range results {
		r.writePlain("%10d  %s\n", rec.ID, rec.Name)
	}
	r.writePlainln("%d apps matched", len(results))

	return nil
}

// AppGet looks a cached base game up by id or exact name.
func (r *Runner) AppGet(ctx context.Context, cmd *cli.Command) error {
	c, closer, err := r.readyCache(ctx)
	if err != nil {
		return err
	}
	defer closer()

	record, err := r.resolveApp(cmd, c)
	if err != nil {
		return err
	}

	if record == nil {
		r.writePlain("No cached app matched\n")
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(record, cmd.Bool("pretty"))
	}

	r.writePlain("%10d  %s\n", record.ID, record.Name)
	return nil
}

// Achievements prints the achievement schema for a resolved app.
func (r *Runner) Achievements(ctx context.Context, cmd *cli.Command) error {
	c, closer, err := r.readyCache(ctx)
	if err != nil {
		return err
	}
	defer closer()

	record, err := r.resolveApp(cmd, c)
	if err != nil {
		return err
	}
	if record == nil {
		r.writePlain("No cached app matched\n")
		return nil
	}

	definitions, err := c.Achievements(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to fetch achievements: %w", err)
	}

	if path := cmd.String("output"); path != "" {
		data, err := formatter.ExportAchievementsCSV(&formatter.AppExport{App: *record, Achievements: definitions})
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		r.writePlain("✓ Achievements written to %s\n", path)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(definitions, cmd.Bool("pretty"))
	}

	if len(definitions) == 0 {
		r.writePlain("%s has no achievements\n", record.Name)
		return nil
	}

	for _, def := range definitions {
		marker := " "
		if def.Hidden != 0 {
			marker = "*"
		}
		r.writePlain("%s %-40s %s\n", marker, def.DisplayName, def.Description)
	}
	r.writePlainln("%d achievements for %s (* hidden)", len(definitions), record.Name)

	return nil
}

// Dlc prints the reconciled DLC listing for a resolved base game.
func (r *Runner) Dlc(ctx context.Context, cmd *cli.Command) error {
	c, closer, err := r.readyCache(ctx)
	if err != nil {
		return err
	}
	defer closer()

	record, err := r.resolveApp(cmd, c)
	if err != nil {
		return err
	}
	if record == nil {
		r.writePlain("No cached app matched\n")
		return nil
	}

	entries, err := c.Dlc(ctx, record, cmd.Bool("steamdb"))
	if err != nil {
		return fmt.Errorf("failed to reconcile dlc: %w", err)
	}

	if path := cmd.String("output"); path != "" {
		data, err := formatter.ExportDlcCSV(&formatter.AppExport{App: *record, Dlc: entries})
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		r.writePlain("✓ DLC listing written to %s\n", path)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	if len(entries) == 0 {
		r.writePlain("%s has no DLC\n", record.Name)
		return nil
	}

	for _, entry := range entries {
		r.writePlain("%10d  %s\n", entry.ID, entry.Name)
	}
	r.writePlainln("%d DLC for %s", len(entries), record.Name)

	return nil
}

// resolveApp turns the --id or --name lookup flags into a cached record.
// Exactly one of the two must be provided; a miss is a nil record.
func (r *Runner) resolveApp(cmd *cli.Command, c *cache.Cache) (*models.AppRecord, error) {
	id := cmd.Int("id")
	name := cmd.String("name")

	switch {
	case id > 0 && name != "":
		return nil, fmt.Errorf("%w: --id and --name are mutually exclusive", shared.ErrInvalidFlag)
	case id > 0:
		return c.FindByID(id)
	case name != "":
		return c.FindByName(name)
	default:
		return nil, fmt.Errorf("%w: either --id or --name is required", shared.ErrMissingArgument)
	}
}
