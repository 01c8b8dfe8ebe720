package tasks

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/shared"
)

// fakeEnricher serves canned enrichment data keyed by app id.
type fakeEnricher struct {
	records       map[int]models.AppRecord
	achievements  map[int][]models.AchievementDefinition
	dlc           map[int][]models.DlcEntry
	achievementsE error
	secondaryUsed bool
}

func (f *fakeEnricher) FindByID(id int) (*models.AppRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeEnricher) Achievements(ctx context.Context, record *models.AppRecord) ([]models.AchievementDefinition, error) {
	if f.achievementsE != nil {
		return nil, f.achievementsE
	}
	return f.achievements[record.ID], nil
}

func (f *fakeEnricher) Dlc(ctx context.Context, record *models.AppRecord, useSecondary bool) ([]models.DlcEntry, error) {
	f.secondaryUsed = f.secondaryUsed || useSecondary
	return f.dlc[record.ID], nil
}

func newFakeEnricher() *fakeEnricher {
	return &fakeEnricher{
		records: map[int]models.AppRecord{
			220: models.NewAppRecord(220, "Half-Life 2", models.CategoryGame),
			620: models.NewAppRecord(620, "Portal 2", models.CategoryGame),
		},
		achievements: map[int][]models.AchievementDefinition{
			220: {{Name: "HL2_BEAT_GAME", DisplayName: "Singularity Collapse"}},
		},
		dlc: map[int][]models.DlcEntry{
			220: {{ID: 323140, Name: "Half-Life 2: Soundtrack"}},
		},
	}
}

func TestBulkExport(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("Exports Every Resolved App", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewExportEngine(newFakeEnricher(), logger)

		result, err := engine.BulkExport(context.Background(), nil, []int{220, 620}, BulkExportOpts{
			Format:    "json",
			OutputDir: dir,
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}

		if result.SuccessfulExports != 2 || result.FailedExports != 0 {
			t.Errorf("expected 2 successes, got %+v", result)
		}
		if _, err := os.Stat(filepath.Join(dir, "220.json")); err != nil {
			t.Errorf("expected export file for 220: %v", err)
		}
		if result.ManifestPath == "" {
			t.Error("expected manifest path to be recorded")
		}

		manifest, err := os.ReadFile(result.ManifestPath)
		if err != nil {
			t.Fatalf("failed to read manifest: %v", err)
		}
		if !strings.Contains(string(manifest), `"total_apps": 2`) {
			t.Errorf("unexpected manifest:\n%s", manifest)
		}
	})

	t.Run("Unknown Id Recorded As Failure", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewExportEngine(newFakeEnricher(), logger)

		result, err := engine.BulkExport(context.Background(), nil, []int{220, 999}, BulkExportOpts{
			Format:    "json",
			OutputDir: dir,
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}

		if result.SuccessfulExports != 1 || result.FailedExports != 1 {
			t.Errorf("expected one success and one failure, got %+v", result)
		}
		for _, res := range result.Results {
			if res.AppID == 999 && res.Success {
				t.Error("expected unknown app to fail")
			}
		}
	})

	t.Run("Enrichment Failure Does Not Abort Run", func(t *testing.T) {
		dir := t.TempDir()
		enricher := newFakeEnricher()
		enricher.achievementsE = errors.New("schema endpoint down")
		engine := NewExportEngine(enricher, logger)

		result, err := engine.BulkExport(context.Background(), nil, []int{220, 620}, BulkExportOpts{
			Format:    "json",
			OutputDir: dir,
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}

		if result.FailedExports != 2 {
			t.Errorf("expected all apps to fail, got %+v", result)
		}
	})

	t.Run("Reports Progress", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewExportEngine(newFakeEnricher(), logger)
		prog := make(chan ProgressUpdate, 64)

		if _, err := engine.BulkExport(context.Background(), prog, []int{220}, BulkExportOpts{
			Format:    "json",
			OutputDir: dir,
			RateLimit: 1000,
		}); err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}
		close(prog)

		var phases []Phase
		for update := range prog {
			phases = append(phases, update.Phase)
		}
		if len(phases) == 0 {
			t.Fatal("expected progress updates")
		}
		if phases[len(phases)-1] != WriteFiles {
			t.Errorf("expected final phase write_files, got %s", phases[len(phases)-1])
		}
	})

	t.Run("Passes Secondary Flag Through", func(t *testing.T) {
		dir := t.TempDir()
		enricher := newFakeEnricher()
		engine := NewExportEngine(enricher, logger)

		if _, err := engine.BulkExport(context.Background(), nil, []int{220}, BulkExportOpts{
			Format:       "json",
			OutputDir:    dir,
			RateLimit:    1000,
			UseSecondary: true,
		}); err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}
		if !enricher.secondaryUsed {
			t.Error("expected secondary flag to reach the enricher")
		}
	})

	t.Run("Cancelled Context Stops Producing", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewExportEngine(newFakeEnricher(), logger)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := engine.BulkExport(ctx, nil, []int{220, 620}, BulkExportOpts{
			Format:    "json",
			OutputDir: dir,
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}
		if result.SuccessfulExports != 0 {
			t.Errorf("expected no exports after cancellation, got %+v", result)
		}
	})
}
