package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/steamdex/internal/formatter"
	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/shared"
	"golang.org/x/time/rate"
)

// Enricher is the subset of the cache facade the export engine needs.
type Enricher interface {
	FindByID(id int) (*models.AppRecord, error)
	Achievements(ctx context.Context, record *models.AppRecord) ([]models.AchievementDefinition, error)
	Dlc(ctx context.Context, record *models.AppRecord, useSecondary bool) ([]models.DlcEntry, error)
}

// ExportEngine runs bulk enrichment exports over the catalog cache.
type ExportEngine struct {
	enricher Enricher
	logger   *log.Logger
}

// NewExportEngine creates an ExportEngine over the given cache facade.
func NewExportEngine(enricher Enricher, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExportEngine{enricher: enricher, logger: logger}
}

// BulkExportOpts contains configuration for bulk app exports.
type BulkExportOpts struct {
	Format       string  // Export format: json, csv, markdown, txt
	OutputDir    string  // Base output directory (default: steamdex_export_{epoch})
	NumWorkers   int     // Concurrent file writers (default: 5)
	RateLimit    float64 // Enrichment requests per second (default: 4)
	UseSecondary bool    // Enrich DLC names from the secondary source
}

// AppExportJob carries one resolved app's enrichment data to a writer worker.
type AppExportJob struct {
	AppID  int
	Export *formatter.AppExport
}

// AppExportResult describes the outcome of exporting a single app.
type AppExportResult struct {
	AppID   int      `json:"appid"`
	AppName string   `json:"name"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   error    `json:"-"`
	Cause   string   `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	TotalApps         int               `json:"total_apps"`
	SuccessfulExports int               `json:"successful_exports"`
	FailedExports     int               `json:"failed_exports"`
	OutputDirectory   string            `json:"output_directory"`
	ManifestPath      string            `json:"manifest_path,omitempty"`
	Results           []AppExportResult `json:"results"`
}

// BulkExport exports enrichment data for multiple apps concurrently with rate limiting and progress tracking.
//
// Enrichment fetches run sequentially behind a rate limiter; file writing
// fans out to a bounded worker pool. Partial failures are recorded per app
// and never abort the run.
func (e *ExportEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []int,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.enricher == nil {
		return nil, fmt.Errorf("%w: cache not initialized", shared.ErrInvalidInput)
	}

	if opts.Format == "" {
		opts.Format = "json"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("steamdex_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 4.0
	}

	result := &BulkExportResult{
		TotalApps:       len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]AppExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan AppExportJob, len(ids))
	results := make(chan AppExportResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(&wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		e.sendProgress(prog, resolvingUpdate(0, len(ids)))

		for i, appID := range ids {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			export, err := e.fetchOne(ctx, appID, opts.UseSecondary)
			if err != nil {
				results <- AppExportResult{
					AppID:   appID,
					AppName: fmt.Sprintf("Unknown (%d)", appID),
					Success: false,
					Error:   err,
					Cause:   err.Error(),
				}
				continue
			}

			e.sendProgress(prog, fetchingUpdate(i+1, len(ids), export.App.Name))
			jobs <- AppExportJob{AppID: appID, Export: export}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.AppName, len(res.Files)))
		} else {
			result.FailedExports++
			e.logger.Warnf("export failed for %s: %v", res.AppName, res.Error)
			e.sendProgress(prog, exportFailedUpdate(completed, len(ids), res.AppName, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteBulkExportManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// fetchOne resolves an app and gathers its enrichment data.
func (e *ExportEngine) fetchOne(ctx context.Context, appID int, useSecondary bool) (*formatter.AppExport, error) {
	record, err := e.enricher.FindByID(appID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve app %d: %w", appID, err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: app %d is not cached", shared.ErrInvalidInput, appID)
	}

	achievements, err := e.enricher.Achievements(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievements for %d: %w", appID, err)
	}

	dlc, err := e.enricher.Dlc(ctx, record, useSecondary)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile dlc for %d: %w", appID, err)
	}

	return &formatter.AppExport{App: *record, Achievements: achievements, Dlc: dlc}, nil
}

// exportWorker is a worker goroutine that writes export files from the jobs channel.
func (e *ExportEngine) exportWorker(
	wg *sync.WaitGroup,
	jobs <-chan AppExportJob,
	results chan<- AppExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		res := AppExportResult{
			AppID:   job.AppID,
			AppName: job.Export.App.Name,
		}

		files, err := formatter.WriteExport(job.Export, opts.OutputDir, opts.Format)
		if err != nil {
			res.Error = err
			res.Cause = err.Error()
		} else {
			res.Success = true
			res.Files = files
		}

		results <- res
	}
}

// sendProgress sends an update without blocking when the consumer lags.
func (e *ExportEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}

	select {
	case prog <- update:
	default:
	}
}
