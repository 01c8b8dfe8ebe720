package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/repositories"
	"github.com/desertthunder/steamdex/internal/services"
	"github.com/desertthunder/steamdex/internal/shared"
)

// Synchronizer keeps the record store fresh against the remote catalog.
//
// The category list is explicit configuration handed in at construction;
// there is no process-wide registry. Each category refreshes independently:
// a page failure discards that category's partial catalog and moves on to
// the next category, and the joined errors surface to the caller.
type Synchronizer struct {
	apps       *repositories.AppRepository
	runs       *repositories.SyncRunRepository
	client     services.CatalogClient
	categories []models.Category
	dbPath     string
	maxAge     time.Duration
	logger     *log.Logger
}

// NewSynchronizer creates a Synchronizer for the given categories.
func NewSynchronizer(
	apps *repositories.AppRepository,
	runs *repositories.SyncRunRepository,
	client services.CatalogClient,
	categories []models.Category,
	dbPath string,
	maxAge time.Duration,
	logger *log.Logger,
) *Synchronizer {
	return &Synchronizer{
		apps:       apps,
		runs:       runs,
		client:     client,
		categories: categories,
		dbPath:     dbPath,
		maxAge:     maxAge,
		logger:     logger,
	}
}

// RefreshIfStale refreshes the catalog when the staleness policy demands it
// and reports whether a refresh ran. The cache is stale when the database
// file's last-modified time is older than the configured window, or when
// either category holds zero records.
func (s *Synchronizer) RefreshIfStale(ctx context.Context) (bool, error) {
	stale, reason, err := s.stale()
	if err != nil {
		return false, err
	}
	if !stale {
		s.logger.Debug("catalog cache is fresh, skipping refresh")
		return false, nil
	}

	s.logger.Infof("refreshing catalog cache: %s", reason)
	return true, s.Refresh(ctx)
}

// stale evaluates the staleness policy and names the triggering condition.
func (s *Synchronizer) stale() (bool, string, error) {
	modified := shared.ModifiedAt(s.dbPath)
	if modified.IsZero() {
		return true, "no database file", nil
	}
	if age := time.Since(modified); age > s.maxAge {
		return true, fmt.Sprintf("database %s old", age.Round(time.Minute)), nil
	}

	for _, category := range s.categories {
		count, err := s.apps.Count(category)
		if err != nil {
			return false, "", fmt.Errorf("failed to count %s records: %w", category, err)
		}
		if count == 0 {
			return true, fmt.Sprintf("no %s records", category), nil
		}
	}

	return false, "", nil
}

// Refresh pulls the full remote catalog for every configured category and
// bulk-loads it. Categories fail independently; the combined error is
// returned after all categories have been attempted.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	var errs []error

	for _, category := range s.categories {
		runID, err := s.runs.Start(category)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", category, err))
			continue
		}

		inserted, err := s.refreshCategory(ctx, category)
		if err != nil {
			s.logger.Errorf("catalog refresh failed for %s: %v", category, err)
			if failErr := s.runs.Fail(runID, err); failErr != nil {
				s.logger.Warnf("failed to record sync failure: %v", failErr)
			}
			errs = append(errs, fmt.Errorf("%s: %w", category, err))
			continue
		}

		s.logger.Infof("refreshed %s catalog: %d records", category, inserted)
		if finishErr := s.runs.Finish(runID, inserted); finishErr != nil {
			s.logger.Warnf("failed to record sync completion: %v", finishErr)
		}
	}

	return errors.Join(errs...)
}

// refreshCategory fetches every catalog page for one category and commits
// the deduplicated records in a single bulk insert. Nothing is committed
// when any page fails.
func (s *Synchronizer) refreshCategory(ctx context.Context, category models.Category) (int, error) {
	apps, err := s.fetchAll(ctx, category)
	if err != nil {
		return 0, err
	}

	records := normalize(apps, category)
	if err := s.apps.BulkInsertIgnore(records); err != nil {
		return 0, fmt.Errorf("failed to load %s records: %w", category, err)
	}

	return len(records), nil
}

// fetchAll walks the category's cursor pagination until the remote reports
// no more results, accumulating every page (the last one included).
func (s *Synchronizer) fetchAll(ctx context.Context, category models.Category) ([]services.App, error) {
	var apps []services.App
	lastAppID := 0

	for {
		page, err := s.client.FetchPage(ctx, category, lastAppID)
		if err != nil {
			return nil, err
		}

		apps = append(apps, page.Apps...)

		if !page.HaveMore {
			return apps, nil
		}
		if page.LastAppID <= lastAppID {
			return nil, fmt.Errorf("%w: pagination cursor did not advance past %d", shared.ErrParseFailed, lastAppID)
		}
		lastAppID = page.LastAppID
	}
}

// normalize deduplicates raw catalog apps by id (first occurrence wins) and
// tags them with the category and derived comparable name.
func normalize(apps []services.App, category models.Category) []models.AppRecord {
	seen := make(map[int]bool, len(apps))
	records := make([]models.AppRecord, 0, len(apps))

	for _, app := range apps {
		if seen[app.ID] {
			continue
		}
		seen[app.ID] = true
		records = append(records, models.NewAppRecord(app.ID, app.Name, category))
	}

	return records
}
