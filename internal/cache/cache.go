package cache

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/repositories"
	"github.com/desertthunder/steamdex/internal/services"
	"github.com/desertthunder/steamdex/internal/shared"
)

// Cache is the exposed interface to the application metadata cache.
// None of its operations abort the process: failures surface as error
// values or documented empty/absent results.
type Cache struct {
	db           *sql.DB
	apps         *repositories.AppRepository
	runs         *repositories.SyncRunRepository
	synchronizer *Synchronizer
	schema       services.SchemaClient
	storefront   services.StorefrontClient
	secondary    services.SecondarySource
	logger       *log.Logger
}

// Deps contains the collaborators a Cache is built from.
type Deps struct {
	Catalog    services.CatalogClient
	Schema     services.SchemaClient
	Storefront services.StorefrontClient
	Secondary  services.SecondarySource // may be nil when the secondary source is disabled
	DBPath     string                   // staleness clock; ":memory:" disables the mtime check
	MaxAge     time.Duration            // refresh window, defaults to 24h
	Logger     *log.Logger
}

// New creates a Cache over an open database connection.
func New(db *sql.DB, deps Deps) *Cache {
	if deps.Logger == nil {
		deps.Logger = shared.NewLogger(nil)
	}
	if deps.MaxAge <= 0 {
		deps.MaxAge = 24 * time.Hour
	}

	apps := repositories.NewAppRepository(db, deps.Logger)
	runs := repositories.NewSyncRunRepository(db)

	return &Cache{
		db:           db,
		apps:         apps,
		runs:         runs,
		synchronizer: NewSynchronizer(apps, runs, deps.Catalog, models.Categories, deps.DBPath, deps.MaxAge, deps.Logger),
		schema:       deps.Schema,
		storefront:   deps.Storefront,
		secondary:    deps.Secondary,
		logger:       deps.Logger,
	}
}

// Initialize creates the schema and refreshes the catalog when the cache is
// stale. It is idempotent: a fresh cache makes it a schema no-op.
//
// A failed category refresh surfaces here but leaves the other category's
// records and all existing rows usable.
func (c *Cache) Initialize(ctx context.Context) error {
	if err := shared.RunMigrations(c.db); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := c.synchronizer.RefreshIfStale(ctx); err != nil {
		return err
	}

	return nil
}

// Refresh forces a full catalog refresh regardless of staleness.
func (c *Cache) Refresh(ctx context.Context) error {
	return c.synchronizer.Refresh(ctx)
}

// SearchByName returns the Base-category records whose display name
// contains every whitespace-separated token of query, case-insensitively
// using ordinal comparison. Result order follows store iteration order.
//
// An empty or whitespace-only query matches nothing and returns an empty
// slice.
func (c *Cache) SearchByName(query string) ([]models.AppRecord, error) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return []models.AppRecord{}, nil
	}

	records, err := c.apps.ListByCategory(models.CategoryGame)
	if err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}

	matches := []models.AppRecord{}
	for _, rec := range records {
		name := strings.ToLower(rec.Name)
		matched := true
		for _, token := range tokens {
			if !strings.Contains(name, token) {
				matched = false
				break
			}
		}
		if matched {
			matches = append(matches, rec)
		}
	}

	return matches, nil
}

// FindByName resolves an exact display name to a Base-category record by
// normalizing it through the same comparable-name function used at
// ingestion. Returns (nil, nil) when no record matches.
func (c *Cache) FindByName(name string) (*models.AppRecord, error) {
	return c.apps.GetByComparableName(models.CategoryGame, models.ComparableName(name))
}

// FindByID resolves an app id to a Base-category record.
// Returns (nil, nil) when no record matches.
func (c *Cache) FindByID(id int) (*models.AppRecord, error) {
	return c.apps.GetByID(models.CategoryGame, id)
}

// Achievements retrieves the achievement definitions for a resolved app.
// A nil record yields an empty list with no remote call and no error;
// any fetch or parse failure for a real record surfaces to the caller.
func (c *Cache) Achievements(ctx context.Context, record *models.AppRecord) ([]models.AchievementDefinition, error) {
	if record == nil {
		return []models.AchievementDefinition{}, nil
	}

	definitions, err := c.schema.FetchAchievementSchema(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievement schema for app %d: %w", record.ID, err)
	}

	return definitions, nil
}

// SyncHistory returns the recorded catalog refresh runs, most recent first.
func (c *Cache) SyncHistory() ([]repositories.SyncRun, error) {
	return c.runs.List()
}
