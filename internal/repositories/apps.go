package repositories

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/steamdex/internal/models"
)

// AppRepository implements the record store for [models.AppRecord].
//
// Rows are keyed by (appid, category). Inserts use INSERT OR IGNORE, so a
// record that already exists is left untouched: within one refresh run and
// across runs, the first write wins.
type AppRepository struct {
	db     *sql.DB
	logger *log.Logger
}

// NewAppRepository creates a new AppRepository with the given database connection
func NewAppRepository(db *sql.DB, logger *log.Logger) *AppRepository {
	return &AppRepository{db: db, logger: logger}
}

// BulkInsertIgnore inserts every record whose (id, category) key is not
// already present. Individual bad rows are logged and skipped; they never
// abort the rest of the batch. The whole batch commits in one transaction.
func (r *AppRepository) BulkInsertIgnore(records []models.AppRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO apps (appid, category, name, comparable_name)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			r.logger.Warnf("skipping invalid record %d: %v", rec.ID, err)
			continue
		}
		if _, err := stmt.Exec(rec.ID, rec.Category.String(), rec.Name, rec.ComparableName); err != nil {
			r.logger.Warnf("skipping record %d: %v", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bulk insert: %w", err)
	}

	return nil
}

// Count returns the number of stored records in the given category.
func (r *AppRepository) Count(category models.Category) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM apps WHERE category = ?", category.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count apps: %w", err)
	}
	return count, nil
}

// GetByID retrieves a record by id within a category.
// Returns (nil, nil) when no record matches; not-found is not an error.
func (r *AppRepository) GetByID(category models.Category, id int) (*models.AppRecord, error) {
	query := `
		SELECT appid, category, name, comparable_name
		FROM apps
		WHERE category = ? AND appid = ?
	`

	return r.scanOne(r.db.QueryRow(query, category.String(), id))
}

// GetByComparableName retrieves a record by its normalized name within a
// category. Comparable names are expected but not enforced to be unique,
// so the first match (lowest appid) wins.
// Returns (nil, nil) when no record matches.
func (r *AppRepository) GetByComparableName(category models.Category, comparableName string) (*models.AppRecord, error) {
	query := `
		SELECT appid, category, name, comparable_name
		FROM apps
		WHERE category = ? AND comparable_name = ?
		ORDER BY appid ASC
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRow(query, category.String(), comparableName))
}

// ListByCategory retrieves all records in a category in stable store order.
func (r *AppRepository) ListByCategory(category models.Category) ([]models.AppRecord, error) {
	query := `
		SELECT appid, category, name, comparable_name
		FROM apps
		WHERE category = ?
		ORDER BY appid ASC
	`

	rows, err := r.db.Query(query, category.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query apps: %w", err)
	}
	defer rows.Close()

	var records []models.AppRecord
	for rows.Next() {
		var rec models.AppRecord
		var cat string
		if err := rows.Scan(&rec.ID, &cat, &rec.Name, &rec.ComparableName); err != nil {
			return nil, fmt.Errorf("failed to scan app: %w", err)
		}
		rec.Category = models.Category(cat)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// scanOne scans a single [sql.Row] into a [models.AppRecord].
func (r *AppRepository) scanOne(row *sql.Row) (*models.AppRecord, error) {
	var rec models.AppRecord
	var cat string

	err := row.Scan(&rec.ID, &cat, &rec.Name, &rec.ComparableName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan app: %w", err)
	}

	rec.Category = models.Category(cat)
	return &rec, nil
}
