package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/shared"
)

// SyncRun is one audit row describing a catalog refresh for a category.
type SyncRun struct {
	ID         string
	Category   models.Category
	StartedAt  time.Time
	FinishedAt *time.Time
	AppsSeen   int
	Status     string
	Error      string
}

const (
	SyncRunning   = "running"
	SyncSucceeded = "succeeded"
	SyncFailed    = "failed"
)

// SyncRunRepository persists refresh audit rows.
type SyncRunRepository struct {
	db *sql.DB
}

// NewSyncRunRepository creates a new SyncRunRepository with the given database connection
func NewSyncRunRepository(db *sql.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

// Start records the beginning of a refresh run and returns its generated id.
func (r *SyncRunRepository) Start(category models.Category) (string, error) {
	id := shared.GenerateID()

	_, err := r.db.Exec(
		"INSERT INTO sync_runs (id, category, started_at, status) VALUES (?, ?, ?, ?)",
		id, category.String(), time.Now().UTC(), SyncRunning,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert sync run: %w", err)
	}

	return id, nil
}

// Finish marks a run as succeeded with the number of catalog apps seen.
func (r *SyncRunRepository) Finish(id string, appsSeen int) error {
	return r.close(id, SyncSucceeded, appsSeen, "")
}

// Fail marks a run as failed with the fetch error's text.
func (r *SyncRunRepository) Fail(id string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return r.close(id, SyncFailed, 0, msg)
}

func (r *SyncRunRepository) close(id, status string, appsSeen int, errText string) error {
	result, err := r.db.Exec(
		"UPDATE sync_runs SET finished_at = ?, status = ?, apps_seen = ?, error = ? WHERE id = ?",
		time.Now().UTC(), status, appsSeen, errText, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update sync run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("sync run not found: %s", id)
	}

	return nil
}

// List retrieves all runs, most recent first.
func (r *SyncRunRepository) List() ([]SyncRun, error) {
	rows, err := r.db.Query(`
		SELECT id, category, started_at, finished_at, apps_seen, status, error
		FROM sync_runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer rows.Close()

	var runs []SyncRun
	for rows.Next() {
		var run SyncRun
		var cat string
		var finished sql.NullTime
		var errText sql.NullString
		if err := rows.Scan(&run.ID, &cat, &run.StartedAt, &finished, &run.AppsSeen, &run.Status, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}
		run.Category = models.Category(cat)
		if finished.Valid {
			run.FinishedAt = &finished.Time
		}
		run.Error = errText.String
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}
