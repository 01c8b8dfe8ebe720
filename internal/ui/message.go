package ui

import (
	"github.com/desertthunder/steamdex/internal/models"
)

// resultsFetchedMsg carries search results from the cache.
type resultsFetchedMsg struct {
	query   string
	records []models.AppRecord
	err     error
}

// detailFetchedMsg carries achievements and reconciled DLC for one game.
type detailFetchedMsg struct {
	achievements []models.AchievementDefinition
	dlc          []models.DlcEntry
	err          error
}
