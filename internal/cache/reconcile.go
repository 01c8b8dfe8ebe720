package cache

import (
	"context"
	"fmt"

	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/services"
)

// Dlc reconciles the DLC listing for a resolved base-game record.
//
// The storefront's id list is authoritative: each id resolves against the
// record store in input order, sequentially and fully awaited, with cache
// misses synthesized as "Unknown DLC {id}" placeholders. Duplicate ids in
// the storefront list collapse to their first occurrence, keeping result
// ids unique. When useSecondary is set, scraped (id, name) rows fill gaps:
// a scraped name replaces a placeholder, never an already-named entry, and
// novel ids are appended after the authoritative ordering.
//
// Soft failures return an empty (or unenriched) list with a log entry: a
// nil record, a storefront type other than "game", or any secondary-source
// failure. Storefront fetch/parse errors surface to the caller.
func (c *Cache) Dlc(ctx context.Context, record *models.AppRecord, useSecondary bool) ([]models.DlcEntry, error) {
	if record == nil {
		c.logger.Warn("dlc reconciliation requested without a resolved app")
		return []models.DlcEntry{}, nil
	}

	details, err := c.storefront.FetchDetails(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch storefront details for app %d: %w", record.ID, err)
	}
	if details == nil {
		c.logger.Warnf("storefront has no details for app %d, skipping dlc reconciliation", record.ID)
		return []models.DlcEntry{}, nil
	}
	if details.Type != "game" {
		c.logger.Warnf("app %d is %q, not a base game; skipping dlc reconciliation", record.ID, details.Type)
		return []models.DlcEntry{}, nil
	}

	entries, err := c.resolveDlcIDs(details.DLC)
	if err != nil {
		return nil, err
	}

	if !useSecondary {
		return entries, nil
	}
	if c.secondary == nil {
		c.logger.Warn("secondary dlc source requested but not configured")
		return entries, nil
	}

	scraped, err := c.secondary.FetchDlcNames(ctx, record.ID)
	if err != nil {
		c.logger.Errorf("secondary dlc source failed for app %d: %v", record.ID, err)
		return entries, nil
	}

	return mergeSecondary(entries, scraped), nil
}

// resolveDlcIDs looks each authoritative id up in the DLC category of the
// record store, preserving input order and collapsing duplicates.
func (c *Cache) resolveDlcIDs(ids []int) ([]models.DlcEntry, error) {
	entries := make([]models.DlcEntry, 0, len(ids))
	seen := make(map[int]bool, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		rec, err := c.apps.GetByID(models.CategoryDLC, id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve dlc %d: %w", id, err)
		}

		name := models.PlaceholderDlcName(id)
		if rec != nil {
			name = rec.Name
		}
		entries = append(entries, models.DlcEntry{ID: id, Name: name})
	}

	return entries, nil
}

// mergeSecondary folds scraped rows into the authoritative result:
// placeholders gain scraped names, named entries win over scraped ones,
// and unknown ids are appended in scrape order.
func mergeSecondary(entries []models.DlcEntry, scraped []services.DlcName) []models.DlcEntry {
	index := make(map[int]int, len(entries))
	for i, entry := range entries {
		index[entry.ID] = i
	}

	for _, row := range scraped {
		if i, ok := index[row.ID]; ok {
			if entries[i].IsPlaceholder() && row.Name != "" {
				entries[i].Name = row.Name
			}
			continue
		}
		index[row.ID] = len(entries)
		entries = append(entries, models.DlcEntry{ID: row.ID, Name: row.Name})
	}

	return entries
}
