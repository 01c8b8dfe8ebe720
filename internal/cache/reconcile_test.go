package cache

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/services"
	tu "github.com/desertthunder/steamdex/internal/testing"
)

func gameRecord() *models.AppRecord {
	rec := models.NewAppRecord(220, "Half-Life 2", models.CategoryGame)
	return &rec
}

func TestDlc(t *testing.T) {
	t.Run("Resolves Cached Names And Placeholders", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{
			Details: &services.AppDetails{Type: "game", DLC: []int{323140, 999999}},
		}
		c, _ := newTestCache(t, Deps{Storefront: storefront})
		seedGames(t, c, models.NewAppRecord(323140, "Half-Life 2: Soundtrack", models.CategoryDLC))

		entries, err := c.Dlc(context.Background(), gameRecord(), false)
		if err != nil {
			t.Fatalf("reconciliation failed: %v", err)
		}

		want := []models.DlcEntry{
			{ID: 323140, Name: "Half-Life 2: Soundtrack"},
			{ID: 999999, Name: "Unknown DLC 999999"},
		}
		if !reflect.DeepEqual(entries, want) {
			t.Errorf("expected %+v, got %+v", want, entries)
		}
	})

	t.Run("Duplicate Ids Collapse", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{
			Details: &services.AppDetails{Type: "game", DLC: []int{5, 5, 7, 5}},
		}
		c, _ := newTestCache(t, Deps{Storefront: storefront})

		entries, err := c.Dlc(context.Background(), gameRecord(), false)
		if err != nil {
			t.Fatalf("reconciliation failed: %v", err)
		}
		if len(entries) != 2 || entries[0].ID != 5 || entries[1].ID != 7 {
			t.Errorf("expected unique ids [5 7], got %+v", entries)
		}
	})

	t.Run("Nil Record Yields Empty", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{}
		c, _ := newTestCache(t, Deps{Storefront: storefront})

		entries, err := c.Dlc(context.Background(), nil, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty list, got %+v", entries)
		}
		if storefront.Calls != 0 {
			t.Errorf("expected no storefront call, got %d", storefront.Calls)
		}
	})

	t.Run("Non Game Type Yields Empty", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{
			Details: &services.AppDetails{Type: "dlc", DLC: []int{5}},
		}
		c, _ := newTestCache(t, Deps{Storefront: storefront})

		entries, err := c.Dlc(context.Background(), gameRecord(), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty list, got %+v", entries)
		}
	})

	t.Run("Absent Details Yield Empty", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{Details: nil}
		c, _ := newTestCache(t, Deps{Storefront: storefront})

		entries, err := c.Dlc(context.Background(), gameRecord(), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty list, got %+v", entries)
		}
	})

	t.Run("Storefront Failure Surfaces", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{Err: errors.New("storefront down")}
		c, _ := newTestCache(t, Deps{Storefront: storefront})

		if _, err := c.Dlc(context.Background(), gameRecord(), false); err == nil {
			t.Error("expected storefront error to surface")
		}
	})

	t.Run("Secondary Not Consulted When Disabled", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{
			Details: &services.AppDetails{Type: "game", DLC: []int{5}},
		}
		secondary := &tu.MockSecondarySource{
			Names: []services.DlcName{{ID: 5, Name: "Should Not Appear"}},
		}
		c, _ := newTestCache(t, Deps{Storefront: storefront, Secondary: secondary})

		entries, err := c.Dlc(context.Background(), gameRecord(), false)
		if err != nil {
			t.Fatalf("reconciliation failed: %v", err)
		}
		if secondary.Calls != 0 {
			t.Errorf("expected secondary source untouched, got %d calls", secondary.Calls)
		}
		if entries[0].Name != "Unknown DLC 5" {
			t.Errorf("expected placeholder untouched, got %q", entries[0].Name)
		}
	})

	t.Run("Secondary Fills Placeholders And Appends Novel Ids", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{
			Details: &services.AppDetails{Type: "game", DLC: []int{1, 2}},
		}
		secondary := &tu.MockSecondarySource{
			Names: []services.DlcName{
				{ID: 1, Name: "Real Pack"},
				{ID: 3, Name: "New Pack"},
			},
		}
		c, _ := newTestCache(t, Deps{Storefront: storefront, Secondary: secondary})
		seedGames(t, c, models.NewAppRecord(2, "Pack", models.CategoryDLC))

		entries, err := c.Dlc(context.Background(), gameRecord(), true)
		if err != nil {
			t.Fatalf("reconciliation failed: %v", err)
		}

		want := []models.DlcEntry{
			{ID: 1, Name: "Real Pack"},
			{ID: 2, Name: "Pack"},
			{ID: 3, Name: "New Pack"},
		}
		if !reflect.DeepEqual(entries, want) {
			t.Errorf("expected %+v, got %+v", want, entries)
		}
	})

	t.Run("Scraped Name Never Overrides Cached Name", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{
			Details: &services.AppDetails{Type: "game", DLC: []int{2}},
		}
		secondary := &tu.MockSecondarySource{
			Names: []services.DlcName{{ID: 2, Name: "Scraped Name"}},
		}
		c, _ := newTestCache(t, Deps{Storefront: storefront, Secondary: secondary})
		seedGames(t, c, models.NewAppRecord(2, "Authoritative Name", models.CategoryDLC))

		entries, err := c.Dlc(context.Background(), gameRecord(), true)
		if err != nil {
			t.Fatalf("reconciliation failed: %v", err)
		}
		if entries[0].Name != "Authoritative Name" {
			t.Errorf("expected cached name kept, got %q", entries[0].Name)
		}
	})

	t.Run("Empty Scraped Name Leaves Placeholder", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{
			Details: &services.AppDetails{Type: "game", DLC: []int{5}},
		}
		secondary := &tu.MockSecondarySource{
			Names: []services.DlcName{{ID: 5, Name: ""}},
		}
		c, _ := newTestCache(t, Deps{Storefront: storefront, Secondary: secondary})

		entries, err := c.Dlc(context.Background(), gameRecord(), true)
		if err != nil {
			t.Fatalf("reconciliation failed: %v", err)
		}
		if entries[0].Name != "Unknown DLC 5" {
			t.Errorf("expected placeholder kept, got %q", entries[0].Name)
		}
	})

	t.Run("Secondary Failure Keeps Authoritative Result", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{
			Details: &services.AppDetails{Type: "game", DLC: []int{5}},
		}
		secondary := &tu.MockSecondarySource{Err: errors.New("scrape blocked")}
		c, _ := newTestCache(t, Deps{Storefront: storefront, Secondary: secondary})

		entries, err := c.Dlc(context.Background(), gameRecord(), true)
		if err != nil {
			t.Fatalf("expected soft failure, got %v", err)
		}
		if len(entries) != 1 || entries[0].Name != "Unknown DLC 5" {
			t.Errorf("expected authoritative entries unchanged, got %+v", entries)
		}
	})

	t.Run("Secondary Unconfigured Keeps Authoritative Result", func(t *testing.T) {
		storefront := &tu.MockStorefrontClient{
			Details: &services.AppDetails{Type: "game", DLC: []int{5}},
		}
		c, _ := newTestCache(t, Deps{Storefront: storefront})

		entries, err := c.Dlc(context.Background(), gameRecord(), true)
		if err != nil {
			t.Fatalf("expected soft failure, got %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected authoritative entries, got %+v", entries)
		}
	})
}
