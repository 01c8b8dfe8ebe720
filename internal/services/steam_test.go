package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/shared"
)

func newTestSteamService(url string) *SteamService {
	return NewSteamService(url, shared.SteamConfig{
		APIKey:            "TESTKEY",
		Locale:            "english",
		RequestsPerSecond: 1000,
	}, nil)
}

func TestSteamServiceFetchPage(t *testing.T) {
	t.Run("Newer Response Shape", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("key"); got != "TESTKEY" {
				t.Errorf("expected api key in query, got %q", got)
			}
			if got := r.URL.Query().Get("include_games"); got != "1" {
				t.Errorf("expected include_games=1, got %q", got)
			}
			if r.URL.Query().Has("last_appid") {
				t.Error("first page should omit the last_appid cursor")
			}

			fmt.Fprint(w, `{"response":{"apps":[{"appid":220,"name":"Half-Life 2"},{"appid":400,"name":"Portal"}],"have_more_results":true,"last_appid":400}}`)
		}))
		defer server.Close()

		srv := newTestSteamService(server.URL)
		page, err := srv.FetchPage(context.Background(), models.CategoryGame, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(page.Apps) != 2 {
			t.Fatalf("expected 2 apps, got %d", len(page.Apps))
		}
		if !page.HaveMore {
			t.Error("expected have-more flag to be set")
		}
		if page.LastAppID != 400 {
			t.Errorf("expected cursor 400, got %d", page.LastAppID)
		}
	})

	t.Run("Legacy Response Shape", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"applist":{"apps":[{"appid":10,"name":"Counter-Strike"}]},"have_more_results":false,"last_appid":10}`)
		}))
		defer server.Close()

		srv := newTestSteamService(server.URL)
		page, err := srv.FetchPage(context.Background(), models.CategoryGame, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(page.Apps) != 1 || page.Apps[0].Name != "Counter-Strike" {
			t.Fatalf("unexpected apps: %+v", page.Apps)
		}
		if page.HaveMore {
			t.Error("expected have-more flag to be false")
		}
	})

	t.Run("Subsequent Page Sends Cursor", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("last_appid"); got != "400" {
				t.Errorf("expected last_appid=400, got %q", got)
			}
			fmt.Fprint(w, `{"response":{"apps":[],"have_more_results":false,"last_appid":400}}`)
		}))
		defer server.Close()

		srv := newTestSteamService(server.URL)
		if _, err := srv.FetchPage(context.Background(), models.CategoryGame, 400); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("DLC Category Parameters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("include_dlc"); got != "1" {
				t.Errorf("expected include_dlc=1, got %q", got)
			}
			if got := r.URL.Query().Get("include_games"); got != "0" {
				t.Errorf("expected include_games=0, got %q", got)
			}
			fmt.Fprint(w, `{"response":{"apps":[]}}`)
		}))
		defer server.Close()

		srv := newTestSteamService(server.URL)
		if _, err := srv.FetchPage(context.Background(), models.CategoryDLC, 0); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Unrecognized Shape", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"unexpected":true}`)
		}))
		defer server.Close()

		srv := newTestSteamService(server.URL)
		_, err := srv.FetchPage(context.Background(), models.CategoryGame, 0)
		if !errors.Is(err, shared.ErrParseFailed) {
			t.Errorf("expected ErrParseFailed, got %v", err)
		}
	})

	t.Run("Non-Success Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		srv := newTestSteamService(server.URL)
		_, err := srv.FetchPage(context.Background(), models.CategoryGame, 0)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestSteamServiceFetchAchievementSchema(t *testing.T) {
	t.Run("Valid Schema", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("appid"); got != "220" {
				t.Errorf("expected appid=220, got %q", got)
			}
			if got := r.URL.Query().Get("l"); got != "english" {
				t.Errorf("expected l=english, got %q", got)
			}
			fmt.Fprint(w, `{"game":{"availableGameStats":{"achievements":[
				{"name":"HL2_KILL_ODESSAGUNSHIP","displayName":"Defend Little Odessa","description":"","icon":"http://example.com/a.jpg","icongray":"http://example.com/b.jpg","hidden":0}
			]}}}`)
		}))
		defer server.Close()

		srv := newTestSteamService(server.URL)
		achievements, err := srv.FetchAchievementSchema(context.Background(), 220)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(achievements) != 1 {
			t.Fatalf("expected 1 achievement, got %d", len(achievements))
		}
		if achievements[0].DisplayName != "Defend Little Odessa" {
			t.Errorf("unexpected display name %q", achievements[0].DisplayName)
		}
	})

	t.Run("Missing Nested Path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"game":{}}`)
		}))
		defer server.Close()

		srv := newTestSteamService(server.URL)
		_, err := srv.FetchAchievementSchema(context.Background(), 220)
		if !errors.Is(err, shared.ErrParseFailed) {
			t.Errorf("expected ErrParseFailed, got %v", err)
		}
	})

	t.Run("Malformed Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json at all`)
		}))
		defer server.Close()

		srv := newTestSteamService(server.URL)
		_, err := srv.FetchAchievementSchema(context.Background(), 220)
		if !errors.Is(err, shared.ErrParseFailed) {
			t.Errorf("expected ErrParseFailed, got %v", err)
		}
	})
}
