// Steam Web API implementation of [CatalogClient] and [SchemaClient]
//
// Endpoint shapes based on https://steamapi.xpaw.me/ (IStoreService, ISteamUserStats)
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/shared"
	"golang.org/x/time/rate"
)

const (
	steamAPIBaseURL    = "https://api.steampowered.com"
	catalogEndpoint    = "/IStoreService/GetAppList/v1/"
	schemaEndpoint     = "/ISteamUserStats/GetSchemaForGame/v2/"
	defaultPageResults = 10000
)

// SteamService talks to the Steam Web API with a static key. One shared
// [rate.Limiter] covers catalog pagination and schema calls so bursts of
// per-app enrichment stay inside the API's request budget.
type SteamService struct {
	baseURL    string
	apiKey     string
	locale     string
	pageSize   int
	httpClient *http.Client
	limiter    *rate.Limiter
}

var (
	_ CatalogClient = (*SteamService)(nil)
	_ SchemaClient  = (*SteamService)(nil)
)

// NewSteamService creates a Steam Web API client from config.
// baseURL overrides the production API host (used by tests); pass "" for the default.
func NewSteamService(baseURL string, cfg shared.SteamConfig, httpClient *http.Client) *SteamService {
	if baseURL == "" {
		baseURL = steamAPIBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4.0
	}
	pageSize := cfg.MaxPageResults
	if pageSize <= 0 {
		pageSize = defaultPageResults
	}
	locale := cfg.Locale
	if locale == "" {
		locale = "english"
	}

	return &SteamService{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		locale:     locale,
		pageSize:   pageSize,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// doRequest performs a rate-limited GET against the Steam API and decodes
// the JSON response into result.
func (s *SteamService) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	apiURL := s.baseURL + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrParseFailed, err)
	}

	return nil
}

// catalogApp mirrors one raw app entry in either catalog response shape.
type catalogApp struct {
	AppID int    `json:"appid"`
	Name  string `json:"name"`
}

// catalogEnvelope accepts both known catalog response shapes as a tagged
// union: the newer one nests apps and paging metadata under "response",
// the legacy one nests apps under "applist" with paging fields at the top
// level. Exactly one of the two pointers is set on a well-formed body.
type catalogEnvelope struct {
	Response *struct {
		Apps            []catalogApp `json:"apps"`
		HaveMoreResults bool         `json:"have_more_results"`
		LastAppID       int          `json:"last_appid"`
	} `json:"response"`

	Applist *struct {
		Apps []catalogApp `json:"apps"`
	} `json:"applist"`
	HaveMoreResults bool `json:"have_more_results"`
	LastAppID       int  `json:"last_appid"`
}

// FetchPage requests one catalog page for a category. The category maps onto
// the endpoint's include_games/include_dlc parameters; the cursor is passed
// as last_appid and omitted entirely on the first page.
func (s *SteamService) FetchPage(ctx context.Context, category models.Category, lastAppID int) (*CatalogPage, error) {
	query := url.Values{}
	query.Set("key", s.apiKey)
	query.Set("max_results", strconv.Itoa(s.pageSize))
	switch category {
	case models.CategoryGame:
		query.Set("include_games", "1")
		query.Set("include_dlc", "0")
	case models.CategoryDLC:
		query.Set("include_games", "0")
		query.Set("include_dlc", "1")
	default:
		return nil, fmt.Errorf("%w: unknown category %q", shared.ErrInvalidInput, category)
	}
	if lastAppID > 0 {
		query.Set("last_appid", strconv.Itoa(lastAppID))
	}

	var envelope catalogEnvelope
	if err := s.doRequest(ctx, catalogEndpoint, query, &envelope); err != nil {
		return nil, err
	}

	return decodeCatalogPage(&envelope)
}

// decodeCatalogPage normalizes either envelope variant into a [CatalogPage],
// trying the newer shape first.
func decodeCatalogPage(envelope *catalogEnvelope) (*CatalogPage, error) {
	var raw []catalogApp
	page := &CatalogPage{}

	switch {
	case envelope.Response != nil:
		raw = envelope.Response.Apps
		page.HaveMore = envelope.Response.HaveMoreResults
		page.LastAppID = envelope.Response.LastAppID
	case envelope.Applist != nil:
		raw = envelope.Applist.Apps
		page.HaveMore = envelope.HaveMoreResults
		page.LastAppID = envelope.LastAppID
	default:
		return nil, fmt.Errorf("%w: catalog response matched neither known shape", shared.ErrParseFailed)
	}

	page.Apps = make([]App, 0, len(raw))
	for _, app := range raw {
		page.Apps = append(page.Apps, App{ID: app.AppID, Name: app.Name})
	}

	return page, nil
}

// FetchAchievementSchema retrieves the achievement definitions for one app
// from the game schema endpoint.
//
// A response missing the game.availableGameStats path is a parse failure;
// the method never substitutes defaults for a malformed body.
func (s *SteamService) FetchAchievementSchema(ctx context.Context, appID int) ([]models.AchievementDefinition, error) {
	query := url.Values{}
	query.Set("key", s.apiKey)
	query.Set("appid", strconv.Itoa(appID))
	query.Set("l", s.locale)

	var payload struct {
		Game *struct {
			AvailableGameStats *struct {
				Achievements []models.AchievementDefinition `json:"achievements"`
			} `json:"availableGameStats"`
		} `json:"game"`
	}

	if err := s.doRequest(ctx, schemaEndpoint, query, &payload); err != nil {
		return nil, err
	}

	if payload.Game == nil || payload.Game.AvailableGameStats == nil {
		return nil, fmt.Errorf("%w: schema for app %d missing game.availableGameStats", shared.ErrParseFailed, appID)
	}

	return payload.Game.AvailableGameStats.Achievements, nil
}
