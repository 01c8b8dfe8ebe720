// Storefront appdetails implementation of [StorefrontClient]
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/desertthunder/steamdex/internal/shared"
)

const storefrontBaseURL = "https://store.steampowered.com"

// StorefrontService fetches per-app details from the storefront API.
// The appdetails response is a map keyed by the stringified app id, with a
// per-app success flag wrapping the actual payload.
type StorefrontService struct {
	baseURL    string
	httpClient *http.Client
}

var _ StorefrontClient = (*StorefrontService)(nil)

// NewStorefrontService creates a storefront client.
// baseURL overrides the production host (used by tests); pass "" for the default.
func NewStorefrontService(baseURL string, httpClient *http.Client) *StorefrontService {
	if baseURL == "" {
		baseURL = storefrontBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &StorefrontService{baseURL: baseURL, httpClient: httpClient}
}

// FetchDetails retrieves the type and DLC id list for one app.
// A success=false entry means the storefront has nothing for this id;
// that returns (nil, nil) rather than an error.
func (s *StorefrontService) FetchDetails(ctx context.Context, appID int) (*AppDetails, error) {
	apiURL := fmt.Sprintf("%s/api/appdetails?appids=%d", s.baseURL, appID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var payload map[string]struct {
		Success bool `json:"success"`
		Data    *struct {
			Type string `json:"type"`
			DLC  []int  `json:"dlc"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParseFailed, err)
	}

	entry, ok := payload[strconv.Itoa(appID)]
	if !ok {
		return nil, fmt.Errorf("%w: appdetails response missing app %d", shared.ErrParseFailed, appID)
	}
	if !entry.Success || entry.Data == nil {
		return nil, nil
	}

	return &AppDetails{Type: entry.Data.Type, DLC: entry.Data.DLC}, nil
}
