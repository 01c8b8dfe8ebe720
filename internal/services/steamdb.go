// SteamDB scraping implementation of [SecondarySource]
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/steamdex/internal/shared"
	"github.com/gocolly/colly/v2"
)

const (
	steamDBBaseURL   = "https://steamdb.info"
	steamDBUserAgent = "steamdex/1.0 (+https://github.com/desertthunder/steamdex)"
	defaultTimeout   = 15 * time.Second
)

// SteamDBService scrapes an app's DLC listing from its SteamDB page.
//
// The page contract is a #dlc section containing .app rows, each carrying a
// data-appid attribute and a name cell. These selectors are load-bearing and
// owned by a third party: when they stop matching, every call degrades to
// [shared.ErrSecondaryUnavailable] instead of failing the reconciliation
// that asked for the data.
type SteamDBService struct {
	baseURL string
	timeout time.Duration
	logger  *log.Logger
}

var _ SecondarySource = (*SteamDBService)(nil)

// NewSteamDBService creates a SteamDB scraper from config.
// baseURL overrides the production host (used by tests); pass "" for the default.
func NewSteamDBService(baseURL string, timeout time.Duration, logger *log.Logger) *SteamDBService {
	if baseURL == "" {
		baseURL = steamDBBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &SteamDBService{baseURL: baseURL, timeout: timeout, logger: logger}
}

// FetchDlcNames scrapes the (id, name) DLC rows for one app.
//
// Rows with a non-numeric data-appid are reported and skipped; they never
// abort the scrape. A page without the #dlc section, or any transport
// failure, returns an error wrapping [shared.ErrSecondaryUnavailable].
func (s *SteamDBService) FetchDlcNames(ctx context.Context, appID int) ([]DlcName, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSecondaryUnavailable, err)
	}

	collector := colly.NewCollector(
		colly.UserAgent(steamDBUserAgent),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(s.timeout)

	var (
		names        []DlcName
		sectionFound bool
		visitErr     error
	)

	collector.OnHTML("#dlc", func(*colly.HTMLElement) {
		sectionFound = true
	})

	collector.OnHTML("#dlc .app", func(e *colly.HTMLElement) {
		raw := strings.TrimSpace(e.Attr("data-appid"))
		id, err := strconv.Atoi(raw)
		if err != nil {
			s.logger.Warnf("skipping scraped dlc row with non-numeric appid %q", raw)
			return
		}
		name := strings.TrimSpace(e.ChildText("td:nth-child(2)"))
		names = append(names, DlcName{ID: id, Name: name})
	})

	collector.OnError(func(_ *colly.Response, err error) {
		visitErr = err
	})

	pageURL := fmt.Sprintf("%s/app/%d/dlc/", s.baseURL, appID)
	if err := collector.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSecondaryUnavailable, err)
	}
	collector.Wait()

	if visitErr != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSecondaryUnavailable, visitErr)
	}
	if !sectionFound {
		return nil, fmt.Errorf("%w: no dlc section on page for app %d", shared.ErrSecondaryUnavailable, appID)
	}

	return names, nil
}
