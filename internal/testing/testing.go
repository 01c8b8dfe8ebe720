// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/services"
)

// MockCatalogClient is a test double for [services.CatalogClient].
// Pages are served in order per category; Err short-circuits every call.
type MockCatalogClient struct {
	Pages map[models.Category][]*services.CatalogPage
	Err   error
	Calls int

	cursor map[models.Category]int
}

func (m *MockCatalogClient) FetchPage(ctx context.Context, category models.Category, lastAppID int) (*services.CatalogPage, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}

	if m.cursor == nil {
		m.cursor = make(map[models.Category]int)
	}

	pages := m.Pages[category]
	i := m.cursor[category]
	if i >= len(pages) {
		return &services.CatalogPage{}, nil
	}
	m.cursor[category] = i + 1
	return pages[i], nil
}

// MockSchemaClient is a test double for [services.SchemaClient]
type MockSchemaClient struct {
	Definitions []models.AchievementDefinition
	Err         error
	Calls       int
}

func (m *MockSchemaClient) FetchAchievementSchema(ctx context.Context, appID int) ([]models.AchievementDefinition, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Definitions, nil
}

// MockStorefrontClient is a test double for [services.StorefrontClient]
type MockStorefrontClient struct {
	Details *services.AppDetails
	Err     error
	Calls   int
}

func (m *MockStorefrontClient) FetchDetails(ctx context.Context, appID int) (*services.AppDetails, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Details, nil
}

// MockSecondarySource is a test double for [services.SecondarySource].
// Calls counts invocations so tests can assert the source was never hit.
type MockSecondarySource struct {
	Names []services.DlcName
	Err   error
	Calls int
}

func (m *MockSecondarySource) FetchDlcNames(ctx context.Context, appID int) ([]services.DlcName, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Names, nil
}

// LimitedWriter succeeds for a fixed number of Write calls, then fails.
type LimitedWriter struct {
	succeed int
	calls   int
	w       io.Writer
}

func NewLimitedWriter(succeed, calls int, w io.Writer) LimitedWriter {
	return LimitedWriter{succeed: succeed, calls: calls, w: w}
}

func (l *LimitedWriter) Write(p []byte) (int, error) {
	l.calls++
	if l.calls > l.succeed {
		return 0, errors.New("write limit reached")
	}
	return l.w.Write(p)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
