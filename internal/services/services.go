package services

import (
	"context"

	"github.com/desertthunder/steamdex/internal/models"
)

// CatalogClient fetches one cursor-paginated page of the remote app catalog.
// Pagination within a category is strictly sequential: each call's cursor
// comes from the previous page's response.
type CatalogClient interface {
	// FetchPage requests the catalog page after lastAppID for the given
	// category. A lastAppID of zero requests the first page.
	FetchPage(ctx context.Context, category models.Category, lastAppID int) (*CatalogPage, error)
}

// SchemaClient fetches the structured achievement definitions for one app.
type SchemaClient interface {
	FetchAchievementSchema(ctx context.Context, appID int) ([]models.AchievementDefinition, error)
}

// StorefrontClient fetches storefront details for one app.
type StorefrontClient interface {
	// FetchDetails returns (nil, nil) when the storefront reports no
	// details for the app; that is a documented absent value, not an error.
	FetchDetails(ctx context.Context, appID int) (*AppDetails, error)
}

// SecondarySource fetches scraped (id, name) DLC rows from the best-effort
// gap-filling source. Any failure — network, markup, missing section — is
// reported as an error wrapping [shared.ErrSecondaryUnavailable]; callers
// log it and continue without the data.
type SecondarySource interface {
	FetchDlcNames(ctx context.Context, appID int) ([]DlcName, error)
}

// App is one raw catalog entry before category tagging and normalization.
type App struct {
	ID   int    `json:"appid"`
	Name string `json:"name"`
}

// CatalogPage is one transient batch of a cursor-paginated catalog fetch.
// It is consumed immediately by the synchronizer and never persisted.
type CatalogPage struct {
	Apps      []App
	HaveMore  bool
	LastAppID int
}

// AppDetails is the storefront's view of one app: its type and the
// authoritative, ordered DLC id list.
type AppDetails struct {
	Type string
	DLC  []int
}

// DlcName is one scraped (id, name) row from the secondary source.
type DlcName struct {
	ID   int
	Name string
}
