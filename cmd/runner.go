package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/steamdex/internal/cache"
	"github.com/desertthunder/steamdex/internal/services"
	"github.com/desertthunder/steamdex/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    services.CatalogClient
	schema     services.SchemaClient
	storefront services.StorefrontClient
	secondary  services.SecondarySource
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	db         *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.CatalogClient
	Schema     services.SchemaClient
	Storefront services.StorefrontClient
	Secondary  services.SecondarySource
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	DB         *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		schema:     opts.Schema,
		storefront: opts.Storefront,
		secondary:  opts.Secondary,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		db:         opts.DB,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, syncCommand, searchCommand, appCommand, achievementsCommand, dlcCommand, exportCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openCache opens the configured database and wraps it in a [cache.Cache]
// with the runner's remote clients. The returned closer releases the
// connection; it is a no-op when the runner carries an injected database.
func (r *Runner) openCache() (*cache.Cache, func(), error) {
	deps := cache.Deps{
		Catalog:    r.catalog,
		Schema:     r.schema,
		Storefront: r.storefront,
		Secondary:  r.secondary,
		DBPath:     r.config.Database.Path,
		MaxAge:     time.Duration(r.config.Database.MaxAgeHours) * time.Hour,
		Logger:     r.logger,
	}

	if r.db != nil {
		return cache.New(r.db, deps), func() {}, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	return cache.New(db, deps), func() { db.Close() }, nil
}

// readyCache opens the cache and ensures the schema exists and the catalog
// is fresh enough to serve lookups.
func (r *Runner) readyCache(ctx context.Context) (*cache.Cache, func(), error) {
	c, closer, err := r.openCache()
	if err != nil {
		return nil, nil, err
	}

	if err := c.Initialize(ctx); err != nil {
		closer()
		return nil, nil, err
	}

	return c, closer, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
