package main

import (
	"context"

	"github.com/desertthunder/steamdex/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve exposes the cache's query operations as a read-only JSON API.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	c, closer, err := r.readyCache(ctx)
	if err != nil {
		return err
	}
	defer closer()

	handler := server.NewAppHandler(c, r.logger)
	return server.Serve(cmd.String("addr"), handler, r.logger)
}
