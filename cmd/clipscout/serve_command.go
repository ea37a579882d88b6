package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"clipscout/internal/daemon"
	"clipscout/internal/logging"
	"clipscout/internal/preflight"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			if bind != "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				cfg.Paths.APIBind = bind
			}
			return runServer(cmd.Context(), ctx)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Override the configured bind address")
	return cmd
}

// runServer blocks until runCtx is cancelled; main cancels it on SIGINT or
// SIGTERM.
func runServer(runCtx context.Context, ctx *commandContext) error {
	rt, err := ctx.openRuntime(true)
	if err != nil {
		return err
	}
	defer rt.close()

	for _, failed := range preflight.Failed(preflight.RunAll(runCtx, rt.cfg, rt.locator, rt.store)) {
		logging.WarnWithContext(rt.logger, "preflight check failed", "preflight_failed",
			logging.String("check", failed.Name),
			logging.String("detail", failed.Detail),
			logging.String(logging.FieldImpact, "submissions may fail until this is fixed"),
		)
	}

	d, err := daemon.New(rt.cfg, rt.store, rt.service, rt.locator, rt.logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	defer d.Close()

	if err := d.Start(runCtx); err != nil {
		return err
	}
	rt.logger.Info("listening", logging.String("address", d.Addr()))

	<-runCtx.Done()
	rt.logger.Info("clipscout shutting down")
	d.Stop()
	return nil
}
