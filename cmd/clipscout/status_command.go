package main

import (
	"fmt"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"clipscout/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show storage, server and dependency health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				var lines []string

				lines = append(lines, renderSectionHeader("Server", colorize)...)
				running, err := serverRunning(rt.cfg.LockPath())
				switch {
				case err != nil:
					lines = append(lines, renderStatusLine("API server", statusWarn, err.Error(), colorize))
				case running:
					lines = append(lines, renderStatusLine("API server", statusOK, "Running", colorize))
				default:
					lines = append(lines, renderStatusLine("API server", statusInfo, "Not running", colorize))
				}
				lines = append(lines, renderStatusLine("Bind address", statusInfo, rt.cfg.Paths.APIBind, colorize))
				lines = append(lines, renderStatusLine("Hosted", statusInfo, yesNo(rt.cfg.Presentation.Hosted), colorize))

				lines = append(lines, "")
				lines = append(lines, renderSectionHeader("Storage", colorize)...)
				count, err := rt.service.Count(cmd.Context())
				if err != nil {
					lines = append(lines, renderStatusLine("Candidates", statusError, err.Error(), colorize))
				} else {
					lines = append(lines, renderStatusLine("Candidates", statusInfo, fmt.Sprintf("%d", count), colorize))
				}
				lines = append(lines, renderStatusLine("Driver", statusInfo, rt.store.Driver(), colorize))
				lines = append(lines, renderStatusLine("Location", statusInfo, rt.store.Location(), colorize))

				lines = append(lines, "")
				lines = append(lines, renderSectionHeader("Checks", colorize)...)
				// The fetch tool is reported with the other dependencies below.
				var checks []preflight.Result
				for _, result := range preflight.RunAll(cmd.Context(), rt.cfg, rt.locator, rt.store) {
					if _, isDep := dependencyHints[result.Name]; !isDep {
						checks = append(checks, result)
					}
				}
				lines = append(lines, renderPreflightLines(checks, colorize)...)
				lines = append(lines, renderDependencyLines(preflight.CheckSystemDeps(cmd.Context(), rt.cfg, rt.locator), colorize)...)

				fmt.Fprintln(out, strings.Join(lines, "\n"))
				return nil
			})
		},
	}
}

// serverRunning probes the single-instance lock without holding it.
func serverRunning(lockPath string) (bool, error) {
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("probe lock: %w", err)
	}
	if ok {
		_ = lock.Unlock()
		return false, nil
	}
	return true, nil
}
