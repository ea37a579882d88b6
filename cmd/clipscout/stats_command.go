package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clipscout/internal/candidate"
)

const histogramWidth = 30

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var tz string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show gender ratio and registrations per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				stats, err := rt.service.Stats(cmd.Context(), tz)
				if err != nil {
					return describeError(err)
				}
				if asJSON {
					return writeJSON(cmd, stats)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Candidates: %d (timezone %s)\n", stats.Total, stats.Timezone)
				fmt.Fprintf(out, "  Male:   %d (%.1f%%)\n", stats.Male, stats.MalePercent)
				fmt.Fprintf(out, "  Female: %d (%.1f%%)\n", stats.Female, stats.FemalePercent)
				fmt.Fprintf(out, "  Other:  %d\n", stats.Other)

				statusParts := make([]string, 0, len(stats.ByStatus))
				for _, s := range candidate.Statuses() {
					statusParts = append(statusParts, fmt.Sprintf("%s %d", s.Label(), stats.ByStatus[string(s)]))
				}
				fmt.Fprintf(out, "Status: %s\n", strings.Join(statusParts, ", "))

				if len(stats.Daily) == 0 {
					return nil
				}
				rows := make([][]string, 0, len(stats.Daily))
				for _, day := range stats.Daily {
					rows = append(rows, []string{
						day.Date,
						strconv.Itoa(day.Total),
						strconv.Itoa(day.Male),
						strconv.Itoa(day.Female),
						strconv.Itoa(day.Other),
						histogramBar(day.Total, stats.MaxDaily),
					})
				}
				fmt.Fprintln(out, renderTable([]tableColumn{
					{header: "Date"},
					{header: "Total", align: alignRight},
					{header: "Male", align: alignRight},
					{header: "Female", align: alignRight},
					{header: "Other", align: alignRight},
					{header: ""},
				}, rows, ""))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone for day boundaries (defaults to the configured one)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func histogramBar(value, maxValue int) string {
	if value <= 0 || maxValue <= 0 {
		return ""
	}
	n := value * histogramWidth / maxValue
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}
