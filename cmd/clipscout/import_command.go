package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipscout/internal/candidate"
	"clipscout/internal/lifecycle"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var batchSize int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "import <candidates.json>",
		Short: "Import candidates from a legacy JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			var entries []candidate.Legacy
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("parse import file: %w", err)
			}

			return ctx.withRuntime(func(rt *runtime) error {
				result, err := lifecycle.ImportLegacy(cmd.Context(), rt.store, entries, batchSize, rt.logger)
				if err != nil {
					return err
				}
				if asJSON {
					if err := writeJSON(cmd, result); err != nil {
						return err
					}
				} else {
					out := cmd.OutOrStdout()
					fmt.Fprintf(out, "Read %d, imported %d, skipped %d existing\n", result.Read, result.Imported, result.Skipped)
					for _, msg := range result.Invalid {
						fmt.Fprintf(cmd.ErrOrStderr(), "Invalid %s\n", msg)
					}
				}
				if len(result.FailedBatches) > 0 {
					return fmt.Errorf("batches %v failed and were rolled back; rerun the import to retry", result.FailedBatches)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", lifecycle.DefaultImportBatchSize, "Records per transaction")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the import summary as JSON")
	return cmd
}
