package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"clipscout/internal/api"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describeError turns a lifecycle error into a one-line CLI message. A
// duplicate names the existing record.
func describeError(err error) error {
	if err == nil {
		return nil
	}
	resp := api.NewErrorResponse(err)
	if info := resp.DuplicateInfo; info != nil {
		msg := fmt.Sprintf("already registered as %s (%s, @%s)", info.ID, info.StatusLabel, info.Username)
		if info.Memo != "" {
			msg += fmt.Sprintf(" memo: %s", info.Memo)
		}
		return errors.New(msg)
	}
	if resp.Category != "" {
		return fmt.Errorf("%s [%s]", resp.Error, resp.Category)
	}
	return err
}
