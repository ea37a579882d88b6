package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clipscout/internal/api"
)

func newCandidateCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newAddCommand(ctx),
		newListCommand(ctx),
		newShowCommand(ctx),
		newJudgeCommand(ctx),
		newContactCommand(ctx),
		newMemoCommand(ctx),
		newDeleteCommand(ctx),
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var gender, referrer, referrerMemo, memo string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Acquire media for a URL and register it as a candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				created, err := rt.service.Submit(cmd.Context(), api.SubmitRequest{
					URL:          args[0],
					Gender:       gender,
					HasReferrer:  strings.TrimSpace(referrer) != "",
					ReferrerName: referrer,
					ReferrerMemo: referrerMemo,
					Memo:         memo,
				})
				if err != nil {
					return describeError(err)
				}
				if asJSON {
					return writeJSON(cmd, created)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added #%d @%s (%s)\n", created.Number, created.Username, created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&gender, "gender", "", "Gender bucket: male, female or other")
	cmd.Flags().StringVar(&referrer, "referrer", "", "Name of the person who referred this candidate")
	cmd.Flags().StringVar(&referrerMemo, "referrer-memo", "", "Note about the referral")
	cmd.Flags().StringVar(&memo, "memo", "", "Initial memo")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the created candidate as JSON")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var status string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List candidates in registration order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				resp, err := rt.service.List(cmd.Context(), status)
				if err != nil {
					return describeError(err)
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				if len(resp.Items) == 0 {
					fmt.Fprintln(out, "No candidates")
					return nil
				}
				fmt.Fprintln(out, renderCandidateTable(resp))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only list candidates with this status")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func renderCandidateTable(resp api.CandidateListResponse) string {
	columns := []tableColumn{
		{header: "#", align: alignRight},
		{header: "ID"},
		{header: "User"},
		{header: "Gender"},
		{header: "Status"},
		{header: "Contact"},
		{header: "Memo", maxWidth: 40},
		{header: "Created"},
	}
	rows := make([][]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		rows = append(rows, []string{
			strconv.Itoa(item.Number),
			item.ID,
			"@" + item.Username,
			derefOr(item.Gender, "-"),
			item.StatusLabel,
			item.ContactStatusLabel,
			item.Memo,
			item.CreatedAt,
		})
	}
	return renderTable(columns, rows, fmt.Sprintf("%d candidate(s)", resp.Total))
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				item, err := rt.service.Describe(cmd.Context(), args[0])
				if err != nil {
					return describeError(err)
				}
				if asJSON {
					return writeJSON(cmd, item)
				}
				printCandidate(cmd, item)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func printCandidate(cmd *cobra.Command, item api.Candidate) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "#%d @%s\n", item.Number, item.Username)
	fmt.Fprintf(out, "  ID:       %s\n", item.ID)
	fmt.Fprintf(out, "  URL:      %s\n", item.URL)
	fmt.Fprintf(out, "  Video:    %s\n", item.VideoPath)
	if item.IconPath != "" {
		fmt.Fprintf(out, "  Icon:     %s\n", item.IconPath)
	}
	fmt.Fprintf(out, "  Gender:   %s\n", derefOr(item.Gender, "-"))
	status := item.StatusLabel
	if item.ContactStatusLabel != "" {
		status += " / " + item.ContactStatusLabel
	}
	fmt.Fprintf(out, "  Status:   %s\n", status)
	if item.Memo != "" {
		fmt.Fprintf(out, "  Memo:     %s\n", item.Memo)
	}
	if item.HasReferrer {
		fmt.Fprintf(out, "  Referrer: %s\n", item.ReferrerName)
		if item.ReferrerMemo != "" {
			fmt.Fprintf(out, "            %s\n", item.ReferrerMemo)
		}
	}
	fmt.Fprintf(out, "  Created:  %s\n", item.CreatedAt)
	fmt.Fprintf(out, "  Updated:  %s\n", item.UpdatedAt)
}

func newJudgeCommand(ctx *commandContext) *cobra.Command {
	var memo string

	cmd := &cobra.Command{
		Use:   "judge <id> <contact|stay|pass>",
		Short: "Record a review decision",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var memoPtr *string
			if cmd.Flags().Changed("memo") {
				memoPtr = &memo
			}
			return ctx.withRuntime(func(rt *runtime) error {
				item, err := rt.service.Judge(cmd.Context(), args[0], strings.ToLower(args[1]), memoPtr)
				if err != nil {
					return describeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "#%d @%s is now %s\n", item.Number, item.Username, item.StatusLabel)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&memo, "memo", "", "Replace the memo in the same update")
	return cmd
}

func newContactCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "contact <id> <contacted|no_response|in_progress>",
		Short: "Record the contact progress of a candidate in the contact bucket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				item, err := rt.service.SetContactStatus(cmd.Context(), args[0], strings.ToLower(args[1]))
				if err != nil {
					return describeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "#%d @%s contact status: %s\n", item.Number, item.Username, item.ContactStatusLabel)
				return nil
			})
		},
	}
}

func newMemoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "memo <id> <text>",
		Short: "Replace the memo of a candidate",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			return ctx.withRuntime(func(rt *runtime) error {
				item, err := rt.service.SetMemo(cmd.Context(), args[0], text)
				if err != nil {
					return describeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Memo updated for #%d @%s\n", item.Number, item.Username)
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more candidates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				result := rt.service.DeleteMany(cmd.Context(), args)
				if asJSON {
					if err := writeJSON(cmd, result); err != nil {
						return err
					}
				} else {
					out := cmd.OutOrStdout()
					for _, id := range result.Deleted {
						fmt.Fprintf(out, "Deleted %s\n", id)
					}
					for _, failure := range result.Failed {
						fmt.Fprintf(cmd.ErrOrStderr(), "Failed %s: %s\n", failure.ID, failure.Error)
					}
				}
				if len(result.Failed) > 0 {
					return fmt.Errorf("%d of %d deletions failed", len(result.Failed), len(args))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the batch result as JSON")
	return cmd
}

func derefOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}
