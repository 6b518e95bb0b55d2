package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/SPAC-Sentinel/internal/application/compliance"
)

func newDeadlinesCommand(opts *RootOptions) *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "deadlines",
		Short: "Compute the deadline schedule for one entity snapshot",
		Example: `  spacctl deadlines --snapshot atlas.json
  cat atlas.json | spacctl deadlines --snapshot - --as-of 2025-02-01 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			today, err := resolveAsOf(opts)
			if err != nil {
				return err
			}

			items, err := compliance.GenerateDeadlinesWithHorizon(snap, today, opts.Horizon)
			if err != nil {
				return err
			}

			if opts.Output == "json" {
				return printJSON(cmd, items)
			}
			renderDeadlineTable(cmd, items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "snapshot JSON file ('-' for stdin)")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}

func renderDeadlineTable(cmd *cobra.Command, items []compliance.FilingDeadlineItem) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Filing", "Deadline", "Days Left", "Urgency", "Description"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, item := range items {
		daysLeft := strconv.Itoa(item.DaysRemaining)
		if item.IsOverdue {
			daysLeft = fmt.Sprintf("%d (overdue)", item.DaysRemaining)
		}
		table.Append([]string{
			string(item.FilingType),
			item.Deadline.Format("2006-01-02"),
			daysLeft,
			string(item.Urgency),
			item.Description,
		})
	}
	table.Render()
}
