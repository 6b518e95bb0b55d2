package cli

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/SPAC-Sentinel/internal/application/compliance"
)

func newAlertsCommand(opts *RootOptions) *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Classify an entity's deadlines into alerts",
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
			alerts := compliance.ToAlerts(items, today)

			if opts.Output == "json" {
				return printJSON(cmd, alerts)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Severity", "Filing", "Deadline", "Message"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			for _, alert := range alerts {
				table.Append([]string{
					string(alert.Severity),
					string(alert.FilingType),
					alert.Deadline.Format("2006-01-02"),
					alert.Message,
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "snapshot JSON file ('-' for stdin)")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}
