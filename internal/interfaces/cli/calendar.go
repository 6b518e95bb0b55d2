package cli

import (
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/calendar"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

type holidayEntry struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Name    string `json:"name"`
}

func newCalendarCommand(opts *RootOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List observed federal holidays for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().UTC().Year()
			}
			if year < 1900 || year > 2200 {
				return errors.NewValidationOp("cli.calendar", "year out of range")
			}

			holidays := calendar.FederalHolidays(year)

			entries := make([]holidayEntry, 0, len(holidays))
			for d, name := range holidays {
				entries = append(entries, holidayEntry{
					Date:    d.Format("2006-01-02"),
					Weekday: d.Weekday().String(),
					Name:    name,
				})
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })

			if opts.Output == "json" {
				return printJSON(cmd, entries)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Date", "Weekday", "Holiday"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			for _, e := range entries {
				table.Append([]string{e.Date, e.Weekday, e.Name})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "calendar year (default: current year)")
	return cmd
}
