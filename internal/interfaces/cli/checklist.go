package cli

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/checklist"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

func newChecklistCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist <filing-type>",
		Short: "Show the preparation checklist for a filing type",
		Args:  cobra.ExactArgs(1),
		Example: `  spacctl checklist 10-K
  spacctl checklist "DEF 14A" -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := checklist.NewDefaultRegistry()
			if err != nil {
				return err
			}

			tmpl, err := registry.TemplateFor(filing.FilingType(args[0]))
			if err != nil {
				if errors.IsCode(err, errors.ErrCodeChecklistTemplateMissing) {
					supported := registry.FilingTypes()
					names := make([]string, len(supported))
					for i, t := range supported {
						names[i] = string(t)
					}
					return errors.New(errors.ErrCodeChecklistTemplateMissing,
						"no checklist for "+args[0]+"; supported: "+strings.Join(names, ", "))
				}
				return err
			}

			if opts.Output == "json" {
				return printJSON(cmd, tmpl)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"#", "Item", "Category", "Required", "Depends On"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			for _, item := range tmpl.Items {
				required := ""
				if item.Required {
					required = "yes"
				}
				table.Append([]string{
					strconv.Itoa(item.Order),
					item.Name,
					item.Category,
					required,
					strings.Join(item.DependsOn, ", "),
				})
			}
			table.Render()
			return nil
		},
	}
	return cmd
}
