// Package cli implements the spacctl command tree.  The commands run the
// compliance engine locally over snapshot files, so they work without any
// backing services.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/spac"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	Output  string
	AsOf    string
	Horizon int
}

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "spacctl",
		Short: "SPAC-Sentinel CLI — SEC filing deadlines and compliance checklists",
		Long: "spacctl computes SEC filing deadlines, urgency classifications, and\n" +
			"compliance checklists for SPAC entities from snapshot files, using the\n" +
			"same engine as the API server.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.Output, "output", "o", "table", "output format (table, json)")
	pf.StringVar(&opts.AsOf, "as-of", "", "computation date YYYY-MM-DD (default: today)")
	pf.IntVar(&opts.Horizon, "horizon-months", 0, "periodic schedule horizon in months (default: engine default)")

	cmd.AddCommand(
		newDeadlinesCommand(opts),
		newAlertsCommand(opts),
		newChecklistCommand(opts),
		newCalendarCommand(opts),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// resolveAsOf parses --as-of or falls back to the current date, normalized
// to midnight UTC.
func resolveAsOf(opts *RootOptions) (time.Time, error) {
	if opts.AsOf == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.ParseInLocation("2006-01-02", opts.AsOf, time.UTC)
	if err != nil {
		return time.Time{}, errors.NewValidationOp("cli.as-of",
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", opts.AsOf))
	}
	return d, nil
}

// loadSnapshot reads one entity snapshot from a JSON file, or stdin when
// path is "-".
func loadSnapshot(path string) (*spac.Snapshot, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read snapshot file")
	}

	var snap spac.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to parse snapshot file")
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// printJSON writes indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
