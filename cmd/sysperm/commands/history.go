package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/sysperm/internal/history"
	"github.com/opencode-ai/sysperm/internal/permission"
)

var historyClear bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past permission requests",
	Long: `History lists the outcome of past 'sysperm request' invocations,
oldest first.

Examples:
  sysperm history          # List recorded requests
  sysperm history --clear  # Forget all recorded requests`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Remove all recorded requests")
}

func newRecorder() (*history.Recorder, error) {
	dir, err := history.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("resolve history directory: %w", err)
	}
	return history.NewRecorder(dir), nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	recorder, err := newRecorder()
	if err != nil {
		return err
	}

	if historyClear {
		return recorder.Clear()
	}

	entries, err := recorder.List()
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	errColor := color.New(color.FgRed)
	for _, entry := range entries {
		outcome := statusColor(permission.Status(entry.Status)).Sprint(entry.Status)
		if entry.Error != "" {
			outcome = errColor.Sprintf("error: %s", entry.Error)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t\n",
			entry.Time.Local().Format(time.DateTime), entry.Kind, outcome)
	}
	return w.Flush()
}
