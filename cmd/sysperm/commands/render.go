package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/opencode-ai/sysperm/internal/permission"
)

// kindResult is one row of CLI output, shared by check and request.
type kindResult struct {
	Kind   permission.Kind   `json:"kind"`
	Status permission.Status `json:"status,omitempty"`
	Error  string            `json:"error,omitempty"`
}

func statusColor(status permission.Status) *color.Color {
	switch status {
	case permission.StatusAuthorized:
		return color.New(color.FgGreen)
	case permission.StatusDenied, permission.StatusRestricted:
		return color.New(color.FgRed)
	case permission.StatusNotDetermined:
		return color.New(color.FgYellow)
	case permission.StatusPromptRequired:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgWhite)
	}
}

// renderResults prints results sorted by kind, as a colored table or as
// JSON when --json was given.
func renderResults(results []kindResult) error {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Kind < results[j].Kind
	})

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	errColor := color.New(color.FgRed)
	for _, res := range results {
		if res.Error != "" {
			fmt.Fprintf(w, "%s\t%s\t\n", res.Kind, errColor.Sprintf("error: %s", res.Error))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t\n", res.Kind, statusColor(res.Status).Sprint(res.Status))
	}
	return w.Flush()
}
