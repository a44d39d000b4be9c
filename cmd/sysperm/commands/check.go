package commands

import (
	"github.com/spf13/cobra"
)

var checkFresh bool

var checkCmd = &cobra.Command{
	Use:   "check <kind>...",
	Short: "Check permission status without prompting",
	Long: `Check reports the current status of one or more permissions. The
check is passive: no consent dialog is ever shown.

Examples:
  sysperm check camera             # Single permission
  sysperm check camera microphone  # Several at once
  sysperm check all                # Every supported kind
  sysperm check camera --fresh     # Bypass the status cache`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkFresh, "fresh", false, "Bypass the cache and query the OS")
}

func runCheck(cmd *cobra.Command, args []string) error {
	kinds, err := parseKinds(args)
	if err != nil {
		return err
	}

	check := manager.Check
	if checkFresh {
		check = manager.RefreshCache
	}

	results := make([]kindResult, 0, len(kinds))
	for _, kind := range kinds {
		status, err := check(kind)

		res := kindResult{Kind: kind, Status: status}
		if err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
	}

	return renderResults(results)
}
