package commands

import (
	"github.com/spf13/cobra"

	"github.com/opencode-ai/sysperm/internal/permission"
)

var listStatus bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported permission kinds",
	Long: `List prints every permission kind this build supports.

Examples:
  sysperm list            # Kind names only
  sysperm list --status   # Include the current status of each kind`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listStatus, "status", false, "Check and show the status of each kind")
}

func runList(cmd *cobra.Command, args []string) error {
	results := make([]kindResult, 0, len(permission.AllKinds()))
	for _, kind := range permission.AllKinds() {
		res := kindResult{Kind: kind}
		if listStatus {
			status, err := manager.Check(kind)
			res.Status = status
			if err != nil {
				res.Error = err.Error()
			}
		}
		results = append(results, res)
	}

	return renderResults(results)
}
