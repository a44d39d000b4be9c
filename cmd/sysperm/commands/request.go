package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/sysperm/internal/event"
	"github.com/opencode-ai/sysperm/internal/history"
	"github.com/opencode-ai/sysperm/internal/logging"
)

var requestTimeout time.Duration

var requestCmd = &cobra.Command{
	Use:   "request <kind>...",
	Short: "Request permissions, prompting the user if needed",
	Long: `Request asks the operating system for one or more permissions. Kinds
with a native consent dialog prompt the user; kinds without one may
open the matching system settings page instead.

Several kinds are requested concurrently and joined.

Examples:
  sysperm request camera
  sysperm request camera microphone location
  sysperm request full_disk_access --timeout 5m`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRequest,
}

func init() {
	requestCmd.Flags().DurationVar(&requestTimeout, "timeout", 0,
		"Per-request timeout (0 uses the configured default)")
}

func runRequest(cmd *cobra.Command, args []string) error {
	kinds, err := parseKinds(args)
	if err != nil {
		return err
	}

	timeout := cfg.Timeout()
	if cmd.Flags().Changed("timeout") {
		timeout = requestTimeout
	}

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	flush := recordResolutions(len(kinds))
	defer flush()

	results := make([]kindResult, 0, len(kinds))
	if len(kinds) == 1 {
		status, err := manager.Request(ctx, kinds[0])
		res := kindResult{Kind: kinds[0], Status: status}
		if err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
		return renderResults(results)
	}

	batch := manager.RequestBatch(ctx, kinds)
	for kind, outcome := range batch {
		res := kindResult{Kind: kind, Status: outcome.Status}
		if outcome.Err != nil {
			res.Error = outcome.Err.Error()
		}
		results = append(results, res)
	}

	return renderResults(results)
}

// recordResolutions captures resolution events for up to n requests and
// persists them to history. The returned flush drains what has arrived,
// with a short grace period since event delivery is asynchronous.
func recordResolutions(n int) (flush func()) {
	recorder, err := newRecorder()
	if err != nil {
		logging.Warn().Err(err).Msg("permission history disabled")
		return func() {}
	}

	resolved := make(chan history.Entry, n)
	unsub := event.Subscribe(event.PermissionResolved, func(evt event.Event) {
		data, ok := evt.Data.(event.PermissionResolvedData)
		if !ok {
			return
		}
		select {
		case resolved <- history.Entry{
			ID:      data.ID,
			Kind:    data.Kind,
			Status:  data.Status,
			Granted: data.Granted,
			Error:   data.Error,
		}:
		default:
		}
	})

	return func() {
		defer unsub()
		for i := 0; i < n; i++ {
			select {
			case entry := <-resolved:
				if err := recorder.Record(entry); err != nil {
					logging.Warn().Err(err).Str("id", entry.ID).Msg("failed to record permission history")
				}
			case <-time.After(500 * time.Millisecond):
				return
			}
		}
	}
}
