package platform

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/opencode-ai/sysperm/internal/permission"
)

// settleTimeout bounds waits on native callbacks that involve no user
// interaction (status queries, service probes). Generous for what should
// be a sub-second operation.
const settleTimeout = 5 * time.Second

// callbackGuard suppresses native callback work after the waiter has
// given up. The waiter calls giveUp on cancellation or timeout; a late
// callback checks stillWanted before doing anything, so abandoned
// deliveries are dropped silently instead of racing the waiter.
type callbackGuard struct {
	abandoned atomic.Bool
}

func (g *callbackGuard) giveUp() {
	g.abandoned.Store(true)
}

func (g *callbackGuard) stillWanted() bool {
	return !g.abandoned.Load()
}

// awaitResult waits for a single result from a native callback, honoring
// cancellation and an optional timeout (zero means unbounded). On
// cancellation it returns a cancellation error; on timeout it reports
// the status as unknown, mirroring how status queries behave when the
// OS never answers. In both give-up cases the guard is tripped so the
// late callback skips its work.
func awaitResult(ctx context.Context, guard *callbackGuard, ch <-chan permission.Result, timeout time.Duration) (permission.Status, error) {
	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Status, nil
	case <-ctx.Done():
		guard.giveUp()
		return "", &permission.Error{Code: permission.ErrCodeCancelled, Err: ctx.Err()}
	case <-timeoutCh:
		guard.giveUp()
		return permission.StatusUnknown, nil
	}
}
