package permission

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/opencode-ai/sysperm/internal/event"
	"github.com/opencode-ai/sysperm/internal/logging"
)

// Manager is the single point of entry for permission status. It owns a
// status cache shared by all of its clones and dispatches to a platform
// Handler for native checks and requests.
type Manager struct {
	state *managerState
}

// managerState is the shared state behind every clone of a Manager.
// The cache is the only mutable shared state; reads take the read lock,
// writes are brief single-entry inserts under the write lock.
type managerState struct {
	mu      sync.RWMutex
	cache   map[Kind]Status
	handler Handler
}

// NewManager creates a manager dispatching to the given handler.
func NewManager(handler Handler) *Manager {
	return &Manager{
		state: &managerState{
			cache:   make(map[Kind]Status),
			handler: handler,
		},
	}
}

// Clone returns a cheap handle sharing the same cache and handler.
func (m *Manager) Clone() *Manager {
	return &Manager{state: m.state}
}

// Check returns the current status of a permission. It never triggers an
// OS consent dialog. A cached status is returned without any native
// call; on a miss the platform check runs and its result is cached.
// Errors are propagated verbatim and never cached.
func (m *Manager) Check(kind Kind) (Status, error) {
	m.state.mu.RLock()
	status, ok := m.state.cache[kind]
	m.state.mu.RUnlock()
	if ok {
		return status, nil
	}

	return m.checkFresh(kind)
}

// checkFresh performs a platform check bypassing the cache read and
// caches the result on success. Racing callers may both reach the
// platform; last write wins.
func (m *Manager) checkFresh(kind Kind) (Status, error) {
	status, err := m.state.handler.Check(kind)
	if err != nil {
		logging.Debug().Str("kind", kind.String()).Err(err).Msg("permission check failed")
		return "", err
	}

	m.state.mu.Lock()
	m.state.cache[kind] = status
	m.state.mu.Unlock()

	event.Publish(event.Event{
		Type: event.PermissionChecked,
		Data: event.PermissionCheckedData{
			Kind:   kind.String(),
			Status: status.String(),
		},
	})
	return status, nil
}

// Request asks the user for a permission, possibly triggering a native
// consent dialog. The call suspends until the platform delivers its
// single result, the producer is dropped (reported as a system error),
// or ctx is cancelled (reported as a cancellation). A successful status
// is written through to the cache; errors are propagated uncached.
func (m *Manager) Request(ctx context.Context, kind Kind) (Status, error) {
	requestID := ulid.Make().String()

	event.Publish(event.Event{
		Type: event.PermissionRequested,
		Data: event.PermissionRequestedData{
			ID:   requestID,
			Kind: kind.String(),
		},
	})

	reply := NewReply()
	m.state.handler.Request(ctx, kind, reply)
	reply.settle()

	status, err := reply.Wait(ctx)
	if err != nil {
		logging.Debug().
			Str("id", requestID).
			Str("kind", kind.String()).
			Err(err).
			Msg("permission request failed")
		event.Publish(event.Event{
			Type: event.PermissionResolved,
			Data: event.PermissionResolvedData{
				ID:    requestID,
				Kind:  kind.String(),
				Error: err.Error(),
			},
		})
		return "", err
	}

	m.state.mu.Lock()
	m.state.cache[kind] = status
	m.state.mu.Unlock()

	event.Publish(event.Event{
		Type: event.PermissionResolved,
		Data: event.PermissionResolvedData{
			ID:      requestID,
			Kind:    kind.String(),
			Status:  status.String(),
			Granted: status == StatusAuthorized,
		},
	})
	return status, nil
}

// RequestBatch requests every kind concurrently and joins all of them.
// The returned map has one entry per kind whose request completed; a
// kind whose goroutine panics is omitted rather than surfaced. Each
// kind's result is independent.
func (m *Manager) RequestBatch(ctx context.Context, kinds []Kind) map[Kind]Result {
	results := make(map[Kind]Result, len(kinds))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, kind := range kinds {
		wg.Add(1)
		go func(kind Kind) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logging.Error().
						Str("kind", kind.String()).
						Any("panic", r).
						Msg("permission request panicked; dropping result")
				}
			}()

			status, err := m.Request(ctx, kind)

			mu.Lock()
			results[kind] = Result{Status: status, Err: err}
			mu.Unlock()
		}(kind)
	}
	wg.Wait()

	return results
}

// RefreshCache forces a fresh platform check for kind, overwriting any
// cached status on success.
func (m *Manager) RefreshCache(kind Kind) (Status, error) {
	return m.checkFresh(kind)
}

// ClearCache atomically empties the entire status cache.
func (m *Manager) ClearCache() {
	m.state.mu.Lock()
	m.state.cache = make(map[Kind]Status)
	m.state.mu.Unlock()

	event.Publish(event.Event{
		Type: event.CacheCleared,
		Data: event.CacheClearedData{},
	})
}
