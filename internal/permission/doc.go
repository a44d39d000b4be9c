// Package permission provides a unified, cross-platform interface for
// querying and requesting operating-system permissions such as camera,
// microphone, location, contacts, accessibility, screen capture, and
// notification access.
//
// # Overview
//
// Consumers interact with two operations against a permission Kind:
//
//   - Check: synchronous status lookup that never shows a dialog
//   - Request: asynchronous request that may trigger the native consent
//     dialog and suspends until the OS delivers a result
//
// Both return a normalized Status regardless of the underlying
// platform's native authorization model.
//
// # Manager
//
// The Manager is the central component. It owns a status cache shared by
// all of its clones and dispatches to a platform Handler:
//
//	manager := permission.NewManager(platform.New(platform.Config{}))
//
//	status, err := manager.Check(permission.KindCamera)
//
//	status, err = manager.Request(ctx, permission.KindMicrophone)
//
//	results := manager.RequestBatch(ctx, []permission.Kind{
//		permission.KindCamera,
//		permission.KindMicrophone,
//	})
//
// Check hits the cache first; a cached kind incurs no native call. A
// successful check or request overwrites the cached entry. The cache is
// invalidated only wholesale via ClearCache, or refreshed per kind via
// RefreshCache.
//
// # Asynchronous contract
//
// Most native request APIs resolve via an out-of-band callback on an
// arbitrary OS thread rather than a return value. The Reply type bridges
// that model: the manager hands the producer side to the platform
// adapter, which must deliver exactly one value on every code path. An
// adapter whose callback fires after its Request call has returned
// detaches the reply first; an adapter that returns without delivering
// or detaching is treated as a dropped producer and the caller receives
// a system error instead of hanging.
//
// A caller that abandons a suspended Request (cancellation or timeout)
// leaves the reply abandoned; a late delivery from the OS callback is
// silently swallowed.
//
// # Concurrency
//
// Managers are cheap to clone and all clones share one cache guarded by
// a reader/writer lock. Concurrent requests for different kinds are
// independent; concurrent requests for the same kind may both reach the
// platform, which is trusted to serialize its own dialogs.
//
// # Errors
//
// Failures use the Error taxonomy (denied, restricted, system, platform,
// unknown, cancelled). The manager reports platform errors verbatim and
// never retries; the only internally generated error is the system error
// for a dropped reply producer.
package permission
