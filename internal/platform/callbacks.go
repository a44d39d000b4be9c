package platform

import (
	"sync"

	"github.com/opencode-ai/sysperm/internal/permission"
)

// Native authorization codes shared by the completion-handler bridges.
// They mirror the Apple authorization enums; other adapters translate
// into them before dispatching.
const (
	nativeNotDetermined = 0
	nativeRestricted    = 1
	nativeDenied        = 2
	nativeAuthorized    = 3
)

func statusFromNative(code int) permission.Status {
	switch code {
	case nativeAuthorized:
		return permission.StatusAuthorized
	case nativeDenied:
		return permission.StatusDenied
	case nativeRestricted:
		return permission.StatusRestricted
	case nativeNotDetermined:
		return permission.StatusNotDetermined
	default:
		return permission.StatusUnknown
	}
}

// pendingCallbacks routes completion-handler invocations from OS threads
// back to the goroutine awaiting them, keyed by token.
type pendingCallbacks struct {
	mu    sync.Mutex
	next  int64
	byTok map[int64]*pendingCallback
}

type pendingCallback struct {
	guard *callbackGuard
	ch    chan permission.Result
}

var callbacks = &pendingCallbacks{byTok: make(map[int64]*pendingCallback)}

func (p *pendingCallbacks) register() (int64, *pendingCallback) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next++
	pc := &pendingCallback{
		guard: &callbackGuard{},
		ch:    make(chan permission.Result, 1),
	}
	p.byTok[p.next] = pc
	return p.next, pc
}

func (p *pendingCallbacks) lookup(token int64) *pendingCallback {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byTok[token]
}

func (p *pendingCallbacks) drop(token int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.byTok, token)
}

// authDone resolves the rendezvous for token with a native status code.
// Called from OS callback threads; safe on unknown or abandoned tokens.
func authDone(token int64, status int) {
	pc := callbacks.lookup(token)
	if pc == nil || !pc.guard.stillWanted() {
		// The waiter timed out or was cancelled; skip all work.
		return
	}
	select {
	case pc.ch <- permission.Result{Status: statusFromNative(status)}:
	default:
		// Second native invocation; the rendezvous already has a value.
	}
}
