package permission

import "context"

// Handler is the contract between the manager and a platform's native
// permission implementations. internal/platform provides the real one;
// tests substitute their own.
type Handler interface {
	// Check returns the current status of a permission without any user
	// interaction. It must return promptly and be callable from any
	// goroutine.
	Check(kind Kind) (Status, error)

	// Request asks the user for a permission, delivering exactly one
	// value into reply on every code path. Implementations must return
	// promptly: either resolve synchronously via reply.Deliver, or call
	// reply.Detach and let a native callback deliver the value later.
	// The context is the cancellation signal; once it is done a pending
	// delivery may be silently dropped.
	Request(ctx context.Context, kind Kind, reply *Reply)
}
