package permission

import (
	"context"
	"sync"
)

// Result carries the outcome of a single permission request.
type Result struct {
	Status Status
	Err    error
}

// replyState tracks the lifecycle of a Reply.
type replyState uint8

const (
	// replyPending: no value yet, producer still live.
	replyPending replyState = iota
	// replyCompleted: exactly one value was delivered.
	replyCompleted
	// replyClosed: the producer finished every code path without
	// delivering a value.
	replyClosed
	// replyAbandoned: the consumer gave up waiting; late deliveries are
	// silently dropped.
	replyAbandoned
)

// Reply is a one-shot rendezvous between a platform adapter (the
// producer) and a waiting Request call (the consumer). It carries at
// most one value; the first Deliver wins and every later attempt is a
// no-op. Adapters whose result arrives later from an OS callback thread
// must call Detach before returning, otherwise the manager treats a
// Request call that returns with the reply still pending as a dropped
// producer.
type Reply struct {
	mu       sync.Mutex
	state    replyState
	detached bool
	res      Result
	done     chan struct{}
}

// NewReply creates a pending reply.
func NewReply() *Reply {
	return &Reply{done: make(chan struct{})}
}

// Deliver resolves the reply with a status or an error. It returns true
// if this call won the rendezvous and false if the reply was already
// completed, closed, or abandoned. Deliver is safe to call from any
// goroutine, including OS callback threads, and never panics.
func (r *Reply) Deliver(status Status, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != replyPending {
		return false
	}
	r.state = replyCompleted
	r.res = Result{Status: status, Err: err}
	close(r.done)
	return true
}

// Detach marks the reply as owned by a native callback that will deliver
// the value after the adapter's Request call has returned.
func (r *Reply) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detached = true
}

// settle is called by the manager once the adapter's Request call has
// returned. A reply that is still pending and was never detached can no
// longer produce a value, so it transitions to closed and the waiting
// consumer is released.
func (r *Reply) settle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == replyPending && !r.detached {
		r.state = replyClosed
		close(r.done)
	}
}

// abandon is called by the manager when the consumer stops waiting. A
// late Deliver from the adapter is then silently swallowed.
func (r *Reply) abandon() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == replyPending {
		r.state = replyAbandoned
	}
}

// Wait suspends until the reply resolves or ctx is done. A closed reply
// (producer dropped without a value) resolves to a system error; a
// cancelled context resolves to a cancellation error and abandons the
// reply.
func (r *Reply) Wait(ctx context.Context) (Status, error) {
	select {
	case <-ctx.Done():
		r.abandon()
		return "", &Error{Code: ErrCodeCancelled, Err: ctx.Err()}
	case <-r.done:
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == replyClosed {
		return "", ErrSystem("permission reply channel closed")
	}
	if r.res.Err != nil {
		return "", r.res.Err
	}
	return r.res.Status, nil
}
