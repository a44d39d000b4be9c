package permission

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHandler is a scriptable Handler that counts native calls per kind.
type stubHandler struct {
	mu       sync.Mutex
	checks   map[Kind]int
	requests map[Kind]int

	status    map[Kind]Status
	checkErr  map[Kind]error
	onRequest func(ctx context.Context, kind Kind, reply *Reply)
}

func newStubHandler() *stubHandler {
	return &stubHandler{
		checks:   make(map[Kind]int),
		requests: make(map[Kind]int),
		status:   make(map[Kind]Status),
		checkErr: make(map[Kind]error),
	}
}

func (s *stubHandler) Check(kind Kind) (Status, error) {
	s.mu.Lock()
	s.checks[kind]++
	status, ok := s.status[kind]
	err := s.checkErr[kind]
	s.mu.Unlock()

	if err != nil {
		return "", err
	}
	if !ok {
		status = StatusNotDetermined
	}
	return status, nil
}

func (s *stubHandler) Request(ctx context.Context, kind Kind, reply *Reply) {
	s.mu.Lock()
	s.requests[kind]++
	s.mu.Unlock()

	if s.onRequest != nil {
		s.onRequest(ctx, kind, reply)
		return
	}
	reply.Deliver(StatusAuthorized, nil)
}

func (s *stubHandler) checkCount(kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checks[kind]
}

func (s *stubHandler) requestCount(kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[kind]
}

func TestCheckCachesStatus(t *testing.T) {
	h := newStubHandler()
	h.status[KindCamera] = StatusDenied
	m := NewManager(h)

	first, err := m.Check(KindCamera)
	require.NoError(t, err)

	// Flip the native status; the cached value must win.
	h.mu.Lock()
	h.status[KindCamera] = StatusAuthorized
	h.mu.Unlock()

	second, err := m.Check(KindCamera)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, StatusDenied, second)
	assert.Equal(t, 1, h.checkCount(KindCamera))
}

func TestClearCacheForcesFreshCheck(t *testing.T) {
	h := newStubHandler()
	h.status[KindMicrophone] = StatusAuthorized
	m := NewManager(h)

	_, err := m.Check(KindMicrophone)
	require.NoError(t, err)

	m.ClearCache()

	_, err = m.Check(KindMicrophone)
	require.NoError(t, err)
	assert.Equal(t, 2, h.checkCount(KindMicrophone))
}

func TestRefreshCacheBypassesCachedValue(t *testing.T) {
	h := newStubHandler()
	h.status[KindLocation] = StatusDenied
	m := NewManager(h)

	_, err := m.Check(KindLocation)
	require.NoError(t, err)

	h.mu.Lock()
	h.status[KindLocation] = StatusAuthorized
	h.mu.Unlock()

	status, err := m.RefreshCache(KindLocation)
	require.NoError(t, err)
	assert.Equal(t, StatusAuthorized, status)

	// The refreshed value is now what Check serves.
	status, err = m.Check(KindLocation)
	require.NoError(t, err)
	assert.Equal(t, StatusAuthorized, status)
	assert.Equal(t, 2, h.checkCount(KindLocation))
}

func TestCheckErrorNotCached(t *testing.T) {
	h := newStubHandler()
	h.checkErr[KindBluetooth] = ErrSystem("bus unavailable")
	m := NewManager(h)

	_, err := m.Check(KindBluetooth)
	require.Error(t, err)
	assert.Equal(t, ErrCodeSystem, CodeOf(err))

	_, err = m.Check(KindBluetooth)
	require.Error(t, err)
	assert.Equal(t, 2, h.checkCount(KindBluetooth), "errors must not be cached")
}

func TestRequestCachesResult(t *testing.T) {
	h := newStubHandler()
	m := NewManager(h)

	status, err := m.Request(context.Background(), KindCamera)
	require.NoError(t, err)
	assert.Equal(t, StatusAuthorized, status)

	// The granted status is served from cache without a native check.
	status, err = m.Check(KindCamera)
	require.NoError(t, err)
	assert.Equal(t, StatusAuthorized, status)
	assert.Equal(t, 0, h.checkCount(KindCamera))
}

func TestRequestDeniedError(t *testing.T) {
	h := newStubHandler()
	h.onRequest = func(_ context.Context, _ Kind, reply *Reply) {
		reply.Deliver("", ErrDenied())
	}
	m := NewManager(h)

	_, err := m.Request(context.Background(), KindLocation)
	require.Error(t, err)
	assert.Equal(t, ErrCodeDenied, CodeOf(err))

	// The failed request leaves no cache entry behind.
	h.status[KindLocation] = StatusDenied
	status, err := m.Check(KindLocation)
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, status)
	assert.Equal(t, 1, h.checkCount(KindLocation))
}

func TestRequestDroppedProducer(t *testing.T) {
	h := newStubHandler()
	h.onRequest = func(_ context.Context, _ Kind, _ *Reply) {
		// Return without delivering or detaching.
	}
	m := NewManager(h)

	done := make(chan struct{})
	var err error
	go func() {
		defer close(done)
		_, err = m.Request(context.Background(), KindCamera)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("request with dropped producer did not resolve")
	}
	require.Error(t, err)
	assert.Equal(t, ErrCodeSystem, CodeOf(err))
}

func TestRequestDetachedAsyncDelivery(t *testing.T) {
	h := newStubHandler()
	h.onRequest = func(_ context.Context, _ Kind, reply *Reply) {
		reply.Detach()
		go func() {
			time.Sleep(10 * time.Millisecond)
			reply.Deliver(StatusAuthorized, nil)
		}()
	}
	m := NewManager(h)

	status, err := m.Request(context.Background(), KindMicrophone)
	require.NoError(t, err)
	assert.Equal(t, StatusAuthorized, status)
}

func TestRequestCancellation(t *testing.T) {
	h := newStubHandler()
	h.onRequest = func(_ context.Context, _ Kind, reply *Reply) {
		reply.Detach()
		// Never delivers; the consumer must bail out on its own.
	}
	m := NewManager(h)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Request(ctx, KindCamera)
	require.Error(t, err)
	assert.Equal(t, ErrCodeCancelled, CodeOf(err))
	assert.True(t, IsCancelled(err))
}

func TestRequestBatchCompleteness(t *testing.T) {
	kinds := []Kind{KindCamera, KindMicrophone, KindLocation, KindContacts}
	delays := map[Kind]time.Duration{
		KindCamera:     40 * time.Millisecond,
		KindMicrophone: 30 * time.Millisecond,
		KindLocation:   20 * time.Millisecond,
		KindContacts:   10 * time.Millisecond,
	}

	h := newStubHandler()
	h.onRequest = func(_ context.Context, kind Kind, reply *Reply) {
		reply.Detach()
		go func() {
			time.Sleep(delays[kind])
			if kind == KindLocation {
				reply.Deliver("", ErrDenied())
				return
			}
			reply.Deliver(StatusAuthorized, nil)
		}()
	}
	m := NewManager(h)

	results := m.RequestBatch(context.Background(), kinds)

	require.Len(t, results, len(kinds))
	for _, kind := range kinds {
		res, ok := results[kind]
		require.True(t, ok, "missing result for %q", kind)
		if kind == KindLocation {
			assert.Equal(t, ErrCodeDenied, CodeOf(res.Err))
			continue
		}
		require.NoError(t, res.Err)
		assert.Equal(t, StatusAuthorized, res.Status)
	}
}

func TestCloneSharesCache(t *testing.T) {
	h := newStubHandler()
	h.status[KindCamera] = StatusAuthorized
	m := NewManager(h)
	clone := m.Clone()

	_, err := m.Check(KindCamera)
	require.NoError(t, err)

	// The clone serves the same cache without its own native call.
	status, err := clone.Check(KindCamera)
	require.NoError(t, err)
	assert.Equal(t, StatusAuthorized, status)
	assert.Equal(t, 1, h.checkCount(KindCamera))

	// Clearing through the clone clears for the original too.
	clone.ClearCache()
	_, err = m.Check(KindCamera)
	require.NoError(t, err)
	assert.Equal(t, 2, h.checkCount(KindCamera))
}

func TestCameraGrantFlow(t *testing.T) {
	h := newStubHandler()
	h.status[KindCamera] = StatusNotDetermined
	h.onRequest = func(_ context.Context, _ Kind, reply *Reply) {
		reply.Deliver(StatusAuthorized, nil)
	}
	m := NewManager(h)

	status, err := m.Check(KindCamera)
	require.NoError(t, err)
	assert.Equal(t, StatusNotDetermined, status)

	status, err = m.Request(context.Background(), KindCamera)
	require.NoError(t, err)
	assert.Equal(t, StatusAuthorized, status)
	assert.Equal(t, 1, h.requestCount(KindCamera))

	status, err = m.Check(KindCamera)
	require.NoError(t, err)
	assert.Equal(t, StatusAuthorized, status)
	assert.Equal(t, 1, h.checkCount(KindCamera), "granted status must come from cache")
}
