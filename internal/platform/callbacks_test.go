package platform

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/sysperm/internal/permission"
)

func TestStatusFromNative(t *testing.T) {
	tests := []struct {
		code     int
		expected permission.Status
	}{
		{nativeNotDetermined, permission.StatusNotDetermined},
		{nativeRestricted, permission.StatusRestricted},
		{nativeDenied, permission.StatusDenied},
		{nativeAuthorized, permission.StatusAuthorized},
		{-1, permission.StatusUnknown},
		{99, permission.StatusUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, statusFromNative(tt.code))
	}
}

// Settings-style queries resolve through the token registry: the native
// completion handler fires on an OS thread after the query returns, and
// the waiting goroutine picks the status up through awaitResult.
func TestCallbackSettledCheck(t *testing.T) {
	token, pc := callbacks.register()
	defer callbacks.drop(token)

	go authDone(token, nativeAuthorized)

	status, err := awaitResult(context.Background(), pc.guard, pc.ch, settleTimeout)
	require.NoError(t, err)
	assert.Equal(t, permission.StatusAuthorized, status)
}

func TestCallbackCheckTimesOutAsUnknown(t *testing.T) {
	token, pc := callbacks.register()
	defer callbacks.drop(token)

	// The native callback never fires; the bounded wait reads as unknown
	// instead of hanging the caller.
	status, err := awaitResult(context.Background(), pc.guard, pc.ch, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, permission.StatusUnknown, status)

	// A late callback sees the tripped guard and drops its work.
	authDone(token, nativeAuthorized)
	select {
	case res := <-pc.ch:
		t.Fatalf("late callback should be dropped, got %+v", res)
	default:
	}
}

func TestAuthDoneUnknownToken(t *testing.T) {
	// A callback for a dropped token is a no-op, not a panic.
	authDone(1<<40, nativeDenied)
}

func TestAuthDoneDuplicateInvocation(t *testing.T) {
	token, pc := callbacks.register()
	defer callbacks.drop(token)

	authDone(token, nativeDenied)
	authDone(token, nativeAuthorized)

	status, err := awaitResult(context.Background(), pc.guard, pc.ch, settleTimeout)
	require.NoError(t, err)
	assert.Equal(t, permission.StatusDenied, status, "first native invocation wins")
}
