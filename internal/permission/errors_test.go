package permission

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "permission denied", ErrDenied().Error())
	assert.Equal(t, "permission restricted", ErrRestricted().Error())
	assert.Equal(t, "operation cancelled", ErrCancelled().Error())
	assert.Equal(t, "unknown error", ErrUnknown().Error())
	assert.Equal(t, "system error: boom", ErrSystem("boom").Error())
	assert.Equal(t, "platform error: no adapter for x", ErrPlatform("no adapter for %s", "x").Error())
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := ErrSystem("bus gone")
	assert.True(t, errors.Is(err, &Error{Code: ErrCodeSystem}))
	assert.False(t, errors.Is(err, &Error{Code: ErrCodeDenied}))
}

func TestErrSystemWrapUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := ErrSystemWrap(cause, "query bus")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeSystem, CodeOf(err))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeDenied, CodeOf(ErrDenied()))
	assert.Equal(t, ErrCodeUnknown, CodeOf(errors.New("plain")))

	wrapped := fmt.Errorf("request failed: %w", ErrRestricted())
	assert.Equal(t, ErrCodeRestricted, CodeOf(wrapped))
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(ErrCancelled()))
	assert.False(t, IsCancelled(ErrDenied()))
	assert.False(t, IsCancelled(nil))
}
