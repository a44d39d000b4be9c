package platform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/sysperm/internal/permission"
)

func TestNewCoversAllKinds(t *testing.T) {
	h := New(Config{AppID: "com.opencode.sysperm.test"})

	kinds := h.Kinds()
	assert.Len(t, kinds, len(permission.AllKinds()))

	for _, kind := range permission.AllKinds() {
		_, ok := h.table[kind]
		assert.True(t, ok, "kind %q missing from table", kind)
	}
}

func TestCheckUnsupportedKind(t *testing.T) {
	h := &Handler{table: map[permission.Kind]ops{}}

	_, err := h.Check(permission.KindCamera)
	require.Error(t, err)
	assert.Equal(t, permission.ErrCodePlatform, permission.CodeOf(err))
}

func TestRequestUnsupportedKind(t *testing.T) {
	h := &Handler{table: map[permission.Kind]ops{}}

	reply := permission.NewReply()
	h.Request(context.Background(), permission.KindCamera, reply)

	_, err := reply.Wait(context.Background())
	require.Error(t, err)
	assert.Equal(t, permission.ErrCodePlatform, permission.CodeOf(err))
}

func TestRequestFallsBackToCheck(t *testing.T) {
	h := &Handler{table: map[permission.Kind]ops{
		permission.KindSiri: {check: statically(permission.StatusDenied)},
	}}

	reply := permission.NewReply()
	h.Request(context.Background(), permission.KindSiri, reply)

	status, err := reply.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, permission.StatusDenied, status)
}

func TestProbePath(t *testing.T) {
	status, err := probePath(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, permission.StatusAuthorized, status)

	status, err = probePath("/nonexistent/sysperm/probe/path")
	require.NoError(t, err)
	assert.Equal(t, permission.StatusDenied, status)
}
