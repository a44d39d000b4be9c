package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/sysperm/internal/event"
)

func TestRecordAndList(t *testing.T) {
	r := NewRecorder(t.TempDir())

	require.NoError(t, r.Record(Entry{ID: "01A", Kind: "camera", Status: "authorized", Granted: true}))
	require.NoError(t, r.Record(Entry{ID: "01B", Kind: "location", Error: "permission denied"}))

	entries, err := r.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "01A", entries[0].ID)
	assert.Equal(t, "camera", entries[0].Kind)
	assert.True(t, entries[0].Granted)
	assert.False(t, entries[0].Time.IsZero())

	assert.Equal(t, "01B", entries[1].ID)
	assert.Equal(t, "permission denied", entries[1].Error)
}

func TestListEmptyDir(t *testing.T) {
	r := NewRecorder(t.TempDir() + "/never-created")

	entries, err := r.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClear(t *testing.T) {
	r := NewRecorder(t.TempDir())
	require.NoError(t, r.Record(Entry{ID: "01A", Kind: "camera"}))
	require.NoError(t, r.Clear())

	entries, err := r.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecorderSubscribesToBus(t *testing.T) {
	event.Reset()
	t.Cleanup(event.Reset)

	r := NewRecorder(t.TempDir())
	r.Start()
	defer r.Stop()

	event.PublishSync(event.Event{
		Type: event.PermissionResolved,
		Data: event.PermissionResolvedData{
			ID:      "01C",
			Kind:    "microphone",
			Status:  "authorized",
			Granted: true,
		},
	})

	require.Eventually(t, func() bool {
		entries, err := r.List()
		return err == nil && len(entries) == 1
	}, time.Second, 10*time.Millisecond)

	entries, err := r.List()
	require.NoError(t, err)
	assert.Equal(t, "01C", entries[0].ID)
	assert.Equal(t, "microphone", entries[0].Kind)
}
