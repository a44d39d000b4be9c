// Package history persists an audit trail of resolved permission
// requests as JSON documents keyed by request ID.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/opencode-ai/sysperm/internal/event"
	"github.com/opencode-ai/sysperm/internal/logging"
)

// Entry is one resolved permission request.
type Entry struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Status  string    `json:"status,omitempty"`
	Granted bool      `json:"granted"`
	Error   string    `json:"error,omitempty"`
	Time    time.Time `json:"time"`
}

// Recorder writes resolved permission requests to a history store.
type Recorder struct {
	store *store
	stop  func()
}

// DefaultDir returns the per-user history directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "sysperm", "history"), nil
}

// NewRecorder creates a recorder writing into dir.
func NewRecorder(dir string) *Recorder {
	return &Recorder{store: newStore(dir)}
}

// Record persists one entry, stamping Time if unset.
func (r *Recorder) Record(entry Entry) error {
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}
	return r.store.put(entry.ID, entry)
}

// Start subscribes the recorder to permission resolution events so that
// every request made anywhere in the process is persisted. Stop
// unsubscribes.
func (r *Recorder) Start() {
	r.stop = event.Subscribe(event.PermissionResolved, func(evt event.Event) {
		data, ok := evt.Data.(event.PermissionResolvedData)
		if !ok {
			return
		}
		err := r.Record(Entry{
			ID:      data.ID,
			Kind:    data.Kind,
			Status:  data.Status,
			Granted: data.Granted,
			Error:   data.Error,
		})
		if err != nil {
			logging.Warn().Err(err).Str("id", data.ID).Msg("failed to record permission history")
		}
	})
}

// Stop detaches the recorder from the event bus.
func (r *Recorder) Stop() {
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
}

// List returns every entry, oldest first. Request IDs are ULIDs, so
// lexicographic key order is chronological.
func (r *Recorder) List() ([]Entry, error) {
	var entries []Entry
	err := r.store.scan(func(_ string, data json.RawMessage) error {
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			// Skip corrupt documents rather than failing the listing.
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// Clear removes all recorded entries.
func (r *Recorder) Clear() error {
	return r.store.clear()
}
