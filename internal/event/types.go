package event

// EventType represents the type of event.
type EventType string

const (
	// PermissionChecked fires after a fresh platform check populated the
	// status cache. Cache hits do not publish.
	PermissionChecked EventType = "permission.checked"
	// PermissionRequested fires when a permission request is dispatched
	// to the platform, before any dialog resolves.
	PermissionRequested EventType = "permission.requested"
	// PermissionResolved fires when a permission request completes,
	// successfully or not.
	PermissionResolved EventType = "permission.resolved"
	// CacheCleared fires when the status cache is emptied.
	CacheCleared EventType = "cache.cleared"
)

// PermissionCheckedData is the data for permission.checked events.
type PermissionCheckedData struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// PermissionRequestedData is the data for permission.requested events.
type PermissionRequestedData struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// PermissionResolvedData is the data for permission.resolved events.
// Exactly one of Status or Error is set.
type PermissionResolvedData struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Status  string `json:"status,omitempty"`
	Granted bool   `json:"granted"`
	Error   string `json:"error,omitempty"`
}

// CacheClearedData is the data for cache.cleared events.
type CacheClearedData struct{}
