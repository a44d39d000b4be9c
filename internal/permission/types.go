// Package permission provides cross-platform checking and requesting of
// OS-level permissions.
package permission

// Kind identifies a requestable OS capability.
type Kind string

const (
	KindCamera                 Kind = "camera"
	KindMicrophone             Kind = "microphone"
	KindLocation               Kind = "location"
	KindCalendar               Kind = "calendar"
	KindReminders              Kind = "reminders"
	KindContacts               Kind = "contacts"
	KindBluetooth              Kind = "bluetooth"
	KindFullDiskAccess         Kind = "full_disk_access"
	KindScreenCapture          Kind = "screen_capture"
	KindAccessibility          Kind = "accessibility"
	KindAccessibilityMouse     Kind = "accessibility_mouse"
	KindInputMonitoring        Kind = "input_monitoring"
	KindPhotos                 Kind = "photos"
	KindSpeechRecognition      Kind = "speech_recognition"
	KindDesktopFolder          Kind = "desktop_folder"
	KindDocumentsFolder        Kind = "documents_folder"
	KindDownloadsFolder        Kind = "downloads_folder"
	KindAppleEvents            Kind = "apple_events"
	KindDeveloperTools         Kind = "developer_tools"
	KindAdminFiles             Kind = "admin_files"
	KindAddressBook            Kind = "address_book"
	KindAll                    Kind = "all"
	KindCalls                  Kind = "calls"
	KindFaceID                 Kind = "face_id"
	KindFileProviderDomain     Kind = "file_provider_domain"
	KindFileProviderPresence   Kind = "file_provider_presence"
	KindFocusStatus            Kind = "focus_status"
	KindMediaLibrary           Kind = "media_library"
	KindMotion                 Kind = "motion"
	KindNearbyInteraction      Kind = "nearby_interaction"
	KindPhotosAdd              Kind = "photos_add"
	KindPostEvent              Kind = "post_event"
	KindRemoteDesktop          Kind = "remote_desktop"
	KindSiri                   Kind = "siri"
	KindNetworkVolumes         Kind = "network_volumes"
	KindRemovableVolumes       Kind = "removable_volumes"
	KindUbiquitousFileProvider Kind = "ubiquitous_file_provider"
	KindWillfulWrite           Kind = "willful_write"
	KindWiFi                   Kind = "wifi"
	KindNotification           Kind = "notification"
)

// allKinds lists every Kind in declaration order.
var allKinds = []Kind{
	KindCamera,
	KindMicrophone,
	KindLocation,
	KindCalendar,
	KindReminders,
	KindContacts,
	KindBluetooth,
	KindFullDiskAccess,
	KindScreenCapture,
	KindAccessibility,
	KindAccessibilityMouse,
	KindInputMonitoring,
	KindPhotos,
	KindSpeechRecognition,
	KindDesktopFolder,
	KindDocumentsFolder,
	KindDownloadsFolder,
	KindAppleEvents,
	KindDeveloperTools,
	KindAdminFiles,
	KindAddressBook,
	KindAll,
	KindCalls,
	KindFaceID,
	KindFileProviderDomain,
	KindFileProviderPresence,
	KindFocusStatus,
	KindMediaLibrary,
	KindMotion,
	KindNearbyInteraction,
	KindPhotosAdd,
	KindPostEvent,
	KindRemoteDesktop,
	KindSiri,
	KindNetworkVolumes,
	KindRemovableVolumes,
	KindUbiquitousFileProvider,
	KindWillfulWrite,
	KindWiFi,
	KindNotification,
}

// AllKinds returns every supported permission kind in a stable order.
func AllKinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// ParseKind converts a string (as accepted on the CLI or in config files)
// into a Kind. The second return value reports whether the name was
// recognized.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	for _, known := range allKinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

func (k Kind) String() string {
	return string(k)
}

// Status is the normalized outcome of checking or requesting a permission.
// Statuses are opaque facts; no ordering is defined between them.
type Status string

const (
	// StatusNotDetermined means the permission has not been requested yet.
	StatusNotDetermined Status = "not_determined"
	// StatusAuthorized means the permission has been granted.
	StatusAuthorized Status = "authorized"
	// StatusDenied means the user denied the permission.
	StatusDenied Status = "denied"
	// StatusRestricted means system policy forbids the permission.
	StatusRestricted Status = "restricted"
	// StatusPromptRequired means the caller must surface an OS elevation
	// or consent UI (UAC on Windows, sudo on Unix).
	StatusPromptRequired Status = "prompt_required"
	// StatusUnknown means the platform could not determine the status.
	StatusUnknown Status = "unknown"
)

func (s Status) String() string {
	return string(s)
}
