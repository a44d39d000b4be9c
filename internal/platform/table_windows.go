//go:build windows

package platform

import (
	"golang.org/x/sys/windows"

	"github.com/opencode-ai/sysperm/internal/permission"
)

// buildTable constructs the Windows capability table. Consent state
// lives in the CapabilityAccessManager consent store; requests deep-link
// into the matching Settings privacy page since desktop apps cannot
// raise the consent dialog themselves.
func buildTable(cfg Config) map[permission.Kind]ops {
	n := &notifier{appID: cfg.AppID}

	capability := func(name, settingsURI string) ops {
		check := capabilityCheck(name)
		return ops{check: check, request: settingsRequest(check, settingsURI)}
	}

	return map[permission.Kind]ops{
		// CapabilityAccessManager kinds
		permission.KindCamera:            capability("webcam", "ms-settings:privacy-webcam"),
		permission.KindMicrophone:        capability("microphone", "ms-settings:privacy-microphone"),
		permission.KindLocation:          capability("location", "ms-settings:privacy-location"),
		permission.KindContacts:          capability("contacts", "ms-settings:privacy-contacts"),
		permission.KindAddressBook:       capability("contacts", "ms-settings:privacy-contacts"),
		permission.KindCalendar:          capability("appointments", "ms-settings:privacy-calendar"),
		permission.KindReminders:         capability("appointments", "ms-settings:privacy-tasks"),
		permission.KindPhotos:            capability("picturesLibrary", "ms-settings:privacy-pictures"),
		permission.KindPhotosAdd:         capability("picturesLibrary", "ms-settings:privacy-pictures"),
		permission.KindMediaLibrary:      capability("musicLibrary", "ms-settings:privacy"),
		permission.KindDocumentsFolder:   capability("documentsLibrary", "ms-settings:privacy-documents"),
		permission.KindDownloadsFolder:   capability("downloadsFolder", "ms-settings:privacy-downloadsfolder"),
		permission.KindFullDiskAccess:    capability("broadFileSystemAccess", "ms-settings:privacy-broadfilesystemaccess"),
		permission.KindBluetooth:         capability("radios", "ms-settings:privacy-radios"),
		permission.KindWiFi:              capability("radios", "ms-settings:privacy-radios"),
		permission.KindNearbyInteraction: capability("radios", "ms-settings:privacy-radios"),
		permission.KindMotion:            capability("activity", "ms-settings:privacy-activityhistory"),
		permission.KindCalls:             capability("phoneCall", "ms-settings:privacy-phonecalls"),
		permission.KindScreenCapture:     {check: capabilityCheck("graphicsCaptureProgrammatic")},
		permission.KindRemoteDesktop:     {check: capabilityCheck("graphicsCaptureProgrammatic")},

		// Folder kinds without a consent store entry
		permission.KindDesktopFolder: {check: func() (permission.Status, error) { return probeHomeDir("Desktop") }},

		// System-level kinds
		permission.KindAdminFiles: {check: elevationStatus, request: requestElevation},
		permission.KindNetworkVolumes: {check: func() (permission.Status, error) {
			return driveStatus(windows.DRIVE_REMOTE)
		}},
		permission.KindRemovableVolumes: {check: func() (permission.Status, error) {
			return driveStatus(windows.DRIVE_REMOVABLE)
		}},
		permission.KindDeveloperTools: {
			check:   developerModeStatus,
			request: settingsRequest(developerModeStatus, "ms-settings:developers"),
		},
		permission.KindNotification: {check: n.status, request: n.request},
		permission.KindSpeechRecognition: {
			check:   statically(permission.StatusNotDetermined),
			request: settingsRequest(statically(permission.StatusNotDetermined), "ms-settings:privacy-speech"),
		},

		// Ungated on Windows
		permission.KindAccessibility:      {check: statically(permission.StatusAuthorized)},
		permission.KindAccessibilityMouse: {check: statically(permission.StatusAuthorized)},
		permission.KindInputMonitoring:    {check: statically(permission.StatusAuthorized)},
		permission.KindPostEvent:          {check: statically(permission.StatusAuthorized)},

		// Kinds with no Windows counterpart
		permission.KindAll:                    {check: statically(permission.StatusNotDetermined)},
		permission.KindAppleEvents:            {check: statically(permission.StatusDenied)},
		permission.KindFileProviderDomain:     {check: statically(permission.StatusNotDetermined)},
		permission.KindFileProviderPresence:   {check: statically(permission.StatusNotDetermined)},
		permission.KindUbiquitousFileProvider: {check: statically(permission.StatusDenied)},
		permission.KindWillfulWrite:           {check: statically(permission.StatusNotDetermined)},
		permission.KindFaceID:                 {check: statically(permission.StatusDenied)},
		permission.KindFocusStatus:            {check: statically(permission.StatusDenied)},
		permission.KindSiri:                   {check: statically(permission.StatusDenied)},
	}
}
