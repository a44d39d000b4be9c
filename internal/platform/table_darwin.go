//go:build darwin

package platform

import (
	"github.com/opencode-ai/sysperm/internal/permission"
)

// buildTable constructs the macOS capability table. Media and event
// kinds go through the framework authorization APIs; the file kinds are
// resolved from the TCC database when it is readable and from protected
// path probes otherwise. Kinds without a consent dialog API deep-link
// into the matching System Settings privacy pane on request.
func buildTable(cfg Config) map[permission.Kind]ops {
	tcc := newTCCState(cfg.AppID)

	fullDisk := tcc.serviceCheck("kTCCServiceSystemPolicyAllFiles",
		probeProtected("Library", "Safari", "Bookmarks.plist"))
	adminFiles := tcc.serviceCheck("kTCCServiceSystemPolicySysAdminFiles",
		func() (permission.Status, error) {
			return probePath("/Library/Preferences/com.apple.TimeMachine.plist")
		})
	desktop := tcc.serviceCheck("kTCCServiceSystemPolicyDesktopFolder", probeProtected("Desktop"))
	documents := tcc.serviceCheck("kTCCServiceSystemPolicyDocumentsFolder", probeProtected("Documents"))
	downloads := tcc.serviceCheck("kTCCServiceSystemPolicyDownloadsFolder", probeProtected("Downloads"))
	photos := tcc.serviceCheck("kTCCServicePhotos", probeProtected("Pictures", "Photos Library.photoslibrary"))
	photosAdd := tcc.serviceCheck("kTCCServicePhotosAdd", probeProtected("Pictures", "Photos Library.photoslibrary"))
	mediaLib := tcc.serviceCheck("kTCCServiceMediaLibrary", probeProtected("Music"))
	networkVols := tcc.serviceCheck("kTCCServiceSystemPolicyNetworkVolumes",
		func() (permission.Status, error) { return probePath("/Volumes") })
	removableVols := tcc.serviceCheck("kTCCServiceSystemPolicyRemovableVolumes",
		func() (permission.Status, error) { return probePath("/Volumes") })
	appleEvents := tcc.serviceCheck("kTCCServiceAppleEvents", statically(permission.StatusNotDetermined))
	postEvent := tcc.serviceCheck("kTCCServicePostEvent", accessibilityCheck)
	devTools := tcc.serviceCheck("kTCCServiceDeveloperTool", statically(permission.StatusDenied))
	speech := tcc.serviceCheck("kTCCServiceSpeechRecognition", statically(permission.StatusNotDetermined))
	motion := tcc.serviceCheck("kTCCServiceMotion", statically(permission.StatusNotDetermined))
	fpDomain := tcc.serviceCheck("kTCCServiceFileProviderDomain", statically(permission.StatusNotDetermined))
	fpPresence := tcc.serviceCheck("kTCCServiceFileProviderPresence", statically(permission.StatusNotDetermined))
	ubiquitous := tcc.serviceCheck("kTCCServiceUbiquitousFileProvider", statically(permission.StatusDenied))
	willful := tcc.serviceCheck("kTCCServiceWillfulWrite", statically(permission.StatusNotDetermined))
	siri := tcc.serviceCheck("kTCCServiceSiri", statically(permission.StatusNotDetermined))

	return map[permission.Kind]ops{
		// Framework-backed consent dialogs
		permission.KindCamera:             {check: avCheck(mediaTypeVideo), request: avRequest(mediaTypeVideo)},
		permission.KindMicrophone:         {check: avCheck(mediaTypeAudio), request: avRequest(mediaTypeAudio)},
		permission.KindCalendar:           {check: eventKitCheck(entityEvent), request: eventKitRequest(entityEvent)},
		permission.KindReminders:          {check: eventKitCheck(entityReminder), request: eventKitRequest(entityReminder)},
		permission.KindContacts:           {check: contactsCheck, request: contactsRequest},
		permission.KindAddressBook:        {check: contactsCheck, request: contactsRequest},
		permission.KindScreenCapture:      {check: screenCaptureCheck, request: screenCaptureRequest},
		permission.KindInputMonitoring:    {check: inputMonitoringCheck, request: inputMonitoringRequest},
		permission.KindAccessibility:      {check: accessibilityCheck, request: accessibilityRequest},
		permission.KindAccessibilityMouse: {check: accessibilityCheck, request: accessibilityRequest},

		// Status-only framework queries; granting happens in System
		// Settings.
		permission.KindLocation:  {check: locationCheck, request: paneRequest(locationCheck, "Privacy_LocationServices")},
		permission.KindWiFi:      {check: locationCheck, request: paneRequest(locationCheck, "Privacy_LocationServices")},
		permission.KindBluetooth: {check: bluetoothCheck, request: paneRequest(bluetoothCheck, "Privacy_Bluetooth")},
		permission.KindNearbyInteraction: {
			check:   bluetoothCheck,
			request: paneRequest(bluetoothCheck, "Privacy_Bluetooth"),
		},

		// TCC-database kinds
		permission.KindFullDiskAccess:    {check: fullDisk, request: paneRequest(fullDisk, "Privacy_AllFiles")},
		permission.KindAdminFiles:        {check: adminFiles, request: paneRequest(adminFiles, "Privacy_SystemPolicyAllFiles")},
		permission.KindDesktopFolder:     {check: desktop, request: paneRequest(desktop, "Privacy_DesktopFolder")},
		permission.KindDocumentsFolder:   {check: documents, request: paneRequest(documents, "Privacy_DocumentsFolder")},
		permission.KindDownloadsFolder:   {check: downloads, request: paneRequest(downloads, "Privacy_DownloadsFolder")},
		permission.KindPhotos:            {check: photos, request: paneRequest(photos, "Privacy_Photos")},
		permission.KindPhotosAdd:         {check: photosAdd, request: paneRequest(photosAdd, "Privacy_Photos")},
		permission.KindMediaLibrary:      {check: mediaLib, request: paneRequest(mediaLib, "Privacy_MediaLibrary")},
		permission.KindNetworkVolumes:    {check: networkVols},
		permission.KindRemovableVolumes:  {check: removableVols},
		permission.KindAppleEvents:       {check: appleEvents, request: paneRequest(appleEvents, "Privacy_Automation")},
		permission.KindPostEvent:         {check: postEvent, request: paneRequest(postEvent, "Privacy_Accessibility")},
		permission.KindDeveloperTools:    {check: devTools, request: paneRequest(devTools, "Privacy_DeveloperTool")},
		permission.KindSpeechRecognition: {check: speech, request: paneRequest(speech, "Privacy_SpeechRecognition")},
		permission.KindMotion:            {check: motion},
		permission.KindRemoteDesktop:     {check: screenCaptureCheck, request: paneRequest(screenCaptureCheck, "Privacy_ScreenCapture")},
		permission.KindNotification:      {check: notificationCheck, request: notificationRequest},
		permission.KindFileProviderDomain:     {check: fpDomain},
		permission.KindFileProviderPresence:   {check: fpPresence},
		permission.KindUbiquitousFileProvider: {check: ubiquitous},
		permission.KindWillfulWrite:           {check: willful},
		permission.KindSiri:                   {check: siri},

		// Aggregate and iOS-only kinds
		permission.KindAll:         {check: statically(permission.StatusNotDetermined)},
		permission.KindCalls:       {check: statically(permission.StatusDenied)},
		permission.KindFaceID:      {check: statically(permission.StatusDenied)},
		permission.KindFocusStatus: {check: statically(permission.StatusDenied)},
	}
}
