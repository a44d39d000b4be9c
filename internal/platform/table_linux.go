//go:build linux

package platform

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/opencode-ai/sysperm/internal/permission"
)

// buildTable constructs the Linux capability table. Checks are passive
// probes (device nodes, D-Bus service presence, folder access); only the
// portal-backed media kinds have a real consent dialog to request.
func buildTable(_ Config) map[permission.Kind]ops {
	l := &linuxState{}

	table := map[permission.Kind]ops{
		// Portal-backed media kinds
		permission.KindCamera: {
			check:   func() (permission.Status, error) { return probePath("/dev/video0") },
			request: l.requestCamera,
		},
		permission.KindMicrophone: {
			check:   func() (permission.Status, error) { return probePath("/dev/snd/controlC0") },
			request: l.requestMicrophone,
		},

		// Service-presence kinds
		permission.KindLocation:           {check: l.systemServiceCheck("org.freedesktop.GeoClue2")},
		permission.KindBluetooth:          {check: l.systemServiceCheck("org.bluez", "org.bluez.Manager")},
		permission.KindWiFi:               {check: l.systemServiceCheck("org.freedesktop.NetworkManager")},
		permission.KindNearbyInteraction:  {check: l.systemServiceCheck("org.bluez")},
		permission.KindCalendar:           {check: l.sessionServiceCheck("org.gnome.evolution.dataserver.Calendar8", "org.gnome.evolution.dataserver.Calendar7")},
		permission.KindReminders:          {check: l.sessionServiceCheck("org.gnome.evolution.dataserver.Calendar8", "org.gnome.evolution.dataserver.Calendar7")},
		permission.KindContacts:           {check: l.sessionServiceCheck("org.gnome.evolution.dataserver.AddressBook10", "org.gnome.evolution.dataserver.AddressBook")},
		permission.KindAddressBook:        {check: l.sessionServiceCheck("org.gnome.evolution.dataserver.AddressBook10", "org.gnome.evolution.dataserver.AddressBook")},
		permission.KindSpeechRecognition:  {check: l.sessionServiceCheck("org.freedesktop.speech-dispatcher", "org.freedesktop.speech.dispatcher")},
		permission.KindAccessibility:      {check: l.sessionServiceCheck("org.a11y.Bus")},
		permission.KindAccessibilityMouse: {check: l.sessionServiceCheck("org.a11y.Bus")},
		permission.KindNotification:       {check: l.notificationServerStatus},

		// Folder-access kinds
		permission.KindPhotos:          {check: func() (permission.Status, error) { return probeHomeDir("Pictures") }},
		permission.KindPhotosAdd:       {check: func() (permission.Status, error) { return probeHomeDir("Pictures") }},
		permission.KindMediaLibrary:    {check: func() (permission.Status, error) { return probeHomeDir("Music") }},
		permission.KindDesktopFolder:   {check: func() (permission.Status, error) { return probeHomeDir("Desktop") }},
		permission.KindDocumentsFolder: {check: func() (permission.Status, error) { return probeHomeDir("Documents") }},
		permission.KindDownloadsFolder: {check: func() (permission.Status, error) { return probeHomeDir("Downloads") }},

		// System-level kinds
		permission.KindFullDiskAccess:   {check: rootStatus, request: requestElevation},
		permission.KindAdminFiles:       {check: rootStatus, request: requestElevation},
		permission.KindScreenCapture:    {check: func() (permission.Status, error) { return probePath("/dev/fb0") }},
		permission.KindRemoteDesktop:    {check: func() (permission.Status, error) { return probePath("/dev/fb0") }},
		permission.KindInputMonitoring:  {check: func() (permission.Status, error) { return probePath("/dev/input/event0") }},
		permission.KindNetworkVolumes:   {check: func() (permission.Status, error) { return mountStatus("/mnt") }},
		permission.KindRemovableVolumes: {check: func() (permission.Status, error) { return mountStatus("/media") }},
		permission.KindMotion:           {check: func() (permission.Status, error) { return probePath("/sys/bus/iio/devices") }},

		// Event-posting kinds map to session bus reachability
		permission.KindAppleEvents: {check: l.busPing},
		permission.KindPostEvent:   {check: l.busPing},

		// Kinds with no Linux counterpart
		permission.KindAll:                    {check: statically(permission.StatusNotDetermined)},
		permission.KindDeveloperTools:         {check: statically(permission.StatusAuthorized)},
		permission.KindFileProviderDomain:     {check: statically(permission.StatusNotDetermined)},
		permission.KindFileProviderPresence:   {check: statically(permission.StatusNotDetermined)},
		permission.KindUbiquitousFileProvider: {check: statically(permission.StatusDenied)},
		permission.KindWillfulWrite:           {check: statically(permission.StatusNotDetermined)},
		permission.KindCalls:                  {check: statically(permission.StatusDenied)},
		permission.KindFaceID:                 {check: statically(permission.StatusDenied)},
		permission.KindFocusStatus:            {check: statically(permission.StatusDenied)},
		permission.KindSiri:                   {check: statically(permission.StatusDenied)},
	}

	return table
}

// rootStatus reports whether the process runs with root privileges.
func rootStatus() (permission.Status, error) {
	if os.Geteuid() == 0 {
		return permission.StatusAuthorized, nil
	}
	return permission.StatusDenied, nil
}

// requestElevation cannot show a dialog itself; a non-root caller must
// surface its own elevation UI (sudo, polkit).
func requestElevation(_ context.Context, reply *permission.Reply) {
	if os.Geteuid() == 0 {
		reply.Deliver(permission.StatusAuthorized, nil)
		return
	}
	reply.Deliver(permission.StatusPromptRequired, nil)
}

// mountStatus reports whether a mount root is visible.
func mountStatus(path string) (permission.Status, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return permission.StatusDenied, nil
		}
		return "", permission.ErrSystemWrap(err, "stat %s", path)
	}
	return permission.StatusAuthorized, nil
}
