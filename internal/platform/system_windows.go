//go:build windows

package platform

import (
	"context"
	"errors"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/opencode-ai/sysperm/internal/permission"
)

// elevationStatus reports whether the process token is elevated.
func elevationStatus() (permission.Status, error) {
	if windows.GetCurrentProcessToken().IsElevated() {
		return permission.StatusAuthorized, nil
	}
	return permission.StatusDenied, nil
}

// requestElevation cannot raise a UAC prompt for an already-running
// process; the caller has to relaunch elevated.
func requestElevation(_ context.Context, reply *permission.Reply) {
	if windows.GetCurrentProcessToken().IsElevated() {
		reply.Deliver(permission.StatusAuthorized, nil)
		return
	}
	reply.Deliver(permission.StatusPromptRequired, nil)
}

// driveStatus reports whether any mounted drive has the given type
// (windows.DRIVE_REMOTE, windows.DRIVE_REMOVABLE).
func driveStatus(driveType uint32) (permission.Status, error) {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return "", permission.ErrSystemWrap(err, "enumerate logical drives")
	}
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		root := string(rune('A'+i)) + `:\`
		rootPtr, err := windows.UTF16PtrFromString(root)
		if err != nil {
			continue
		}
		if windows.GetDriveType(rootPtr) == driveType {
			return permission.StatusAuthorized, nil
		}
	}
	return permission.StatusDenied, nil
}

// developerModeStatus reads the machine-wide developer mode switch.
func developerModeStatus() (permission.Status, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Windows\CurrentVersion\AppModelUnlock`, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return permission.StatusNotDetermined, nil
		}
		return "", permission.ErrSystemWrap(err, "open developer mode key")
	}
	defer key.Close()

	enabled, _, err := key.GetIntegerValue("AllowDevelopmentWithoutDevLicense")
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return permission.StatusNotDetermined, nil
		}
		return "", permission.ErrSystemWrap(err, "read developer mode value")
	}
	if enabled != 0 {
		return permission.StatusAuthorized, nil
	}
	return permission.StatusDenied, nil
}
