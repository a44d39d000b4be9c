//go:build windows

package platform

import (
	"context"
	"errors"
	"os/exec"

	"golang.org/x/sys/windows/registry"

	"github.com/opencode-ai/sysperm/internal/permission"
)

const consentStorePath = `SOFTWARE\Microsoft\Windows\CurrentVersion\CapabilityAccessManager\ConsentStore\`

// capabilityStatus reads the CapabilityAccessManager consent value for
// one capability. The per-user hive wins; the machine hive is the
// default applied before the user has decided.
func capabilityStatus(capability string) (permission.Status, error) {
	for _, root := range []registry.Key{registry.CURRENT_USER, registry.LOCAL_MACHINE} {
		key, err := registry.OpenKey(root, consentStorePath+capability, registry.QUERY_VALUE)
		if err != nil {
			if errors.Is(err, registry.ErrNotExist) {
				continue
			}
			return "", permission.ErrSystemWrap(err, "open consent store for %s", capability)
		}
		value, _, err := key.GetStringValue("Value")
		key.Close()
		if err != nil {
			if errors.Is(err, registry.ErrNotExist) {
				continue
			}
			return "", permission.ErrSystemWrap(err, "read consent value for %s", capability)
		}
		switch value {
		case "Allow":
			return permission.StatusAuthorized, nil
		case "Deny":
			return permission.StatusDenied, nil
		case "Prompt":
			return permission.StatusNotDetermined, nil
		default:
			return permission.StatusUnknown, nil
		}
	}
	return permission.StatusNotDetermined, nil
}

func capabilityCheck(capability string) checkFunc {
	return func() (permission.Status, error) {
		return capabilityStatus(capability)
	}
}

// openSettings deep-links into the Settings app.
func openSettings(uri string) error {
	return exec.Command("rundll32", "url.dll,FileProtocolHandler", uri).Start()
}

// settingsRequest re-checks first and only opens the Settings page when
// the permission is not already granted. Desktop apps cannot trigger
// the consent dialog directly; the user flips the toggle by hand.
func settingsRequest(check checkFunc, uri string) requestFunc {
	return func(_ context.Context, reply *permission.Reply) {
		status, err := check()
		if err != nil {
			reply.Deliver("", err)
			return
		}
		if status == permission.StatusAuthorized {
			reply.Deliver(permission.StatusAuthorized, nil)
			return
		}
		if err := openSettings(uri); err != nil {
			reply.Deliver("", permission.ErrSystemWrap(err, "open settings page %s", uri))
			return
		}
		reply.Deliver(permission.StatusPromptRequired, nil)
	}
}
