//go:build windows

package platform

import (
	"context"
	"errors"

	"golang.org/x/sys/windows/registry"

	"github.com/opencode-ai/sysperm/internal/config"
	"github.com/opencode-ai/sysperm/internal/logging"
	"github.com/opencode-ai/sysperm/internal/permission"
)

const (
	appUserModelIDPath = `SOFTWARE\Classes\AppUserModelId\`
	pushNotifyPath     = `SOFTWARE\Microsoft\Windows\CurrentVersion\PushNotifications`
)

// notifier handles toast notification registration for the configured
// AppUserModelID.
type notifier struct {
	appID string
}

// id prefers the construction-time app ID, falling back to the
// process-wide one so a late config.SetAppID still takes effect.
func (n *notifier) id() string {
	if n.appID != "" {
		return n.appID
	}
	return config.AppID()
}

// status reports Denied when toasts are disabled system-wide, Authorized
// when our AUMID is registered, and NotDetermined otherwise.
func (n *notifier) status() (permission.Status, error) {
	if key, err := registry.OpenKey(registry.CURRENT_USER, pushNotifyPath, registry.QUERY_VALUE); err == nil {
		enabled, _, err := key.GetIntegerValue("ToastEnabled")
		key.Close()
		if err == nil && enabled == 0 {
			return permission.StatusDenied, nil
		}
	}

	appID := n.id()
	key, err := registry.OpenKey(registry.CURRENT_USER, appUserModelIDPath+appID, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return permission.StatusNotDetermined, nil
		}
		return "", permission.ErrSystemWrap(err, "open AUMID key for %s", appID)
	}
	key.Close()
	return permission.StatusAuthorized, nil
}

// request registers the AUMID so toasts sent under it are accepted.
// Registration is idempotent.
func (n *notifier) request(_ context.Context, reply *permission.Reply) {
	status, err := n.status()
	if err != nil {
		reply.Deliver("", err)
		return
	}
	if status == permission.StatusDenied {
		// Toasts are off system-wide; registration will not help.
		reply.Deliver(permission.StatusDenied, nil)
		return
	}

	appID := n.id()
	key, _, err := registry.CreateKey(registry.CURRENT_USER, appUserModelIDPath+appID, registry.SET_VALUE)
	if err != nil {
		reply.Deliver("", permission.ErrSystemWrap(err, "register AUMID %s", appID))
		return
	}
	defer key.Close()
	if err := key.SetStringValue("DisplayName", appID); err != nil {
		reply.Deliver("", permission.ErrSystemWrap(err, "set AUMID display name"))
		return
	}

	logging.Debug().Str("app_id", appID).Msg("registered AppUserModelID for notifications")
	reply.Deliver(permission.StatusAuthorized, nil)
}
