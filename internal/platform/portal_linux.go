//go:build linux

package platform

import (
	"context"
	"os"

	"github.com/godbus/dbus/v5"

	"github.com/opencode-ai/sysperm/internal/permission"
)

const (
	portalBusName    = "org.freedesktop.portal.Desktop"
	portalObjectPath = "/org/freedesktop/portal/desktop"
	portalRequestIfc = "org.freedesktop.portal.Request"
)

// requestCamera asks the XDG desktop portal for camera access. The
// portal resolves via a Response signal on the request handle, delivered
// on the bus whenever the user (or the portal backend) decides.
func (l *linuxState) requestCamera(ctx context.Context, reply *permission.Reply) {
	l.portalRequest(ctx, reply, "org.freedesktop.portal.Camera.AccessCamera")
}

// requestMicrophone asks the portal for microphone device access.
func (l *linuxState) requestMicrophone(ctx context.Context, reply *permission.Reply) {
	l.portalRequest(ctx, reply, "org.freedesktop.portal.Device.AccessDevice",
		uint32(os.Getpid()), []string{"microphone"})
}

// portalRequest performs one portal access call, detaching the reply and
// delivering the Response signal's verdict from a watcher goroutine.
func (l *linuxState) portalRequest(ctx context.Context, reply *permission.Reply, method string, args ...any) {
	conn, err := l.sessionBus()
	if err != nil {
		reply.Deliver("", permission.ErrSystemWrap(err, "connect session bus"))
		return
	}

	reply.Detach()
	go func() {
		reply.Deliver(l.portalAccess(ctx, conn, method, args...))
	}()
}

// portalAccess calls a portal access method and waits for the matching
// Response signal. Response code 0 means granted, 1 means the user
// dismissed the dialog, anything else is a backend failure.
func (l *linuxState) portalAccess(ctx context.Context, conn *dbus.Conn, method string, args ...any) (permission.Status, error) {
	opts := map[string]dbus.Variant{}
	callArgs := append(append([]any{}, args...), opts)

	obj := conn.Object(portalBusName, portalObjectPath)
	var handle dbus.ObjectPath
	if err := obj.CallWithContext(ctx, method, 0, callArgs...).Store(&handle); err != nil {
		return "", permission.ErrSystemWrap(err, "portal call %s", method)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(handle),
		dbus.WithMatchInterface(portalRequestIfc),
		dbus.WithMatchMember("Response"),
	); err != nil {
		return "", permission.ErrSystemWrap(err, "subscribe portal response")
	}
	defer conn.RemoveMatchSignal(
		dbus.WithMatchObjectPath(handle),
		dbus.WithMatchInterface(portalRequestIfc),
		dbus.WithMatchMember("Response"),
	)

	sigCh := make(chan *dbus.Signal, 4)
	conn.Signal(sigCh)
	defer conn.RemoveSignal(sigCh)

	for {
		select {
		case <-ctx.Done():
			return "", &permission.Error{Code: permission.ErrCodeCancelled, Err: ctx.Err()}
		case sig, ok := <-sigCh:
			if !ok {
				return "", permission.ErrSystem("portal signal channel closed")
			}
			if sig.Path != handle || len(sig.Body) == 0 {
				continue
			}
			code, ok := sig.Body[0].(uint32)
			if !ok {
				return "", permission.ErrPlatform("malformed portal response for %s", method)
			}
			switch code {
			case 0:
				return permission.StatusAuthorized, nil
			case 1:
				return permission.StatusDenied, nil
			default:
				return permission.StatusUnknown, nil
			}
		}
	}
}
