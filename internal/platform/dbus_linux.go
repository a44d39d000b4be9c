//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/godbus/dbus/v5"

	"github.com/opencode-ai/sysperm/internal/logging"
	"github.com/opencode-ai/sysperm/internal/permission"
)

// linuxState holds the lazily-established D-Bus connections shared by
// every adapter on the table.
type linuxState struct {
	mu      sync.Mutex
	session *dbus.Conn
	system  *dbus.Conn
}

// sessionBus returns the shared session bus connection, dialing it on
// first use. Session-bus startup can race the desktop environment, so
// the dial is retried with exponential backoff.
func (l *linuxState) sessionBus() (*dbus.Conn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.session != nil {
		return l.session, nil
	}
	conn, err := dialBus(dbus.SessionBus)
	if err != nil {
		return nil, err
	}
	l.session = conn
	return conn, nil
}

// systemBus returns the shared system bus connection.
func (l *linuxState) systemBus() (*dbus.Conn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.system != nil {
		return l.system, nil
	}
	conn, err := dialBus(dbus.SystemBus)
	if err != nil {
		return nil, err
	}
	l.system = conn
	return conn, nil
}

func dialBus(dial func() (*dbus.Conn, error)) (*dbus.Conn, error) {
	var conn *dbus.Conn
	op := func() error {
		c, err := dial()
		if err != nil {
			return err
		}
		conn = c
		return nil
	}
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return conn, nil
}

// serviceStatus probes whether any of the given well-known bus names is
// owned. A running owner is authorized; a name that is only activatable
// has not been started yet; a name the bus knows nothing about is
// denied.
func serviceStatus(conn *dbus.Conn, names ...string) (permission.Status, error) {
	busObj := conn.BusObject()

	for _, name := range names {
		var owned bool
		if err := busObj.Call("org.freedesktop.DBus.NameHasOwner", 0, name).Store(&owned); err != nil {
			return "", permission.ErrSystemWrap(err, "query bus name %s", name)
		}
		if owned {
			return permission.StatusAuthorized, nil
		}
	}

	var activatable []string
	if err := busObj.Call("org.freedesktop.DBus.ListActivatableNames", 0).Store(&activatable); err != nil {
		return "", permission.ErrSystemWrap(err, "list activatable names")
	}
	for _, name := range names {
		for _, a := range activatable {
			if a == name {
				return permission.StatusNotDetermined, nil
			}
		}
	}
	return permission.StatusDenied, nil
}

// sessionServiceCheck adapts serviceStatus over the session bus into a
// checkFunc.
func (l *linuxState) sessionServiceCheck(names ...string) checkFunc {
	return func() (permission.Status, error) {
		conn, err := l.sessionBus()
		if err != nil {
			return "", permission.ErrSystemWrap(err, "connect session bus")
		}
		return serviceStatus(conn, names...)
	}
}

// systemServiceCheck adapts serviceStatus over the system bus into a
// checkFunc.
func (l *linuxState) systemServiceCheck(names ...string) checkFunc {
	return func() (permission.Status, error) {
		conn, err := l.systemBus()
		if err != nil {
			return "", permission.ErrSystemWrap(err, "connect system bus")
		}
		return serviceStatus(conn, names...)
	}
}

// busPing verifies that the session bus answers method calls at all;
// the nearest Linux analog to posting synthetic events.
func (l *linuxState) busPing() (permission.Status, error) {
	conn, err := l.sessionBus()
	if err != nil {
		return "", permission.ErrSystemWrap(err, "connect session bus")
	}
	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return "", permission.ErrSystemWrap(err, "list bus names")
	}
	return permission.StatusAuthorized, nil
}

// notificationServerStatus checks whether a notification daemon serves
// org.freedesktop.Notifications.
func (l *linuxState) notificationServerStatus() (permission.Status, error) {
	conn, err := l.sessionBus()
	if err != nil {
		return "", permission.ErrSystemWrap(err, "connect session bus")
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	var name, vendor, version, specVersion string
	err = obj.Call("org.freedesktop.Notifications.GetServerInformation", 0).
		Store(&name, &vendor, &version, &specVersion)
	if err != nil {
		var dbusErr dbus.Error
		if ok := asDBusError(err, &dbusErr); ok && dbusErr.Name == "org.freedesktop.DBus.Error.ServiceUnknown" {
			return permission.StatusDenied, nil
		}
		return "", permission.ErrSystemWrap(err, "query notification server")
	}

	logging.Debug().
		Str("server", fmt.Sprintf("%s %s", name, version)).
		Msg("notification daemon present")
	return permission.StatusAuthorized, nil
}

func asDBusError(err error, target *dbus.Error) bool {
	if de, ok := err.(dbus.Error); ok {
		*target = de
		return true
	}
	return false
}

// close releases the bus connections. Only used by tests.
func (l *linuxState) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.session != nil {
		_ = l.session.Close()
		l.session = nil
	}
	if l.system != nil {
		_ = l.system.Close()
		l.system = nil
	}
}
