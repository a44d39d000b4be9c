//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework Foundation -framework AVFoundation -framework CoreLocation -framework EventKit -framework Contacts -framework CoreBluetooth -framework ApplicationServices -framework CoreGraphics -framework IOKit -framework UserNotifications

#include "bridge_darwin.h"
*/
import "C"

import (
	"context"

	"github.com/opencode-ai/sysperm/internal/permission"
)

//export syspermAuthDone
func syspermAuthDone(token C.long, status C.int) {
	authDone(int64(token), int(status))
}

// checkNative adapts one of the synchronous bridge status queries.
func checkNative(query func() C.int) checkFunc {
	return func() (permission.Status, error) {
		return statusFromNative(int(query())), nil
	}
}

// requestNative adapts one of the completion-handler bridge requests.
// The native call returns immediately; the completion handler fires on
// an OS thread and is routed through syspermAuthDone.
func requestNative(start func(token C.long)) requestFunc {
	return func(ctx context.Context, reply *permission.Reply) {
		reply.Detach()
		go func() {
			token, pc := callbacks.register()
			defer callbacks.drop(token)

			start(C.long(token))
			reply.Deliver(awaitResult(ctx, pc.guard, pc.ch, 0))
		}()
	}
}

// Media types accepted by sysperm_av_status / sysperm_av_request.
const (
	mediaTypeVideo = 0
	mediaTypeAudio = 1
)

func avCheck(mediaType int) checkFunc {
	return checkNative(func() C.int { return C.sysperm_av_status(C.int(mediaType)) })
}

func avRequest(mediaType int) requestFunc {
	return requestNative(func(token C.long) { C.sysperm_av_request(C.int(mediaType), token) })
}

// Entity types accepted by the EventKit bridge.
const (
	entityEvent    = 0
	entityReminder = 1
)

func eventKitCheck(entity int) checkFunc {
	return checkNative(func() C.int { return C.sysperm_eventkit_status(C.int(entity)) })
}

func eventKitRequest(entity int) requestFunc {
	return requestNative(func(token C.long) { C.sysperm_eventkit_request(C.int(entity), token) })
}

func contactsCheck() (permission.Status, error) {
	return statusFromNative(int(C.sysperm_contacts_status())), nil
}

var contactsRequest = requestNative(func(token C.long) { C.sysperm_contacts_request(token) })

func locationCheck() (permission.Status, error) {
	return statusFromNative(int(C.sysperm_location_status())), nil
}

func bluetoothCheck() (permission.Status, error) {
	return statusFromNative(int(C.sysperm_bluetooth_status())), nil
}

// accessibilityCheck never prompts; accessibilityRequest asks the OS to
// show the System Settings prompt and reports the current trust state.
func accessibilityCheck() (permission.Status, error) {
	if C.sysperm_ax_trusted(0) != 0 {
		return permission.StatusAuthorized, nil
	}
	return permission.StatusDenied, nil
}

func accessibilityRequest(_ context.Context, reply *permission.Reply) {
	if C.sysperm_ax_trusted(1) != 0 {
		reply.Deliver(permission.StatusAuthorized, nil)
		return
	}
	// macOS opened System Settings; the user must grant manually.
	reply.Deliver(permission.StatusDenied, nil)
}

func screenCaptureCheck() (permission.Status, error) {
	if C.sysperm_screen_preflight() != 0 {
		return permission.StatusAuthorized, nil
	}
	return permission.StatusDenied, nil
}

// screenCaptureRequest triggers the one-time system dialog. The native
// call blocks until the dialog resolves, so it runs detached.
func screenCaptureRequest(ctx context.Context, reply *permission.Reply) {
	reply.Detach()
	go func() {
		guard := &callbackGuard{}
		ch := make(chan permission.Result, 1)
		go func() {
			granted := C.sysperm_screen_request() != 0
			if !guard.stillWanted() {
				return
			}
			status := permission.StatusDenied
			if granted {
				status = permission.StatusAuthorized
			}
			ch <- permission.Result{Status: status}
		}()
		reply.Deliver(awaitResult(ctx, guard, ch, 0))
	}()
}

// notificationCheck queries UNUserNotificationCenter for the current
// authorization. The settings arrive on a completion handler even though
// no user interaction occurs, so the wait is bounded by settleTimeout;
// a system that never answers reads as unknown rather than hanging the
// caller.
func notificationCheck() (permission.Status, error) {
	token, pc := callbacks.register()
	defer callbacks.drop(token)

	C.sysperm_notification_status(C.long(token))
	return awaitResult(context.Background(), pc.guard, pc.ch, settleTimeout)
}

// notificationRequest triggers the one-time notification consent dialog.
var notificationRequest = requestNative(func(token C.long) { C.sysperm_notification_request(token) })

func inputMonitoringCheck() (permission.Status, error) {
	// kIOHIDAccessTypeGranted=0, Denied=1, Unknown=2
	switch C.sysperm_hid_check() {
	case 0:
		return permission.StatusAuthorized, nil
	case 1:
		return permission.StatusDenied, nil
	default:
		return permission.StatusNotDetermined, nil
	}
}

func inputMonitoringRequest(ctx context.Context, reply *permission.Reply) {
	reply.Detach()
	go func() {
		guard := &callbackGuard{}
		ch := make(chan permission.Result, 1)
		go func() {
			granted := C.sysperm_hid_request() != 0
			if !guard.stillWanted() {
				return
			}
			status := permission.StatusDenied
			if granted {
				status = permission.StatusAuthorized
			}
			ch <- permission.Result{Status: status}
		}()
		reply.Deliver(awaitResult(ctx, guard, ch, 0))
	}()
}
