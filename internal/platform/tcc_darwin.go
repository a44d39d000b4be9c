//go:build darwin

package platform

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/opencode-ai/sysperm/internal/logging"
	"github.com/opencode-ai/sysperm/internal/permission"
)

// TCC auth_value codes.
const (
	tccDenied  = 0
	tccUnknown = 1
	tccAllowed = 2
	tccLimited = 3
)

// tccState reads consent decisions out of the per-user TCC database.
// Reading the database itself requires Full Disk Access, so every
// service lookup carries a probe fallback for the common case where the
// database is off limits.
type tccState struct {
	mu     sync.Mutex
	opened bool
	db     *sql.DB
	client string
}

func newTCCState(client string) *tccState {
	return &tccState{client: client}
}

func (t *tccState) open() *sql.DB {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.opened {
		return t.db
	}
	t.opened = true

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(home, "Library", "Application Support", "com.apple.TCC", "TCC.db")
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil
	}
	// sql.Open is lazy; a ping tells us whether TCC.db is readable.
	if err := db.Ping(); err != nil {
		logging.Debug().Err(err).Msg("TCC database unreadable, using probe fallbacks")
		_ = db.Close()
		return nil
	}
	t.db = db
	return db
}

// serviceCheck looks up one kTCCService row for this client, falling
// back to the given probe when the database or the row is unavailable.
func (t *tccState) serviceCheck(service string, fallback checkFunc) checkFunc {
	return func() (permission.Status, error) {
		db := t.open()
		if db == nil {
			return fallback()
		}

		var auth int
		err := db.QueryRow(
			"SELECT auth_value FROM access WHERE service = ? AND client = ?",
			service, t.client,
		).Scan(&auth)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fallback()
		case err != nil:
			return "", permission.ErrSystemWrap(err, "query TCC service %s", service)
		}

		switch auth {
		case tccAllowed, tccLimited:
			return permission.StatusAuthorized, nil
		case tccDenied:
			return permission.StatusDenied, nil
		case tccUnknown:
			return permission.StatusNotDetermined, nil
		default:
			return permission.StatusUnknown, nil
		}
	}
}

// openPrivacyPane deep-links into the matching System Settings privacy
// pane. macOS offers no API to trigger consent dialogs for these kinds;
// the user flips the switch by hand.
func openPrivacyPane(anchor string) error {
	url := "x-apple.systempreferences:com.apple.preference.security?" + anchor
	return exec.Command("open", url).Start()
}

// paneRequest re-checks first and only sends the user to System
// Settings when the permission is not already granted.
func paneRequest(check checkFunc, anchor string) requestFunc {
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
		if err := openPrivacyPane(anchor); err != nil {
			reply.Deliver("", permission.ErrSystemWrap(err, "open privacy pane %s", anchor))
			return
		}
		reply.Deliver(permission.StatusPromptRequired, nil)
	}
}

// probeProtected checks read access to a TCC-protected file relative to
// the user's home directory.
func probeProtected(elem ...string) checkFunc {
	return func() (permission.Status, error) {
		return probeHomeDir(elem...)
	}
}
