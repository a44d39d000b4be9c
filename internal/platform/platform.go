// Package platform implements the native permission adapters for each
// supported operating system. A capability-indexed table maps every
// permission kind to its check and request implementations; the table is
// built once at startup so the manager stays platform-agnostic.
package platform

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/opencode-ai/sysperm/internal/permission"
)

// Config carries adapter configuration injected at construction time.
type Config struct {
	// AppID is the application identifier (Windows AUMID) used for
	// notification branding. Resolve it via config.ResolveAppID.
	AppID string
}

// checkFunc returns the current status without user interaction.
type checkFunc func() (permission.Status, error)

// requestFunc asks the user, delivering exactly one value into reply on
// every path. Async implementations detach the reply first.
type requestFunc func(ctx context.Context, reply *permission.Reply)

// ops pairs the implementations for one permission kind. A nil request
// means the kind has no native request API; Request falls back to
// reporting the current status.
type ops struct {
	check   checkFunc
	request requestFunc
}

// Handler dispatches permission operations through the per-OS table.
// It implements permission.Handler.
type Handler struct {
	table map[permission.Kind]ops
}

// New builds the handler for the current operating system.
func New(cfg Config) *Handler {
	return &Handler{table: buildTable(cfg)}
}

// Check returns the native status for kind.
func (h *Handler) Check(kind permission.Kind) (permission.Status, error) {
	op, ok := h.table[kind]
	if !ok {
		return "", permission.ErrPlatform("unsupported permission kind %q", kind)
	}
	return op.check()
}

// Request asks the user for kind, delivering the result into reply.
func (h *Handler) Request(ctx context.Context, kind permission.Kind, reply *permission.Reply) {
	op, ok := h.table[kind]
	if !ok {
		reply.Deliver("", permission.ErrPlatform("unsupported permission kind %q", kind))
		return
	}
	if op.request == nil {
		// No request API for this kind; report the current status.
		reply.Deliver(op.check())
		return
	}
	op.request(ctx, reply)
}

// Kinds returns every kind present in the current platform's table.
func (h *Handler) Kinds() []permission.Kind {
	kinds := make([]permission.Kind, 0, len(h.table))
	for _, k := range permission.AllKinds() {
		if _, ok := h.table[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// statically reports a fixed status; used for kinds a platform answers
// without any native call.
func statically(status permission.Status) checkFunc {
	return func() (permission.Status, error) {
		return status, nil
	}
}

// probePath maps the accessibility of a file or directory to a status:
// readable means authorized, EACCES means denied, a missing path counts
// as denied (the protected resource is not reachable).
func probePath(path string) (permission.Status, error) {
	f, err := os.Open(path)
	if err == nil {
		f.Close()
		return permission.StatusAuthorized, nil
	}
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		return permission.StatusDenied, nil
	}
	return "", permission.ErrSystemWrap(err, "probe %s", path)
}

// probeHomeDir probes a directory under the user's home.
func probeHomeDir(elem ...string) (permission.Status, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", permission.ErrSystemWrap(err, "resolve home directory")
	}
	return probePath(filepath.Join(append([]string{home}, elem...)...))
}
