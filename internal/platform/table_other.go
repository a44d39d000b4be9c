//go:build !linux && !darwin && !windows

package platform

import "github.com/opencode-ai/sysperm/internal/permission"

// buildTable on unsupported platforms reports every kind as authorized,
// matching the convention that an OS with no permission model does not
// gate access.
func buildTable(_ Config) map[permission.Kind]ops {
	table := make(map[permission.Kind]ops, len(permission.AllKinds()))
	for _, kind := range permission.AllKinds() {
		table[kind] = ops{check: statically(permission.StatusAuthorized)}
	}
	return table
}
