// Package symbol resolves functions exported by a loaded library image and
// caches the typed result for the lifetime of the process.
//
// A [Library] answers a single question: does this image export name, and if
// so, what typed Go function calls it. A [Binder] asks that question at most
// once. A [Site] owns exactly one Binder for one call site, so that every
// caller of that site shares the same answer.
package symbol

import (
	"errors"
)

// ErrUnsupported is returned by [Open] on platforms without dlopen support.
var ErrUnsupported = errors.New("symbol: dynamic loading is not supported on this platform")

// Library is a table of exported symbols.
//
// Resolve looks up name and, when it is present, stores a function calling it
// in fptr, which must be a non-nil pointer to a variable of func type. An
// absent symbol is reported as false; it is not an error.
type Library interface {
	Resolve(name string, fptr any) bool
}

// IsDefault reports whether lib selects the process's own symbol table.
// A nil Library is treated as the default.
func IsDefault(lib Library) bool {
	return lib == nil || lib == Library(Default)
}
