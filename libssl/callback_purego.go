//go:build (darwin || linux) && (amd64 || arm64)

package libssl

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// NewErrorCallback returns a C function pointer calling fn, suitable for
// [ERRPrintErrorsCb]. The line is copied before fn sees it.
// The callback is never released, and the number of
// callbacks a process can create is limited, so create them once.
func NewErrorCallback(fn func(line string, u unsafe.Pointer) int) ErrorCallback {
	return ErrorCallback(purego.NewCallback(func(str *byte, n uintptr, u unsafe.Pointer) int {
		return fn(string(unsafe.Slice(str, n)), u)
	}))
}
