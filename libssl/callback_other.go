//go:build !((darwin || linux) && (amd64 || arm64))

package libssl

import "unsafe"

// NewErrorCallback returns 0: C callbacks are not available on this platform.
func NewErrorCallback(fn func(line string, u unsafe.Pointer) int) ErrorCallback {
	return 0
}
