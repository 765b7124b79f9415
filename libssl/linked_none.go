//go:build !(libssl_static && cgo)

package libssl

// linkedLibssl returns the unsupported table: the binary does not link libssl,
// so in default mode every operation fails the way libssl reports failure.
func linkedLibssl() linkedFuncs {
	return unsupported
}
