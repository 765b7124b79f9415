package libssl

import "unsafe"

// linkedFuncs is one implementation of every logical operation.
type linkedFuncs struct {
	// available is true when the functions call a real libssl.
	available bool

	tlsClientMethod             func() SSLMethod
	tlsMethod                   func() SSLMethod
	tlsServerMethod             func() SSLMethod
	sslCtxNew                   func(SSLMethod) SSLCtx
	sslCtxFree                  func(SSLCtx)
	sslNew                      func(SSLCtx) SSL
	sslFree                     func(SSL)
	sslUpRef                    func(SSL) int32
	sslRead                     func(SSL, unsafe.Pointer, int32) int32
	sslWrite                    func(SSL, unsafe.Pointer, int32) int32
	sslSetFd                    func(SSL, int32) int32
	sslPending                  func(SSL) int32
	sslShutdown                 func(SSL) int32
	sslSetConnectState          func(SSL)
	sslDoHandshake              func(SSL) int32
	sslGetShutdown              func(SSL) int32
	sslGetError                 func(SSL, int32) int32
	sslUseCertificateFile       func(SSL, string, int32) int32
	sslCtxSetDefaultVerifyPaths func(SSLCtx) int32
	errClearError               func()
	errPrintErrorsCb            func(ErrorCallback, unsafe.Pointer)
	sslSetTLSExtHostName        func(SSL, string) int32
	sslCtxSetMode               func(SSLCtx, uint32) uint32
	opensslInitSSL              func(uint64, unsafe.Pointer) int32
	opensslVersion              func(int32) string
}

// unsupported holds the values returned by an operation that no library
// provides: the failure indicator libssl itself uses for that call.
var unsupported = linkedFuncs{
	tlsClientMethod:             func() SSLMethod { return 0 },
	tlsMethod:                   func() SSLMethod { return 0 },
	tlsServerMethod:             func() SSLMethod { return 0 },
	sslCtxNew:                   func(SSLMethod) SSLCtx { return 0 },
	sslCtxFree:                  func(SSLCtx) {},
	sslNew:                      func(SSLCtx) SSL { return 0 },
	sslFree:                     func(SSL) {},
	sslUpRef:                    func(SSL) int32 { return 0 },
	sslRead:                     func(SSL, unsafe.Pointer, int32) int32 { return -1 },
	sslWrite:                    func(SSL, unsafe.Pointer, int32) int32 { return -1 },
	sslSetFd:                    func(SSL, int32) int32 { return 0 },
	sslPending:                  func(SSL) int32 { return 0 },
	sslShutdown:                 func(SSL) int32 { return -1 },
	sslSetConnectState:          func(SSL) {},
	sslDoHandshake:              func(SSL) int32 { return -1 },
	sslGetShutdown:              func(SSL) int32 { return 0 },
	sslGetError:                 func(SSL, int32) int32 { return SSL_ERROR_SSL },
	sslUseCertificateFile:       func(SSL, string, int32) int32 { return 0 },
	sslCtxSetDefaultVerifyPaths: func(SSLCtx) int32 { return 0 },
	errClearError:               func() {},
	errPrintErrorsCb:            func(ErrorCallback, unsafe.Pointer) {},
	sslSetTLSExtHostName:        func(SSL, string) int32 { return 0 },
	sslCtxSetMode:               func(SSLCtx, uint32) uint32 { return 0 },
	opensslInitSSL:              func(uint64, unsafe.Pointer) int32 { return 0 },
	opensslVersion:              func(int32) string { return "" },
}

// linked calls the libssl the binary was linked against, or returns the
// unsupported values when there is none.
var linked = linkedLibssl()
