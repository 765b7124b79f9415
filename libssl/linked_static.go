//go:build libssl_static && cgo

package libssl

// #cgo CFLAGS: -I/usr/include -Wno-deprecated-declarations
// #cgo LDFLAGS: -lssl -lcrypto
// #include <stdint.h>
// #include <stdlib.h>
// #include <openssl/ssl.h>
// #include <openssl/err.h>
// #include <openssl/crypto.h>
//
// static int go_ssl_set_tlsext_host_name(SSL *ssl, const char *name) {
//     return SSL_set_tlsext_host_name(ssl, name);
// }
//
// static uint32_t go_ssl_ctx_set_mode(SSL_CTX *ctx, uint32_t mode) {
//     return SSL_CTX_set_mode(ctx, mode);
// }
//
// typedef int (*go_err_cb)(const char *str, size_t len, void *u);
//
// static void go_err_print_errors_cb(uintptr_t cb, void *u) {
//     ERR_print_errors_cb((go_err_cb)cb, u);
// }
import "C"
import "unsafe"

func cMethod(m SSLMethod) *C.SSL_METHOD { return (*C.SSL_METHOD)(unsafe.Pointer(uintptr(m))) }
func cCtx(c SSLCtx) *C.SSL_CTX          { return (*C.SSL_CTX)(unsafe.Pointer(uintptr(c))) }
func cSSL(s SSL) *C.SSL                 { return (*C.SSL)(unsafe.Pointer(uintptr(s))) }

// linkedLibssl calls the libssl given to the linker, with the macro forms of
// SSL_set_tlsext_host_name and SSL_CTX_set_mode wrapped into C functions.
func linkedLibssl() linkedFuncs {
	return linkedFuncs{
		available: true,
		tlsClientMethod: func() SSLMethod {
			return SSLMethod(uintptr(unsafe.Pointer(C.TLS_client_method())))
		},
		tlsMethod: func() SSLMethod {
			return SSLMethod(uintptr(unsafe.Pointer(C.TLS_method())))
		},
		tlsServerMethod: func() SSLMethod {
			return SSLMethod(uintptr(unsafe.Pointer(C.TLS_server_method())))
		},
		sslCtxNew: func(m SSLMethod) SSLCtx {
			return SSLCtx(uintptr(unsafe.Pointer(C.SSL_CTX_new(cMethod(m)))))
		},
		sslCtxFree: func(c SSLCtx) { C.SSL_CTX_free(cCtx(c)) },
		sslNew: func(c SSLCtx) SSL {
			return SSL(uintptr(unsafe.Pointer(C.SSL_new(cCtx(c)))))
		},
		sslFree:  func(s SSL) { C.SSL_free(cSSL(s)) },
		sslUpRef: func(s SSL) int32 { return int32(C.SSL_up_ref(cSSL(s))) },
		sslRead: func(s SSL, buf unsafe.Pointer, num int32) int32 {
			return int32(C.SSL_read(cSSL(s), buf, C.int(num)))
		},
		sslWrite: func(s SSL, buf unsafe.Pointer, num int32) int32 {
			return int32(C.SSL_write(cSSL(s), buf, C.int(num)))
		},
		sslSetFd:           func(s SSL, fd int32) int32 { return int32(C.SSL_set_fd(cSSL(s), C.int(fd))) },
		sslPending:         func(s SSL) int32 { return int32(C.SSL_pending(cSSL(s))) },
		sslShutdown:        func(s SSL) int32 { return int32(C.SSL_shutdown(cSSL(s))) },
		sslSetConnectState: func(s SSL) { C.SSL_set_connect_state(cSSL(s)) },
		sslDoHandshake:     func(s SSL) int32 { return int32(C.SSL_do_handshake(cSSL(s))) },
		sslGetShutdown:     func(s SSL) int32 { return int32(C.SSL_get_shutdown(cSSL(s))) },
		sslGetError: func(s SSL, ret int32) int32 {
			return int32(C.SSL_get_error(cSSL(s), C.int(ret)))
		},
		sslUseCertificateFile: func(s SSL, file string, typ int32) int32 {
			cFile := C.CString(file)
			defer C.free(unsafe.Pointer(cFile))
			return int32(C.SSL_use_certificate_file(cSSL(s), cFile, C.int(typ)))
		},
		sslCtxSetDefaultVerifyPaths: func(c SSLCtx) int32 {
			return int32(C.SSL_CTX_set_default_verify_paths(cCtx(c)))
		},
		errClearError: func() { C.ERR_clear_error() },
		errPrintErrorsCb: func(cb ErrorCallback, u unsafe.Pointer) {
			C.go_err_print_errors_cb(C.uintptr_t(cb), u)
		},
		sslSetTLSExtHostName: func(s SSL, name string) int32 {
			cName := C.CString(name)
			defer C.free(unsafe.Pointer(cName))
			return int32(C.go_ssl_set_tlsext_host_name(cSSL(s), cName))
		},
		sslCtxSetMode: func(c SSLCtx, mode uint32) uint32 {
			return uint32(C.go_ssl_ctx_set_mode(cCtx(c), C.uint32_t(mode)))
		},
		opensslInitSSL: func(opts uint64, settings unsafe.Pointer) int32 {
			return int32(C.OPENSSL_init_ssl(C.uint64_t(opts), (*C.OPENSSL_INIT_SETTINGS)(settings)))
		},
		opensslVersion: func(t int32) string {
			return C.GoString(C.OpenSSL_version(C.int(t)))
		},
	}
}
