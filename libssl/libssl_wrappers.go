package libssl

import (
	"sync"
	"unsafe"

	"github.com/aristanetworks/glog"

	"github.com/aristanetworks/go-openssl-fips/dynssl/internal/symbol"
)

// sites lists every call site so Reset can clear them.
var sites []interface{ Reset() }

func newSite[F any](name string) *symbol.Site[F] {
	s := symbol.NewSite[F](library, name)
	sites = append(sites, s)
	return s
}

// entry is the registry view of one logical operation.
type entry interface {
	binding() Binding
	reset()
}

var ops []entry

// op is a logical operation backed by a primary symbol and, for some, by a
// legacy symbol or a shim.
type op[F any] struct {
	logical string
	name    string
	primary *symbol.Site[F]
	legacy  *symbol.Site[F]

	warnOnce *sync.Once
}

func register[F any](logical, name string, legacy *symbol.Site[F]) *op[F] {
	o := &op[F]{
		logical:  logical,
		name:     name,
		primary:  newSite[F](name),
		legacy:   legacy,
		warnOnce: new(sync.Once),
	}
	ops = append(ops, o)
	return o
}

func newOp[F any](logical, name string) *op[F] {
	return register[F](logical, name, nil)
}

func newLegacyOp[F any](logical, name, legacy string) *op[F] {
	return register(logical, name, newSite[F](legacy))
}

// binder returns the primary Binder when bound, otherwise the legacy one.
func (o *op[F]) binder() *symbol.Binder[F] {
	return symbol.First(o.primary, o.legacy)
}

// missing logs, once per operation, that no symbol backs it.
func (o *op[F]) missing() {
	o.warnOnce.Do(func() {
		glog.Warningf("libssl: %s is not exported by the configured library, using failure value", o.logical)
	})
}

func (o *op[F]) reset() {
	o.warnOnce = new(sync.Once)
}

var (
	tlsClientMethod             = newLegacyOp[func() SSLMethod]("TLSClientMethod", "TLS_client_method", "SSLv23_client_method")
	tlsMethod                   = newLegacyOp[func() SSLMethod]("TLSMethod", "TLS_method", "SSLv23_method")
	tlsServerMethod             = newLegacyOp[func() SSLMethod]("TLSServerMethod", "TLS_server_method", "SSLv23_server_method")
	sslCtxNew                   = newOp[func(SSLMethod) SSLCtx]("SSLCtxNew", "SSL_CTX_new")
	sslCtxFree                  = newOp[func(SSLCtx)]("SSLCtxFree", "SSL_CTX_free")
	sslNew                      = newOp[func(SSLCtx) SSL]("SSLNew", "SSL_new")
	sslFree                     = newOp[func(SSL)]("SSLFree", "SSL_free")
	sslUpRef                    = newOp[func(SSL) int32]("SSLUpRef", "SSL_up_ref")
	sslRead                     = newOp[func(SSL, unsafe.Pointer, int32) int32]("SSLRead", "SSL_read")
	sslWrite                    = newOp[func(SSL, unsafe.Pointer, int32) int32]("SSLWrite", "SSL_write")
	sslSetFd                    = newOp[func(SSL, int32) int32]("SSLSetFd", "SSL_set_fd")
	sslPending                  = newOp[func(SSL) int32]("SSLPending", "SSL_pending")
	sslShutdown                 = newOp[func(SSL) int32]("SSLShutdown", "SSL_shutdown")
	sslSetConnectState          = newOp[func(SSL)]("SSLSetConnectState", "SSL_set_connect_state")
	sslDoHandshake              = newOp[func(SSL) int32]("SSLDoHandshake", "SSL_do_handshake")
	sslGetShutdown              = newOp[func(SSL) int32]("SSLGetShutdown", "SSL_get_shutdown")
	sslGetError                 = newOp[func(SSL, int32) int32]("SSLGetError", "SSL_get_error")
	sslUseCertificateFile       = newOp[func(SSL, string, int32) int32]("SSLUseCertificateFile", "SSL_use_certificate_file")
	sslCtxSetDefaultVerifyPaths = newOp[func(SSLCtx) int32]("SSLCtxSetDefaultVerifyPaths", "SSL_CTX_set_default_verify_paths")
	errClearError               = newOp[func()]("ERRClearError", "ERR_clear_error")
	errPrintErrorsCb            = newOp[func(ErrorCallback, unsafe.Pointer)]("ERRPrintErrorsCb", "ERR_print_errors_cb")
	opensslVersion              = newLegacyOp[func(int32) string]("VersionText", "OpenSSL_version", "SSLeay_version")
)

// TLSClientMethod returns the version-flexible client method, or 0.
// Libraries older than OpenSSL 1.1.0 only export it as SSLv23_client_method.
func TLSClientMethod() SSLMethod {
	if isDefault() {
		return linked.tlsClientMethod()
	}
	if b := tlsClientMethod.binder(); b.IsBound() {
		return b.Func()()
	}
	tlsClientMethod.missing()
	return unsupported.tlsClientMethod()
}

// TLSMethod returns the version-flexible method, or 0.
func TLSMethod() SSLMethod {
	if isDefault() {
		return linked.tlsMethod()
	}
	if b := tlsMethod.binder(); b.IsBound() {
		return b.Func()()
	}
	tlsMethod.missing()
	return unsupported.tlsMethod()
}

// TLSServerMethod returns the version-flexible server method, or 0.
func TLSServerMethod() SSLMethod {
	if isDefault() {
		return linked.tlsServerMethod()
	}
	if b := tlsServerMethod.binder(); b.IsBound() {
		return b.Func()()
	}
	tlsServerMethod.missing()
	return unsupported.tlsServerMethod()
}

// SSLCtxNew creates a context for method. It returns 0 on failure.
func SSLCtxNew(method SSLMethod) SSLCtx {
	if isDefault() {
		return linked.sslCtxNew(method)
	}
	if b := sslCtxNew.binder(); b.IsBound() {
		return b.Func()(method)
	}
	sslCtxNew.missing()
	return unsupported.sslCtxNew(method)
}

// SSLCtxFree decrements the reference count of ctx and frees it when it drops to zero.
func SSLCtxFree(ctx SSLCtx) {
	if isDefault() {
		linked.sslCtxFree(ctx)
		return
	}
	if b := sslCtxFree.binder(); b.IsBound() {
		b.Func()(ctx)
		return
	}
	sslCtxFree.missing()
}

// SSLNew creates a connection object inheriting the settings of ctx. It returns 0 on failure.
func SSLNew(ctx SSLCtx) SSL {
	if isDefault() {
		return linked.sslNew(ctx)
	}
	if b := sslNew.binder(); b.IsBound() {
		return b.Func()(ctx)
	}
	sslNew.missing()
	return unsupported.sslNew(ctx)
}

// SSLFree decrements the reference count of ssl and frees it when it drops to zero.
func SSLFree(ssl SSL) {
	if isDefault() {
		linked.sslFree(ssl)
		return
	}
	if b := sslFree.binder(); b.IsBound() {
		b.Func()(ssl)
		return
	}
	sslFree.missing()
}

// SSLUpRef increments the reference count of ssl. It returns 1 on success and
// 0 on failure, including when the library predates SSL_up_ref (OpenSSL 1.0.x);
// no emulation is attempted in that case.
func SSLUpRef(ssl SSL) int32 {
	if isDefault() {
		return linked.sslUpRef(ssl)
	}
	if b := sslUpRef.binder(); b.IsBound() {
		return b.Func()(ssl)
	}
	sslUpRef.missing()
	return unsupported.sslUpRef(ssl)
}

// SSLRead reads up to num bytes into buf. The result is libssl's: the number
// of bytes read, or <= 0 to be examined with [SSLGetError].
func SSLRead(ssl SSL, buf unsafe.Pointer, num int32) int32 {
	if isDefault() {
		return linked.sslRead(ssl, buf, num)
	}
	if b := sslRead.binder(); b.IsBound() {
		return b.Func()(ssl, buf, num)
	}
	sslRead.missing()
	return unsupported.sslRead(ssl, buf, num)
}

// SSLWrite writes num bytes from buf. The result is libssl's: the number of
// bytes written, or <= 0 to be examined with [SSLGetError].
func SSLWrite(ssl SSL, buf unsafe.Pointer, num int32) int32 {
	if isDefault() {
		return linked.sslWrite(ssl, buf, num)
	}
	if b := sslWrite.binder(); b.IsBound() {
		return b.Func()(ssl, buf, num)
	}
	sslWrite.missing()
	return unsupported.sslWrite(ssl, buf, num)
}

// SSLSetFd connects ssl to the file descriptor fd. It returns 1 on success.
func SSLSetFd(ssl SSL, fd int32) int32 {
	if isDefault() {
		return linked.sslSetFd(ssl, fd)
	}
	if b := sslSetFd.binder(); b.IsBound() {
		return b.Func()(ssl, fd)
	}
	sslSetFd.missing()
	return unsupported.sslSetFd(ssl, fd)
}

// SSLPending returns the number of decrypted bytes buffered in ssl.
func SSLPending(ssl SSL) int32 {
	if isDefault() {
		return linked.sslPending(ssl)
	}
	if b := sslPending.binder(); b.IsBound() {
		return b.Func()(ssl)
	}
	sslPending.missing()
	return unsupported.sslPending(ssl)
}

// SSLShutdown sends the close_notify alert. The result is libssl's diagnostic value.
func SSLShutdown(ssl SSL) int32 {
	if isDefault() {
		return linked.sslShutdown(ssl)
	}
	if b := sslShutdown.binder(); b.IsBound() {
		return b.Func()(ssl)
	}
	sslShutdown.missing()
	return unsupported.sslShutdown(ssl)
}

// SSLSetConnectState puts ssl in client mode.
func SSLSetConnectState(ssl SSL) {
	if isDefault() {
		linked.sslSetConnectState(ssl)
		return
	}
	if b := sslSetConnectState.binder(); b.IsBound() {
		b.Func()(ssl)
		return
	}
	sslSetConnectState.missing()
}

// SSLDoHandshake performs one handshake step. The result is libssl's
// diagnostic value: 1 on completion, <= 0 to be examined with [SSLGetError].
func SSLDoHandshake(ssl SSL) int32 {
	if isDefault() {
		return linked.sslDoHandshake(ssl)
	}
	if b := sslDoHandshake.binder(); b.IsBound() {
		return b.Func()(ssl)
	}
	sslDoHandshake.missing()
	return unsupported.sslDoHandshake(ssl)
}

// SSLGetShutdown returns the SSL_SENT_SHUTDOWN and SSL_RECEIVED_SHUTDOWN flags of ssl.
func SSLGetShutdown(ssl SSL) int32 {
	if isDefault() {
		return linked.sslGetShutdown(ssl)
	}
	if b := sslGetShutdown.binder(); b.IsBound() {
		return b.Func()(ssl)
	}
	sslGetShutdown.missing()
	return unsupported.sslGetShutdown(ssl)
}

// SSLGetError returns the SSL_ERROR_* code for ret, the result of a previous call on ssl.
func SSLGetError(ssl SSL, ret int32) int32 {
	if isDefault() {
		return linked.sslGetError(ssl, ret)
	}
	if b := sslGetError.binder(); b.IsBound() {
		return b.Func()(ssl, ret)
	}
	sslGetError.missing()
	return unsupported.sslGetError(ssl, ret)
}

// SSLUseCertificateFile loads the certificate in file, of type SSL_FILETYPE_PEM
// or SSL_FILETYPE_ASN1, into ssl. It returns 1 on success.
func SSLUseCertificateFile(ssl SSL, file string, typ int32) int32 {
	if isDefault() {
		return linked.sslUseCertificateFile(ssl, file, typ)
	}
	if b := sslUseCertificateFile.binder(); b.IsBound() {
		return b.Func()(ssl, file, typ)
	}
	sslUseCertificateFile.missing()
	return unsupported.sslUseCertificateFile(ssl, file, typ)
}

// SSLCtxSetDefaultVerifyPaths makes ctx load CA certificates from the default
// locations. It returns 1 on success.
func SSLCtxSetDefaultVerifyPaths(ctx SSLCtx) int32 {
	if isDefault() {
		return linked.sslCtxSetDefaultVerifyPaths(ctx)
	}
	if b := sslCtxSetDefaultVerifyPaths.binder(); b.IsBound() {
		return b.Func()(ctx)
	}
	sslCtxSetDefaultVerifyPaths.missing()
	return unsupported.sslCtxSetDefaultVerifyPaths(ctx)
}

// ERRClearError empties the thread's error queue.
func ERRClearError() {
	if isDefault() {
		linked.errClearError()
		return
	}
	if b := errClearError.binder(); b.IsBound() {
		b.Func()()
		return
	}
	errClearError.missing()
}

// ERRPrintErrorsCb drains the thread's error queue, passing each line to cb
// along with u.
func ERRPrintErrorsCb(cb ErrorCallback, u unsafe.Pointer) {
	if isDefault() {
		linked.errPrintErrorsCb(cb, u)
		return
	}
	if b := errPrintErrorsCb.binder(); b.IsBound() {
		b.Func()(cb, u)
		return
	}
	errPrintErrorsCb.missing()
}

// VersionText returns the OpenSSL version string, or "" when unknown.
func VersionText() string {
	if isDefault() {
		return linked.opensslVersion(OPENSSL_VERSION)
	}
	if b := opensslVersion.binder(); b.IsBound() {
		return b.Func()(OPENSSL_VERSION)
	}
	opensslVersion.missing()
	return unsupported.opensslVersion(OPENSSL_VERSION)
}
