package libssl

import (
	"unsafe"

	"github.com/aristanetworks/go-openssl-fips/dynssl/internal/symbol"
)

// OpenSSL defines SSL_set_tlsext_host_name and SSL_CTX_set_mode as macros over
// SSL_ctrl and SSL_CTX_ctrl, so they are not in its symbol table, while
// BoringSSL exports them as functions. OPENSSL_init_ssl replaced
// SSL_library_init in 1.1.0 and takes arguments the old function lacks.
// In each case the alternative is adapted to the primary signature.
var (
	sslCtrl        = newSite[func(SSL, int32, int, string) int]("SSL_ctrl")
	sslCtxCtrl     = newSite[func(SSLCtx, int32, int, unsafe.Pointer) int]("SSL_CTX_ctrl")
	sslLibraryInit = newSite[func() int32]("SSL_library_init")
)

func adapt[F, G any](src *symbol.Site[G], conv func(G) F) *symbol.Site[F] {
	s := symbol.Adapt(src, conv)
	sites = append(sites, s)
	return s
}

var (
	sslSetTLSExtHostName = register("SSLSetTLSExtHostName", "SSL_set_tlsext_host_name",
		adapt(sslCtrl, func(ctrl func(SSL, int32, int, string) int) func(SSL, string) int32 {
			return func(ssl SSL, name string) int32 {
				return int32(ctrl(ssl, SSL_CTRL_SET_TLSEXT_HOSTNAME, TLSEXT_NAMETYPE_host_name, name))
			}
		}))

	sslCtxSetMode = register("SSLCtxSetMode", "SSL_CTX_set_mode",
		adapt(sslCtxCtrl, func(ctrl func(SSLCtx, int32, int, unsafe.Pointer) int) func(SSLCtx, uint32) uint32 {
			return func(ctx SSLCtx, mode uint32) uint32 {
				return uint32(ctrl(ctx, SSL_CTRL_MODE, int(mode), nil))
			}
		}))

	opensslInitSSL = register("OPENSSLInitSSL", "OPENSSL_init_ssl",
		adapt(sslLibraryInit, func(libraryInit func() int32) func(uint64, unsafe.Pointer) int32 {
			return func(uint64, unsafe.Pointer) int32 { return libraryInit() }
		}))
)

// SSLSetTLSExtHostName sets the SNI host name sent by ssl. It returns 1 on success.
func SSLSetTLSExtHostName(ssl SSL, name string) int32 {
	if isDefault() {
		return linked.sslSetTLSExtHostName(ssl, name)
	}
	if b := sslSetTLSExtHostName.binder(); b.IsBound() {
		return b.Func()(ssl, name)
	}
	sslSetTLSExtHostName.missing()
	return unsupported.sslSetTLSExtHostName(ssl, name)
}

// SSLCtxSetMode adds the SSL_MODE_* bits in mode to ctx and returns the new mask.
func SSLCtxSetMode(ctx SSLCtx, mode uint32) uint32 {
	if isDefault() {
		return linked.sslCtxSetMode(ctx, mode)
	}
	if b := sslCtxSetMode.binder(); b.IsBound() {
		return b.Func()(ctx, mode)
	}
	sslCtxSetMode.missing()
	return unsupported.sslCtxSetMode(ctx, mode)
}

// OPENSSLInitSSL initializes libssl with the OPENSSL_INIT_* bits in opts. It
// returns 1 on success. With OpenSSL 1.0.x, SSL_library_init is called instead
// and opts and settings are ignored.
func OPENSSLInitSSL(opts uint64, settings unsafe.Pointer) int32 {
	if isDefault() {
		return linked.opensslInitSSL(opts, settings)
	}
	if b := opensslInitSSL.binder(); b.IsBound() {
		return b.Func()(opts, settings)
	}
	opensslInitSSL.missing()
	return unsupported.opensslInitSSL(opts, settings)
}
