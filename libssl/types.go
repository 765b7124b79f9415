package libssl

// Opaque libssl objects. They carry C pointers and are never dereferenced in Go.
type (
	SSLMethod uintptr
	SSLCtx    uintptr
	SSL       uintptr
)

// ErrorCallback is a C function pointer of type
// int (*)(const char *str, size_t len, void *u), see [NewErrorCallback].
type ErrorCallback uintptr

// SSL_get_error codes
const (
	SSL_ERROR_NONE             = 0
	SSL_ERROR_SSL              = 1
	SSL_ERROR_WANT_READ        = 2
	SSL_ERROR_WANT_WRITE       = 3
	SSL_ERROR_WANT_X509_LOOKUP = 4
	SSL_ERROR_SYSCALL          = 5
	SSL_ERROR_ZERO_RETURN      = 6
	SSL_ERROR_WANT_CONNECT     = 7
	SSL_ERROR_WANT_ACCEPT      = 8
)

// SSL_CTX_set_mode options
const (
	SSL_MODE_ENABLE_PARTIAL_WRITE       = 0x00000001
	SSL_MODE_ACCEPT_MOVING_WRITE_BUFFER = 0x00000002
	SSL_MODE_AUTO_RETRY                 = 0x00000004
	SSL_MODE_RELEASE_BUFFERS            = 0x00000010
)

// SSL_get_shutdown flags
const (
	SSL_SENT_SHUTDOWN     = 1
	SSL_RECEIVED_SHUTDOWN = 2
)

// Certificate file types
const (
	SSL_FILETYPE_PEM  = 1
	SSL_FILETYPE_ASN1 = 2
)

// ctrl commands behind the macro forms of SSL_set_tlsext_host_name and
// SSL_CTX_set_mode.
const (
	SSL_CTRL_MODE                = 33
	SSL_CTRL_SET_TLSEXT_HOSTNAME = 55
	TLSEXT_NAMETYPE_host_name    = 0
)

// OPENSSL_init_ssl options
const (
	OPENSSL_INIT_LOAD_CRYPTO_STRINGS = 0x00000002
	OPENSSL_INIT_LOAD_SSL_STRINGS    = 0x00200000
)

// OpenSSL_version types
const (
	OPENSSL_VERSION = 0
)
