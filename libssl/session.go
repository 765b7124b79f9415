package libssl

import (
	"io"
	"sync"
	"unsafe"
)

// Session owns an SSL connection object bound to a file descriptor. It does
// not own the descriptor.
//
// Every method performs a single libssl call. Retrying on SSL_ERROR_WANT_READ
// or SSL_ERROR_WANT_WRITE is up to the caller, see [SSLError.IsRetryable].
type Session struct {
	ssl       SSL
	closeOnce sync.Once
}

// NewSession creates a client session on fd. A non-empty host is sent as SNI.
func (c *Context) NewSession(fd int, host string) (*Session, error) {
	ssl := SSLNew(c.ctx)
	if ssl == 0 {
		return nil, NewOpenSSLError("libssl: SSL_new")
	}
	s := &Session{ssl: ssl}
	if SSLSetFd(ssl, int32(fd)) != 1 {
		s.Close()
		return nil, NewOpenSSLError("libssl: SSL_set_fd")
	}
	if host != "" && SSLSetTLSExtHostName(ssl, host) != 1 {
		s.Close()
		return nil, NewOpenSSLError("libssl: SSL_set_tlsext_host_name")
	}
	SSLSetConnectState(ssl)
	return s, nil
}

// SSL returns the underlying connection object.
func (s *Session) SSL() SSL { return s.ssl }

func (s *Session) check(op string, r int32) error {
	code := int(SSLGetError(s.ssl, r))
	if code == SSL_ERROR_ZERO_RETURN {
		return io.EOF
	}
	return newSSLError(op, code)
}

// Handshake performs one handshake step. It returns nil once the handshake
// is complete, and an [*SSLError] otherwise.
func (s *Session) Handshake() error {
	if r := SSLDoHandshake(s.ssl); r != 1 {
		return s.check("SSL_do_handshake", r)
	}
	return nil
}

// Read reads decrypted bytes into b. It returns io.EOF once the peer has
// closed the TLS session.
func (s *Session) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	r := SSLRead(s.ssl, unsafe.Pointer(&b[0]), int32(min(len(b), maxChunk)))
	if r <= 0 {
		return 0, s.check("SSL_read", r)
	}
	return int(r), nil
}

// Write writes b in a single SSL_write call and returns the number of bytes
// accepted.
func (s *Session) Write(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	r := SSLWrite(s.ssl, unsafe.Pointer(&b[0]), int32(min(len(b), maxChunk)))
	if r <= 0 {
		return 0, s.check("SSL_write", r)
	}
	return int(r), nil
}

// maxChunk bounds a single read or write to what fits in a C int.
const maxChunk = 1<<31 - 1

// Pending returns the number of decrypted bytes ready to be read.
func (s *Session) Pending() int {
	return int(SSLPending(s.ssl))
}

// UseCertificateFile loads a PEM client certificate.
func (s *Session) UseCertificateFile(file string) error {
	if SSLUseCertificateFile(s.ssl, file, SSL_FILETYPE_PEM) != 1 {
		return NewOpenSSLError("libssl: SSL_use_certificate_file " + file)
	}
	return nil
}

// Shutdown sends close_notify. It returns nil when the alert was sent, even
// if the peer's close_notify has not arrived yet.
func (s *Session) Shutdown() error {
	r := SSLShutdown(s.ssl)
	if r < 0 {
		return s.check("SSL_shutdown", r)
	}
	return nil
}

// ShutdownState returns the SSL_SENT_SHUTDOWN and SSL_RECEIVED_SHUTDOWN flags.
func (s *Session) ShutdownState() int {
	return int(SSLGetShutdown(s.ssl))
}

// Close frees the connection object.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		SSLFree(s.ssl)
	})
	return nil
}
