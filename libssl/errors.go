package libssl

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"unsafe"
)

// SSLError is the SSL_get_error classification of a failed [Session] call.
type SSLError struct {
	// Op is the libssl function that failed.
	Op   string
	Code int
	// Queue holds the error queue, drained for SSL_ERROR_SSL and SSL_ERROR_SYSCALL.
	Queue []string
}

var sslErrorNames = [...]string{
	SSL_ERROR_NONE:             "SSL_ERROR_NONE",
	SSL_ERROR_SSL:              "SSL_ERROR_SSL",
	SSL_ERROR_WANT_READ:        "SSL_ERROR_WANT_READ",
	SSL_ERROR_WANT_WRITE:       "SSL_ERROR_WANT_WRITE",
	SSL_ERROR_WANT_X509_LOOKUP: "SSL_ERROR_WANT_X509_LOOKUP",
	SSL_ERROR_SYSCALL:          "SSL_ERROR_SYSCALL",
	SSL_ERROR_ZERO_RETURN:      "SSL_ERROR_ZERO_RETURN",
	SSL_ERROR_WANT_CONNECT:     "SSL_ERROR_WANT_CONNECT",
	SSL_ERROR_WANT_ACCEPT:      "SSL_ERROR_WANT_ACCEPT",
}

// ErrorName returns the SSL_ERROR_* name of code.
func ErrorName(code int) string {
	if code >= 0 && code < len(sslErrorNames) {
		return sslErrorNames[code]
	}
	return "SSL_ERROR_" + strconv.Itoa(code)
}

func (e *SSLError) Error() string {
	msg := "libssl: " + e.Op + ": " + ErrorName(e.Code)
	if len(e.Queue) > 0 {
		msg += ": " + strings.Join(e.Queue, "; ")
	}
	return msg
}

const retryableCodes int = 1<<SSL_ERROR_WANT_READ | 1<<SSL_ERROR_WANT_WRITE |
	1<<SSL_ERROR_WANT_X509_LOOKUP | 1<<SSL_ERROR_WANT_CONNECT | 1<<SSL_ERROR_WANT_ACCEPT

// IsRetryable reports whether the call should be repeated once the socket is ready.
func (e *SSLError) IsRetryable() bool {
	return e.Code >= 0 && e.Code < 32 && retryableCodes&(1<<e.Code) != 0
}

// newSSLError classifies a failure of op. Fatal codes carry the drained error queue.
func newSSLError(op string, code int) *SSLError {
	e := &SSLError{Op: op, Code: code}
	if code == SSL_ERROR_SSL || code == SSL_ERROR_SYSCALL {
		e.Queue = ErrorQueue()
	}
	return e
}

var (
	queueMu    sync.Mutex
	queueLines []string
)

// queueCallback is created once; callbacks are a limited resource.
var queueCallback = sync.OnceValue(func() ErrorCallback {
	return NewErrorCallback(func(line string, _ unsafe.Pointer) int {
		queueLines = append(queueLines, strings.TrimRight(line, "\n"))
		return 1
	})
})

// ErrorQueue drains the calling thread's error queue and returns one entry per
// queued error. It returns nil when the library cannot print its errors.
func ErrorQueue() []string {
	cb := queueCallback()
	if cb == 0 {
		return nil
	}
	queueMu.Lock()
	defer queueMu.Unlock()
	queueLines = nil
	ERRPrintErrorsCb(cb, nil)
	lines := queueLines
	queueLines = nil
	return lines
}

// NewOpenSSLError returns an error made of msg and the drained error queue.
func NewOpenSSLError(msg string) error {
	var b strings.Builder
	b.WriteString(msg)
	lines := ErrorQueue()
	if len(lines) == 0 {
		return errors.New(b.String())
	}
	b.WriteString("\nopenssl error(s):")
	for _, line := range lines {
		b.WriteByte('\n')
		b.WriteString(line)
	}
	return errors.New(b.String())
}
