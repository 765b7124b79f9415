package libssl

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"

	"golang.org/x/sync/errgroup"

	"github.com/aristanetworks/go-openssl-fips/dynssl/internal/testutils"
)

// useLibrary selects a fake library exporting symbols for the duration of the test.
func useLibrary(t *testing.T, symbols map[string]any) *testutils.FakeLibrary {
	t.Helper()
	Reset()
	lib := testutils.NewFakeLibrary(symbols)
	SetLibrary(lib)
	t.Cleanup(Reset)
	return lib
}

// useLinked replaces the linked table for the duration of the test.
func useLinked(t *testing.T, funcs linkedFuncs) {
	t.Helper()
	Reset()
	saved := linked
	linked = funcs
	t.Cleanup(func() {
		linked = saved
		Reset()
	})
}

func TestSetLibraryNil(t *testing.T) {
	useLibrary(t, nil)
	if isDefault() {
		t.Fatal("isDefault() = true with a fake library")
	}
	SetLibrary(nil)
	if !isDefault() {
		t.Fatal("isDefault() = false after SetLibrary(nil)")
	}
	if library() != Library(Default) {
		t.Fatal("library() is not Default after SetLibrary(nil)")
	}
}

func TestDefaultModeCallsLinked(t *testing.T) {
	var buf [4]byte
	fake := unsupported
	fake.available = true
	fake.tlsClientMethod = func() SSLMethod { return 0x10 }
	fake.sslCtxNew = func(m SSLMethod) SSLCtx { return SSLCtx(m + 1) }
	fake.sslNew = func(c SSLCtx) SSL { return SSL(c + 1) }
	fake.sslRead = func(s SSL, p unsafe.Pointer, n int32) int32 {
		if p != unsafe.Pointer(&buf[0]) {
			return -2
		}
		return n - 1
	}
	fake.sslGetError = func(s SSL, ret int32) int32 { return ret * 10 }
	fake.sslUpRef = func(SSL) int32 { return 1 }
	fake.sslSetTLSExtHostName = func(s SSL, name string) int32 { return int32(len(name)) }
	fake.sslCtxSetMode = func(c SSLCtx, mode uint32) uint32 { return mode | 0x80 }
	fake.opensslVersion = func(int32) string { return "OpenSSL 3.0.13 30 Jan 2024" }
	useLinked(t, fake)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"TLSClientMethod", TLSClientMethod(), fake.tlsClientMethod()},
		{"SSLCtxNew", SSLCtxNew(0x10), fake.sslCtxNew(0x10)},
		{"SSLNew", SSLNew(0x11), fake.sslNew(0x11)},
		{"SSLRead", SSLRead(0x12, unsafe.Pointer(&buf[0]), 4), fake.sslRead(0x12, unsafe.Pointer(&buf[0]), 4)},
		{"SSLGetError", SSLGetError(0x12, -1), fake.sslGetError(0x12, -1)},
		{"SSLUpRef", SSLUpRef(0x12), fake.sslUpRef(0x12)},
		{"SSLSetTLSExtHostName", SSLSetTLSExtHostName(0x12, "example.com"), fake.sslSetTLSExtHostName(0x12, "example.com")},
		{"SSLCtxSetMode", SSLCtxSetMode(0x11, SSL_MODE_AUTO_RETRY), fake.sslCtxSetMode(0x11, SSL_MODE_AUTO_RETRY)},
		{"VersionText", VersionText(), fake.opensslVersion(OPENSSL_VERSION)},
		{"SSLDoHandshake", SSLDoHandshake(0x12), fake.sslDoHandshake(0x12)},
		{"SSLPending", SSLPending(0x12), fake.sslPending(0x12)},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %v, linked returns %v", tc.name, tc.got, tc.want)
		}
	}
	if !Valid() {
		t.Error("Valid() = false with an available linked table")
	}
	for _, b := range Probe() {
		if !b.Linked || !b.Bound {
			t.Errorf("Probe(%s) = %+v, expected linked and bound", b.Operation, b)
		}
	}
}

func TestDefaultModeNotLinked(t *testing.T) {
	if linked.available {
		t.Skip("binary links libssl")
	}
	Reset()
	defer Reset()
	if Valid() {
		t.Fatal("Valid() = true without a linked libssl")
	}
	if ctx := SSLCtxNew(TLSClientMethod()); ctx != 0 {
		t.Fatalf("SSLCtxNew() = %#x, expected 0", ctx)
	}
	if v := VersionText(); v != "" {
		t.Fatalf("VersionText() = %q, expected empty", v)
	}
	if r := SSLDoHandshake(0); r != -1 {
		t.Fatalf("SSLDoHandshake() = %d, expected -1", r)
	}
}

func TestLegacyClientMethod(t *testing.T) {
	lib := useLibrary(t, map[string]any{
		"SSLv23_client_method": func() SSLMethod { return 0x23 },
	})
	for range 5 {
		if m := TLSClientMethod(); m != 0x23 {
			t.Fatalf("TLSClientMethod() = %#x, expected the legacy method 0x23", m)
		}
	}
	if n := lib.Lookups("TLS_client_method"); n != 1 {
		t.Errorf("Lookups(TLS_client_method) = %d, expected 1", n)
	}
	if n := lib.Lookups("SSLv23_client_method"); n != 1 {
		t.Errorf("Lookups(SSLv23_client_method) = %d, expected 1", n)
	}
	for _, b := range Probe() {
		if b.Operation == "TLSClientMethod" && (b.Symbol != "SSLv23_client_method" || !b.Bound) {
			t.Errorf("Probe(TLSClientMethod) = %+v", b)
		}
	}
}

func TestModernClientMethod(t *testing.T) {
	lib := useLibrary(t, map[string]any{
		"TLS_client_method":    func() SSLMethod { return 0x11 },
		"SSLv23_client_method": func() SSLMethod { return 0x23 },
	})
	if m := TLSClientMethod(); m != 0x11 {
		t.Fatalf("TLSClientMethod() = %#x, expected 0x11", m)
	}
	if n := lib.Lookups("SSLv23_client_method"); n != 0 {
		t.Fatalf("legacy name looked up %d times while the modern one exists", n)
	}
}

func TestLegacyNames(t *testing.T) {
	lib := useLibrary(t, map[string]any{
		"SSLv23_method":        func() SSLMethod { return 1 },
		"SSLv23_server_method": func() SSLMethod { return 2 },
		"SSLeay_version":       func(int32) string { return "OpenSSL 1.0.2k-fips" },
	})
	if m := TLSMethod(); m != 1 {
		t.Errorf("TLSMethod() = %d, expected 1", m)
	}
	if m := TLSServerMethod(); m != 2 {
		t.Errorf("TLSServerMethod() = %d, expected 2", m)
	}
	if v := VersionText(); v != "OpenSSL 1.0.2k-fips" {
		t.Errorf("VersionText() = %q", v)
	}
	if n := lib.Lookups("OpenSSL_version"); n != 1 {
		t.Errorf("Lookups(OpenSSL_version) = %d, expected 1", n)
	}
}

func TestUpRef(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		useLibrary(t, map[string]any{"SSL_new": func(SSLCtx) SSL { return 1 }})
		if r := SSLUpRef(1); r != 0 {
			t.Fatalf("SSLUpRef() = %d, expected the failure value 0", r)
		}
	})
	t.Run("present", func(t *testing.T) {
		refs := 1
		useLibrary(t, map[string]any{"SSL_up_ref": func(SSL) int32 { refs++; return 1 }})
		if r := SSLUpRef(1); r != 1 || refs != 2 {
			t.Fatalf("SSLUpRef() = %d with %d refs, expected 1 with 2 refs", r, refs)
		}
	})
}

func TestNativeCodesPassThrough(t *testing.T) {
	var buf [16]byte
	var gotBuf unsafe.Pointer
	var gotNum int32
	lib := useLibrary(t, map[string]any{
		"SSL_read": func(s SSL, p unsafe.Pointer, n int32) int32 {
			gotBuf, gotNum = p, n
			return -1
		},
		"SSL_write":        func(s SSL, p unsafe.Pointer, n int32) int32 { return 0 },
		"SSL_get_error":    func(s SSL, ret int32) int32 { return SSL_ERROR_WANT_READ },
		"SSL_do_handshake": func(SSL) int32 { return -1 },
		"SSL_shutdown":     func(SSL) int32 { return 0 },
		"SSL_get_shutdown": func(SSL) int32 { return SSL_SENT_SHUTDOWN },
		"SSL_set_fd":       func(s SSL, fd int32) int32 { return fd },
		"SSL_pending":      func(SSL) int32 { return 7 },
		"SSL_use_certificate_file": func(s SSL, file string, typ int32) int32 {
			if file == "client.pem" && typ == SSL_FILETYPE_PEM {
				return 1
			}
			return 0
		},
		"SSL_CTX_set_default_verify_paths": func(SSLCtx) int32 { return 1 },
	})

	if r := SSLRead(3, unsafe.Pointer(&buf[0]), int32(len(buf))); r != -1 {
		t.Errorf("SSLRead() = %d, expected -1", r)
	}
	if gotBuf != unsafe.Pointer(&buf[0]) || gotNum != 16 {
		t.Errorf("SSL_read received (%p, %d)", gotBuf, gotNum)
	}
	checks := []struct {
		name string
		got  int32
		want int32
	}{
		{"SSLWrite", SSLWrite(3, unsafe.Pointer(&buf[0]), 1), 0},
		{"SSLGetError", SSLGetError(3, -1), SSL_ERROR_WANT_READ},
		{"SSLDoHandshake", SSLDoHandshake(3), -1},
		{"SSLShutdown", SSLShutdown(3), 0},
		{"SSLGetShutdown", SSLGetShutdown(3), SSL_SENT_SHUTDOWN},
		{"SSLSetFd", SSLSetFd(3, 42), 42},
		{"SSLPending", SSLPending(3), 7},
		{"SSLUseCertificateFile", SSLUseCertificateFile(3, "client.pem", SSL_FILETYPE_PEM), 1},
		{"SSLCtxSetDefaultVerifyPaths", SSLCtxSetDefaultVerifyPaths(2), 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, expected %d", c.name, c.got, c.want)
		}
	}
	if n := lib.TotalLookups(); n != len(checks)+1 {
		t.Errorf("TotalLookups() = %d, expected %d", n, len(checks)+1)
	}
}

func TestVoidOperations(t *testing.T) {
	var freedCtx SSLCtx
	var freedSSL, connecting SSL
	cleared := 0
	var gotCb ErrorCallback
	var gotU unsafe.Pointer
	useLibrary(t, map[string]any{
		"SSL_CTX_free":          func(c SSLCtx) { freedCtx = c },
		"SSL_free":              func(s SSL) { freedSSL = s },
		"SSL_set_connect_state": func(s SSL) { connecting = s },
		"ERR_clear_error":       func() { cleared++ },
		"ERR_print_errors_cb":   func(cb ErrorCallback, u unsafe.Pointer) { gotCb, gotU = cb, u },
	})
	marker := new(int)
	SSLCtxFree(5)
	SSLFree(6)
	SSLSetConnectState(7)
	ERRClearError()
	ERRPrintErrorsCb(0x1234, unsafe.Pointer(marker))
	if freedCtx != 5 || freedSSL != 6 || connecting != 7 || cleared != 1 {
		t.Errorf("void calls not forwarded: ctx=%d ssl=%d connect=%d cleared=%d",
			freedCtx, freedSSL, connecting, cleared)
	}
	if gotCb != 0x1234 || gotU != unsafe.Pointer(marker) {
		t.Errorf("ERR_print_errors_cb received (%#x, %p)", gotCb, gotU)
	}
}

func TestResolvedOncePerSite(t *testing.T) {
	calls := 0
	lib := useLibrary(t, map[string]any{
		"SSL_pending": func(SSL) int32 { calls++; return int32(calls) },
	})
	for i := 1; i <= 50; i++ {
		if r := SSLPending(1); r != int32(i) {
			t.Fatalf("call %d: SSLPending() = %d", i, r)
		}
	}
	if n := lib.Lookups("SSL_pending"); n != 1 {
		t.Fatalf("Lookups(SSL_pending) = %d, expected 1", n)
	}
}

func TestConcurrentFirstUse(t *testing.T) {
	lib := useLibrary(t, map[string]any{
		"SSL_get_error": func(s SSL, ret int32) int32 { return ret + SSL_ERROR_SYSCALL },
	})
	lib.Delay = 5 * time.Millisecond

	var g errgroup.Group
	var wrong atomic.Int32
	for range 64 {
		g.Go(func() error {
			if SSLGetError(1, 0) != SSL_ERROR_SYSCALL {
				wrong.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()
	if n := wrong.Load(); n != 0 {
		t.Fatalf("%d callers got a different result", n)
	}
	if n := lib.Lookups("SSL_get_error"); n != 1 {
		t.Fatalf("Lookups(SSL_get_error) = %d, expected 1", n)
	}
}

func TestConcurrentFirstUseAbsent(t *testing.T) {
	lib := useLibrary(t, nil)
	lib.Delay = 5 * time.Millisecond

	var g errgroup.Group
	var wrong atomic.Int32
	for range 64 {
		g.Go(func() error {
			if SSLNew(1) != 0 {
				wrong.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()
	if n := wrong.Load(); n != 0 {
		t.Fatalf("%d callers got a non-null SSL", n)
	}
	if n := lib.Lookups("SSL_new"); n != 1 {
		t.Fatalf("Lookups(SSL_new) = %d, expected 1", n)
	}
}

func TestHostNameShim(t *testing.T) {
	t.Run("function", func(t *testing.T) {
		var got string
		lib := useLibrary(t, map[string]any{
			"SSL_set_tlsext_host_name": func(s SSL, name string) int32 { got = name; return 1 },
			"SSL_ctrl":                 func(SSL, int32, int, string) int { return -1 },
		})
		if r := SSLSetTLSExtHostName(9, "example.com"); r != 1 || got != "example.com" {
			t.Fatalf("SSLSetTLSExtHostName() = %d, name %q", r, got)
		}
		if n := lib.Lookups("SSL_ctrl"); n != 0 {
			t.Fatalf("SSL_ctrl looked up %d times while the function exists", n)
		}
	})
	t.Run("macro", func(t *testing.T) {
		var gotSSL SSL
		var gotCmd int32
		var gotArg int
		var gotName string
		lib := useLibrary(t, map[string]any{
			"SSL_ctrl": func(s SSL, cmd int32, larg int, parg string) int {
				gotSSL, gotCmd, gotArg, gotName = s, cmd, larg, parg
				return 1
			},
		})
		for range 3 {
			if r := SSLSetTLSExtHostName(9, "example.com"); r != 1 {
				t.Fatalf("SSLSetTLSExtHostName() = %d, expected 1", r)
			}
		}
		if gotSSL != 9 || gotCmd != SSL_CTRL_SET_TLSEXT_HOSTNAME ||
			gotArg != TLSEXT_NAMETYPE_host_name || gotName != "example.com" {
			t.Fatalf("SSL_ctrl(%d, %d, %d, %q)", gotSSL, gotCmd, gotArg, gotName)
		}
		if lib.Lookups("SSL_set_tlsext_host_name") != 1 || lib.Lookups("SSL_ctrl") != 1 {
			t.Fatalf("lookups: function %d, ctrl %d",
				lib.Lookups("SSL_set_tlsext_host_name"), lib.Lookups("SSL_ctrl"))
		}
	})
	t.Run("neither", func(t *testing.T) {
		useLibrary(t, nil)
		if r := SSLSetTLSExtHostName(9, "example.com"); r != 0 {
			t.Fatalf("SSLSetTLSExtHostName() = %d, expected 0", r)
		}
	})
}

func TestSetModeShim(t *testing.T) {
	t.Run("function", func(t *testing.T) {
		useLibrary(t, map[string]any{
			"SSL_CTX_set_mode": func(c SSLCtx, mode uint32) uint32 { return mode | SSL_MODE_AUTO_RETRY },
		})
		if m := SSLCtxSetMode(1, SSL_MODE_RELEASE_BUFFERS); m != SSL_MODE_RELEASE_BUFFERS|SSL_MODE_AUTO_RETRY {
			t.Fatalf("SSLCtxSetMode() = %#x", m)
		}
	})
	t.Run("macro", func(t *testing.T) {
		var gotCmd int32
		var gotParg unsafe.Pointer = unsafe.Pointer(new(int))
		useLibrary(t, map[string]any{
			"SSL_CTX_ctrl": func(c SSLCtx, cmd int32, larg int, parg unsafe.Pointer) int {
				gotCmd, gotParg = cmd, parg
				return larg | SSL_MODE_AUTO_RETRY
			},
		})
		if m := SSLCtxSetMode(1, SSL_MODE_ENABLE_PARTIAL_WRITE); m != SSL_MODE_ENABLE_PARTIAL_WRITE|SSL_MODE_AUTO_RETRY {
			t.Fatalf("SSLCtxSetMode() = %#x", m)
		}
		if gotCmd != SSL_CTRL_MODE || gotParg != nil {
			t.Fatalf("SSL_CTX_ctrl called with cmd %d, parg %p", gotCmd, gotParg)
		}
	})
}

func TestInitSSLShim(t *testing.T) {
	t.Run("OPENSSL_init_ssl", func(t *testing.T) {
		var gotOpts uint64
		useLibrary(t, map[string]any{
			"OPENSSL_init_ssl": func(opts uint64, settings unsafe.Pointer) int32 { gotOpts = opts; return 1 },
		})
		if r := OPENSSLInitSSL(OPENSSL_INIT_LOAD_SSL_STRINGS, nil); r != 1 || gotOpts != OPENSSL_INIT_LOAD_SSL_STRINGS {
			t.Fatalf("OPENSSLInitSSL() = %d, opts %#x", r, gotOpts)
		}
	})
	t.Run("SSL_library_init", func(t *testing.T) {
		calls := 0
		useLibrary(t, map[string]any{
			"SSL_library_init": func() int32 { calls++; return 1 },
		})
		if r := OPENSSLInitSSL(OPENSSL_INIT_LOAD_SSL_STRINGS, nil); r != 1 || calls != 1 {
			t.Fatalf("OPENSSLInitSSL() = %d after %d SSL_library_init calls", r, calls)
		}
	})
}

func TestMissingOperationsReturnFailureValues(t *testing.T) {
	useLibrary(t, nil)
	var buf [1]byte
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"TLSClientMethod", TLSClientMethod(), SSLMethod(0)},
		{"SSLCtxNew", SSLCtxNew(1), SSLCtx(0)},
		{"SSLNew", SSLNew(1), SSL(0)},
		{"SSLUpRef", SSLUpRef(1), int32(0)},
		{"SSLRead", SSLRead(1, unsafe.Pointer(&buf[0]), 1), int32(-1)},
		{"SSLWrite", SSLWrite(1, unsafe.Pointer(&buf[0]), 1), int32(-1)},
		{"SSLSetFd", SSLSetFd(1, 3), int32(0)},
		{"SSLDoHandshake", SSLDoHandshake(1), int32(-1)},
		{"SSLShutdown", SSLShutdown(1), int32(-1)},
		{"SSLGetError", SSLGetError(1, -1), int32(SSL_ERROR_SSL)},
		{"SSLCtxSetMode", SSLCtxSetMode(1, SSL_MODE_AUTO_RETRY), uint32(0)},
		{"OPENSSLInitSSL", OPENSSLInitSSL(0, nil), int32(0)},
		{"VersionText", VersionText(), ""},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, expected %v", c.name, c.got, c.want)
		}
	}
	// void operations must not panic
	SSLCtxFree(1)
	SSLFree(1)
	SSLSetConnectState(1)
	ERRClearError()
	ERRPrintErrorsCb(0, nil)

	if Valid() {
		t.Error("Valid() = true for an empty library")
	}
	for _, b := range Probe() {
		if b.Bound || b.Linked {
			t.Errorf("Probe(%s) = %+v, expected unbound", b.Operation, b)
		}
	}
}

func TestValid(t *testing.T) {
	useLibrary(t, map[string]any{"SSL_CTX_new": func(SSLMethod) SSLCtx { return 1 }})
	if !Valid() {
		t.Fatal("Valid() = false for a library exporting SSL_CTX_new")
	}
}

func TestLibraryChangeKeepsResolvedSymbols(t *testing.T) {
	useLibrary(t, map[string]any{"SSL_pending": func(SSL) int32 { return 1 }})
	if r := SSLPending(1); r != 1 {
		t.Fatalf("SSLPending() = %d, expected 1", r)
	}
	other := testutils.NewFakeLibrary(map[string]any{"SSL_pending": func(SSL) int32 { return 2 }})
	SetLibrary(other)
	if r := SSLPending(1); r != 1 {
		t.Fatalf("SSLPending() = %d after SetLibrary, expected the cached symbol", r)
	}
	if n := other.TotalLookups(); n != 0 {
		t.Fatalf("new library looked up %d times", n)
	}
}

func TestErrorQueueUnavailable(t *testing.T) {
	useLibrary(t, nil)
	if lines := ErrorQueue(); len(lines) != 0 {
		t.Fatalf("ErrorQueue() = %q, expected none", lines)
	}
	if err := NewOpenSSLError("libssl: SSL_new"); err.Error() != "libssl: SSL_new" {
		t.Fatalf("NewOpenSSLError() = %q", err)
	}
}

func TestInitFailure(t *testing.T) {
	Reset()
	defer Reset()
	err := Init("libssl.so.0.0.0-does-not-exist")
	if !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Init() err = %v, expected %v", err, ErrNotLoaded)
	}
	if again := Init(""); again != err {
		t.Fatalf("second Init() err = %v, expected the first result %v", again, err)
	}
	if !isDefault() {
		t.Fatal("failed Init changed the configured library")
	}
}

// libcName names a library that loads everywhere but does not export libssl.
func libcName() string {
	switch runtime.GOOS {
	case "darwin":
		return "/usr/lib/libSystem.B.dylib"
	case "freebsd":
		return "libc.so.7"
	default:
		return "libc.so.6"
	}
}

func TestInitWithoutLibssl(t *testing.T) {
	Reset()
	defer Reset()
	if im, err := Open(libcName()); err != nil {
		t.Skipf("libc not loadable: %v", err)
	} else {
		im.Close()
	}

	err := Init(libcName())
	if !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Init(%s) err = %v, expected %v", libcName(), err, ErrNotLoaded)
	}
	if !isDefault() {
		t.Fatalf("failed Init selected %v", library())
	}

	// Nothing was resolved against the rejected image.
	lib := testutils.NewFakeLibrary(map[string]any{
		"SSL_CTX_new": func(SSLMethod) SSLCtx { return 0x42 },
	})
	SetLibrary(lib)
	if !Valid() {
		t.Fatal("Valid() = false for a library exporting SSL_CTX_new")
	}
	if ctx := SSLCtxNew(1); ctx != 0x42 {
		t.Fatalf("SSLCtxNew() = %#x, expected 0x42", ctx)
	}
}

func TestSSLError(t *testing.T) {
	useLibrary(t, nil)
	tests := []struct {
		code      int
		name      string
		retryable bool
	}{
		{SSL_ERROR_WANT_READ, "SSL_ERROR_WANT_READ", true},
		{SSL_ERROR_WANT_WRITE, "SSL_ERROR_WANT_WRITE", true},
		{SSL_ERROR_WANT_ACCEPT, "SSL_ERROR_WANT_ACCEPT", true},
		{SSL_ERROR_ZERO_RETURN, "SSL_ERROR_ZERO_RETURN", false},
		{SSL_ERROR_SYSCALL, "SSL_ERROR_SYSCALL", false},
		{SSL_ERROR_SSL, "SSL_ERROR_SSL", false},
		{99, "SSL_ERROR_99", false},
		{-1, "SSL_ERROR_-1", false},
	}
	for _, tc := range tests {
		err := newSSLError("SSL_read", tc.code)
		if ErrorName(tc.code) != tc.name || err.IsRetryable() != tc.retryable {
			t.Errorf("newSSLError(%d) = %v, retryable %v", tc.code, err, err.IsRetryable())
		}
		if want := "libssl: SSL_read: " + tc.name; err.Error() != want {
			t.Errorf("Error() = %q, expected %q", err.Error(), want)
		}
	}
}

func TestSSLErrorDrainsQueue(t *testing.T) {
	var cb ErrorCallback
	useLibrary(t, map[string]any{
		"ERR_print_errors_cb": func(c ErrorCallback, u unsafe.Pointer) { cb = c },
	})
	err := newSSLError("SSL_do_handshake", SSL_ERROR_WANT_READ)
	if cb != 0 || err.Queue != nil {
		t.Fatalf("error queue drained for a retryable code: %v", err)
	}
	newSSLError("SSL_do_handshake", SSL_ERROR_SSL)
	if cb != queueCallback() {
		t.Fatalf("ERR_print_errors_cb received %#x, expected %#x", cb, queueCallback())
	}
}
