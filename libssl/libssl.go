// Package libssl exposes the libssl TLS primitives through a facade that picks
// its implementation at runtime.
//
// By default every call goes straight to the libssl the binary was linked
// against (see the libssl_static build tag). After [Init] or [SetLibrary] the
// same calls are resolved lazily, one symbol per call site, from a separately
// loaded library image. Symbols renamed across OpenSSL releases fall back to
// their legacy name, and symbols that are missing altogether make the call
// return a documented failure value instead of crashing.
//
// The library must be configured once, before any concurrent use of the
// package. Resolved symbols are never re-resolved.
package libssl

import (
	"errors"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/aristanetworks/glog"

	"github.com/aristanetworks/go-openssl-fips/dynssl/internal/symbol"
)

// Library is a table of exported symbols backing the facade.
type Library = symbol.Library

// Image is a library image loaded with dlopen.
type Image = symbol.Image

// Default selects the symbols the process already links.
var Default = symbol.Default

var (
	ErrNotLoaded   = errors.New("libssl: library was not loaded")
	ErrUnsupported = errors.New("libssl: operation not exported by the configured library")
)

type holder struct {
	lib Library
}

var current atomic.Pointer[holder]

// library returns the configured Library, or [Default].
func library() Library {
	if h := current.Load(); h != nil {
		return h.lib
	}
	return Default
}

func isDefault() bool {
	return symbol.IsDefault(library())
}

// SetLibrary selects the library backing the facade. A nil lib selects
// [Default]. It performs no validation: if lib does not export libssl, every
// operation reports itself unsupported.
//
// SetLibrary must be called before the first operation. Call sites that have
// already resolved their symbol keep it.
func SetLibrary(lib Library) {
	if lib == nil {
		lib = Default
	}
	current.Store(&holder{lib: lib})
}

// Open loads the shared library at path without selecting it.
func Open(path string) (*Image, error) {
	return symbol.Open(path)
}

// FromHandle wraps a handle obtained from dlopen by the host.
func FromHandle(handle uintptr, name string) *Image {
	return symbol.FromHandle(handle, name)
}

var (
	initOnce *sync.Once = new(sync.Once)
	initErr  error
)

// Init loads libssl from the shared library file and selects it.
// An empty file picks the newest libssl found on the system, see [GetVersion].
//
// Only the first call to Init or InitDefault is effective.
// Subsequent calls will return the same error result as the one from the first call.
func Init(file string) error {
	initOnce.Do(func() {
		if file == "" {
			file = GetVersion()
		}
		initErr = load(file)
	})
	return initErr
}

// InitDefault selects the libssl linked into the process.
//
// InitDefault shares its once guard with [Init]: only the first call to
// either one is effective, and later calls to both return its result.
func InitDefault() error {
	initOnce.Do(func() {
		SetLibrary(Default)
		if !Valid() {
			initErr = errors.Join(ErrNotLoaded, fail("SSL_CTX_new lookup in process"))
		}
	})
	return initErr
}

// load opens file, checks and initializes it, and only then selects it.
// On failure the image is closed and the configured library is unchanged.
func load(file string) error {
	im, err := symbol.Open(file)
	if err != nil {
		return errors.Join(ErrNotLoaded, err)
	}
	if err := initImage(im); err != nil {
		im.Close()
		return errors.Join(ErrNotLoaded, err)
	}
	SetLibrary(im)
	glog.Infof("libssl: using %s (%s)", file, VersionText())
	return nil
}

// initImage runs the library initialization of im through binders that are
// not shared with the call sites.
func initImage(im *Image) error {
	if !symbol.NewBinder[func(SSLMethod) SSLCtx](im, "SSL_CTX_new").IsBound() {
		return fail("SSL_CTX_new lookup in " + im.Path())
	}
	if b := symbol.NewBinder[func(uint64, unsafe.Pointer) int32](im, "OPENSSL_init_ssl"); b.IsBound() {
		if b.Func()(OPENSSL_INIT_LOAD_SSL_STRINGS|OPENSSL_INIT_LOAD_CRYPTO_STRINGS, nil) != 1 {
			return fail("OPENSSL_init_ssl")
		}
		return nil
	}
	if b := symbol.NewBinder[func() int32](im, "SSL_library_init"); b.IsBound() {
		if b.Func()() != 1 {
			return fail("SSL_library_init")
		}
		return nil
	}
	return fail("OPENSSL_init_ssl lookup in " + im.Path())
}

// Valid reports whether the configured library, or the process when none is
// configured, exports SSL_CTX_new. Callers use it to decide whether to attempt
// TLS through this package at all.
func Valid() bool {
	if isDefault() {
		return linked.available
	}
	return sslCtxNew.binder().IsBound()
}

// GetVersion returns the libssl shared library to load.
func GetVersion() string {
	v := os.Getenv("GO_OPENSSL_VERSION_OVERRIDE")
	if v != "" {
		if runtime.GOOS == "linux" {
			return "libssl.so." + v
		}
		return v
	}
	// Try to find a supported version of OpenSSL on the system.
	versions := []string{"3", "1.1.1", "1.1", "11", "111", "1.0.2", "1.0.0", "10"}
	for _, v = range versions {
		if runtime.GOOS == "darwin" {
			v = "libssl." + v + ".dylib"
		} else {
			v = "libssl.so." + v
		}
		if CheckVersion(v) {
			return v
		}
	}
	return "libssl.so"
}

// CheckVersion reports whether file can be loaded and exports SSL_CTX_new.
// It does not change the configured library and can be called before Init.
func CheckVersion(file string) bool {
	im, err := symbol.Open(file)
	if err != nil {
		return false
	}
	defer im.Close()
	return symbol.NewBinder[func(SSLMethod) SSLCtx](im, "SSL_CTX_new").IsBound()
}

// Reset restores the default library and forgets every resolved symbol.
// Used for testing only.
func Reset() {
	initOnce = new(sync.Once)
	initErr = nil
	current.Store(nil)
	for _, s := range sites {
		s.Reset()
	}
	for _, o := range ops {
		o.reset()
	}
}

type fail string

func (e fail) Error() string { return "libssl: " + string(e) + " failed" }
