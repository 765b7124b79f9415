//go:build darwin || freebsd || linux

package symbol

import (
	"errors"

	"github.com/aristanetworks/glog"
	"github.com/ebitengine/purego"
)

// Default is the sentinel image standing for the symbols already present in
// the process's address space.
var Default = &Image{handle: purego.RTLD_DEFAULT, path: "<process>"}

// Image is a library image loaded with dlopen.
type Image struct {
	handle uintptr
	path   string
	closed bool
}

// Open loads the shared library at path. The path is passed to dlopen verbatim,
// so a bare soname such as "libssl.so.3" is searched for on the loader path.
func Open(path string) (*Image, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, errors.New("symbol: can't load " + path + ": " + err.Error())
	}
	if h == 0 {
		return nil, errors.New("symbol: can't load " + path)
	}
	glog.V(1).Infof("symbol: loaded %s", path)
	return &Image{handle: h, path: path}, nil
}

// FromHandle wraps a handle the host already obtained from dlopen. The name
// is only used for diagnostics. No validation is performed: a bad handle
// makes every lookup fail. A zero handle is the value of a failed dlopen and
// never resolves anything, even where it equals RTLD_DEFAULT; use [Default]
// for the process's own table.
func FromHandle(handle uintptr, name string) *Image {
	return &Image{handle: handle, path: name}
}

// Resolve implements [Library].
func (im *Image) Resolve(name string, fptr any) bool {
	if im.closed || (im.handle == 0 && im != Default) {
		return false
	}
	addr, err := purego.Dlsym(im.handle, name)
	if err != nil || addr == 0 {
		return false
	}
	purego.RegisterFunc(fptr, addr)
	return true
}

// Close unloads the image. Functions resolved from it must not be called
// afterwards, and later lookups fail. Closing [Default] is a no-op.
func (im *Image) Close() error {
	if im == Default || im.closed {
		return nil
	}
	im.closed = true
	if im.handle == 0 {
		return nil
	}
	if err := purego.Dlclose(im.handle); err != nil {
		return errors.New("symbol: can't close " + im.path + ": " + err.Error())
	}
	im.handle = 0
	return nil
}

// Handle returns the dlopen handle.
func (im *Image) Handle() uintptr { return im.handle }

// Path returns the name the image was opened with.
func (im *Image) Path() string { return im.path }
