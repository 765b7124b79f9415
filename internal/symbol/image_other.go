//go:build !(darwin || freebsd || linux)

package symbol

// Default is the sentinel image standing for the symbols already present in
// the process's address space.
var Default = &Image{path: "<process>"}

// Image is a placeholder on platforms without dlopen; it never resolves anything.
type Image struct {
	handle uintptr
	path   string
}

func Open(path string) (*Image, error) { return nil, ErrUnsupported }

func FromHandle(handle uintptr, name string) *Image {
	return &Image{handle: handle, path: name}
}

func (im *Image) Resolve(name string, fptr any) bool { return false }
func (im *Image) Close() error                       { return nil }
func (im *Image) Handle() uintptr                    { return im.handle }
func (im *Image) Path() string                       { return im.path }
