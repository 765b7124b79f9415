package symbol

import "sync"

// Site holds the Binder of one call site. The Binder is built on first use,
// against whatever Library is configured at that moment, and is then kept for
// the lifetime of the process.
type Site[F any] struct {
	build func() *Binder[F]

	once *sync.Once
	b    *Binder[F]
}

func newSite[F any](build func() *Binder[F]) *Site[F] {
	return &Site[F]{build: build, once: new(sync.Once)}
}

// NewSite returns a Site for name, resolved against lib() on first use.
func NewSite[F any](lib func() Library, name string) *Site[F] {
	return newSite(func() *Binder[F] {
		return NewBinder[F](lib(), name)
	})
}

// Get returns the call site's Binder, creating it exactly once.
func (s *Site[F]) Get() *Binder[F] {
	s.once.Do(func() { s.b = s.build() })
	return s.b
}

// Reset forgets the cached Binder. Used for testing only; it must not race
// with Get.
func (s *Site[F]) Reset() {
	s.once = new(sync.Once)
	s.b = nil
}

// First returns the Binder of primary when its symbol exists and the Binder
// of legacy otherwise. No other name is ever tried, and since both Sites
// cache their answer, repeated calls do not probe the library again.
func First[F any](primary, legacy *Site[F]) *Binder[F] {
	if b := primary.Get(); b.IsBound() || legacy == nil {
		return b
	}
	return legacy.Get()
}

// Adapt returns a Site exposing the symbol of src as an F. It is used where a
// library exports an operation with a different shape, for instance a generic
// control function standing in for what other builds export directly.
func Adapt[F, G any](src *Site[G], conv func(G) F) *Site[F] {
	return newSite(func() *Binder[F] {
		b := src.Get()
		if !b.IsBound() {
			var zero F
			return bound(b.Name(), zero, false)
		}
		return bound(b.Name(), conv(b.Func()), true)
	})
}
