package symbol

import (
	"sync"

	"github.com/aristanetworks/glog"
)

// Binder is a lazily resolved function of type F exported under a fixed name.
//
// The lookup happens on the first call to IsBound or Func and never again,
// whatever happens to the library afterwards.
type Binder[F any] struct {
	lib  Library
	name string

	once  sync.Once
	fn    F
	bound bool
}

// NewBinder returns a Binder for name in lib. It does not resolve anything yet.
func NewBinder[F any](lib Library, name string) *Binder[F] {
	return &Binder[F]{lib: lib, name: name}
}

func (b *Binder[F]) resolve() {
	if b.lib == nil {
		return
	}
	b.bound = b.lib.Resolve(b.name, &b.fn)
	if b.bound {
		glog.V(1).Infof("symbol: bound %s", b.name)
	} else {
		glog.V(1).Infof("symbol: %s not found", b.name)
	}
}

// Name returns the symbol name.
func (b *Binder[F]) Name() string { return b.name }

// IsBound reports whether the symbol exists in the library.
func (b *Binder[F]) IsBound() bool {
	b.once.Do(b.resolve)
	return b.bound
}

// Func returns the resolved function. Callers must check IsBound first:
// for an absent symbol Func returns the zero F and calling it panics.
func (b *Binder[F]) Func() F {
	b.once.Do(b.resolve)
	return b.fn
}

// bound returns a Binder that is already resolved to fn.
func bound[F any](name string, fn F, ok bool) *Binder[F] {
	b := &Binder[F]{name: name, fn: fn, bound: ok}
	b.once.Do(func() {})
	return b
}
