package testutils

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

// FakeLibrary is an in-memory symbol table standing in for a loaded libssl.
// Symbols are plain Go functions; every lookup is counted per name.
type FakeLibrary struct {
	// Delay is slept inside every lookup, to widen race windows.
	Delay time.Duration

	mu      sync.Mutex
	symbols map[string]any
	lookups map[string]int
}

// NewFakeLibrary returns a library exporting symbols, keyed by name.
func NewFakeLibrary(symbols map[string]any) *FakeLibrary {
	lib := &FakeLibrary{
		symbols: make(map[string]any, len(symbols)),
		lookups: make(map[string]int),
	}
	for name, fn := range symbols {
		lib.symbols[name] = fn
	}
	return lib
}

// Export adds or replaces a symbol.
func (l *FakeLibrary) Export(name string, fn any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.symbols[name] = fn
}

// Resolve implements symbol.Library. It panics when the exported function
// does not have the requested type, as that is a bug in the test.
func (l *FakeLibrary) Resolve(name string, fptr any) bool {
	if l.Delay > 0 {
		time.Sleep(l.Delay)
	}
	l.mu.Lock()
	l.lookups[name]++
	fn, ok := l.symbols[name]
	l.mu.Unlock()
	if !ok {
		return false
	}
	dst := reflect.ValueOf(fptr).Elem()
	src := reflect.ValueOf(fn)
	if src.Type() != dst.Type() {
		panic(fmt.Sprintf("testutils: %s exported as %v, requested as %v", name, src.Type(), dst.Type()))
	}
	dst.Set(src)
	return true
}

// Lookups returns how many times name was looked up.
func (l *FakeLibrary) Lookups(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lookups[name]
}

// TotalLookups returns the number of lookups across all names.
func (l *FakeLibrary) TotalLookups() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.lookups {
		n += c
	}
	return n
}
