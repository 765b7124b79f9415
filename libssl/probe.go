package libssl

// Binding describes which symbol backs a logical operation.
type Binding struct {
	// Operation is the name of the function in this package.
	Operation string
	// Symbol is the symbol that was resolved, or the last one tried.
	Symbol string
	// Bound is false when the operation returns its failure value.
	Bound bool
	// Linked is true when the operation calls the libssl linked into the process.
	Linked bool
}

// Probe resolves every operation against the configured library and reports
// the outcome. Resolution is cached as for a regular call.
func Probe() []Binding {
	bindings := make([]Binding, 0, len(ops))
	for _, o := range ops {
		bindings = append(bindings, o.binding())
	}
	return bindings
}

func (o *op[F]) binding() Binding {
	if isDefault() {
		return Binding{
			Operation: o.logical,
			Symbol:    o.name,
			Bound:     linked.available,
			Linked:    true,
		}
	}
	b := o.binder()
	return Binding{Operation: o.logical, Symbol: b.Name(), Bound: b.IsBound()}
}
