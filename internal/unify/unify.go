// Package unify implements unification and one-way matching parameterized
// over a term adapter, so the algorithm stays independent of the concrete
// term representation the same way storage.Storage decouples reasoning
// modes from a concrete backing store, and the way
// reasoning.LikelihoodEstimator decouples belief update from a concrete
// evidence model.
package unify

// Adapter exposes the minimal structural operations unify/match need over
// whatever concrete term type the caller uses. internal/term.Adapter
// implements this interface by wrapping an interned *term.Term.
type Adapter interface {
	// Substitute applies bindings, returning a new value with every bound
	// variable replaced by its binding.
	Substitute(bindings Bindings) Adapter

	// Equals reports structural equality, independent of bindings.
	Equals(other Adapter) bool

	IsVariable() bool
	VariableName() string

	IsCompound() bool
	GetOperator() string
	GetComponents() []Adapter

	// Reconstruct rebuilds a compound of the same operator from new
	// components, used after recursively unifying/substituting children.
	Reconstruct(components []Adapter) Adapter
}

// Bindings maps variable name to its bound value. Bindings are looked up
// transitively: a variable bound to another variable chases the chain.
type Bindings map[string]Adapter

// Clone returns a shallow copy, so speculative unification attempts never
// mutate a caller's bindings on failure.
func (b Bindings) Clone() Bindings {
	cp := make(Bindings, len(b))
	for k, v := range b {
		cp[k] = v
	}
	return cp
}

// resolve chases a chain of variable-to-variable bindings to its final
// value, or returns v unchanged if unbound or not a variable.
func resolve(v Adapter, bindings Bindings) Adapter {
	for v.IsVariable() {
		bound, ok := bindings[v.VariableName()]
		if !ok {
			return v
		}
		v = bound
	}
	return v
}

// occurs reports whether the variable named name appears free anywhere
// inside t, walking through existing bindings. This is the occurs-check:
// without it, binding x to f(x) would let substitution recurse forever.
func occurs(name string, t Adapter, bindings Bindings) bool {
	t = resolve(t, bindings)
	if t.IsVariable() {
		return t.VariableName() == name
	}
	if !t.IsCompound() {
		return false
	}
	for _, c := range t.GetComponents() {
		if occurs(name, c, bindings) {
			return true
		}
	}
	return false
}

// bind extends bindings with name -> value after an occurs-check,
// returning the extended bindings and true, or the input unchanged and
// false if the binding would create a cycle.
func bind(name string, value Adapter, bindings Bindings) (Bindings, bool) {
	if occurs(name, value, bindings) {
		return bindings, false
	}
	next := bindings.Clone()
	next[name] = value
	return next, true
}

// Unify attempts to make t1 and t2 structurally identical under some
// extension of bindings, treating variables in both terms as unifiable.
// Substitution is idempotent and monotonic: a successful call only adds
// bindings, never removes or overwrites an existing one incompatibly.
func Unify(t1, t2 Adapter, bindings Bindings) (Bindings, bool) {
	a := resolve(t1, bindings)
	b := resolve(t2, bindings)

	if a.IsVariable() && b.IsVariable() && a.VariableName() == b.VariableName() {
		return bindings, true
	}
	if a.IsVariable() {
		return bind(a.VariableName(), b, bindings)
	}
	if b.IsVariable() {
		return bind(b.VariableName(), a, bindings)
	}
	if a.IsCompound() != b.IsCompound() {
		return bindings, false
	}
	if !a.IsCompound() {
		if a.Equals(b) {
			return bindings, true
		}
		return bindings, false
	}
	if a.GetOperator() != b.GetOperator() {
		return bindings, false
	}
	ca, cb := a.GetComponents(), b.GetComponents()
	if len(ca) != len(cb) {
		return bindings, false
	}
	current := bindings
	for i := range ca {
		next, ok := Unify(ca[i], cb[i], current)
		if !ok {
			return bindings, false
		}
		current = next
	}
	return current, true
}

// Match performs one-way pattern matching: variables in pattern may bind,
// but variables appearing inside term are treated as opaque constants,
// never as unification targets.
func Match(pattern, term Adapter, bindings Bindings) (Bindings, bool) {
	p := resolve(pattern, bindings)

	if p.IsVariable() {
		return bind(p.VariableName(), term, bindings)
	}
	if term.IsVariable() {
		// term-side variables are constants for match; only equal if
		// pattern is the identical constant, which IsVariable already
		// ruled out above, so this can only succeed via Equals below.
		return bindings, p.Equals(term)
	}
	if p.IsCompound() != term.IsCompound() {
		return bindings, false
	}
	if !p.IsCompound() {
		if p.Equals(term) {
			return bindings, true
		}
		return bindings, false
	}
	if p.GetOperator() != term.GetOperator() {
		return bindings, false
	}
	pc, tc := p.GetComponents(), term.GetComponents()
	if len(pc) != len(tc) {
		return bindings, false
	}
	current := bindings
	for i := range pc {
		next, ok := Match(pc[i], tc[i], current)
		if !ok {
			return bindings, false
		}
		current = next
	}
	return current, true
}

// Apply substitutes every bound variable in t with its binding,
// recursively rebuilding compounds via Reconstruct.
func Apply(t Adapter, bindings Bindings) Adapter {
	t = resolve(t, bindings)
	if !t.IsCompound() {
		return t
	}
	orig := t.GetComponents()
	out := make([]Adapter, len(orig))
	for i, c := range orig {
		out[i] = Apply(c, bindings)
	}
	return t.Reconstruct(out)
}
