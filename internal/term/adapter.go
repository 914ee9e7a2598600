package term

import "github.com/automenta/senars11-sub007/internal/unify"

// Adapter implements unify.Adapter over *Term, using an Interner to
// reconstruct compounds after substitution so results stay canonical.
type Adapter struct {
	Term *Term
	In   *Interner
}

// Wrap adapts a term for use with the unify package, using the Default
// interner for reconstruction.
func Wrap(t *Term) Adapter { return Adapter{Term: t, In: Default} }

// WrapWith adapts a term using a specific interner, for callers that
// operate on a non-default interner instance.
func WrapWith(t *Term, in *Interner) Adapter { return Adapter{Term: t, In: in} }

func (a Adapter) IsVariable() bool   { return a.Term.IsVariable() }
func (a Adapter) VariableName() string {
	if !a.Term.IsVariable() {
		return ""
	}
	return a.Term.varKind.Prefix() + a.Term.name
}

func (a Adapter) IsCompound() bool { return a.Term.IsCompound() }
func (a Adapter) GetOperator() string {
	if !a.Term.IsCompound() {
		return ""
	}
	return a.Term.op.String()
}

func (a Adapter) GetComponents() []unify.Adapter {
	if !a.Term.IsCompound() {
		return nil
	}
	out := make([]unify.Adapter, len(a.Term.comps))
	for i, c := range a.Term.comps {
		out[i] = Adapter{Term: c, In: a.In}
	}
	return out
}

// Equals reports structural equality via the underlying interned pointer.
func (a Adapter) Equals(other unify.Adapter) bool {
	o, ok := other.(Adapter)
	if !ok {
		return false
	}
	return Equal(a.Term, o.Term)
}

// Substitute replaces a itself if it is a bound variable; compounds are
// left untouched here since unify.Apply recurses into components and
// calls Reconstruct, not Substitute, to rebuild them.
func (a Adapter) Substitute(bindings unify.Bindings) unify.Adapter {
	if !a.Term.IsVariable() {
		return a
	}
	if bound, ok := bindings[a.VariableName()]; ok {
		return bound
	}
	return a
}

// Reconstruct rebuilds a compound with the same operator from new
// components, interning the result so it remains canonical.
func (a Adapter) Reconstruct(components []unify.Adapter) unify.Adapter {
	if !a.Term.IsCompound() {
		return a
	}
	comps := make([]*Term, len(components))
	for i, c := range components {
		comps[i] = c.(Adapter).Term
	}
	rebuilt := a.In.MustCompound(a.Term.op, comps)
	return Adapter{Term: rebuilt, In: a.In}
}
