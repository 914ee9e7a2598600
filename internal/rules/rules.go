// Package rules implements the flat catalog of inference rule values
// described in spec §4.5 and the "Dynamic dispatch on rules" design note:
// a rule is data (id, arity, applicability predicate, apply function),
// never a class hierarchy, so the catalog stays introspectable and rules
// can be dispatched in parallel.
//
// Rule and Catalog mirror modes.ThinkingMode and modes.Registry:
// Applicable plays the role of CanHandle, Apply plays ProcessThought, and
// Catalog.Lookup/All generalize Registry.Get/SelectBest from a
// single-candidate registry to a filter-all-then-fire-all dispatch.
package rules

import (
	"github.com/automenta/senars11-sub007/internal/budget"
	"github.com/automenta/senars11-sub007/internal/stamp"
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
)

// Arity is how many premise tasks a rule consumes.
type Arity int

const (
	Unary  Arity = 1
	Binary Arity = 2
)

// Context carries whatever ambient information a rule's applicability
// check or apply function needs beyond the premises themselves, such as
// the interner used to build conclusion terms.
type Context struct {
	Interner *term.Interner
}

// Rule is a named, pure value: an applicability predicate and a function
// producing zero or more conclusion tasks. Rules never mutate their
// arguments.
type Rule struct {
	ID       string
	Arity    Arity
	Priority float64 // static priority used in budget derivation, spec §4.4

	// Applicable reports whether the rule can fire on this premise pair.
	// secondary is nil for unary rules.
	Applicable func(primary, secondary *task.Task) bool

	// Apply produces the rule's conclusions. secondary is nil for unary
	// rules. The caller (reasoner.Dispatcher) is responsible for the
	// dispatcher-level guarantees in spec §4.6 (no self-premise, stamp
	// disjointness, depth limiting); Apply only computes truth and term.
	Apply func(ctx Context, primary, secondary *task.Task) []*task.Task
}

// Catalog is the registered set of rules, analogous to modes.Registry.
type Catalog struct {
	rules map[string]Rule
	order []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{rules: make(map[string]Rule)}
}

// Register adds a rule, returning an error-free no-op on duplicate id
// (the standard catalog below only ever registers each id once).
func (c *Catalog) Register(r Rule) {
	if _, exists := c.rules[r.ID]; exists {
		return
	}
	c.rules[r.ID] = r
	c.order = append(c.order, r.ID)
}

// Lookup retrieves a rule by id.
func (c *Catalog) Lookup(id string) (Rule, bool) {
	r, ok := c.rules[id]
	return r, ok
}

// All returns every registered rule in registration order.
func (c *Catalog) All() []Rule {
	out := make([]Rule, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.rules[id])
	}
	return out
}

// ApplicableRules returns every rule of the given arity whose Applicable
// predicate accepts (primary, secondary). Tie-breaking per spec §4.5: all
// applicable rules fire, none take precedence over another.
func (c *Catalog) ApplicableRules(arity Arity, primary, secondary *task.Task) []Rule {
	var out []Rule
	for _, id := range c.order {
		r := c.rules[id]
		if r.Arity != arity {
			continue
		}
		if r.Applicable(primary, secondary) {
			out = append(out, r)
		}
	}
	return out
}

// deriveUnary and deriveBinary assemble a conclusion task from a
// conclusion term, truth value, premises, and rule priority. deriveUnary
// never merges or checks stamps: it keeps the single premise's evidence
// and advances depth by one. For binary rules the caller has already
// verified stamp disjointness (reasoner.Dispatcher's responsibility per
// spec §4.6b), so deriveBinary performs the merge.
func deriveUnary(ctx Context, conclTerm *term.Term, tr truth.Truth, primary *task.Task, rulePriority float64) *task.Task {
	b := budget.Merge([]budget.Budget{primary.Budget()}, rulePriority, 1.0)
	s := primary.Stamp().WithDepth(primary.Depth() + 1)
	return task.New("").Term(conclTerm).Punctuation(task.Belief).Truth(tr).Budget(b).Stamp(s).Build()
}

func deriveBinary(ctx Context, conclTerm *term.Term, tr truth.Truth, primary, secondary *task.Task, rulePriority float64) *task.Task {
	b := budget.Merge([]budget.Budget{primary.Budget(), secondary.Budget()}, rulePriority, 1.0)
	s := stamp.Merge(primary.Stamp(), secondary.Stamp())
	return task.New("").Term(conclTerm).Punctuation(task.Belief).Truth(tr).Budget(b).Stamp(s).Build()
}

// componentsOf splits an inheritance or implication term into its two
// components; used by several Applicable predicates below.
func componentsOf(t *term.Term) (subj, pred *term.Term, ok bool) {
	if !t.IsCompound() || len(t.Components()) != 2 {
		return nil, nil, false
	}
	switch t.Operator() {
	case term.OpInheritance, term.OpImplication:
		return t.Components()[0], t.Components()[1], true
	default:
		return nil, nil, false
	}
}

func sameOperator(a, b *term.Term) bool {
	return a.IsCompound() && b.IsCompound() && a.Operator() == b.Operator()
}

func truthOf(t *task.Task) (truth.Truth, bool) { return t.Truth() }
