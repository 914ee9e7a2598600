package rules

import (
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
)

// syllogism builds the four classic first-order syllogistic rules for a
// given binary operator (inheritance or implication), following spec
// §4.5's "Syllogistic on inheritance" / "Syllogistic on implication": the
// same four patterns (deduction, induction, abduction, exemplification)
// apply verbatim to both connectives.
func syllogism(op term.Operator, idPrefix string, priority float64) []Rule {
	shape := func(t *term.Term) (subj, pred *term.Term, ok bool) {
		if !t.IsCompound() || t.Operator() != op || len(t.Components()) != 2 {
			return nil, nil, false
		}
		return t.Components()[0], t.Components()[1], true
	}

	deduction := Rule{
		ID: idPrefix + ".deduction", Arity: Binary, Priority: priority,
		// M-->P (primary), S-->M (secondary) |- S-->P
		Applicable: func(primary, secondary *task.Task) bool {
			_, hasT1 := truthOf(primary)
			_, hasT2 := truthOf(secondary)
			if !hasT1 || !hasT2 {
				return false
			}
			m1, p1, ok1 := shape(primary.Term())
			s2, m2, ok2 := shape(secondary.Term())
			return ok1 && ok2 && term.Equal(m1, m2) && !term.Equal(s2, p1)
		},
		Apply: func(ctx Context, primary, secondary *task.Task) []*task.Task {
			_, p1, _ := shape(primary.Term())
			s2, _, _ := shape(secondary.Term())
			concl, err := ctx.Interner.Compound(op, []*term.Term{s2, p1})
			if err != nil {
				return nil
			}
			t1, _ := truthOf(primary)
			t2, _ := truthOf(secondary)
			tr, ok := truth.Deduction(t1, t2)
			if !ok {
				return nil
			}
			return []*task.Task{deriveBinary(ctx, concl, tr, primary, secondary, priority)}
		},
	}

	induction := Rule{
		ID: idPrefix + ".induction", Arity: Binary, Priority: priority,
		// M-->P (primary), M-->S (secondary), shared subject M |- S-->P
		Applicable: func(primary, secondary *task.Task) bool {
			_, hasT1 := truthOf(primary)
			_, hasT2 := truthOf(secondary)
			if !hasT1 || !hasT2 {
				return false
			}
			m1, p1, ok1 := shape(primary.Term())
			m2, s2, ok2 := shape(secondary.Term())
			return ok1 && ok2 && term.Equal(m1, m2) && !term.Equal(s2, p1)
		},
		Apply: func(ctx Context, primary, secondary *task.Task) []*task.Task {
			_, p1, _ := shape(primary.Term())
			_, s2, _ := shape(secondary.Term())
			concl, err := ctx.Interner.Compound(op, []*term.Term{s2, p1})
			if err != nil {
				return nil
			}
			t1, _ := truthOf(primary)
			t2, _ := truthOf(secondary)
			tr, ok := truth.Induction(t1, t2)
			if !ok {
				return nil
			}
			return []*task.Task{deriveBinary(ctx, concl, tr, primary, secondary, priority)}
		},
	}

	abduction := Rule{
		ID: idPrefix + ".abduction", Arity: Binary, Priority: priority,
		// P-->M (primary), S-->M (secondary), shared predicate M |- S-->P
		Applicable: func(primary, secondary *task.Task) bool {
			_, hasT1 := truthOf(primary)
			_, hasT2 := truthOf(secondary)
			if !hasT1 || !hasT2 {
				return false
			}
			p1, m1, ok1 := shape(primary.Term())
			s2, m2, ok2 := shape(secondary.Term())
			return ok1 && ok2 && term.Equal(m1, m2) && !term.Equal(s2, p1)
		},
		Apply: func(ctx Context, primary, secondary *task.Task) []*task.Task {
			p1, _, _ := shape(primary.Term())
			s2, _, _ := shape(secondary.Term())
			concl, err := ctx.Interner.Compound(op, []*term.Term{s2, p1})
			if err != nil {
				return nil
			}
			t1, _ := truthOf(primary)
			t2, _ := truthOf(secondary)
			tr, ok := truth.Abduction(t1, t2)
			if !ok {
				return nil
			}
			return []*task.Task{deriveBinary(ctx, concl, tr, primary, secondary, priority)}
		},
	}

	exemplification := Rule{
		ID: idPrefix + ".exemplification", Arity: Binary, Priority: priority,
		// S-->M (primary), M-->P (secondary) |- P-->S, a single positive
		// example supporting the reverse of deduction's chain.
		Applicable: func(primary, secondary *task.Task) bool {
			_, hasT1 := truthOf(primary)
			_, hasT2 := truthOf(secondary)
			if !hasT1 || !hasT2 {
				return false
			}
			s1, m1, ok1 := shape(primary.Term())
			m2, p2, ok2 := shape(secondary.Term())
			return ok1 && ok2 && term.Equal(m1, m2) && !term.Equal(p2, s1)
		},
		Apply: func(ctx Context, primary, secondary *task.Task) []*task.Task {
			s1, _, _ := shape(primary.Term())
			_, p2, _ := shape(secondary.Term())
			concl, err := ctx.Interner.Compound(op, []*term.Term{p2, s1})
			if err != nil {
				return nil
			}
			t1, _ := truthOf(primary)
			t2, _ := truthOf(secondary)
			tr, ok := truth.Exemplification(t1, t2)
			if !ok {
				return nil
			}
			return []*task.Task{deriveBinary(ctx, concl, tr, primary, secondary, priority)}
		},
	}

	return []Rule{deduction, induction, abduction, exemplification}
}

// InheritanceSyllogism and ImplicationSyllogism instantiate the shared
// pattern for the two connectives spec §4.5 names explicitly.
func InheritanceSyllogism(priority float64) []Rule {
	return syllogism(term.OpInheritance, "syllogism.inheritance", priority)
}

func ImplicationSyllogism(priority float64) []Rule {
	return syllogism(term.OpImplication, "syllogism.implication", priority)
}

// TemporalSyllogism applies the same four patterns to the predictive
// temporal connective (A =/> B), giving transitive chains like
// (A =/> B),(B =/> C) |- (A =/> C) the identical deduction truth
// function as plain implication.
func TemporalSyllogism(priority float64) []Rule {
	return syllogism(term.OpTemporalPredictive, "syllogism.temporal", priority)
}

// ModusPonens: (S==>P), S |- P, where the minor premise is a belief about
// S itself (S-->S-subject trivially, modeled here as a belief whose term
// equals the antecedent).
func ModusPonens(priority float64) Rule {
	return Rule{
		ID: "modus.ponens", Arity: Binary, Priority: priority,
		Applicable: func(primary, secondary *task.Task) bool {
			_, h1 := truthOf(primary)
			_, h2 := truthOf(secondary)
			if !h1 || !h2 {
				return false
			}
			impl, belief := primary, secondary
			if impl.Term().Operator() != term.OpImplication {
				impl, belief = secondary, primary
			}
			if !impl.Term().IsCompound() || impl.Term().Operator() != term.OpImplication {
				return false
			}
			ante := impl.Term().Components()[0]
			return term.Equal(ante, belief.Term())
		},
		Apply: func(ctx Context, primary, secondary *task.Task) []*task.Task {
			impl, belief := primary, secondary
			if impl.Term().Operator() != term.OpImplication {
				impl, belief = secondary, primary
			}
			concl := impl.Term().Components()[1]
			implTruth, _ := truthOf(impl)
			beliefTruth, _ := truthOf(belief)
			tr, ok := truth.Deduction(implTruth, beliefTruth)
			if !ok {
				return nil
			}
			return []*task.Task{deriveBinary(ctx, concl, tr, primary, secondary, priority)}
		},
	}
}

// ModusTollens: (S==>P), --P |- --S. Modeled as: secondary is a belief
// whose term is the negation of P.
func ModusTollens(priority float64) Rule {
	return Rule{
		ID: "modus.tollens", Arity: Binary, Priority: priority,
		Applicable: func(primary, secondary *task.Task) bool {
			_, h1 := truthOf(primary)
			_, h2 := truthOf(secondary)
			if !h1 || !h2 {
				return false
			}
			impl, neg := primary, secondary
			if impl.Term().Operator() != term.OpImplication {
				impl, neg = secondary, primary
			}
			if !impl.Term().IsCompound() || impl.Term().Operator() != term.OpImplication {
				return false
			}
			if !neg.Term().IsCompound() || neg.Term().Operator() != term.OpNegation {
				return false
			}
			cons := impl.Term().Components()[1]
			return term.Equal(neg.Term().Components()[0], cons)
		},
		Apply: func(ctx Context, primary, secondary *task.Task) []*task.Task {
			impl, neg := primary, secondary
			if impl.Term().Operator() != term.OpImplication {
				impl, neg = secondary, primary
			}
			ante := impl.Term().Components()[0]
			concl, err := ctx.Interner.Compound(term.OpNegation, []*term.Term{ante})
			if err != nil {
				return nil
			}
			implTruth, _ := truthOf(impl)
			negTruth, _ := truthOf(neg)
			tr, ok := truth.Abduction(implTruth, negTruth)
			if !ok {
				return nil
			}
			return []*task.Task{deriveBinary(ctx, concl, tr, primary, secondary, priority)}
		},
	}
}
