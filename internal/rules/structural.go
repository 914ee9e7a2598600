package rules

import (
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
)

// structuralReductionWeight is the confidence-reduction factor applied by
// contraposition, which restates a belief in a weaker structural form
// (conversion uses truth.Conversion instead) per spec §9's "Dynamic dispatch on rules" note
// and the truth-function catalog's structural-reduction entry.
const structuralReductionWeight = 0.9

// Conversion: (P-->S) |- (S-->P), unary, with reduced confidence.
func Conversion(priority float64) Rule {
	return Rule{
		ID: "structural.conversion", Arity: Unary, Priority: priority,
		Applicable: func(primary, _ *task.Task) bool {
			_, ok := truthOf(primary)
			return ok && primary.Term().IsCompound() && primary.Term().Operator() == term.OpInheritance
		},
		Apply: func(ctx Context, primary, _ *task.Task) []*task.Task {
			comps := primary.Term().Components()
			concl, err := ctx.Interner.Compound(term.OpInheritance, []*term.Term{comps[1], comps[0]})
			if err != nil {
				return nil
			}
			tr, ok := truth.Conversion(mustTruth(primary))
			if !ok {
				return nil
			}
			return []*task.Task{deriveUnary(ctx, concl, tr, primary, priority)}
		},
	}
}

// Contraposition: (S==>P) |- (--P==>--S), unary, with structural
// reduction.
func Contraposition(priority float64) Rule {
	return Rule{
		ID: "structural.contraposition", Arity: Unary, Priority: priority,
		Applicable: func(primary, _ *task.Task) bool {
			_, ok := truthOf(primary)
			return ok && primary.Term().IsCompound() && primary.Term().Operator() == term.OpImplication
		},
		Apply: func(ctx Context, primary, _ *task.Task) []*task.Task {
			comps := primary.Term().Components()
			negP, err := ctx.Interner.Compound(term.OpNegation, []*term.Term{comps[1]})
			if err != nil {
				return nil
			}
			negS, err := ctx.Interner.Compound(term.OpNegation, []*term.Term{comps[0]})
			if err != nil {
				return nil
			}
			concl, err := ctx.Interner.Compound(term.OpImplication, []*term.Term{negP, negS})
			if err != nil {
				return nil
			}
			tr, ok := truth.StructuralReduction(mustTruth(primary), structuralReductionWeight)
			if !ok {
				return nil
			}
			return []*task.Task{deriveUnary(ctx, concl, tr, primary, priority)}
		},
	}
}

// sharedSubject reports whether two inheritance beliefs share a subject,
// returning the subject and each predicate.
func sharedSubject(primary, secondary *task.Task) (subj, pred1, pred2 *term.Term, ok bool) {
	s1, p1, ok1 := componentsOf(primary.Term())
	s2, p2, ok2 := componentsOf(secondary.Term())
	if !ok1 || !ok2 || !term.Equal(s1, s2) || term.Equal(p1, p2) {
		return nil, nil, nil, false
	}
	if primary.Term().Operator() != term.OpInheritance || secondary.Term().Operator() != term.OpInheritance {
		return nil, nil, nil, false
	}
	return s1, p1, p2, true
}

func compositionRule(id string, op term.Operator, tf func(t1, t2 truth.Truth) (truth.Truth, bool), priority float64) Rule {
	return Rule{
		ID: id, Arity: Binary, Priority: priority,
		Applicable: func(primary, secondary *task.Task) bool {
			_, hasT1 := truthOf(primary)
			_, hasT2 := truthOf(secondary)
			if !hasT1 || !hasT2 {
				return false
			}
			_, _, _, ok := sharedSubject(primary, secondary)
			return ok
		},
		Apply: func(ctx Context, primary, secondary *task.Task) []*task.Task {
			subj, pred1, pred2, ok := sharedSubject(primary, secondary)
			if !ok {
				return nil
			}
			combined, err := ctx.Interner.Compound(op, []*term.Term{pred1, pred2})
			if err != nil {
				return nil
			}
			concl, err := ctx.Interner.Compound(term.OpInheritance, []*term.Term{subj, combined})
			if err != nil {
				return nil
			}
			tr, ok := tf(mustTruth(primary), mustTruth(secondary))
			if !ok {
				return nil
			}
			return []*task.Task{deriveBinary(ctx, concl, tr, primary, secondary, priority)}
		},
	}
}

// IntersectionComposition, UnionComposition, DifferenceComposition
// implement spec §4.5's NAL-3 composition: (M-->T),(M-->P) |-
// (M-->(T op P)) for the three set operators.
func IntersectionComposition(priority float64) Rule {
	return compositionRule("composition.intersection", term.OpConjunction, truth.Intersection, priority)
}

func UnionComposition(priority float64) Rule {
	return compositionRule("composition.union", term.OpDisjunction, truth.Union, priority)
}

func DifferenceComposition(priority float64) Rule {
	return compositionRule("composition.difference", term.OpDifference, truth.Difference, priority)
}

// decompositionRule is the inverse of compositionRule: given a belief
// (M-->(T op P)) and a belief about one side (M-->T), derive a belief
// about the other side (M-->P).
func decompositionRule(id string, op term.Operator, tf func(t1, t2 truth.Truth) (truth.Truth, bool), priority float64) Rule {
	matchSide := func(compound, sideBelief *task.Task) (subj, other *term.Term, ok bool) {
		subj, combined, ok := componentsOf(compound.Term())
		if !ok || !combined.IsCompound() || combined.Operator() != op || len(combined.Components()) != 2 {
			return nil, nil, false
		}
		s2, side, ok2 := componentsOf(sideBelief.Term())
		if !ok2 || !term.Equal(subj, s2) {
			return nil, nil, false
		}
		left, right := combined.Components()[0], combined.Components()[1]
		switch {
		case term.Equal(side, left):
			return subj, right, true
		case term.Equal(side, right):
			return subj, left, true
		default:
			return nil, nil, false
		}
	}

	return Rule{
		ID: id, Arity: Binary, Priority: priority,
		Applicable: func(primary, secondary *task.Task) bool {
			_, hasT1 := truthOf(primary)
			_, hasT2 := truthOf(secondary)
			if !hasT1 || !hasT2 {
				return false
			}
			if _, _, ok := matchSide(primary, secondary); ok {
				return true
			}
			_, _, ok := matchSide(secondary, primary)
			return ok
		},
		Apply: func(ctx Context, primary, secondary *task.Task) []*task.Task {
			compound, side := primary, secondary
			subj, other, ok := matchSide(compound, side)
			if !ok {
				compound, side = secondary, primary
				subj, other, ok = matchSide(compound, side)
				if !ok {
					return nil
				}
			}
			concl, err := ctx.Interner.Compound(term.OpInheritance, []*term.Term{subj, other})
			if err != nil {
				return nil
			}
			tr, ok := tf(mustTruth(compound), mustTruth(side))
			if !ok {
				return nil
			}
			return []*task.Task{deriveBinary(ctx, concl, tr, primary, secondary, priority)}
		},
	}
}

func IntersectionDecomposition(priority float64) Rule {
	return decompositionRule("decomposition.intersection", term.OpConjunction, truth.Abduction, priority)
}

func UnionDecomposition(priority float64) Rule {
	return decompositionRule("decomposition.union", term.OpDisjunction, truth.Abduction, priority)
}

func mustTruth(t *task.Task) truth.Truth {
	tr, _ := t.Truth()
	return tr
}
