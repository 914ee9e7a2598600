package rules

import (
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
	"github.com/automenta/senars11-sub007/internal/unify"
)

// variableIntroductionWeight discounts confidence because generalizing
// two ground instances into a variable schema is not a sound inference,
// only a plausible hypothesis (applied through truth.StructuralReduction,
// the same function contraposition uses, with a stronger discount than
// its 0.9).
const variableIntroductionWeight = 0.8

// VariableIntroduction: from (A op P),(B op P) with a shared predicate
// (or consequent) and distinct subjects, introduce a generalized belief
// ($x op P) standing for "something of this kind relates to P".
func VariableIntroduction(priority float64) Rule {
	return Rule{
		ID: "variable.introduction", Arity: Binary, Priority: priority,
		Applicable: func(primary, secondary *task.Task) bool {
			_, h1 := truthOf(primary)
			_, h2 := truthOf(secondary)
			if !h1 || !h2 {
				return false
			}
			if !sameOperator(primary.Term(), secondary.Term()) {
				return false
			}
			s1, p1, ok1 := componentsOf(primary.Term())
			s2, p2, ok2 := componentsOf(secondary.Term())
			if !ok1 || !ok2 {
				return false
			}
			return term.Equal(p1, p2) && !term.Equal(s1, s2) && !s1.IsVariable() && !s2.IsVariable()
		},
		Apply: func(ctx Context, primary, secondary *task.Task) []*task.Task {
			_, p1, ok := componentsOf(primary.Term())
			if !ok {
				return nil
			}
			v := ctx.Interner.Variable(term.VarIndependent, "x")
			concl, err := ctx.Interner.Compound(primary.Term().Operator(), []*term.Term{v, p1})
			if err != nil {
				return nil
			}
			tr, ok := truth.StructuralReduction(truth.Truth{
				Freq: mustTruth(primary).Freq,
				Conf: intersectConf(mustTruth(primary), mustTruth(secondary)),
			}, variableIntroductionWeight)
			if !ok {
				return nil
			}
			return []*task.Task{deriveBinary(ctx, concl, tr, primary, secondary, priority)}
		},
	}
}

func intersectConf(t1, t2 truth.Truth) float64 { return t1.Conf * t2.Conf }

// VariableElimination: given a belief whose term contains a free
// variable and a ground belief that matches it one-for-one via
// unify.Match, substitute the variable's binding to produce a grounded
// instance. Grounded on unify.Match/Apply: the variable belief is the
// pattern, the ground belief is the matched-against term.
func VariableElimination(priority float64) Rule {
	return Rule{
		ID: "variable.elimination", Arity: Binary, Priority: priority,
		Applicable: func(primary, secondary *task.Task) bool {
			_, h1 := truthOf(primary)
			_, h2 := truthOf(secondary)
			if !h1 || !h2 {
				return false
			}
			pattern, ground := selectPatternGround(primary, secondary)
			if pattern == nil {
				return false
			}
			_, ok := unify.Match(term.Wrap(pattern.Term()), term.Wrap(ground.Term()), unify.Bindings{})
			return ok
		},
		Apply: func(ctx Context, primary, secondary *task.Task) []*task.Task {
			pattern, ground := selectPatternGround(primary, secondary)
			if pattern == nil {
				return nil
			}
			bindings, ok := unify.Match(term.WrapWith(pattern.Term(), ctx.Interner), term.WrapWith(ground.Term(), ctx.Interner), unify.Bindings{})
			if !ok {
				return nil
			}
			result := unify.Apply(term.WrapWith(pattern.Term(), ctx.Interner), bindings)
			concl := result.(term.Adapter).Term
			if len(concl.FreeVariables()) > 0 {
				return nil // substitution was partial; not fully grounded
			}
			tr, ok := truth.Deduction(mustTruth(pattern), mustTruth(ground))
			if !ok {
				return nil
			}
			return []*task.Task{deriveBinary(ctx, concl, tr, primary, secondary, priority)}
		},
	}
}

// selectPatternGround decides which of two tasks carries the free
// variable (the pattern) and which is fully ground, returning nil if
// neither or both qualify.
func selectPatternGround(a, b *task.Task) (pattern, ground *task.Task) {
	aHasVar := len(a.Term().FreeVariables()) > 0
	bHasVar := len(b.Term().FreeVariables()) > 0
	switch {
	case aHasVar && !bHasVar:
		return a, b
	case bHasVar && !aHasVar:
		return b, a
	default:
		return nil, nil
	}
}
