package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
)

func beliefOf(tm *term.Term, f, c float64) *task.Task {
	tr, _ := truth.New(f, c)
	return task.New("").Term(tm).Punctuation(task.Belief).Truth(tr).Build()
}

func testCtx() Context { return Context{Interner: term.NewInterner()} }

// Classical syllogism (spec §8 scenario 1): man-->mortal %1.0;0.9% and
// Socrates-->man %1.0;0.8% must deduce Socrates-->mortal with truth
// approximately (1.0, 0.72).
func TestDeductionClassicalSyllogism(t *testing.T) {
	in := term.NewInterner()
	man, mortal, socrates := in.Atom("man"), in.Atom("mortal"), in.Atom("Socrates")
	manMortal := beliefOf(in.MustCompound(term.OpInheritance, []*term.Term{man, mortal}), 1.0, 0.9)
	socratesMan := beliefOf(in.MustCompound(term.OpInheritance, []*term.Term{socrates, man}), 1.0, 0.8)

	ctx := Context{Interner: in}
	ded := InheritanceSyllogism(PrioritySyllogistic)[0]
	require.True(t, ded.Applicable(manMortal, socratesMan))

	concl := ded.Apply(ctx, manMortal, socratesMan)
	require.Len(t, concl, 1)
	tr := mustTruth(concl[0])
	assert.InDelta(t, 1.0, tr.Freq, 1e-9)
	assert.InDelta(t, 0.72, tr.Conf, 1e-9)

	want := in.MustCompound(term.OpInheritance, []*term.Term{socrates, mortal})
	assert.True(t, term.Equal(want, concl[0].Term()))
}

// Conversion (spec §8 scenario 3): bird-->flyer %0.9;0.9% converts to
// flyer-->bird with f=1.0, c≈0.45.
func TestConversionScenario(t *testing.T) {
	in := term.NewInterner()
	bird, flyer := in.Atom("bird"), in.Atom("flyer")
	b := beliefOf(in.MustCompound(term.OpInheritance, []*term.Term{bird, flyer}), 0.9, 0.9)

	r := Conversion(PriorityStructural)
	require.True(t, r.Applicable(b, nil))

	concl := r.Apply(Context{Interner: in}, b, nil)
	require.Len(t, concl, 1)
	tr := mustTruth(concl[0])
	assert.InDelta(t, 1.0, tr.Freq, 1e-9)
	assert.InDelta(t, 0.45, tr.Conf, 1e-2)
}

func TestRevisionRuleAppliesOnlyToSameTerm(t *testing.T) {
	tm := term.Atom("bird")
	a := beliefOf(tm, 0.9, 0.8)
	b := beliefOf(tm, 0.5, 0.5)
	r := Revision(PriorityRevision)
	assert.True(t, r.Applicable(a, b))

	other := beliefOf(term.Atom("fish"), 0.5, 0.5)
	assert.False(t, r.Applicable(a, other))
}

func TestCompositionIntersection(t *testing.T) {
	in := term.NewInterner()
	m, tTerm, p := in.Atom("raven"), in.Atom("black"), in.Atom("bird")
	mt := beliefOf(in.MustCompound(term.OpInheritance, []*term.Term{m, tTerm}), 0.9, 0.8)
	mp := beliefOf(in.MustCompound(term.OpInheritance, []*term.Term{m, p}), 0.8, 0.7)

	r := IntersectionComposition(PriorityComposition)
	require.True(t, r.Applicable(mt, mp))
	concl := r.Apply(Context{Interner: in}, mt, mp)
	require.Len(t, concl, 1)
	assert.True(t, concl[0].Term().IsCompound())
}

func TestStandardCatalogRegistersAllRules(t *testing.T) {
	c := Standard()
	assert.NotEmpty(t, c.All())
	_, ok := c.Lookup("revision")
	assert.True(t, ok)
}

func TestApplicableRulesFiltersbyArity(t *testing.T) {
	c := Standard()
	tm := term.Atom("bird")
	a := beliefOf(tm, 0.9, 0.8)
	b := beliefOf(tm, 0.5, 0.5)
	unary := c.ApplicableRules(Unary, a, nil)
	for _, r := range unary {
		assert.Equal(t, Unary, r.Arity)
	}
	binary := c.ApplicableRules(Binary, a, b)
	found := false
	for _, r := range binary {
		if r.ID == "revision" {
			found = true
		}
	}
	assert.True(t, found)
}
