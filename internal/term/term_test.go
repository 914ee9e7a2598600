package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomCanonicality(t *testing.T) {
	in := NewInterner()
	a := in.Atom("man")
	b := in.Atom("man")
	assert.True(t, Equal(a, b), "structurally equal atoms must share representation")
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestCompoundCanonicality(t *testing.T) {
	in := NewInterner()
	man := in.Atom("man")
	mortal := in.Atom("mortal")

	x1, err := in.Compound(OpInheritance, []*Term{man, mortal})
	require.NoError(t, err)
	x2, err := in.Compound(OpInheritance, []*Term{man, mortal})
	require.NoError(t, err)

	assert.True(t, Equal(x1, x2))
}

func TestCommutativeNormalization(t *testing.T) {
	in := NewInterner()
	x := in.Atom("x")
	y := in.Atom("y")

	a, err := in.Compound(OpConjunction, []*Term{x, y})
	require.NoError(t, err)
	b, err := in.Compound(OpConjunction, []*Term{y, x})
	require.NoError(t, err)

	assert.True(t, Equal(a, b), "commutative operator must normalize operand order")
	assert.Equal(t, a.Components(), b.Components())
}

func TestNonCommutativePreservesOrder(t *testing.T) {
	in := NewInterner()
	x := in.Atom("x")
	y := in.Atom("y")

	a, err := in.Compound(OpInheritance, []*Term{x, y})
	require.NoError(t, err)
	b, err := in.Compound(OpInheritance, []*Term{y, x})
	require.NoError(t, err)

	assert.False(t, Equal(a, b), "non-commutative operator must not normalize operand order")
}

func TestBadTermEmptyCompound(t *testing.T) {
	in := NewInterner()
	_, err := in.Compound(OpConjunction, nil)
	require.Error(t, err)
	var bt *BadTerm
	assert.ErrorAs(t, err, &bt)
}

func TestBadTermArityMismatch(t *testing.T) {
	in := NewInterner()
	x := in.Atom("x")
	_, err := in.Compound(OpInheritance, []*Term{x})
	require.Error(t, err)
}

func TestFreeVariables(t *testing.T) {
	in := NewInterner()
	x := in.Variable(VarIndependent, "x")
	man := in.Atom("man")
	inh, err := in.Compound(OpInheritance, []*Term{x, man})
	require.NoError(t, err)

	vars := inh.FreeVariables()
	require.Len(t, vars, 1)
	assert.True(t, Equal(vars[0], x))
}

func TestSubterms(t *testing.T) {
	in := NewInterner()
	a := in.Atom("a")
	b := in.Atom("b")
	inh := in.MustCompound(OpInheritance, []*Term{a, b})

	subs := inh.Subterms()
	assert.Len(t, subs, 3)
}
