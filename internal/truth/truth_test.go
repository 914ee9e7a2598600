package truth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClampsAndRejectsNaN(t *testing.T) {
	tr, ok := New(1.5, -0.2)
	require.True(t, ok)
	assert.Equal(t, 1.0, tr.Freq)
	assert.Equal(t, 0.0, tr.Conf)

	_, ok = New(math.NaN(), 0.5)
	assert.False(t, ok)
}

func TestNewConfidenceStrictlyBelowOne(t *testing.T) {
	tr, ok := New(1.0, 1.0)
	require.True(t, ok)
	assert.Less(t, tr.Conf, 1.0)
}

func TestDeductionSyllogism(t *testing.T) {
	// man-->mortal %1.0;0.9%, Socrates-->man %1.0;0.8%
	t1 := Truth{Freq: 1.0, Conf: 0.9}
	t2 := Truth{Freq: 1.0, Conf: 0.8}
	out, ok := Deduction(t2, t1) // Socrates-->man, man-->mortal
	require.True(t, ok)
	assert.InDelta(t, 1.0, out.Freq, 1e-9)
	assert.InDelta(t, 0.72, out.Conf, 1e-9)
}

func TestConversion(t *testing.T) {
	tr := Truth{Freq: 0.9, Conf: 0.9}
	out, ok := Conversion(tr)
	require.True(t, ok)
	assert.InDelta(t, 1.0, out.Freq, 1e-9)
	assert.InDelta(t, 0.9*0.9/(0.9*0.9+1.0), out.Conf, 1e-9)
}

func TestRevisionOfIdenticalTruthIsStable(t *testing.T) {
	tr := Truth{Freq: 0.8, Conf: 0.5}
	out, ok := Revision(tr, tr)
	require.True(t, ok)
	assert.InDelta(t, tr.Freq, out.Freq, 1e-9)
	assert.Greater(t, out.Conf, tr.Conf, "revising with more evidence raises confidence")
}

func TestDomainForAllFunctions(t *testing.T) {
	pairs := []struct{ t1, t2 Truth }{
		{Truth{0.3, 0.4}, Truth{0.7, 0.6}},
		{Truth{0.0, 0.0}, Truth{1.0, 0.99}},
		{Truth{1.0, 0.99}, Truth{1.0, 0.99}},
	}
	fns := []func(Truth, Truth) (Truth, bool){
		Deduction, Induction, Abduction, Exemplification, Revision,
		Intersection, Union, Difference,
	}
	for _, p := range pairs {
		for _, fn := range fns {
			out, ok := fn(p.t1, p.t2)
			require.True(t, ok)
			assert.GreaterOrEqual(t, out.Freq, 0.0)
			assert.LessOrEqual(t, out.Freq, 1.0)
			assert.GreaterOrEqual(t, out.Conf, 0.0)
			assert.Less(t, out.Conf, 1.0)
		}
	}
}
