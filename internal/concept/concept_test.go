package concept

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automenta/senars11-sub007/internal/stamp"
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
)

func belief(tm *term.Term, f, c float64) *task.Task {
	tr, _ := truth.New(f, c)
	return task.New("").Term(tm).Punctuation(task.Belief).Truth(tr).Build()
}

func TestInsertNewBeliefAppends(t *testing.T) {
	tm := term.Atom("bird")
	c := New(tm)
	b := belief(tm, 0.9, 0.9)
	_, revised := c.Insert(b)
	assert.False(t, revised)
	assert.Len(t, c.Beliefs(), 1)
}

func TestInsertDisjointBeliefsRevise(t *testing.T) {
	tm := term.Atom("bird")
	c := New(tm)
	c.Insert(belief(tm, 0.9, 0.8))
	_, revised := c.Insert(belief(tm, 0.8, 0.7))
	assert.True(t, revised)
	assert.Len(t, c.Beliefs(), 1, "revision replaces rather than appends")
}

func TestInsertOverlappingStampsDoNotRevise(t *testing.T) {
	tm := term.Atom("bird")
	c := New(tm)
	shared := stamp.New()
	first := task.New("a").Term(tm).Punctuation(task.Belief).Truth(mustTruth(0.9, 0.8)).Stamp(shared).Build()
	// second shares one base evidence id with first (via Merge) but also
	// carries its own, so the two stamps overlap without being equal.
	second := task.New("b").Term(tm).Punctuation(task.Belief).Truth(mustTruth(0.5, 0.5)).Stamp(stamp.Merge(shared, stamp.New())).Build()

	c.Insert(first)
	_, revised := c.Insert(second)
	assert.False(t, revised, "overlapping-stamp insertion must not revise")
	assert.Len(t, c.Beliefs(), 2)
}

func TestInsertEquivalentStampDedupesKeepingHigherConfidence(t *testing.T) {
	tm := term.Atom("bird")
	c := New(tm)
	s := stamp.New()
	low := task.New("a").Term(tm).Punctuation(task.Belief).Truth(mustTruth(0.9, 0.4)).Stamp(s).Build()
	high := task.New("b").Term(tm).Punctuation(task.Belief).Truth(mustTruth(0.9, 0.9)).Stamp(s).Build()

	c.Insert(low)
	_, revised := c.Insert(high)
	assert.False(t, revised, "identical-stamp insertion is a dedup, not a revision")
	require.Len(t, c.Beliefs(), 1, "identical re-derivation must not accumulate duplicates")
	tr, _ := c.Beliefs()[0].Truth()
	assert.Equal(t, 0.9, tr.Conf, "higher-confidence copy survives")
}

func TestBeliefsSortedByConfidenceDescending(t *testing.T) {
	tm := term.Atom("bird")
	c := New(tm)
	// Overlapping (not equal) stamps keep both entries: disjoint stamps
	// would revise them into one belief.
	shared := stamp.New()
	low := task.New("").Term(tm).Punctuation(task.Belief).Truth(mustTruth(0.5, 0.3)).Stamp(shared).Build()
	high := task.New("").Term(tm).Punctuation(task.Belief).Truth(mustTruth(0.5, 0.95)).Stamp(stamp.Merge(shared, stamp.New())).Build()
	c.Insert(low)
	c.Insert(high)

	bs := c.Beliefs()
	require.Len(t, bs, 2)
	htr, _ := bs[0].Truth()
	ltr, _ := bs[1].Truth()
	assert.Greater(t, htr.Conf, ltr.Conf)
}

func TestBeliefTableBoundedByMax(t *testing.T) {
	tm := term.Atom("bird")
	c := New(tm)
	for i := 0; i < MaxBeliefs+5; i++ {
		c.Insert(task.New("").Term(tm).Punctuation(task.Belief).Truth(mustTruth(0.5, 0.1)).Stamp(stamp.New()).Build())
	}
	assert.LessOrEqual(t, len(c.Beliefs()), MaxBeliefs)
}

func TestSampleBeliefDeterministicWithSeed(t *testing.T) {
	tm := term.Atom("bird")
	c := New(tm)
	c.Insert(belief(tm, 0.9, 0.9))
	c.Insert(task.New("").Term(tm).Punctuation(task.Belief).Truth(mustTruth(0.5, 0.5)).Stamp(stamp.New()).Build())

	r1 := rand.New(rand.NewSource(42))
	r2 := rand.New(rand.NewSource(42))
	s1 := c.SampleBelief(r1)
	s2 := c.SampleBelief(r2)
	assert.Equal(t, s1, s2)
}

func TestSampleFromEmptyTableReturnsNil(t *testing.T) {
	c := New(term.Atom("x"))
	assert.Nil(t, c.SampleBelief(rand.New(rand.NewSource(1))))
}

func mustTruth(f, c float64) truth.Truth {
	tr, _ := truth.New(f, c)
	return tr
}
