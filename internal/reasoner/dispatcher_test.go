package reasoner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automenta/senars11-sub007/internal/events"
	"github.com/automenta/senars11-sub007/internal/rules"
	"github.com/automenta/senars11-sub007/internal/stamp"
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
)

func belief(in *term.Interner, tm *term.Term, f, c float64) *task.Task {
	tr, _ := truth.New(f, c)
	return task.New("").Term(tm).Punctuation(task.Belief).Truth(tr).Stamp(stamp.New()).Build()
}

func TestDispatchClassicalSyllogism(t *testing.T) {
	in := term.NewInterner()
	man, mortal, socrates := in.Atom("man"), in.Atom("mortal"), in.Atom("Socrates")
	manMortal := belief(in, in.MustCompound(term.OpInheritance, []*term.Term{man, mortal}), 1.0, 0.9)
	socratesMan := belief(in, in.MustCompound(term.OpInheritance, []*term.Term{socrates, man}), 1.0, 0.8)

	d := NewDispatcher(rules.Standard(), events.NewBus(16), in, DefaultConfig())
	out := d.Dispatch(manMortal, socratesMan)

	want := in.MustCompound(term.OpInheritance, []*term.Term{socrates, mortal})
	found := false
	for _, c := range out {
		if term.Equal(c.Term(), want) {
			found = true
		}
	}
	assert.True(t, found, "expected Socrates-->mortal among derived conclusions")
}

func TestDispatchRejectsSelfPremise(t *testing.T) {
	in := term.NewInterner()
	b := belief(in, in.Atom("bird"), 0.9, 0.9)
	d := NewDispatcher(rules.Standard(), events.NewBus(16), in, DefaultConfig())
	out := d.Dispatch(b, b)
	assert.Empty(t, out)
}

func TestDispatchRejectsStampOverlap(t *testing.T) {
	in := term.NewInterner()
	s := stamp.New()
	tm := in.MustCompound(term.OpInheritance, []*term.Term{in.Atom("a"), in.Atom("b")})
	tm2 := in.MustCompound(term.OpInheritance, []*term.Term{in.Atom("b"), in.Atom("c")})
	tr1, _ := truth.New(0.9, 0.9)
	tr2, _ := truth.New(0.9, 0.9)
	t1 := task.New("1").Term(tm).Punctuation(task.Belief).Truth(tr1).Stamp(s).Build()
	t2 := task.New("2").Term(tm2).Punctuation(task.Belief).Truth(tr2).Stamp(s).Build()

	bus := events.NewBus(16)
	ch, unsub := bus.Subscribe()
	defer unsub()

	d := NewDispatcher(rules.Standard(), bus, in, DefaultConfig())
	out := d.Dispatch(t1, t2)
	// Only the primary's unary conversion (b-->a) survives; no binary rule
	// fires over the shared evidence.
	require.Len(t, out, 1)
	assert.True(t, term.Equal(in.MustCompound(term.OpInheritance, []*term.Term{in.Atom("b"), in.Atom("a")}), out[0].Term()))

	sawOverlap := false
	for len(ch) > 0 {
		if ev := <-ch; ev.Kind == events.StampOverlap {
			sawOverlap = true
		}
	}
	if !sawOverlap {
		t.Fatal("expected a StampOverlap event")
	}
}

func TestDispatchRejectsDepthBeyondLimit(t *testing.T) {
	in := term.NewInterner()
	tm := in.MustCompound(term.OpInheritance, []*term.Term{in.Atom("a"), in.Atom("b")})
	tm2 := in.MustCompound(term.OpInheritance, []*term.Term{in.Atom("b"), in.Atom("c")})
	tr1, _ := truth.New(0.9, 0.9)
	tr2, _ := truth.New(0.9, 0.9)
	t1 := task.New("1").Term(tm).Punctuation(task.Belief).Truth(tr1).Stamp(stamp.New().WithDepth(5)).Build()
	t2 := task.New("2").Term(tm2).Punctuation(task.Belief).Truth(tr2).Stamp(stamp.New().WithDepth(5)).Build()

	cfg := Config{MaxDerivationDepth: 3}
	d := NewDispatcher(rules.Standard(), events.NewBus(16), in, cfg)
	out := d.Dispatch(t1, t2)
	assert.Empty(t, out)
}

func TestDispatchHonorsMaxDepth(t *testing.T) {
	in := term.NewInterner()
	tm := in.MustCompound(term.OpInheritance, []*term.Term{in.Atom("a"), in.Atom("b")})
	tm2 := in.MustCompound(term.OpInheritance, []*term.Term{in.Atom("b"), in.Atom("c")})
	tr1, _ := truth.New(0.9, 0.9)
	tr2, _ := truth.New(0.9, 0.9)
	t1 := task.New("1").Term(tm).Punctuation(task.Belief).Truth(tr1).Stamp(stamp.New()).Build()
	t2 := task.New("2").Term(tm2).Punctuation(task.Belief).Truth(tr2).Stamp(stamp.New()).Build()

	d := NewDispatcher(rules.Standard(), events.NewBus(16), in, DefaultConfig())
	out := d.Dispatch(t1, t2)
	require.NotEmpty(t, out)
	for _, c := range out {
		assert.LessOrEqual(t, c.Depth(), DefaultConfig().MaxDerivationDepth)
	}
}
