// Package task defines the immutable unit produced and consumed by the
// kernel: a term paired with punctuation, optional truth, a budget, and
// a stamp.
//
// The builder follows the fluent-construction idiom used for Thought
// construction in the reference codebase, generalized from a flat struct
// of thought fields to the term/truth/budget/stamp composition this
// kernel's data model requires.
package task

import (
	"github.com/google/uuid"

	"github.com/automenta/senars11-sub007/internal/budget"
	"github.com/automenta/senars11-sub007/internal/stamp"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
)

// Punctuation identifies whether a task is a belief, question, or goal.
type Punctuation byte

const (
	Belief   Punctuation = '.'
	Question Punctuation = '?'
	Goal     Punctuation = '!'
)

// Task is immutable once built.
type Task struct {
	id          string
	term        *term.Term
	punctuation Punctuation
	truth       truth.Truth
	hasTruth    bool
	budget      budget.Budget
	stamp       stamp.Stamp
}

func (t *Task) ID() string               { return t.id }
func (t *Task) Term() *term.Term         { return t.term }
func (t *Task) Punctuation() Punctuation { return t.punctuation }
func (t *Task) Budget() budget.Budget    { return t.budget }
func (t *Task) Stamp() stamp.Stamp       { return t.stamp }
func (t *Task) Depth() int               { return t.stamp.Depth }

// Truth returns the task's truth value and whether it has one (questions
// never carry truth; beliefs and goals always do).
func (t *Task) Truth() (truth.Truth, bool) { return t.truth, t.hasTruth }

// IsBelief, IsQuestion, IsGoal classify by punctuation.
func (t *Task) IsBelief() bool   { return t.punctuation == Belief }
func (t *Task) IsQuestion() bool { return t.punctuation == Question }
func (t *Task) IsGoal() bool     { return t.punctuation == Goal }

// WithBudget returns a copy of the task with a new budget; tasks are
// otherwise immutable, but the concept and memory layers need to apply
// decay/boost without losing the original term/truth/stamp identity.
func (t *Task) WithBudget(b budget.Budget) *Task {
	cp := *t
	cp.budget = b
	return &cp
}

// Builder provides fluent construction matching the reference codebase's
// ThoughtBuilder.
type Builder struct {
	t *Task
}

// New starts a builder with the given id and a default budget; an empty
// id is replaced by a generated one at Build.
func New(id string) *Builder {
	return &Builder{t: &Task{id: id, budget: budget.Default()}}
}

func (b *Builder) Term(tm *term.Term) *Builder {
	b.t.term = tm
	return b
}

func (b *Builder) Punctuation(p Punctuation) *Builder {
	b.t.punctuation = p
	return b
}

func (b *Builder) Truth(tr truth.Truth) *Builder {
	b.t.truth = tr
	b.t.hasTruth = true
	return b
}

func (b *Builder) Budget(bd budget.Budget) *Builder {
	b.t.budget = bd
	return b
}

func (b *Builder) Stamp(s stamp.Stamp) *Builder {
	b.t.stamp = s
	return b
}

// Build returns the constructed, immutable task. If no stamp was set, a
// fresh one is minted so every task carries evidence; if no id was set,
// a uuid is generated.
func (b *Builder) Build() *Task {
	if b.t.stamp.Evidence == nil {
		b.t.stamp = stamp.New()
	}
	if b.t.id == "" {
		b.t.id = uuid.New().String()
	}
	return b.t
}
