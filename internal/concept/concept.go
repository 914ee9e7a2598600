// Package concept implements the per-term task bucket: a mutable
// container indexing every belief, goal, and question whose term equals
// the concept's own term.
//
// Bounded tables, deep-copy-on-read for exported slices, and RWMutex
// protection follow the idiom of storage.MemoryStorage's thought tables;
// the sorted-by-confidence belief table generalizes its sort.Slice
// ordered-pagination pattern from timestamp order to confidence order.
package concept

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/automenta/senars11-sub007/internal/budget"
	"github.com/automenta/senars11-sub007/internal/stamp"
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
)

// Bounds on table size; on overflow the belief and goal tables drop their
// lowest-confidence entry and the question table drops its oldest.
const (
	MaxBeliefs   = 8
	MaxGoals     = 8
	MaxQuestions = 5
)

// RevisionRulePriority is the static priority used when deriving the
// budget of a revised belief (spec §4.4's "unary rules use a single
// factor" generalized to revision's implicit combination).
const RevisionRulePriority = 0.9

// Concept buckets every task for one canonical term.
type Concept struct {
	mu sync.RWMutex

	term   *term.Term
	budget budget.Budget

	beliefs   []*task.Task // sorted by truth confidence, descending
	goals     []*task.Task
	questions []*task.Task

	// Links is a set of canonical ids of related concepts, stored by name
	// rather than pointer so a concept never owns another concept and no
	// reference cycle can form. Memory keeps its subterm cross-links in its
	// own link graph and does not fill this set.
	Links map[string]bool
}

// New creates an empty concept for term t.
func New(t *term.Term) *Concept {
	return &Concept{
		term:   t,
		budget: budget.Default(),
		Links:  make(map[string]bool),
	}
}

func (c *Concept) Term() *term.Term { return c.term }

func (c *Concept) Budget() budget.Budget {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.budget
}

func (c *Concept) SetBudget(b budget.Budget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.budget = b
}

// Beliefs returns a copy of the belief table, highest confidence first.
func (c *Concept) Beliefs() []*task.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*task.Task, len(c.beliefs))
	copy(out, c.beliefs)
	return out
}

func (c *Concept) Goals() []*task.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*task.Task, len(c.goals))
	copy(out, c.goals)
	return out
}

func (c *Concept) Questions() []*task.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*task.Task, len(c.questions))
	copy(out, c.questions)
	return out
}

// Insert adds t to the appropriate table by punctuation. For beliefs and
// goals, an entry with an equivalent stamp (the same evidence set) is
// deduplicated in place, keeping whichever copy has higher confidence;
// otherwise it attempts revision against every existing entry with a
// disjoint stamp, and the first such match is replaced by the revised
// task instead of appending a duplicate. Returns the task that ended up
// in the table (which may be a freshly revised task, not t itself) and
// whether a revision occurred.
func (c *Concept) Insert(t *task.Task) (*task.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch t.Punctuation() {
	case task.Question:
		c.questions = append(c.questions, t)
		if len(c.questions) > MaxQuestions {
			c.questions = c.questions[len(c.questions)-MaxQuestions:]
		}
		return t, false
	case task.Goal:
		return c.insertWeighted(&c.goals, MaxGoals, t)
	default:
		return c.insertWeighted(&c.beliefs, MaxBeliefs, t)
	}
}

func (c *Concept) insertWeighted(table *[]*task.Task, max int, t *task.Task) (*task.Task, bool) {
	tr, hasTruth := t.Truth()
	if hasTruth {
		for i, existing := range *table {
			etr, ok := existing.Truth()
			if !ok {
				continue
			}
			if t.Stamp().Equal(existing.Stamp()) {
				// Same conclusion re-derived over the same evidence: keep
				// whichever copy carries higher confidence, never both.
				if etr.Conf >= tr.Conf {
					return existing, false
				}
				(*table)[i] = t
				c.resort(table)
				return t, false
			}
			if t.Stamp().Overlaps(existing.Stamp()) {
				continue
			}
			revisedTruth, ok := truth.Revision(tr, etr)
			if !ok {
				continue
			}
			mergedStamp := stamp.Merge(t.Stamp(), existing.Stamp())
			mergedBudget := budget.Merge([]budget.Budget{t.Budget(), existing.Budget()}, RevisionRulePriority, 1.0)
			revised := task.New(existing.ID()).
				Term(t.Term()).
				Punctuation(t.Punctuation()).
				Truth(revisedTruth).
				Budget(mergedBudget).
				Stamp(mergedStamp).
				Build()
			(*table)[i] = revised
			c.resort(table)
			return revised, true
		}
	}

	*table = append(*table, t)
	c.resort(table)
	if len(*table) > max {
		// Evict the lowest-confidence (last, since sorted descending).
		*table = (*table)[:max]
	}
	return t, false
}

func (c *Concept) resort(table *[]*task.Task) {
	sort.SliceStable(*table, func(i, j int) bool {
		ti, hi := (*table)[i].Truth()
		tj, hj := (*table)[j].Truth()
		if !hi || !hj {
			return false
		}
		return ti.Conf > tj.Conf
	})
}

// SampleBelief picks a belief weighted by its task budget priority. Seeded
// rng makes this deterministic for tests, per spec §9's sampling
// determinism note.
func (c *Concept) SampleBelief(rng *rand.Rand) *task.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return weightedSample(rng, c.beliefs)
}

func (c *Concept) SampleGoal(rng *rand.Rand) *task.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return weightedSample(rng, c.goals)
}

func weightedSample(rng *rand.Rand, tasks []*task.Task) *task.Task {
	if len(tasks) == 0 {
		return nil
	}
	total := 0.0
	for _, t := range tasks {
		total += t.Budget().Priority
	}
	if total <= 0 {
		return tasks[rng.Intn(len(tasks))]
	}
	r := rng.Float64() * total
	for _, t := range tasks {
		r -= t.Budget().Priority
		if r <= 0 {
			return t
		}
	}
	return tasks[len(tasks)-1]
}
