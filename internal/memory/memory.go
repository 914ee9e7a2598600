// Package memory implements the two-tier concept store: a small
// high-priority focus bag and a larger long-term bag, both indexed by
// canonical term id, with concept cross-links tracked as a directed graph
// of term ids rather than pointers (spec §9 "naming rather than
// pointing").
//
// The bag structure generalizes pkg/cache.LRU's map+doubly-linked-list
// cache from recency order to priority order (see bag.go); cross-links
// use dominikbraun/graph the same way internal/modes.GraphController
// tracks Graph-of-Thoughts vertices and edges, applied here to concept
// term ids instead of thought vertices.
package memory

import (
	"math/rand"
	"sync"
	"time"

	"github.com/dominikbraun/graph"

	"github.com/automenta/senars11-sub007/internal/concept"
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
)

// Config bounds the two tiers and seeds the sampling RNG.
type Config struct {
	FocusCapacity     int
	LongTermCapacity  int
	PromotionPriority float64 // priority threshold above which a long-term concept is promoted to focus
	Seed              int64
}

// DefaultConfig mirrors the scale of a small interactive session.
func DefaultConfig() Config {
	return Config{
		FocusCapacity:     64,
		LongTermCapacity:  4096,
		PromotionPriority: 0.6,
		Seed:              time.Now().UnixNano(),
	}
}

func idHash(id string) string { return id }

// Memory is the single-writer concept index the reasoner cycles against.
type Memory struct {
	mu sync.RWMutex

	cfg   Config
	focus *Bag[string, *concept.Concept]
	long  *Bag[string, *concept.Concept]
	links graph.Graph[string, string]
	rng   *rand.Rand

	insertions int64
	promotions int64
	demotions  int64
	evictions  int64
}

// New creates an empty memory store.
func New(cfg Config) *Memory {
	return &Memory{
		cfg:   cfg,
		focus: NewBag[string, *concept.Concept](cfg.FocusCapacity),
		long:  NewBag[string, *concept.Concept](cfg.LongTermCapacity),
		links: graph.New(idHash, graph.Directed()),
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}
}

// GetConcept looks up a concept by term, checking focus first (it is the
// smaller, hotter tier).
func (m *Memory) GetConcept(t *term.Term) (*concept.Concept, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.focus.Get(t.CanonicalID()); ok {
		return c, true
	}
	return m.long.Get(t.CanonicalID())
}

// findOrCreate returns the concept for t, creating and placing it in the
// long-term tier if absent, and registering it as a graph vertex.
func (m *Memory) findOrCreate(t *term.Term) *concept.Concept {
	id := t.CanonicalID()
	if c, ok := m.focus.Get(id); ok {
		return c
	}
	if c, ok := m.long.Get(id); ok {
		return c
	}
	c := concept.New(t)
	_ = m.links.AddVertex(id)
	m.long.Put(id, c, c.Budget().Priority)
	return c
}

// linkSubterms records a directed edge from t's concept to each direct
// subterm's concept, used by LinkedConcepts when a secondary premise is
// sampled from related concepts.
func (m *Memory) linkSubterms(t *term.Term) {
	if !t.IsCompound() {
		return
	}
	from := t.CanonicalID()
	for _, sub := range t.Components() {
		m.findOrCreate(sub)
		to := sub.CanonicalID()
		_ = m.links.AddEdge(from, to)
	}
}

// Insert finds-or-creates the concept for the task's term, inserts the
// task (which internally performs revision-then-insert), boosts and
// promotes/demotes the owning concept's budget, and returns the task
// that ended up stored (possibly a revised merge, not tk itself).
func (m *Memory) Insert(tk *task.Task) *task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := tk.Term()
	c := m.findOrCreate(t)
	m.linkSubterms(t)

	stored, _ := c.Insert(tk)

	boosted := c.Budget().Boost(tk.Budget().Priority)
	c.SetBudget(boosted)
	m.insertions++
	m.rebalance(t.CanonicalID(), c)

	return stored
}

// rebalance moves a concept between tiers based on its current priority,
// and re-keys it in whichever bag now holds it so sampling weight stays
// current.
func (m *Memory) rebalance(id string, c *concept.Concept) {
	p := c.Budget().Priority
	_, inFocus := m.focus.Get(id)
	_, inLong := m.long.Get(id)

	switch {
	case p >= m.cfg.PromotionPriority && !inFocus:
		if inLong {
			m.long.Delete(id)
		}
		m.focus.Put(id, c, p)
		m.promotions++
	case p < m.cfg.PromotionPriority && inFocus:
		m.focus.Delete(id)
		m.long.Put(id, c, p)
		m.demotions++
	case inFocus:
		m.focus.Put(id, c, p)
	default:
		m.long.Put(id, c, p)
	}
}

// DecayAll applies budget decay to every concept in both tiers, called
// once per reasoner cycle so concepts lose priority over time unless an
// insertion boosts them again (spec §8 invariant #8).
func (m *Memory) DecayAll(cycles int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.focus.All() {
		decayed := c.Budget().Decay(cycles)
		c.SetBudget(decayed)
		m.rebalance(c.Term().CanonicalID(), c)
	}
	for _, c := range m.long.All() {
		decayed := c.Budget().Decay(cycles)
		c.SetBudget(decayed)
		m.rebalance(c.Term().CanonicalID(), c)
	}
}

// SampleConcept draws a concept weighted by priority, favoring the focus
// bag per spec §4.7 ("focus bag sampled with higher probability than
// long-term"): it is tried first and only falls through to long-term
// when empty or by the configured long-term draw chance.
func (m *Memory) SampleConcept(longTermChance float64) (*concept.Concept, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tryLong := m.focus.Len() == 0 || m.rng.Float64() < longTermChance
	if tryLong {
		if _, c, ok := m.long.Sample(m.rng); ok {
			return c, true
		}
	}
	if _, c, ok := m.focus.Sample(m.rng); ok {
		return c, true
	}
	if _, c, ok := m.long.Sample(m.rng); ok {
		return c, true
	}
	return nil, false
}

// LinkedConcepts returns the concepts of c's direct subterms and of every
// other term that shares one of those subterms, resolved through the
// memory index rather than stored as pointers.
func (m *Memory) LinkedConcepts(c *concept.Concept) []*concept.Concept {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id := c.Term().CanonicalID()
	adj, err := m.links.AdjacencyMap()
	pred, err2 := m.links.PredecessorMap()
	if err != nil || err2 != nil {
		return nil
	}
	edges, ok := adj[id]
	if !ok {
		return nil
	}
	seen := map[string]bool{id: true}
	var ids []string
	for sub := range edges {
		cands := []string{sub}
		for sibling := range pred[sub] {
			cands = append(cands, sibling)
		}
		for _, cand := range cands {
			if !seen[cand] {
				seen[cand] = true
				ids = append(ids, cand)
			}
		}
	}
	out := make([]*concept.Concept, 0, len(ids))
	for _, target := range ids {
		if lc, ok := m.focus.Get(target); ok {
			out = append(out, lc)
			continue
		}
		if lc, ok := m.long.Get(target); ok {
			out = append(out, lc)
		}
	}
	return out
}

// Stats reports memory-index counters for observability.
type Stats struct {
	FocusSize    int
	LongTermSize int
	Insertions   int64
	Promotions   int64
	Demotions    int64
	Evictions    int64
}

func (m *Memory) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		FocusSize:    m.focus.Len(),
		LongTermSize: m.long.Len(),
		Insertions:   m.insertions,
		Promotions:   m.promotions,
		Demotions:    m.demotions,
		Evictions:    m.focus.Evictions() + m.long.Evictions(),
	}
}
