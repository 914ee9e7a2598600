// Package tracer implements the derivation tracer (spec §4.10): it
// listens to the dispatcher's event bus and builds a premise-to-
// conclusion DAG, answering start_trace/end_trace/find_path/why_not/
// hot_rules queries and exporting the graph in several formats.
//
// Grounded on dominikbraun/graph for the DAG itself and its traversal
// (the same library internal/modes.GraphController uses for
// Graph-of-Thoughts vertices/edges, applied here to task ids instead
// of thought ids), and on internal/claudecode/format's
// level-to-renderer factory shape (formatter.go's NewFormatter
// dispatching on FormatLevel) generalized here to an export-kind
// dispatch over JSON/Mermaid/DOT/HTML renderers.
package tracer

import (
	"errors"
	"sync"

	"github.com/dominikbraun/graph"

	"github.com/automenta/senars11-sub007/internal/events"
)

// Edge is one recorded derivation step: conclusion produced from one or
// two premises by a named rule.
type Edge struct {
	RuleID      string
	PrimaryID   string
	SecondaryID string
	Conclusion  string
	Depth       int
}

func idHash(id string) string { return id }

// Tracer records every RuleFired event carrying a conclusion id into a
// directed graph of task ids, and counts firings per rule for hot_rules.
type Tracer struct {
	mu        sync.RWMutex
	g         graph.Graph[string, string]
	edges     []Edge
	ruleHits  map[string]int
	notFired  map[string]int
	maxEvents int

	unsubscribe func()
}

// Config bounds retained history.
type Config struct {
	MaxEvents int // 0 means unbounded
}

// New creates a tracer that is not yet attached to a bus; call Start to
// begin recording.
func New(cfg Config) *Tracer {
	return &Tracer{
		g:         graph.New(idHash, graph.Directed()),
		ruleHits:  make(map[string]int),
		notFired:  make(map[string]int),
		maxEvents: cfg.MaxEvents,
	}
}

// Start subscribes the tracer to bus. Call Stop (or the returned func)
// to detach.
func (t *Tracer) Start(bus *events.Bus) func() {
	ch, unsub := bus.Subscribe()
	t.mu.Lock()
	t.unsubscribe = unsub
	t.mu.Unlock()

	go func() {
		for ev := range ch {
			t.record(ev)
		}
	}()
	return unsub
}

// Stop detaches the tracer from its bus.
func (t *Tracer) Stop() {
	t.mu.Lock()
	unsub := t.unsubscribe
	t.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

func (t *Tracer) record(ev events.Event) {
	switch ev.Kind {
	case events.RuleFired:
		if ev.ConclusionID == "" {
			return
		}
		t.mu.Lock()
		defer t.mu.Unlock()
		t.ruleHits[ev.RuleID]++
		_ = t.g.AddVertex(ev.ConclusionID)
		if ev.PrimaryID != "" {
			_ = t.g.AddVertex(ev.PrimaryID)
			_ = t.g.AddEdge(ev.PrimaryID, ev.ConclusionID)
		}
		if ev.SecondaryID != "" {
			_ = t.g.AddVertex(ev.SecondaryID)
			_ = t.g.AddEdge(ev.SecondaryID, ev.ConclusionID)
		}
		t.edges = append(t.edges, Edge{
			RuleID:      ev.RuleID,
			PrimaryID:   ev.PrimaryID,
			SecondaryID: ev.SecondaryID,
			Conclusion:  ev.ConclusionID,
			Depth:       ev.Depth,
		})
		if t.maxEvents > 0 && len(t.edges) > t.maxEvents {
			t.edges = t.edges[len(t.edges)-t.maxEvents:]
		}
	case events.RuleNotFired:
		t.mu.Lock()
		t.notFired[ev.RuleID]++
		t.mu.Unlock()
	}
}

// ErrNoPath is returned by FindPath when no derivation chain connects
// the two task ids.
var ErrNoPath = errors.New("tracer: no derivation path between the given tasks")

// FindPath returns the sequence of task ids from ancestor to descendant
// via recorded derivation edges, using the graph library's shortest-path
// search.
func (t *Tracer) FindPath(from, to string) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	path, err := graph.ShortestPath(t.g, from, to)
	if err != nil {
		return nil, ErrNoPath
	}
	return path, nil
}

// WhyNot explains the absence of a derivation: it reports whether the
// target was ever recorded, and if so why nothing points to `to` from
// `from` — either no path exists, or `to` was never a conclusion at all.
func (t *Tracer) WhyNot(from, to string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if _, err := t.g.Vertex(to); err != nil {
		return "no task with id " + to + " was ever derived"
	}
	if _, err := graph.ShortestPath(t.g, from, to); err != nil {
		return "no derivation chain connects " + from + " to " + to
	}
	return "a derivation chain exists"
}

// HotRule pairs a rule id with its firing count.
type HotRule struct {
	RuleID string
	Hits   int
}

// HotRules returns rule firing counts sorted by count descending,
// truncated to top.
func (t *Tracer) HotRules(top int) []HotRule {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]HotRule, 0, len(t.ruleHits))
	for id, hits := range t.ruleHits {
		out = append(out, HotRule{RuleID: id, Hits: hits})
	}
	sortHotRules(out)
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}

func sortHotRules(rules []HotRule) {
	for i := 1; i < len(rules); i++ {
		for j := i; j > 0 && rules[j].Hits > rules[j-1].Hits; j-- {
			rules[j], rules[j-1] = rules[j-1], rules[j]
		}
	}
}

// Edges returns a snapshot of every recorded derivation edge.
func (t *Tracer) Edges() []Edge {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Edge, len(t.edges))
	copy(out, t.edges)
	return out
}
