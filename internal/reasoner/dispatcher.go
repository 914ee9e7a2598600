// Package reasoner implements the derived-task builder and rule
// dispatcher (spec §4.4, §4.6): given a primary task and a candidate
// secondary, it applies every matching catalog rule and returns the
// resulting conclusions, enforcing the dispatcher's three guarantees
// (no self-premise, stamp disjointness, depth limiting).
//
// Grounded on internal/integration/synthesizer.go's pattern of combining
// multiple upstream inputs into one derived structure, generalized here
// to stamp-merge + budget-derivation + duplicate-evidence guard, and on
// modes.Registry.SelectBest's ordered-candidate-check structure for
// applicability filtering.
package reasoner

import (
	"github.com/automenta/senars11-sub007/internal/events"
	"github.com/automenta/senars11-sub007/internal/rules"
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
)

// Config bounds dispatch behavior.
type Config struct {
	MaxDerivationDepth int
}

// DefaultConfig matches typical small-scale NAL test configurations.
func DefaultConfig() Config { return Config{MaxDerivationDepth: 8} }

// Dispatcher applies the rule catalog to a premise pair.
type Dispatcher struct {
	catalog  *rules.Catalog
	bus      *events.Bus
	interner *term.Interner
	cfg      Config
}

// NewDispatcher builds a dispatcher over the given catalog, publishing
// observability events to bus.
func NewDispatcher(catalog *rules.Catalog, bus *events.Bus, interner *term.Interner, cfg Config) *Dispatcher {
	return &Dispatcher{catalog: catalog, bus: bus, interner: interner, cfg: cfg}
}

// Dispatch fires every applicable unary rule on primary, and every
// applicable binary rule on (primary, secondary) — tried in both
// premise orders, since sampling does not establish which premise plays
// which syllogistic role (spec §4.6 only names primary/secondary as
// sampling roles, not semantic ones).
func (d *Dispatcher) Dispatch(primary, secondary *task.Task) []*task.Task {
	var out []*task.Task

	if primary.Depth()+1 > d.cfg.MaxDerivationDepth {
		// (c) depth bound: a unary conclusion is one step deeper than
		// primary, and a binary one at least as deep.
		d.publish(events.DepthLimited, "", primary, secondary, "max_derivation_depth exceeded")
		return out
	}

	for _, r := range d.catalog.ApplicableRules(rules.Unary, primary, nil) {
		out = append(out, d.fire(r, primary, nil)...)
	}

	if secondary == nil {
		return out
	}

	if primary == secondary {
		return out // (a) no self-premise
	}

	if primary.Stamp().Overlaps(secondary.Stamp()) {
		d.publish(events.StampOverlap, "", primary, secondary, "stamp overlap")
		return out // (b) stamp disjointness required before binary rules
	}

	depth := maxInt(primary.Depth(), secondary.Depth()) + 1
	if depth > d.cfg.MaxDerivationDepth {
		d.publish(events.DepthLimited, "", primary, secondary, "max_derivation_depth exceeded")
		return out // (c) depth bound
	}

	seen := make(map[string]bool)
	for _, r := range d.catalog.ApplicableRules(rules.Binary, primary, secondary) {
		seen[r.ID] = true
		out = append(out, d.fire(r, primary, secondary)...)
	}
	for _, r := range d.catalog.ApplicableRules(rules.Binary, secondary, primary) {
		if seen[r.ID] {
			continue // already fired with this orientation's dual
		}
		out = append(out, d.fire(r, secondary, primary)...)
	}

	return out
}

func (d *Dispatcher) fire(r rules.Rule, primary, secondary *task.Task) []*task.Task {
	ctx := rules.Context{Interner: d.interner}
	concl := r.Apply(ctx, primary, secondary)
	if len(concl) == 0 {
		d.publish(events.RuleNotFired, r.ID, primary, secondary, "rule produced no conclusion")
		return nil
	}
	for _, c := range concl {
		d.publishDerived(r.ID, primary, secondary, c)
	}
	return concl
}

func (d *Dispatcher) publish(kind events.Kind, ruleID string, primary, secondary *task.Task, reason string) {
	if d.bus == nil {
		return
	}
	ev := events.Event{Kind: kind, RuleID: ruleID, PrimaryID: primary.ID(), Depth: primary.Depth(), Reason: reason}
	if secondary != nil {
		ev.SecondaryID = secondary.ID()
	}
	d.bus.Publish(ev)
}

func (d *Dispatcher) publishDerived(ruleID string, primary, secondary, conclusion *task.Task) {
	if d.bus == nil {
		return
	}
	ev := events.Event{
		Kind:         events.RuleFired,
		RuleID:       ruleID,
		PrimaryID:    primary.ID(),
		ConclusionID: conclusion.ID(),
		Depth:        conclusion.Depth(),
	}
	if secondary != nil {
		ev.SecondaryID = secondary.ID()
	}
	d.bus.Publish(ev)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
