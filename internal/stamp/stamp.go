// Package stamp implements the evidential trail carried by every task:
// the set of base evidence ids a conclusion descends from, plus creation
// time and derivation depth.
//
// Base ids are minted with google/uuid rather than the reference
// codebase's counter-formatted ids (e.g. "thought-%d-%d"), since evidence
// ids must be globally unique across the process lifetime and never
// reused, a property a plain counter cannot guarantee once concepts are
// evicted and re-created under the same term.
package stamp

import (
	"time"

	"github.com/google/uuid"
)

// MaxLength bounds the evidence set; merges beyond this truncate the
// oldest ids first.
const MaxLength = 20

// Stamp is a bounded evidential trail.
type Stamp struct {
	Evidence []string
	Created  time.Time
	Depth    int
}

// New creates a stamp seeded with a single fresh evidence id, for tasks
// produced directly from external input.
func New() Stamp {
	return Stamp{
		Evidence: []string{uuid.New().String()},
		Created:  time.Now(),
		Depth:    0,
	}
}

// evidenceSet returns the stamp's evidence ids as a lookup set.
func (s Stamp) evidenceSet() map[string]bool {
	set := make(map[string]bool, len(s.Evidence))
	for _, id := range s.Evidence {
		set[id] = true
	}
	return set
}

// Overlaps reports whether two stamps share any base evidence id. Binary
// rules must reject derivation when this is true (the "same evidence
// cycle" guard).
func (s Stamp) Overlaps(other Stamp) bool {
	set := s.evidenceSet()
	for _, id := range other.Evidence {
		if set[id] {
			return true
		}
	}
	return false
}

// Equal reports whether two stamps carry exactly the same evidence set,
// the "identical re-derivation" case: same conclusion reached twice over
// the same base evidence, as opposed to merely overlapping it.
func (s Stamp) Equal(other Stamp) bool {
	if len(s.Evidence) != len(other.Evidence) {
		return false
	}
	set := s.evidenceSet()
	for _, id := range other.Evidence {
		if !set[id] {
			return false
		}
	}
	return true
}

// Merge combines two disjoint stamps into a new one, capping the merged
// evidence list at MaxLength by truncating the oldest entries first, and
// setting depth to max(depth1, depth2)+1. Merge does not itself enforce
// disjointness; callers must check Overlaps first, mirroring the
// dispatcher contract in the reasoner package.
func Merge(a, b Stamp) Stamp {
	merged := make([]string, 0, len(a.Evidence)+len(b.Evidence))
	merged = append(merged, a.Evidence...)
	merged = append(merged, b.Evidence...)
	if len(merged) > MaxLength {
		merged = merged[len(merged)-MaxLength:]
	}

	depth := a.Depth
	if b.Depth > depth {
		depth = b.Depth
	}

	created := a.Created
	if b.Created.After(created) {
		created = b.Created
	}

	return Stamp{Evidence: merged, Created: created, Depth: depth + 1}
}

// WithDepth returns a copy of the stamp at an explicit depth, used by
// unary rules which do not merge evidence but still advance depth by one.
func (s Stamp) WithDepth(depth int) Stamp {
	cp := make([]string, len(s.Evidence))
	copy(cp, s.Evidence)
	return Stamp{Evidence: cp, Created: s.Created, Depth: depth}
}
