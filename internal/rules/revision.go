package rules

import (
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
)

// Revision combines two beliefs over the same term with disjoint stamps
// (spec §4.5's final catalog entry). The dispatcher guarantees stamp
// disjointness before invoking any binary rule (spec §4.6b), so this
// rule only needs to check the terms match; its truth function,
// truth.Revision, is also what concept.Insert calls directly at
// insertion time, kept here as a Rule
// value so it participates in dispatch the same way every other rule
// does when two same-term beliefs meet via sampling rather than
// insertion.
func Revision(priority float64) Rule {
	return Rule{
		ID: "revision", Arity: Binary, Priority: priority,
		Applicable: func(primary, secondary *task.Task) bool {
			_, h1 := truthOf(primary)
			_, h2 := truthOf(secondary)
			return h1 && h2 && term.Equal(primary.Term(), secondary.Term()) && primary.Punctuation() == secondary.Punctuation()
		},
		Apply: func(ctx Context, primary, secondary *task.Task) []*task.Task {
			tr, ok := truth.Revision(mustTruth(primary), mustTruth(secondary))
			if !ok {
				return nil
			}
			return []*task.Task{deriveBinary(ctx, primary.Term(), tr, primary, secondary, priority)}
		},
	}
}
