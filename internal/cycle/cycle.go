// Package cycle implements the synchronous reasoning mode (spec §4.9):
// a fixed number of discrete inference steps over memory, run to
// completion and returned as a per-cycle result slice rather than
// streamed continuously.
//
// Grounded on benchmarks/executor.go's DirectExecutor.Execute: a
// single timed step that samples input, routes it through reasoning,
// and returns a Result recording latency and what was produced. Here
// one step is one sample-dispatch-insert pass over memory instead of
// one benchmark problem, and the per-step Result generalizes into
// Outcome; the aggregate Run mirrors BenchmarkRun's run-level rollup
// (benchmarks/types.go).
package cycle

import (
	"math/rand"
	"time"

	"github.com/automenta/senars11-sub007/internal/concept"
	"github.com/automenta/senars11-sub007/internal/memory"
	"github.com/automenta/senars11-sub007/internal/task"
)

// Dispatcher is the minimal surface the runner needs, declared locally
// so this package never imports internal/reasoner (see the identical
// rationale in internal/stream.Dispatcher).
type Dispatcher interface {
	Dispatch(primary, secondary *task.Task) []*task.Task
}

// Config configures a synchronous run.
type Config struct {
	LongTermSampleChance float64
	Seed                 int64
	DecayPerCycle        bool
}

// DefaultConfig matches the sampling bias of stream.DefaultConfig so
// the two modes behave comparably cycle-for-cycle.
func DefaultConfig() Config {
	return Config{LongTermSampleChance: 0.3, Seed: time.Now().UnixNano(), DecayPerCycle: true}
}

// Outcome records one cycle's work.
type Outcome struct {
	CycleIndex  int
	Derivations []*task.Task
	Elapsed     time.Duration
	SampledAny  bool
}

// Run is the rollup of a RunN call.
type Run struct {
	Outcomes     []Outcome
	TotalCycles  int
	EmptyCycles  int
	TotalDerived int
	TotalElapsed time.Duration
}

// Runner executes a bounded number of reasoning cycles synchronously
// over shared memory, in contrast to stream.Scheduler's unbounded
// producer loop. Spec §9 requires the two never run concurrently over
// the same memory; enforcing that mutual exclusion is reasoner.Kernel's
// job, not this type's.
type Runner struct {
	mem        *memory.Memory
	dispatcher Dispatcher
	cfg        Config
	rng        *rand.Rand
}

// New builds a cycle runner over mem, dispatching through d.
func New(mem *memory.Memory, d Dispatcher, cfg Config) *Runner {
	return &Runner{mem: mem, dispatcher: d, cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// RunN performs exactly n cycles and returns their outcomes. Each
// cycle performs steps 2-5 of the stream loop (spec §4.8) once: sample
// a concept, sample a primary and secondary task, dispatch, and insert
// conclusions back into memory.
func (r *Runner) RunN(n int) Run {
	run := Run{Outcomes: make([]Outcome, 0, n)}
	for i := 0; i < n; i++ {
		start := time.Now()
		out := r.step(i)
		out.Elapsed = time.Since(start)

		run.Outcomes = append(run.Outcomes, out)
		run.TotalElapsed += out.Elapsed
		run.TotalDerived += len(out.Derivations)
		if !out.SampledAny {
			run.EmptyCycles++
		}

		if r.cfg.DecayPerCycle {
			r.mem.DecayAll(1)
		}
	}
	run.TotalCycles = n
	return run
}

func (r *Runner) step(index int) Outcome {
	c, ok := r.mem.SampleConcept(r.cfg.LongTermSampleChance)
	if !ok {
		return Outcome{CycleIndex: index}
	}

	primary := c.SampleBelief(r.rng)
	if primary == nil {
		primary = c.SampleGoal(r.rng)
	}
	if primary == nil {
		return Outcome{CycleIndex: index}
	}

	secondary := r.sampleSecondary(c, primary)
	concl := r.dispatcher.Dispatch(primary, secondary)
	for _, t := range concl {
		r.mem.Insert(t)
	}

	return Outcome{CycleIndex: index, Derivations: concl, SampledAny: true}
}

func (r *Runner) sampleSecondary(c *concept.Concept, primary *task.Task) *task.Task {
	if secondary := c.SampleBelief(r.rng); secondary != nil && secondary != primary {
		return secondary
	}
	for _, linked := range r.mem.LinkedConcepts(c) {
		if secondary := linked.SampleBelief(r.rng); secondary != nil {
			return secondary
		}
	}
	return nil
}
