// Package bench implements the NAL scenario test harness named in spec
// §8: the six literal end-to-end scenarios plus a reusable kernel
// fixture, exercised both as regular Go tests (bench_test.go) and as the
// `senars -bench` CLI path, which additionally records each run's
// outcome to sqlite for trend tracking across runs.
//
// Grounded on benchmarks/executor.go's DirectExecutor (build one
// reasoning engine per run, execute a fixed unit of work, collect a
// Result) and benchmarks/types.go's Result/BenchmarkRun shape, narrowed
// here from arbitrary scored problems to pass/fail NAL scenarios.
package bench

import (
	"fmt"

	"github.com/automenta/senars11-sub007/internal/events"
	"github.com/automenta/senars11-sub007/internal/memory"
	"github.com/automenta/senars11-sub007/internal/reasoner"
	"github.com/automenta/senars11-sub007/internal/rules"
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
)

// NewKernel builds a fresh, independently-interned kernel for one
// scenario run, seeded for reproducibility.
func NewKernel(seed int64) *reasoner.Kernel {
	return NewKernelWithMaxDepth(seed, reasoner.DefaultConfig().MaxDerivationDepth)
}

// NewKernelWithMaxDepth is NewKernel with an explicit derivation-depth
// bound, for scenarios that test the bound itself.
func NewKernelWithMaxDepth(seed int64, maxDepth int) *reasoner.Kernel {
	in := term.NewInterner()
	catalog := rules.Standard()
	bus := events.NewBus(256)

	cfg := reasoner.DefaultKernelConfig()
	cfg.Cycle.Seed = seed
	cfg.Stream.Seed = seed
	cfg.Dispatcher.MaxDerivationDepth = maxDepth

	memCfg := memory.DefaultConfig()
	memCfg.Seed = seed

	return reasoner.NewKernel(memCfg, in, catalog, bus, cfg)
}

// Scenario is one named, runnable NAL test case.
type Scenario struct {
	Name string
	Run  func() Result
}

// Result is the outcome of running one scenario.
type Result struct {
	ScenarioName string
	Passed       bool
	Detail       string
	CyclesRun    int
}

func fail(name, format string, args ...interface{}) Result {
	return Result{ScenarioName: name, Passed: false, Detail: fmt.Sprintf(format, args...)}
}

func pass(name string, cycles int, detail string) Result {
	return Result{ScenarioName: name, Passed: true, CyclesRun: cycles, Detail: detail}
}

// beliefFor returns the belief among beliefs whose term is canonically tm,
// or nil if none matches. Compares by CanonicalID rather than term.Equal's
// pointer identity, since tm is built against the scenario's own kernel
// interner and never pointer-equals a term interned elsewhere.
func beliefFor(beliefs []*task.Task, tm *term.Term) *task.Task {
	for _, b := range beliefs {
		if b.Term().CanonicalID() == tm.CanonicalID() {
			return b
		}
	}
	return nil
}

// RunAll runs every scenario in order and returns one Result each,
// independent of pass/fail — used by both the test suite and the
// `senars -bench` CLI path.
func RunAll() []Result {
	scenarios := Scenarios()
	out := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		out = append(out, sc.Run())
	}
	return out
}
