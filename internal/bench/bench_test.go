package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	for _, sc := range Scenarios() {
		t.Run(sc.Name, func(t *testing.T) {
			r := sc.Run()
			assert.Truef(t, r.Passed, "%s: %s", sc.Name, r.Detail)
		})
	}
}

// TestRunCyclesTerminatesWithNoInputs covers spec §8 invariant 9: run_cycles(n)
// must complete in bounded time even over an empty memory.
func TestRunCyclesTerminatesWithNoInputs(t *testing.T) {
	k := NewKernel(99)

	done := make(chan struct{})
	go func() {
		_, _ = k.RunCycles(500)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run_cycles(500) over empty memory did not terminate in time")
	}
}

func TestRunAllProducesOneResultPerScenario(t *testing.T) {
	results := RunAll()
	require.Len(t, results, len(Scenarios()))
	for _, r := range results {
		assert.NotEmpty(t, r.ScenarioName)
	}
}
