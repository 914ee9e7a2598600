package reasoner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automenta/senars11-sub007/internal/events"
	"github.com/automenta/senars11-sub007/internal/memory"
	"github.com/automenta/senars11-sub007/internal/rules"
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
	"github.com/automenta/senars11-sub007/internal/truth"
)

func seedKernel(t *testing.T, k *Kernel) {
	t.Helper()
	in := term.Default
	man, mortal, socrates := in.Atom("man"), in.Atom("mortal"), in.Atom("Socrates")
	trMM, _ := truth.New(1.0, 0.9)
	trSM, _ := truth.New(1.0, 0.8)
	k.Memory().Insert(task.New("mm").Term(term.Inheritance(man, mortal)).Punctuation(task.Belief).Truth(trMM).Build())
	k.Memory().Insert(task.New("sm").Term(term.Inheritance(socrates, man)).Punctuation(task.Belief).Truth(trSM).Build())
}

func TestRunCyclesRejectedWhileStreaming(t *testing.T) {
	memCfg := memory.DefaultConfig()
	memCfg.Seed = 9
	k := NewKernel(memCfg, term.Default, rules.Standard(), events.NewBus(16), DefaultKernelConfig())
	seedKernel(t, k)

	require.NoError(t, k.Start(context.Background()))
	defer k.Stop()

	_, err := k.RunCycles(5)
	assert.ErrorIs(t, err, ErrModeInUse)
}

func TestStartRejectedWhileCyclesRunning(t *testing.T) {
	memCfg := memory.DefaultConfig()
	memCfg.Seed = 9
	k := NewKernel(memCfg, term.Default, rules.Standard(), events.NewBus(16), DefaultKernelConfig())
	seedKernel(t, k)

	k.mu.Lock()
	k.cyclesInRun = true
	k.mu.Unlock()

	err := k.Start(context.Background())
	assert.ErrorIs(t, err, ErrModeInUse)
}

func TestRunCyclesProducesDerivations(t *testing.T) {
	memCfg := memory.DefaultConfig()
	memCfg.Seed = 11
	k := NewKernel(memCfg, term.Default, rules.Standard(), events.NewBus(16), DefaultKernelConfig())
	seedKernel(t, k)

	run, err := k.RunCycles(30)
	require.NoError(t, err)
	assert.Equal(t, 30, run.TotalCycles)
	assert.Greater(t, run.TotalDerived, 0)
}

func TestStreamDrainsAfterStop(t *testing.T) {
	memCfg := memory.DefaultConfig()
	memCfg.Seed = 13
	cfg := DefaultKernelConfig()
	cfg.Stream.CPUThrottleInterval = time.Millisecond
	k := NewKernel(memCfg, term.Default, rules.Standard(), events.NewBus(16), cfg)
	seedKernel(t, k)

	require.NoError(t, k.Start(context.Background()))
	time.Sleep(20 * time.Millisecond)
	k.Stop()
	assert.False(t, k.IsStreaming())
}

func TestInputParsesAndInsertsIntoMemory(t *testing.T) {
	memCfg := memory.DefaultConfig()
	memCfg.Seed = 17
	k := NewKernel(memCfg, term.Default, rules.Standard(), events.NewBus(16), DefaultKernelConfig())

	tk, err := k.Input("<raven --> bird>. %1.0;0.9%")
	require.NoError(t, err)
	assert.True(t, tk.IsBelief())

	_, ok := k.Memory().GetConcept(tk.Term())
	assert.True(t, ok)
}

func TestInputSurfacesParseError(t *testing.T) {
	memCfg := memory.DefaultConfig()
	k := NewKernel(memCfg, term.Default, rules.Standard(), events.NewBus(16), DefaultKernelConfig())
	_, err := k.Input("<raven --> bird>")
	assert.Error(t, err)
}
