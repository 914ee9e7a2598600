package reasoner

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/automenta/senars11-sub007/internal/cycle"
	"github.com/automenta/senars11-sub007/internal/events"
	"github.com/automenta/senars11-sub007/internal/memory"
	"github.com/automenta/senars11-sub007/internal/narsese"
	"github.com/automenta/senars11-sub007/internal/rules"
	"github.com/automenta/senars11-sub007/internal/stream"
	"github.com/automenta/senars11-sub007/internal/task"
	"github.com/automenta/senars11-sub007/internal/term"
)

// ErrModeInUse is returned when the stream and synchronous reasoning
// modes would otherwise run concurrently over the same memory (spec
// §9: the two are either-or, never both active at once).
var ErrModeInUse = errors.New("reasoner: cannot run synchronous cycles while the stream scheduler is active")

// KernelConfig bundles the configuration of every composed part.
type KernelConfig struct {
	Dispatcher Config
	Stream     stream.Config
	Cycle      cycle.Config
}

// DefaultKernelConfig wires together each part's own default.
func DefaultKernelConfig() KernelConfig {
	return KernelConfig{
		Dispatcher: DefaultConfig(),
		Stream:     stream.DefaultConfig(),
		Cycle:      cycle.DefaultConfig(),
	}
}

// Kernel composes memory, the rule dispatcher, the continuous stream
// scheduler, and the synchronous cycle runner into the single reasoning
// engine spec §9 describes: one memory, one dispatcher, two mutually
// exclusive drivers over it.
type Kernel struct {
	mem        *memory.Memory
	dispatcher *Dispatcher
	bus        *events.Bus
	scheduler  *stream.Scheduler
	runner     *cycle.Runner

	mu          sync.Mutex
	cyclesInRun bool
	inputSeq    int
}

// NewKernel builds a kernel over its own fresh memory instance,
// publishing dispatch observability to bus.
func NewKernel(memCfg memory.Config, in *term.Interner, catalog *rules.Catalog, bus *events.Bus, cfg KernelConfig) *Kernel {
	mem := memory.New(memCfg)
	dispatcher := NewDispatcher(catalog, bus, in, cfg.Dispatcher)
	return &Kernel{
		mem:        mem,
		dispatcher: dispatcher,
		bus:        bus,
		scheduler:  stream.New(mem, dispatcher, bus, cfg.Stream),
		runner:     cycle.New(mem, dispatcher, cfg.Cycle),
	}
}

// Memory exposes the kernel's shared memory for inserting initial
// beliefs/goals/questions before reasoning begins.
func (k *Kernel) Memory() *memory.Memory { return k.mem }

// Interner exposes the kernel's term interner, so callers can build
// terms directly (rather than through Narsese text) to look up
// concepts by term identity.
func (k *Kernel) Interner() *term.Interner { return k.dispatcher.interner }

// Input parses a single Narsese line (spec §6 "input(narsese)") and
// queues the resulting task into memory, returning the same ParseError
// the parser produced on invalid syntax.
func (k *Kernel) Input(line string) (*task.Task, error) {
	k.mu.Lock()
	k.inputSeq++
	id := "in-" + strconv.Itoa(k.inputSeq)
	k.mu.Unlock()

	b, err := narsese.New(k.dispatcher.interner).ParseLine(1, id, line)
	if err != nil {
		return nil, err
	}
	return k.mem.Insert(b.Build()), nil
}

// Bus exposes the observability event bus.
func (k *Kernel) Bus() *events.Bus { return k.bus }

// Output is the stream scheduler's derived-task channel.
func (k *Kernel) Output() <-chan *task.Task { return k.scheduler.Output() }

// Start launches the continuous stream reasoner. It fails if a
// synchronous run is currently in flight.
func (k *Kernel) Start(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.cyclesInRun {
		return ErrModeInUse
	}
	return k.scheduler.Start(ctx)
}

// Stop halts the continuous stream reasoner, draining in-flight work.
func (k *Kernel) Stop() {
	k.scheduler.Stop()
}

// IsStreaming reports whether the continuous reasoner is active.
func (k *Kernel) IsStreaming() bool { return k.scheduler.IsRunning() }

// RunCycles performs n synchronous reasoning cycles. It fails if the
// stream scheduler is currently running.
func (k *Kernel) RunCycles(n int) (cycle.Run, error) {
	k.mu.Lock()
	if k.scheduler.IsRunning() {
		k.mu.Unlock()
		return cycle.Run{}, ErrModeInUse
	}
	k.cyclesInRun = true
	k.mu.Unlock()

	defer func() {
		k.mu.Lock()
		k.cyclesInRun = false
		k.mu.Unlock()
	}()

	return k.runner.RunN(n), nil
}
