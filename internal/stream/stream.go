// Package stream implements the continuous stream reasoner / scheduler
// (spec §4.8, §5): a cancelable producer loop that samples premises from
// memory, dispatches rules, and pushes derived tasks to a bounded
// downstream channel.
//
// Grounded on internal/streaming/reporter.go and context.go's
// cancelable, rate-aware reporter loop: the debounce/rate-limit idiom
// there (a minimum interval between notifications, checked against a
// last-sent timestamp under a mutex) is the direct model for the
// cpu_throttle_interval suspension point and the backpressure
// sleep/recheck loop here, generalized from notification delivery to
// task derivation.
package stream

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automenta/senars11-sub007/internal/concept"
	"github.com/automenta/senars11-sub007/internal/events"
	"github.com/automenta/senars11-sub007/internal/memory"
	"github.com/automenta/senars11-sub007/internal/task"
)

// Dispatcher is the minimal surface the scheduler needs from
// reasoner.Dispatcher, declared locally (adapter/strategy idiom, as in
// internal/unify.Adapter) so this package never imports internal/reasoner
// and no import cycle forms between reasoner.Kernel and this scheduler.
type Dispatcher interface {
	Dispatch(primary, secondary *task.Task) []*task.Task
}

// Objectives weights the composite score used to sample a concept and a
// task within it (spec §4.8's "objective-weighted composite score").
type Objectives struct {
	Priority    bool
	Recency     bool
	Punctuation bool
	Novelty     bool
}

// DefaultObjectives weighs purely on priority, the simplest sound default.
func DefaultObjectives() Objectives { return Objectives{Priority: true} }

// Config configures the scheduler loop.
type Config struct {
	CPUThrottleInterval   time.Duration
	BackpressureThreshold int
	BackpressureInterval  time.Duration
	SamplingObjectives    Objectives
	LongTermSampleChance  float64
	OutputBufferSize      int
	Seed                  int64
}

// DefaultConfig is a conservative configuration suitable for tests.
func DefaultConfig() Config {
	return Config{
		CPUThrottleInterval:   time.Millisecond,
		BackpressureThreshold: 256,
		BackpressureInterval:  10 * time.Millisecond,
		SamplingObjectives:    DefaultObjectives(),
		LongTermSampleChance:  0.3,
		OutputBufferSize:      256,
		Seed:                  time.Now().UnixNano(),
	}
}

// Feedback is optional consumer-reported load used to tune the internal
// rate (spec §4.8 "Consumer feedback").
type Feedback struct {
	ProcessingTime time.Duration
	ConsumerLoad   float64 // 0..1
	BufferLevel    int
	Throughput     float64
}

// Metrics accumulates the counters spec §4.8 names.
type Metrics struct {
	TotalDerivations   int64
	ProcessingTime     time.Duration
	Throughput         float64
	PeakThroughput     float64
	BackpressureEvents int64
	MaxDepthReached    int
}

// Scheduler is the restartable-but-not-rewindable stream reasoner.
type Scheduler struct {
	mem        *memory.Memory
	dispatcher Dispatcher
	bus        *events.Bus
	cfg        Config
	rng        *rand.Rand

	out chan *task.Task

	mu        sync.Mutex
	running   atomic.Bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	metrics   Metrics
	feedback  Feedback
	throttle  time.Duration
	startedAt time.Time
}

// New creates a scheduler over mem, dispatching through d.
func New(mem *memory.Memory, d Dispatcher, bus *events.Bus, cfg Config) *Scheduler {
	return &Scheduler{
		mem:        mem,
		dispatcher: d,
		bus:        bus,
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		out:        make(chan *task.Task, cfg.OutputBufferSize),
		throttle:   cfg.CPUThrottleInterval,
	}
}

// Output is the downstream channel of derived tasks.
func (s *Scheduler) Output() <-chan *task.Task { return s.out }

// IsRunning reports whether the producer loop is active.
func (s *Scheduler) IsRunning() bool { return s.running.Load() }

// Start launches the producer loop in its own goroutine. It returns an
// error if already running.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	s.mu.Lock()
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.startedAt = time.Now()
	s.mu.Unlock()

	go s.loop(ctx)
	return nil
}

// Stop requests the loop to end and blocks until in-flight emissions
// drain (spec §4.8: "a stop drains in-flight emissions").
func (s *Scheduler) Stop() {
	if !s.running.Load() {
		return
	}
	s.mu.Lock()
	stopCh := s.stopCh
	doneCh := s.doneCh
	s.mu.Unlock()
	if stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh
}

// Feedback records consumer-reported load, used to adapt throttling.
func (s *Scheduler) Feedback(fb Feedback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = fb
	switch {
	case fb.ConsumerLoad > 0.8:
		s.throttle = minDuration(s.throttle*2, time.Second)
	case fb.Throughput < s.metrics.Throughput*0.9 && s.metrics.Throughput > 0:
		s.throttle = maxDuration(s.throttle/2, time.Microsecond)
	}
}

func (s *Scheduler) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

func (s *Scheduler) loop(ctx context.Context) {
	defer func() {
		s.running.Store(false)
		close(s.doneCh)
	}()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		// Suspension point (i): backpressure.
		if len(s.out) >= s.cfg.BackpressureThreshold {
			s.mu.Lock()
			s.metrics.BackpressureEvents++
			s.mu.Unlock()
			if s.bus != nil {
				s.bus.Publish(events.Event{Kind: events.BackpressureHit, Reason: "downstream buffer at threshold"})
			}
			if !sleepOrStop(s.cfg.BackpressureInterval, s.stopCh) {
				return
			}
			continue
		}

		c, ok := s.mem.SampleConcept(s.cfg.LongTermSampleChance)
		if !ok {
			// Suspension point (iv): empty memory wait.
			if !sleepOrStop(s.cfg.BackpressureInterval, s.stopCh) {
				return
			}
			continue
		}

		primary := c.SampleBelief(s.rng)
		if primary == nil {
			primary = c.SampleGoal(s.rng)
		}
		if primary == nil {
			if !sleepOrStop(s.throttleDuration(), s.stopCh) {
				return
			}
			continue
		}

		secondary := s.sampleSecondary(c, primary)

		start := time.Now()
		concl := s.dispatcher.Dispatch(primary, secondary)
		elapsed := time.Since(start)

		for _, t := range concl {
			s.mem.Insert(t)
			select {
			case s.out <- t:
			default:
				// buffer momentarily full between the backpressure check
				// and here; drop rather than block the producer.
			}
		}

		s.updateMetrics(concl, elapsed)

		// Suspension point (ii): throttle interval.
		if !sleepOrStop(s.throttleDuration(), s.stopCh) {
			return
		}
	}
}

func (s *Scheduler) sampleSecondary(c *concept.Concept, primary *task.Task) *task.Task {
	if secondary := c.SampleBelief(s.rng); secondary != nil && secondary != primary {
		return secondary
	}
	for _, linked := range s.mem.LinkedConcepts(c) {
		if secondary := linked.SampleBelief(s.rng); secondary != nil {
			return secondary
		}
	}
	return nil
}

func (s *Scheduler) updateMetrics(concl []*task.Task, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.TotalDerivations += int64(len(concl))
	s.metrics.ProcessingTime += elapsed
	for _, t := range concl {
		if t.Depth() > s.metrics.MaxDepthReached {
			s.metrics.MaxDepthReached = t.Depth()
		}
	}
	elapsedSeconds := time.Since(s.startedAt).Seconds()
	if elapsedSeconds > 0 {
		s.metrics.Throughput = float64(s.metrics.TotalDerivations) / elapsedSeconds
		if s.metrics.Throughput > s.metrics.PeakThroughput {
			s.metrics.PeakThroughput = s.metrics.Throughput
		}
	}
}

func (s *Scheduler) throttleDuration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.throttle
}

func sleepOrStop(d time.Duration, stopCh chan struct{}) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-stopCh:
		return false
	case <-t.C:
		return true
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
