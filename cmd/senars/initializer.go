package main

import (
	"log"
	"time"

	"github.com/automenta/senars11-sub007/internal/config"
	"github.com/automenta/senars11-sub007/internal/events"
	"github.com/automenta/senars11-sub007/internal/memory"
	"github.com/automenta/senars11-sub007/internal/reasoner"
	"github.com/automenta/senars11-sub007/internal/rules"
	"github.com/automenta/senars11-sub007/internal/term"
)

// Components holds the wired kernel and its configuration, split out of
// main() so the wiring itself can be exercised without a process.
type Components struct {
	Config *config.Config
	Kernel *reasoner.Kernel
}

// Initialize loads configuration (file, then environment overrides) and
// wires a fresh kernel over it.
func Initialize(configPath string) (*Components, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded configuration: max_derivation_depth=%d, logging.level=%s", cfg.Kernel.MaxDerivationDepth, cfg.Logging.Level)

	in := term.NewInterner()
	catalog := rules.Standard()
	bus := events.NewBus(256)
	log.Println("Assembled rule catalog and event bus")

	memCfg := memory.Config{
		FocusCapacity:     cfg.Memory.FocusCapacity,
		LongTermCapacity:  cfg.Memory.LongTermCapacity,
		PromotionPriority: cfg.Memory.PromotionPriority,
		Seed:              memory.DefaultConfig().Seed,
	}

	kernelCfg := reasoner.DefaultKernelConfig()
	kernelCfg.Dispatcher.MaxDerivationDepth = cfg.Kernel.MaxDerivationDepth
	kernelCfg.Stream.CPUThrottleInterval = durationMillis(cfg.Stream.CPUThrottleMillis)
	kernelCfg.Stream.BackpressureThreshold = cfg.Stream.BackpressureThreshold
	kernelCfg.Stream.LongTermSampleChance = cfg.Stream.LongTermSampleChance
	kernelCfg.Stream.OutputBufferSize = cfg.Stream.OutputBufferSize
	kernelCfg.Cycle.LongTermSampleChance = cfg.Stream.LongTermSampleChance

	k := reasoner.NewKernel(memCfg, in, catalog, bus, kernelCfg)
	log.Println("Wired kernel: memory, dispatcher, stream scheduler, cycle runner")

	return &Components{Config: cfg, Kernel: k}, nil
}

func durationMillis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
