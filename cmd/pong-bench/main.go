package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/pongsim/config"
	"github.com/plus3/pongsim/input"
	"github.com/plus3/pongsim/pong"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	ticks := fs.Int("ticks", 3600, "number of fixed ticks to simulate")
	seed := fs.Uint64("seed", 1, "seed for the random input pattern")
	pattern := fs.String("pattern", PatternSine, "input pattern: sine, random or hold")
	gcPauseMetrics := fs.Bool("gc-pause-metrics", false, "include GC pause metrics in the report")

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	state := input.NewState()
	script, err := NewScript(*pattern, *seed, state)
	if err != nil {
		log.Fatalf("Invalid input script: %v", err)
	}

	log.Printf("Starting match: %d ticks at %d TPS, pattern %s, walls %t\n", *ticks, cfg.TickRate, *pattern, cfg.Walls)
	m := pong.NewMatch(cfg.MatchOptions(), state)

	report := &Report{
		Ticks:          *ticks,
		TickRate:       cfg.TickRate,
		Pattern:        *pattern,
		Seed:           *seed,
		Walls:          cfg.Walls,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, *ticks),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

	for tick := range *ticks {
		script.Apply(uint64(tick))

		updateStart := time.Now()
		m.Tick()
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		for _, v := range CheckInvariants(m) {
			if len(report.Violations) < maxReportedViolations {
				log.Printf("tick %d: %s\n", m.Ticks(), v)
			}
			report.Violations = append(report.Violations, fmt.Sprintf("tick %d: %s", m.Ticks(), v))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.SimulatedTime = time.Duration(m.Ticks()) * m.Interval()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Collect(m)

	log.Println("Simulation finished.")

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}

	if n := len(report.Violations); n > 0 {
		log.Fatalf("%d invariant violations", n)
	}
}
