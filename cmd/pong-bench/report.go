package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/pongsim/ecs"
	"github.com/plus3/pongsim/pong"
)

type Report struct {
	// Configuration
	Ticks    int
	TickRate int
	Pattern  string
	Seed     uint64
	Walls    bool

	// Results
	TotalTime      time.Duration
	SimulatedTime  time.Duration
	UpdateTime     Stats
	Violations     []string
	Systems        []ecs.SystemStats
	Storage        *ecs.StorageStats
	Bodies         []string
	Ball           BallSummary
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type BallSummary struct {
	X, Y   float32
	VX, VY float32
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Collect copies the end-of-run state of the match into the report.
func (r *Report) Collect(m *pong.Match) {
	r.Systems = m.Scheduler().GetStats().Systems
	r.Storage = m.Storage().CollectStats()

	r.Bodies = r.Bodies[:0]
	for h, state := range m.World().Bodies() {
		r.Bodies = append(r.Bodies, fmt.Sprintf("%s at (%.2f, %.2f) moving (%.2f, %.2f)",
			h, state.Position.X, state.Position.Y, state.Velocity.X, state.Velocity.Y))
	}

	ball, tr := m.Ball()
	r.Ball = BallSummary{X: tr.X(), Y: tr.Y(), VX: ball.Velocity[0], VY: ball.Velocity[1]}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Match Bench Report

## Configuration
- **Ticks:** {{.Ticks}} at {{.TickRate}} TPS
- **Input Pattern:** {{.Pattern}} (seed {{.Seed}})
- **Walls:** {{.Walls}}

## Results
- **Simulated Time:** {{.SimulatedTime}}
- **Wall Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
- **Invariant Violations:** {{len .Violations}}
{{range .Violations}}  - {{.}}
{{end}}
## Final State
- **Ball:** ({{printf "%.2f" .Ball.X}}, {{printf "%.2f" .Ball.Y}}) velocity ({{printf "%.2f" .Ball.VX}}, {{printf "%.2f" .Ball.VY}})
{{range .Bodies}}- {{.}}
{{end}}
## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
{{with .Storage}}## Storage
- **Entities:** {{.TotalEntityCount}}
- **Archetypes:** {{.ArchetypeCount}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
