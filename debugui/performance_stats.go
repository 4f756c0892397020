package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pongsim/ecs"
)

// FrameHistory is a fixed-size ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Push records a frame duration.
func (fh *FrameHistory) Push(d time.Duration) {
	fh.samples[fh.index] = float32(d.Seconds() * 1000)
	fh.index = (fh.index + 1) % len(fh.samples)
	fh.filled = min(fh.filled+1, len(fh.samples))
}

// Average returns the mean of the recorded samples, or 0 before the first push.
func (fh *FrameHistory) Average() float32 {
	if fh.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range fh.samples[:fh.filled] {
		sum += s
	}
	return sum / float32(fh.filled)
}

// PerformanceStats shows frame times, scheduler timings and storage counts.
type PerformanceStats struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	history   *FrameHistory
	lastFrame time.Time
}

func NewPerformanceStats(historyFrames int, storage *ecs.Storage, scheduler *ecs.Scheduler) *PerformanceStats {
	return &PerformanceStats{
		storage:   storage,
		scheduler: scheduler,
		history:   NewFrameHistory(historyFrames),
	}
}

func (ps *PerformanceStats) tick() {
	now := time.Now()
	if !ps.lastFrame.IsZero() {
		ps.history.Push(now.Sub(ps.lastFrame))
	}
	ps.lastFrame = now
}

func (ps *PerformanceStats) Render() {
	ps.tick()

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.storage.CollectStats()
	sched := ps.scheduler.GetStats()

	imgui.Text(fmt.Sprintf("Ticks: %d", sched.Ticks))
	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if avg := ps.history.Average(); avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range sched.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}
