package ecs

import (
	"context"
	"math"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Ticks           uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// storageBinder is implemented by Query and Singleton.
type storageBinder interface {
	Init(storage *Storage)
}

// queryExecutor is implemented by Query.
type queryExecutor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []queryExecutor
	stats   SystemStats
}

// Scheduler runs systems in registration order, one fixed step at a time.
type Scheduler struct {
	storage  *Storage
	systems  []*registeredSystem
	commands *Commands
	ticks    uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Register appends a system and binds its exported Query and Singleton fields to the storage.
func (s *Scheduler) Register(system System) {
	entry := &registeredSystem{
		system: system,
		stats: SystemStats{
			Name:        systemName(system),
			MinDuration: time.Duration(math.MaxInt64),
		},
	}

	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !field.CanSet() || field.Kind() != reflect.Struct {
				continue
			}

			binder, ok := field.Addr().Interface().(storageBinder)
			if !ok {
				continue
			}
			binder.Init(s.storage)

			if query, ok := binder.(queryExecutor); ok {
				entry.queries = append(entry.queries, query)
			}
		}
	}

	s.systems = append(s.systems, entry)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Once runs one tick: every system in order, each with freshly executed queries,
// followed by a flush of the deferred commands.
func (s *Scheduler) Once(dt float64) {
	frame := &UpdateFrame{
		DeltaTime: dt,
		Tick:      s.ticks,
		Commands:  s.commands,
		Storage:   s.storage,
	}

	for _, entry := range s.systems {
		for _, query := range entry.queries {
			query.Execute()
		}

		start := time.Now()
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
	s.ticks++
}

func (r *registeredSystem) record(d time.Duration) {
	r.stats.ExecutionCount++
	r.stats.LastDuration = d
	r.stats.TotalDuration += d
	r.stats.MinDuration = min(r.stats.MinDuration, d)
	r.stats.MaxDuration = max(r.stats.MaxDuration, d)
}

// Run ticks once per interval until ctx is cancelled. Every tick receives the
// same step, interval in seconds, regardless of how late the ticker fires.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once(dt)
		}
	}
}

// Ticks returns the number of completed ticks.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.ticks,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		sys := entry.stats
		if sys.ExecutionCount > 0 {
			sys.AvgDuration = sys.TotalDuration / time.Duration(sys.ExecutionCount)
		} else {
			sys.MinDuration = 0
		}
		stats.Systems[i] = sys
		stats.TotalExecutions += sys.ExecutionCount
	}

	return stats
}
