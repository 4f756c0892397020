package ecs

// UpdateFrame is handed to every system during one scheduler tick.
type UpdateFrame struct {
	// DeltaTime is the fixed step of the tick, in seconds.
	DeltaTime float64
	// Tick counts completed ticks before this one.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}
