package ecs

// System represents a behavior that operates on entities with specific components.
// Systems are usually pointer-to-struct values whose exported Query and Singleton
// fields are bound by Scheduler.Register. Any other fields persist between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}
