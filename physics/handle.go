package physics

import "fmt"

// BodyHandle is an opaque, non-owning reference to a body in a World.
// It packs a slot generation (upper 32 bits) and slot index (lower 32 bits);
// generations start at 1, so the zero handle never resolves.
type BodyHandle uint64

func newBodyHandle(generation, index uint32) BodyHandle {
	return BodyHandle(uint64(generation)<<32 | uint64(index))
}

func (h BodyHandle) generation() uint32 {
	return uint32(h >> 32)
}

func (h BodyHandle) index() uint32 {
	return uint32(h & 0xFFFFFFFF)
}

func (h BodyHandle) String() string {
	return fmt.Sprintf("body(%d@%d)", h.index(), h.generation())
}
