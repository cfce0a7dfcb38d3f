package ecs

import "fmt"

// Entity is a body handle: a 32-bit slot id in the low bits and the slot's
// generation in the high bits. A handle outlives Clear but never matches a
// body created after it.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return fmt.Sprintf("entity %d/%d", e.id(), e.generation())
}
