package ecs

import "strconv"

// Entity is an opaque handle: the low 32 bits are a slot id, the high 32 bits
// the slot's generation at creation time. A destroyed handle never compares
// equal to a live one.
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

// Slot returns the slot id of the handle. Slots are reused after destruction,
// handles are not.
func (e Entity) Slot() uint32 {
	return uint32(e.id())
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e.id() > 0
}
