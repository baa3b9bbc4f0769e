// Package arena implements the append-only, generation-stamped slot table
// suggested by the Design Notes as a replacement for dynamd's intrusive
// next/snext pointer chains: monitors and clients live in a Table[T] keyed
// by a stable Id, and a dangling Id (one whose slot has since been reused
// or freed) is detected by comparing generations instead of chasing a freed
// pointer.
package arena

import "github.com/google/uuid"

// Id identifies a slot in a Table. The zero Id never refers to a live slot,
// so it doubles as "none" (mirrors a NULL Client*/Monitor* in dynamd.c).
type Id struct {
	index int
	gen    uint64
	tag    uuid.UUID
}

// IsZero reports whether id is the zero value (no slot referenced).
func (id Id) IsZero() bool {
	return id.gen == 0 && id.index == 0 && id.tag == uuid.Nil
}

type slot[T any] struct {
	value T
	gen   uint64
	live  bool
}

// Table is an append-only arena of T, addressed by Id. Freed slots are
// tombstoned (gen incremented) rather than compacted, so existing Ids never
// alias a different value after a Delete.
type Table[T any] struct {
	slots []slot[T]
	tag   uuid.UUID
}

// NewTable returns an empty arena. tag namespaces the Ids it produces so
// that Ids minted by distinct Tables never compare equal by accident.
func NewTable[T any]() *Table[T] {
	return &Table[T]{tag: uuid.New()}
}

// Insert appends value and returns its Id.
func (t *Table[T]) Insert(value T) Id {
	t.slots = append(t.slots, slot[T]{value: value, gen: 1, live: true})
	return Id{index: len(t.slots) - 1, gen: 1, tag: t.tag}
}

// Get resolves id to its current value. ok is false if id is zero, belongs
// to a different table, is out of range, or refers to a tombstoned slot.
func (t *Table[T]) Get(id Id) (T, bool) {
	var zero T
	if id.tag != t.tag || id.index < 0 || id.index >= len(t.slots) {
		return zero, false
	}
	s := t.slots[id.index]
	if !s.live || s.gen != id.gen {
		return zero, false
	}
	return s.value, true
}

// Set overwrites the value at id in place. ok mirrors Get.
func (t *Table[T]) Set(id Id, value T) bool {
	if id.tag != t.tag || id.index < 0 || id.index >= len(t.slots) {
		return false
	}
	s := &t.slots[id.index]
	if !s.live || s.gen != id.gen {
		return false
	}
	s.value = value
	return true
}

// Delete tombstones id's slot, bumping its generation so any copy of id
// still held elsewhere resolves to "not found" on the next Get.
func (t *Table[T]) Delete(id Id) {
	if id.tag != t.tag || id.index < 0 || id.index >= len(t.slots) {
		return
	}
	s := &t.slots[id.index]
	if s.gen == id.gen {
		s.live = false
		s.gen++
		var zero T
		s.value = zero
	}
}

// Live reports whether id currently resolves to a value.
func (t *Table[T]) Live(id Id) bool {
	_, ok := t.Get(id)
	return ok
}

// Each calls fn for every live slot's Id and value, in insertion order.
func (t *Table[T]) Each(fn func(Id, T)) {
	for i, s := range t.slots {
		if !s.live {
			continue
		}
		fn(Id{index: i, gen: s.gen, tag: t.tag}, s.value)
	}
}
