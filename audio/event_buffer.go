package audio

import (
	"sync/atomic"
)

// eventBuffer is a lock-free spsc queue. Neither end ever waits: push fails
// when the buffer is full and iter returns when it is empty.
type eventBuffer[T any] struct {
	events      []T
	read, write atomic.Uint32
}

func newEventBuffer[T any](size int) *eventBuffer[T] {
	if size <= 0 || size&(size-1) != 0 {
		panic("event buffer size must be a power of 2")
	}
	return &eventBuffer[T]{events: make([]T, size)}
}

// push appends ev and reports whether there was room for it. Only the
// producer may call push.
func (b *eventBuffer[T]) push(ev T) bool {
	write := b.write.Load()
	if write-b.read.Load() == uint32(len(b.events)) {
		return false
	}
	b.events[write%uint32(len(b.events))] = ev
	b.write.Store(write + 1)
	return true
}

// iter calls f for every queued event in order and returns how many it
// consumed. Only the consumer may call iter.
func (b *eventBuffer[T]) iter(f func(T)) int {
	read := b.read.Load()
	write := b.write.Load()
	n := int(write - read)
	for read != write {
		f(b.events[read%uint32(len(b.events))])
		read++
	}
	b.read.Store(read)
	return n
}

// free returns the number of events that can be pushed without failing.
func (b *eventBuffer[T]) free() int {
	return len(b.events) - int(b.write.Load()-b.read.Load())
}
