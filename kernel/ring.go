package kernel

import "sync/atomic"

// Word is one traced output word and the channel it belongs to.
type Word struct {
	Channel uint8
	Value   uint32
}

const ringSlots = 1024

// WordRing is a fixed-size single-producer, single-consumer queue.
// It never allocates and never blocks: a full ring drops the word and counts
// it, so it is safe to fill from an interrupt handler.
type WordRing struct {
	_       [0]func() // prevent accidental copying.
	head    atomic.Uint32
	tail    atomic.Uint32
	dropped atomic.Uint64
	slots   [ringSlots]Word
}

// TryPut enqueues w, returning false if the ring is full.
func (r *WordRing) TryPut(w Word) bool {
	head := r.head.Load()
	tail := r.tail.Load()
	if head-tail >= ringSlots {
		r.dropped.Add(1)
		return false
	}

	r.slots[head%ringSlots] = w
	r.head.Store(head + 1)
	return true
}

// Emit queues one word. It matches the trace hook signature.
func (r *WordRing) Emit(channel uint8, value uint32) {
	r.TryPut(Word{Channel: channel, Value: value})
}

// TryGet dequeues one word, returning false if empty.
func (r *WordRing) TryGet() (Word, bool) {
	tail := r.tail.Load()
	head := r.head.Load()
	if tail == head {
		return Word{}, false
	}

	w := r.slots[tail%ringSlots]
	r.tail.Store(tail + 1)
	return w, true
}

// Drain moves up to len(dst) words into dst and returns how many it moved.
func (r *WordRing) Drain(dst []Word) int {
	n := 0
	for n < len(dst) {
		w, ok := r.TryGet()
		if !ok {
			break
		}
		dst[n] = w
		n++
	}
	return n
}

// Len returns the number of queued words.
func (r *WordRing) Len() int {
	return int(r.head.Load() - r.tail.Load())
}

// Dropped returns the number of words lost to a full ring.
func (r *WordRing) Dropped() uint64 {
	return r.dropped.Load()
}
