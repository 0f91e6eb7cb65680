package audio

import (
	"errors"
	"sync/atomic"
)

type NoticeKind int

const (
	NoticeGateChanged NoticeKind = iota + 1
	NoticeState
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeGateChanged:
		return "gate-changed"
	case NoticeState:
		return "state"
	default:
		return "unknown"
	}
}

// Notice is a message from the render thread to the controller.
type Notice struct {
	Kind    NoticeKind
	Gate    bool     // new logical gate of a NoticeGateChanged
	Offset  int      // sample offset of the gate change within its quantum
	Quantum uint64   // index of the quantum the notice was produced in
	State   Snapshot // payload of a NoticeState
}

// Snapshot is the published view of an envelope's state.
type Snapshot struct {
	Stage         Stage      `json:"stage"`
	StageProgress float64    `json:"stageProgress"`
	OutputValue   float64    `json:"outputValue"`
	Parameters    Parameters `json:"parameters"`
}

// Bridge carries control requests into an Engine and notices out of it. The
// render thread never blocks on it: control requests are atomic slots read
// once per quantum and notices go through a lock-free spsc queue drained by
// the controller.
//
// A Bridge serves a single engine, a single render thread and a single
// controller.
type Bridge struct {
	notices  *eventBuffer[Notice]
	dropped  atomic.Uint64
	override atomic.Bool
	attached atomic.Bool
	requests atomic.Uint64

	answered uint64 // owned by the render thread
}

// NewBridge returns a bridge whose notice queue holds size notices. size must
// be a power of 2 and cover every notice produced between two Drain calls:
// gate notices that find the queue full are dropped and counted by Dropped.
func NewBridge(size int) *Bridge {
	return &Bridge{notices: newEventBuffer[Notice](size)}
}

// SetManualOverride forces the logical gate active while active is true. The
// latest value wins; it takes effect at the start of the next quantum and
// holds for the whole quantum.
func (b *Bridge) SetManualOverride(active bool) {
	b.override.Store(active)
}

func (b *Bridge) ManualOverride() bool {
	return b.override.Load()
}

// RequestStateSnapshot asks the engine to publish one NoticeState after the
// next quantum it completes. Each call yields exactly one notice. Without an
// attached engine the request is dropped and false is returned.
func (b *Bridge) RequestStateSnapshot() bool {
	if !b.attached.Load() {
		return false
	}
	b.requests.Add(1)
	return true
}

// Drain calls f for every pending notice in the order they were produced and
// returns the number of notices delivered.
func (b *Bridge) Drain(f func(Notice)) int {
	return b.notices.iter(f)
}

// Dropped returns the number of gate notices lost to a full queue.
func (b *Bridge) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Bridge) attach() error {
	if b == nil {
		return nil
	}
	if !b.attached.CompareAndSwap(false, true) {
		return errors.New("bridge is already attached to an engine")
	}
	return nil
}

func (b *Bridge) manualOverride() bool {
	if b == nil {
		return false
	}
	return b.override.Load()
}

func (b *Bridge) gateChanged(gate bool, offset int, quantum uint64) {
	if b == nil {
		return
	}
	if !b.notices.push(Notice{Kind: NoticeGateChanged, Gate: gate, Offset: offset, Quantum: quantum}) {
		b.dropped.Add(1)
	}
}

// answer publishes s once for every outstanding snapshot request. Requests
// that do not fit stay outstanding until a later quantum.
func (b *Bridge) answer(quantum uint64, s Snapshot) {
	if b == nil {
		return
	}
	for b.answered != b.requests.Load() {
		if !b.notices.push(Notice{Kind: NoticeState, Quantum: quantum, State: s}) {
			return
		}
		b.answered++
	}
}
