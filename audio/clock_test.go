package audio

import (
	"testing"
	"time"
)

type countingSource struct {
	calls  int
	frames int
}

func (s *countingSource) Process(samples [][]float32) {
	s.calls++
	s.frames += len(samples[0])
}

func TestClockOutput(t *testing.T) {
	var src countingSource
	c := NewClockOutput(44100, 64, &src)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for c.Samples() < 64*4 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := c.Stop(); err != nil {
		t.Fatal(err)
	}
	if src.calls < 4 {
		t.Fatalf("expected at least 4 buffers, got %v", src.calls)
	}
	if want, got := uint64(src.frames), c.Samples(); want != got {
		t.Errorf("wrong sample count: want %v, got %v", want, got)
	}
}

func TestClockOutputDrivesHost(t *testing.T) {
	h := newTestHost(t, Config{SampleRate: 8000, Quantum: 32}, "")
	c := NewClockOutput(8000, 64, h)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	defer c.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for !h.Bridge().RequestStateSnapshot() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	var got []Notice
	for len(got) == 0 && time.Now().Before(deadline) {
		h.Bridge().Drain(func(n Notice) { got = append(got, n) })
		time.Sleep(time.Millisecond)
	}
	if len(got) != 1 || got[0].Kind != NoticeState {
		t.Fatalf("expected one snapshot, got %+v", got)
	}
	if want, got := StageRest, got[0].State.Stage; want != got {
		t.Errorf("wrong stage: want %v, got %v", want, got)
	}
}
