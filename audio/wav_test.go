package audio

import (
	"bytes"
	"testing"
)

func TestRenderWAV(t *testing.T) {
	h := newTestHost(t, Config{SampleRate: 8000, Quantum: 128}, "organ")
	if err := h.Pulse(0.05); err != nil {
		t.Fatal(err)
	}

	const frames = 800
	var buf bytes.Buffer
	if err := RenderWAV(&buf, h, h.SampleRate(), frames); err != nil {
		t.Fatal(err)
	}
	samples, err := ReadWAV(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if want, got := frames, len(samples); want != got {
		t.Fatalf("wrong number of samples: want %v, got %v", want, got)
	}
	for i, v := range samples {
		if i < 400 && v < 0.4 {
			t.Fatalf("sample %d should be gated, got %v", i, v)
		}
		if i >= 400 && v != 0 {
			t.Fatalf("sample %d should be silent, got %v", i, v)
		}
	}
}
