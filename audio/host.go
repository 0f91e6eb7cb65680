package audio

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// Properties of a Host.
const (
	PropAttackValue  = "attack.value"
	PropAttackTime   = "attack.time"
	PropHoldTime     = "hold.time"
	PropDecayTime    = "decay.time"
	PropSustainValue = "sustain.value"
	PropReleaseTime  = "release.time"
	PropLevel        = "level"
	PropTone         = "tone"
)

const twoPi = 2 * math.Pi

type Config struct {
	SampleRate int
	Quantum    int
	Pulses     int // capacity of the gate pulse queue, a power of 2
}

type pulse struct {
	samples int
}

// Host drives an Engine from an audio callback. It reads the shaping
// parameters from its properties once per quantum, turns scheduled gate
// pulses into a per-sample gate and renders whole quanta regardless of the
// buffer size the callback asks for.
type Host struct {
	*Props
	engine *Engine
	bridge *Bridge
	pulses *eventBuffer[pulse]

	attackValue  *atomic.Value
	attackTime   *atomic.Value
	holdTime     *atomic.Value
	decayTime    *atomic.Value
	sustainValue *atomic.Value
	releaseTime  *atomic.Value
	level        *atomic.Value
	tone         *atomic.Value

	inputs   Inputs
	gate     []float64
	gateLeft int // samples left of the current pulse
	schedule func(pulse)
	signal   []float64
	pos      int
	phase    float64
}

func NewHost(props *Props, bridge *Bridge, cfg Config) (*Host, error) {
	if cfg.Pulses == 0 {
		cfg.Pulses = 16
	}
	engine, err := NewEngine(cfg.SampleRate, cfg.Quantum, bridge)
	if err != nil {
		return nil, fmt.Errorf("new host: %w", err)
	}
	h := &Host{
		Props:  props,
		engine: engine,
		bridge: bridge,
		pulses: newEventBuffer[pulse](cfg.Pulses),
		gate:   make([]float64, cfg.Quantum),
		signal: make([]float64, cfg.Quantum),
		pos:    cfg.Quantum,
	}
	for _, p := range []struct {
		dest **atomic.Value
		key  string
		set  setter
		init float64
	}{
		{&h.attackValue, PropAttackValue, setValue, 1},
		{&h.attackTime, PropAttackTime, setTime, 0.001},
		{&h.holdTime, PropHoldTime, setTime, 0.0625},
		{&h.decayTime, PropDecayTime, setTime, 0.125},
		{&h.sustainValue, PropSustainValue, setValue, 0.25},
		{&h.releaseTime, PropReleaseTime, setTime, 0.25},
		{&h.level, PropLevel, setLevel, 0},
		{&h.tone, PropTone, setTone, 0},
	} {
		if *p.dest, err = props.Register(p.key, p.set, p.init); err != nil {
			return nil, fmt.Errorf("new host: %w", err)
		}
	}
	h.inputs = Inputs{
		Gate:         h.gate,
		AttackValue:  make(Param, 1),
		AttackTime:   make(Param, 1),
		HoldTime:     make(Param, 1),
		DecayTime:    make(Param, 1),
		SustainValue: make(Param, 1),
		ReleaseTime:  make(Param, 1),
	}
	if err := h.inputs.Validate(cfg.Quantum); err != nil {
		return nil, fmt.Errorf("new host: %w", err)
	}
	h.schedule = func(p pulse) { h.gateLeft = p.samples }
	return h, nil
}

func (h *Host) Bridge() *Bridge { return h.bridge }
func (h *Host) SampleRate() int { return h.engine.SampleRate() }
func (h *Host) Quantum() int    { return h.engine.Quantum() }

// Pulse holds the automated gate active for seconds, starting at the next
// quantum. A pulse that arrives while another is running restarts the count.
// Pulse must only be called from the control goroutine.
func (h *Host) Pulse(seconds float64) error {
	samples := TimeToSamples(clamp(seconds, 0, MaxTime), h.engine.sampleRate)
	if samples == 0 {
		return errors.New("pulse length must be positive")
	}
	if h.pulses.free() == 0 || !h.pulses.push(pulse{samples: samples}) {
		return fmt.Errorf("gate pulse queue is full: %d pulses pending", len(h.pulses.events))
	}
	return nil
}

// Process adds the host's output to every channel of samples.
func (h *Host) Process(samples [][]float32) {
	if len(samples) == 0 {
		return
	}
	db := h.level.Load().(float64)
	gain := math.Pow(10, db/20.0)
	for n := range samples[0] {
		if h.pos == len(h.signal) {
			h.renderQuantum()
			h.pos = 0
		}
		sample := float32(gain * h.signal[h.pos])
		for ch := range samples {
			samples[ch][n] += sample
		}
		h.pos++
	}
}

func (h *Host) renderQuantum() {
	h.pulses.iter(h.schedule)
	for i := range h.gate {
		if h.gateLeft > 0 {
			h.gate[i] = 1
			h.gateLeft--
		} else {
			h.gate[i] = 0
		}
	}
	h.inputs.AttackValue[0] = h.attackValue.Load().(float64)
	h.inputs.AttackTime[0] = h.attackTime.Load().(float64)
	h.inputs.HoldTime[0] = h.holdTime.Load().(float64)
	h.inputs.DecayTime[0] = h.decayTime.Load().(float64)
	h.inputs.SustainValue[0] = h.sustainValue.Load().(float64)
	h.inputs.ReleaseTime[0] = h.releaseTime.Load().(float64)

	env := h.engine.RenderQuantum(&h.inputs)

	freq := h.tone.Load().(float64)
	delta := freq * twoPi / h.engine.sampleRate
	for i, v := range env {
		if freq > 0 {
			v *= math.Sin(h.phase)
			h.phase += delta
			if h.phase >= twoPi {
				h.phase -= twoPi
			}
		}
		h.signal[i] = v
	}
}
