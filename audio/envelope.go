package audio

import (
	"errors"
	"math"
)

// Engine renders one AHDSR envelope a quantum at a time. All of its state is
// owned by the render thread; the controller observes it only through the
// snapshots published on the Bridge.
type Engine struct {
	sampleRate float64
	quantum    int
	bridge     *Bridge
	out        []float64
	quanta     uint64

	stage    Stage
	elapsed  int     // samples spent in the current stage
	start    float64 // output value when the stage was entered
	target   float64 // value the stage ramps towards
	value    float64 // last output sample
	progress float64
	gate     bool
	params   Parameters // values used for the last sample
}

// NewEngine returns an engine at rest. bridge may be nil, in which case no
// notices are produced.
func NewEngine(sampleRate, quantum int, bridge *Bridge) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sample rate must be positive")
	}
	if quantum <= 0 {
		return nil, errors.New("quantum size must be positive")
	}
	if err := bridge.attach(); err != nil {
		return nil, err
	}
	return &Engine{
		sampleRate: float64(sampleRate),
		quantum:    quantum,
		bridge:     bridge,
		out:        make([]float64, quantum),
	}, nil
}

func (e *Engine) SampleRate() int { return int(e.sampleRate) }
func (e *Engine) Quantum() int    { return e.quantum }

// RenderQuantum advances the envelope by one quantum and returns its output.
// The returned slice belongs to the engine and is overwritten by the next
// call.
func (e *Engine) RenderQuantum(in *Inputs) []float64 {
	if debug {
		if err := in.Validate(e.quantum); err != nil {
			panic(err)
		}
	}
	override := e.bridge.manualOverride()

	for i := range e.out {
		p := in.params(i, e.quantum)

		gate := override || in.Gate.at(i, e.quantum) > 0
		if gate != e.gate {
			e.gate = gate
			if gate {
				e.enter(StageAttack, e.value, p.AttackValue)
			} else {
				e.enter(StageRelease, e.value, 0)
			}
			e.bridge.gateChanged(gate, i, e.quanta)
		}

		e.step(p)
		e.params = p
		e.out[i] = e.value
	}

	e.bridge.answer(e.quanta, e.Snapshot())
	e.quanta++
	return e.out
}

// Snapshot returns the current state. It must only be called from the
// render thread.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Stage:         e.stage,
		StageProgress: e.progress,
		OutputValue:   e.value,
		Parameters:    e.params,
	}
}

func (e *Engine) enter(stage Stage, start, target float64) {
	e.stage = stage
	e.start = start
	e.target = target
	e.elapsed = 0
	e.progress = 0
}

// step computes the output for one sample in the current stage and moves to
// the next stage when the current one completes. A completing stage outputs
// its target; the next stage starts from there on the following sample.
func (e *Engine) step(p Parameters) {
	switch e.stage {
	case StageRest:
		e.value = 0
		e.progress = 0
	case StageAttack:
		e.target = p.AttackValue
		if e.ramp(p.AttackTime) {
			e.enter(StageHold, p.AttackValue, p.AttackValue)
		}
	case StageHold:
		e.value = p.AttackValue
		e.progress = e.fraction(p.HoldTime)
		e.elapsed++
		if e.progress >= 1 {
			e.enter(StageDecay, p.AttackValue, p.SustainValue)
		}
	case StageDecay:
		e.target = p.SustainValue
		if e.ramp(p.DecayTime) {
			e.enter(StageSustain, p.SustainValue, p.SustainValue)
		}
	case StageSustain:
		e.value = p.SustainValue
		// Sustain has no length, so its progress wraps every second.
		secs := float64(e.elapsed) / e.sampleRate
		e.progress = secs - math.Floor(secs)
		e.elapsed++
	case StageRelease:
		if e.ramp(p.ReleaseTime) {
			e.enter(StageRest, 0, 0)
		}
	}
}

// ramp interpolates linearly from start to target over seconds and reports
// whether the ramp is complete.
func (e *Engine) ramp(seconds float64) bool {
	e.progress = e.fraction(seconds)
	e.elapsed++
	if e.progress >= 1 {
		e.value = e.target
		return true
	}
	e.value = e.start + (e.target-e.start)*e.progress
	return false
}

// fraction is the progress through a stage lasting seconds, in [0, 1].
func (e *Engine) fraction(seconds float64) float64 {
	n := TimeToSamples(seconds, e.sampleRate)
	if n == 0 || e.elapsed >= n {
		return 1
	}
	return float64(e.elapsed) / float64(n)
}
