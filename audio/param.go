package audio

import (
	"fmt"
	"math"
)

// Parameter bounds. Values outside these ranges are clamped, never rejected.
const (
	MinLevel = 0.0
	MaxLevel = 1.0
	MinTime  = 0.0
	MaxTime  = 10.0
)

// Param is a control input for one quantum: either a single value held for
// the whole quantum or one value per sample.
type Param []float64

// at returns the value for sample i of an n sample quantum. Sequences whose
// length is neither 1 nor n are broadcast from their first element, and an
// empty sequence reads as 0.
func (p Param) at(i, n int) float64 {
	switch len(p) {
	case 0:
		return 0
	case n:
		return p[i]
	default:
		return p[0]
	}
}

// Inputs holds the gate and the six shaping parameters for one quantum.
type Inputs struct {
	Gate         Param
	AttackValue  Param
	AttackTime   Param
	HoldTime     Param
	DecayTime    Param
	SustainValue Param
	ReleaseTime  Param
}

// LengthError reports an input sequence whose length is neither 1 nor the
// quantum size.
type LengthError struct {
	Input   string
	Len     int
	Quantum int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("input %s has length %d, want 1 or %d", e.Input, e.Len, e.Quantum)
}

// Validate checks that every sequence has length 1 or n.
func (in *Inputs) Validate(n int) error {
	for _, p := range []struct {
		name  string
		param Param
	}{
		{"gate", in.Gate},
		{"attackValue", in.AttackValue},
		{"attackTime", in.AttackTime},
		{"holdTime", in.HoldTime},
		{"decayTime", in.DecayTime},
		{"sustainValue", in.SustainValue},
		{"releaseTime", in.ReleaseTime},
	} {
		if l := len(p.param); l != 1 && l != n {
			return &LengthError{Input: p.name, Len: l, Quantum: n}
		}
	}
	return nil
}

// Parameters are the clamped shaping values in effect for one sample.
type Parameters struct {
	AttackValue  float64 `json:"attackValue"`
	AttackTime   float64 `json:"attackTime"`
	HoldTime     float64 `json:"holdTime"`
	DecayTime    float64 `json:"decayTime"`
	SustainValue float64 `json:"sustainValue"`
	ReleaseTime  float64 `json:"releaseTime"`
}

func (in *Inputs) params(i, n int) Parameters {
	return Parameters{
		AttackValue:  clamp(in.AttackValue.at(i, n), MinLevel, MaxLevel),
		AttackTime:   clamp(in.AttackTime.at(i, n), MinTime, MaxTime),
		HoldTime:     clamp(in.HoldTime.at(i, n), MinTime, MaxTime),
		DecayTime:    clamp(in.DecayTime.at(i, n), MinTime, MaxTime),
		SustainValue: clamp(in.SustainValue.at(i, n), MinLevel, MaxLevel),
		ReleaseTime:  clamp(in.ReleaseTime.at(i, n), MinTime, MaxTime),
	}
}

// TimeToSamples converts a duration in seconds to a whole number of samples.
// Any positive duration lasts at least one sample.
func TimeToSamples(seconds, sampleRate float64) int {
	if !(seconds > 0) {
		return 0
	}
	n := int(math.Round(seconds * sampleRate))
	if n < 1 {
		return 1
	}
	return n
}

func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
