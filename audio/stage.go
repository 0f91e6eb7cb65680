package audio

import "fmt"

// Stage is a state of the envelope state machine.
type Stage int

const (
	StageRest Stage = iota
	StageAttack
	StageHold
	StageDecay
	StageSustain
	StageRelease
)

var stageNames = [...]string{
	StageRest:    "rest",
	StageAttack:  "attack",
	StageHold:    "hold",
	StageDecay:   "decay",
	StageSustain: "sustain",
	StageRelease: "release",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

func (s Stage) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(stageNames) {
		return nil, fmt.Errorf("unknown stage %d", int(s))
	}
	return []byte(stageNames[s]), nil
}

func (s *Stage) UnmarshalText(text []byte) error {
	for n, name := range stageNames {
		if name == string(text) {
			*s = Stage(n)
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", text)
}
