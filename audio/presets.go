package audio

import (
	"fmt"
	"sort"
)

type Device interface {
	Set(key string, val interface{}) error
	Get(key string) (interface{}, error)
}

type preset map[string]interface{}

var presets = map[string]preset{
	"default": preset{
		PropAttackValue:  1.,
		PropAttackTime:   0.001,
		PropHoldTime:     0.0625,
		PropDecayTime:    0.125,
		PropSustainValue: 0.25,
		PropReleaseTime:  0.25,
	},
	"pluck": preset{
		PropAttackValue:  1.,
		PropAttackTime:   0.002,
		PropHoldTime:     0.,
		PropDecayTime:    0.3,
		PropSustainValue: 0.,
		PropReleaseTime:  0.05,
	},
	"pad": preset{
		PropAttackValue:  0.8,
		PropAttackTime:   1.5,
		PropHoldTime:     0.25,
		PropDecayTime:    2.,
		PropSustainValue: 0.6,
		PropReleaseTime:  3.,
	},
	"organ": preset{
		PropAttackValue:  1.,
		PropAttackTime:   0.,
		PropHoldTime:     0.,
		PropDecayTime:    0.,
		PropSustainValue: 1.,
		PropReleaseTime:  0.,
	},
}

// Presets returns the names of the built-in presets.
func Presets() []string {
	var names []string
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LoadPreset(name string, d Device) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %v", name)
	}
	for k, v := range p {
		if err := d.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}
