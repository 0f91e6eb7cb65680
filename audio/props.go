package audio

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Props stores device configuration that can be updated without locks. All properties
// should be registered before any reads take place.
type Props struct {
	properties map[string]*atomic.Value
	setters    map[string]setter
}

func NewProps() *Props {
	return &Props{
		properties: make(map[string]*atomic.Value),
		setters:    make(map[string]setter),
	}
}

// Set updates the property with value. The key has to be registered first using Register.
func (p *Props) Set(key string, value interface{}) error {
	prop, ok := p.properties[key]
	if !ok {
		return fmt.Errorf("unknown property %s", key)
	}
	set, ok := p.setters[key]
	if !ok {
		return fmt.Errorf("unknown property %s", key)
	}
	if err := set(value, prop); err != nil {
		return fmt.Errorf("set property %s: %w", key, err)
	}
	return nil
}

func (p *Props) Get(key string) (interface{}, error) {
	prop, ok := p.properties[key]
	if !ok {
		return nil, fmt.Errorf("unknown property %s", key)
	}
	return prop.Load(), nil
}

// Float returns the value of a float64 property.
func (p *Props) Float(key string) (float64, error) {
	v, err := p.Get(key)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s is not a number: %v", key, v)
	}
	return f, nil
}

// CopyTo sets every property of p on d.
func (p *Props) CopyTo(d Device) error {
	for _, key := range p.Keys() {
		if err := d.Set(key, p.properties[key].Load()); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the registered property names in sorted order.
func (p *Props) Keys() []string {
	keys := make([]string, 0, len(p.properties))
	for k := range p.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Register adds a new property.
func (p *Props) Register(key string, set setter, init interface{}) (*atomic.Value, error) {
	if _, ok := p.properties[key]; ok {
		return nil, fmt.Errorf("property %s is already registered", key)
	}
	var prop atomic.Value
	p.properties[key] = &prop
	p.setters[key] = set
	return &prop, set(init, &prop)
}

type setter func(val interface{}, dest *atomic.Value) error

var (
	setLevel = setFloat64(-40, 10)
	setTone  = setFloat64(0, 20_000)
	setTime  = clampFloat64(MinTime, MaxTime)
	setValue = clampFloat64(MinLevel, MaxLevel)
)

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("value is not a float64: %v", v)
	}
}

// setFloat64 rejects values outside of min and max.
func setFloat64(min, max float64) setter {
	return func(v interface{}, dest *atomic.Value) error {
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		if f < min || f > max {
			return fmt.Errorf("property value is not in valid range %v - %v: %v", min, max, f)
		}
		dest.Store(f)
		return nil
	}
}

// clampFloat64 stores values clamped to min and max.
func clampFloat64(min, max float64) setter {
	return func(v interface{}, dest *atomic.Value) error {
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		dest.Store(clamp(f, min, max))
		return nil
	}
}
