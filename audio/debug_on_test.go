//go:build envdebug

package audio

import (
	"errors"
	"testing"
)

func TestMismatchedLengthPanics(t *testing.T) {
	e := newTestEngine(t, 44100, 8, nil)
	in := constInputs(1, Parameters{AttackValue: 1})
	in.AttackValue = Param{0.6, 0.1, 0.2}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for mismatched input length")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected an error value, got %v", r)
		}
		var lerr *LengthError
		if !errors.As(err, &lerr) {
			t.Fatalf("expected a *LengthError, got %v", err)
		}
		if want, got := (LengthError{Input: "attackValue", Len: 3, Quantum: 8}), *lerr; want != got {
			t.Errorf("wrong error: want %+v, got %+v", want, got)
		}
	}()
	e.RenderQuantum(in)
}

func TestEmptyInputPanics(t *testing.T) {
	e := newTestEngine(t, 44100, 8, nil)
	in := constInputs(0, Parameters{AttackValue: 1})
	in.Gate = nil

	defer func() {
		if _, ok := recover().(*LengthError); !ok {
			t.Fatal("expected panic with a *LengthError for an empty gate")
		}
	}()
	e.RenderQuantum(in)
}
