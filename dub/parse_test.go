package dub

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	type test struct {
		input string
		want  Command
	}
	tests := []test{
		{
			input: "state",
			want:  Command{Name: Identifier("state")},
		},
		{
			input: "set sustain.value .5",
			want: Command{
				Name: Identifier("set"),
				Args: []Node{Identifier("sustain.value"), Float(0.5)},
			},
		},
		{
			input: "pulse 2",
			want: Command{
				Name: Identifier("pulse"),
				Args: []Node{Int(2)},
			},
		},
		{
			input: `render "a/file.wav" 3 1.5`,
			want: Command{
				Name: Identifier("render"),
				Args: []Node{String("a/file.wav"), Int(3), Float(1.5)},
			},
		},
		{
			input: `load ""`,
			want: Command{
				Name: Identifier("load"),
				Args: []Node{String("")},
			},
		},
	}
	for _, test := range tests {
		t.Log(test.input)
		got, err := Parse(test.input)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("\nwant: %+v\ngot:  %+v", test.want, got)
		}
	}
}

func TestParseAll(t *testing.T) {
	got, err := ParseAll("trigger on;; pulse 0.5 ; state # ignored")
	if err != nil {
		t.Fatal(err)
	}
	want := []Command{
		{Name: "trigger", Args: []Node{Identifier("on")}},
		{Name: "pulse", Args: []Node{Float(0.5)}},
		{Name: "state"},
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("\nwant: %+v\ngot:  %+v", want, got)
	}

	if cmds, err := ParseAll("  # comment"); err != nil || len(cmds) != 0 {
		t.Errorf("expected no commands, got %+v, %v", cmds, err)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(""); err != ErrEmpty {
		t.Errorf("want %v, got %v", ErrEmpty, err)
	}
	for _, input := range []string{
		"1 2",
		`"name"`,
		"a; b",
	} {
		if _, err := Parse(input); err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
}
