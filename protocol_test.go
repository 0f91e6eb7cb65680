package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mrdg/ahdsr/audio"
)

func TestServeJSON(t *testing.T) {
	env, _ := newTestEnv(t)
	bridge := env.host.Bridge()
	input := strings.Join([]string{
		`{"type":"manual-trigger","value":true}`,
		``,
		`{"type":"bogus"}`,
		`not json`,
		`{"type":"getState"}`,
	}, "\n")
	if err := serveJSON(context.Background(), bridge, strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	if !bridge.ManualOverride() {
		t.Error("manual trigger was not applied")
	}

	if _, err := env.eval("preset organ"); err != nil {
		t.Fatal(err)
	}
	process(env.host, 16)

	var out bytes.Buffer
	if n := bridge.Drain(jsonNotices(&out)); n != 2 {
		t.Fatalf("expected 2 notices, got %v", n)
	}
	want := `{"type":"trigger-change","value":true}` + "\n" +
		`{"type":"state","state":{"stage":"sustain","stageProgress":0.012,"outputValue":1,` +
		`"parameters":{"attackValue":1,"attackTime":0,"holdTime":0,"decayTime":0,"sustainValue":1,"releaseTime":0}}}` + "\n"
	if got := out.String(); want != got {
		t.Errorf("\nwant: %s\ngot:  %s", want, got)
	}
}

func TestWatcher(t *testing.T) {
	env, _ := newTestEnv(t)
	var got []audio.Notice
	w := &watcher{
		bridge: env.host.Bridge(),
		handle: func(n audio.Notice) { got = append(got, n) },
	}
	if _, err := env.eval("pulse 0.005"); err != nil {
		t.Fatal(err)
	}
	process(env.host, 16)
	if want, n := 2, w.poll(); want != n {
		t.Errorf("want %v notices, got %v", want, n)
	}
	if len(got) != 2 || !got[0].Gate || got[1].Gate {
		t.Errorf("unexpected notices: %+v", got)
	}
	if want, n := 0, w.poll(); want != n {
		t.Errorf("want %v notices, got %v", want, n)
	}
}
