package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrdg/ahdsr/audio"
)

func newTestEnv(t *testing.T) (*env, *bytes.Buffer) {
	t.Helper()
	host, err := audio.NewHost(audio.NewProps(), audio.NewBridge(64), audio.Config{
		SampleRate: 1000,
		Quantum:    16,
	})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	return &env{host: host, out: &out}, &out
}

func process(host *audio.Host, frames int) []float32 {
	samples := [][]float32{make([]float32, frames), make([]float32, frames)}
	host.Process(samples)
	return samples[0]
}

func TestSetGet(t *testing.T) {
	env, _ := newTestEnv(t)
	results, err := env.eval("set attack.time 0.5; get attack.time")
	if err != nil {
		t.Fatal(err)
	}
	if want, got := []string{"0.5"}, results; len(got) != 1 || got[0] != want[0] {
		t.Errorf("want %v, got %v", want, got)
	}

	results, err = env.eval("set release.time 20; get release.time")
	if err != nil {
		t.Fatal(err)
	}
	if want, got := "10", results[0]; want != got {
		t.Errorf("times should be clamped: want %v, got %v", want, got)
	}

	if _, err := env.eval("set level 100"); err == nil {
		t.Error("expected error for level out of range")
	}
	if _, err := env.eval("set attack.time fast"); err == nil {
		t.Error("expected error for a non-numeric value")
	}
	if _, err := env.eval("get nothing"); err == nil {
		t.Error("expected error for an unknown property")
	}
}

func TestEvalErrors(t *testing.T) {
	env, _ := newTestEnv(t)
	for _, input := range []string{
		"bogus",
		"set attack.time",
		"trigger maybe",
		"preset organ pad",
		"pulse 0",
		`render "x.wav" 0 0`,
		"state 1",
	} {
		if _, err := env.eval(input); err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
	if _, err := env.eval("quit"); err != errQuit {
		t.Errorf("want %v, got %v", errQuit, err)
	}
}

func TestTrigger(t *testing.T) {
	env, _ := newTestEnv(t)
	if _, err := env.eval("preset organ; trigger on"); err != nil {
		t.Fatal(err)
	}
	if want, got := true, env.host.Bridge().ManualOverride(); want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	if want, got := float32(1), process(env.host, 16)[15]; want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	if _, err := env.eval("trigger off"); err != nil {
		t.Fatal(err)
	}
	if want, got := float32(0), process(env.host, 16)[15]; want != got {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestPulse(t *testing.T) {
	env, _ := newTestEnv(t)
	if _, err := env.eval("preset organ; pulse 0.01"); err != nil {
		t.Fatal(err)
	}
	out := process(env.host, 16)
	if out[9] != 1 || out[10] != 0 {
		t.Errorf("expected a 10 sample pulse, got %v", out)
	}
}

func TestPresetCommand(t *testing.T) {
	env, _ := newTestEnv(t)
	results, err := env.eval("preset")
	if err != nil {
		t.Fatal(err)
	}
	if want, got := strings.Join(audio.Presets(), "\n"), results[0]; want != got {
		t.Errorf("want %q, got %q", want, got)
	}
	results, err = env.eval("preset pad; get attack.time")
	if err != nil {
		t.Fatal(err)
	}
	if want, got := "1.5", results[0]; want != got {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestPropsCommand(t *testing.T) {
	env, _ := newTestEnv(t)
	results, err := env.eval("props")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(results[0], "\n")
	if want, got := len(env.host.Keys()), len(lines); want != got {
		t.Fatalf("want %v lines, got %v", want, got)
	}
	if want, got := "attack.time", strings.Fields(lines[0])[0]; want != got {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestStateCommand(t *testing.T) {
	env, _ := newTestEnv(t)
	if _, err := env.eval("state"); err != nil {
		t.Fatal(err)
	}
	process(env.host, 16)
	var notices []audio.Notice
	env.host.Bridge().Drain(func(n audio.Notice) { notices = append(notices, n) })
	if len(notices) != 1 || notices[0].Kind != audio.NoticeState {
		t.Fatalf("expected one snapshot, got %+v", notices)
	}
}

func TestRenderCommand(t *testing.T) {
	env, _ := newTestEnv(t)
	file := filepath.Join(t.TempDir(), "out.wav")
	results, err := env.eval(`preset organ; render "` + file + `" 0.1 0.05`)
	if err != nil {
		t.Fatal(err)
	}
	if want, got := "wrote 100 frames to "+file, results[0]; want != got {
		t.Errorf("want %q, got %q", want, got)
	}

	f, err := os.Open(file)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	samples, err := audio.ReadWAV(f)
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 100, len(samples); want != got {
		t.Fatalf("want %v samples, got %v", want, got)
	}
	if samples[49] < 0.4 || samples[50] != 0 {
		t.Errorf("expected a 50 sample pulse, got %v and %v", samples[49], samples[50])
	}

	// Rendering must not disturb the live envelope.
	var notices []audio.Notice
	process(env.host, 16)
	env.host.Bridge().Drain(func(n audio.Notice) { notices = append(notices, n) })
	if len(notices) != 0 {
		t.Errorf("unexpected notices: %+v", notices)
	}
}

func TestRunLines(t *testing.T) {
	env, out := newTestEnv(t)
	script := "set hold.time 0.5\n\n# comment\nget hold.time\nquit\nget level\n"
	if err := runLines(env, strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	if want, got := "0.5\n", out.String(); want != got {
		t.Errorf("want %q, got %q", want, got)
	}

	err := runLines(env, strings.NewReader("get level\nbogus\n"))
	if err == nil || !strings.HasPrefix(err.Error(), "line 2:") {
		t.Errorf("expected error on line 2, got %v", err)
	}
}

func TestRunScript(t *testing.T) {
	env, _ := newTestEnv(t)
	file := filepath.Join(t.TempDir(), "setup.dub")
	if err := os.WriteFile(file, []byte("preset pluck\nset tone 440\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runScript(context.Background(), env, file); err != nil {
		t.Fatal(err)
	}
	if v, _ := env.host.Get(audio.PropTone); v != 440.0 {
		t.Errorf("want 440, got %v", v)
	}
	if err := runScript(context.Background(), env, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for a missing script")
	}
}
