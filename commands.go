package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/mrdg/ahdsr/audio"
	"github.com/mrdg/ahdsr/dub"
)

type command struct {
	name  string
	help  string
	run   func(*env, []dub.Node) (string, error)
	arity int // -n means len(args) must be <= n
}

var commands []command

func init() {
	commands = []command{
		{"trigger", "trigger on|off: hold the gate open or release it", triggerCommand, 1},
		{"pulse", "pulse secs: open the gate for secs", pulseCommand, 1},
		{"set", "set key value: update a property", setCommand, 2},
		{"get", "get key: show a property", getCommand, 1},
		{"props", "props: show all properties", propsCommand, 0},
		{"preset", "preset [name]: load a preset or list them", presetCommand, -1},
		{"state", "state: request a snapshot of the envelope", stateCommand, 0},
		{"render", `render "file.wav" secs gateSecs: bounce the envelope to a file`, renderCommand, 3},
		{"help", "help: show this help", helpCommand, 0},
		{"quit", "quit: exit", quitCommand, 0},
	}
}

func triggerCommand(env *env, args []dub.Node) (string, error) {
	var state string
	if err := readArgs(args, &state); err != nil {
		return "", err
	}
	switch state {
	case "on", "true":
		env.host.Bridge().SetManualOverride(true)
	case "off", "false":
		env.host.Bridge().SetManualOverride(false)
	default:
		return "", fmt.Errorf("expected on or off, got %s", state)
	}
	return "", nil
}

func pulseCommand(env *env, args []dub.Node) (string, error) {
	var secs float64
	if err := readArgs(args, &secs); err != nil {
		return "", err
	}
	return "", env.host.Pulse(secs)
}

func setCommand(env *env, args []dub.Node) (string, error) {
	var key string
	var value float64
	if err := readArgs(args, &key, &value); err != nil {
		return "", err
	}
	return "", env.host.Set(key, value)
}

func getCommand(env *env, args []dub.Node) (string, error) {
	var key string
	if err := readArgs(args, &key); err != nil {
		return "", err
	}
	v, err := env.host.Get(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

func propsCommand(env *env, args []dub.Node) (string, error) {
	var lines []string
	for _, key := range env.host.Keys() {
		v, err := env.host.Get(key)
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf("%-14s %v", key, v))
	}
	return strings.Join(lines, "\n"), nil
}

func presetCommand(env *env, args []dub.Node) (string, error) {
	if len(args) == 0 {
		return strings.Join(audio.Presets(), "\n"), nil
	}
	var name string
	if err := readArgs(args, &name); err != nil {
		return "", err
	}
	return "", audio.LoadPreset(name, env.host)
}

func stateCommand(env *env, args []dub.Node) (string, error) {
	if !env.host.Bridge().RequestStateSnapshot() {
		return "", errors.New("no envelope is running")
	}
	return "", nil
}

// renderCommand bounces a copy of the host's current settings to a WAV file
// with the gate open for the first gateSecs.
func renderCommand(env *env, args []dub.Node) (string, error) {
	var (
		file           string
		secs, gateSecs float64
	)
	if err := readArgs(args, &file, &secs, &gateSecs); err != nil {
		return "", err
	}
	if secs <= 0 {
		return "", fmt.Errorf("length must be positive: %v", secs)
	}
	offline, err := audio.NewHost(audio.NewProps(), nil, audio.Config{
		SampleRate: env.host.SampleRate(),
		Quantum:    env.host.Quantum(),
	})
	if err != nil {
		return "", err
	}
	if err := env.host.CopyTo(offline); err != nil {
		return "", err
	}
	if gateSecs > 0 {
		if err := offline.Pulse(gateSecs); err != nil {
			return "", err
		}
	}

	f, err := os.Create(file)
	if err != nil {
		return "", err
	}
	frames := int(math.Round(secs * float64(offline.SampleRate())))
	if err := audio.RenderWAV(f, offline, offline.SampleRate(), frames); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("wrote %d frames to %s", frames, file), nil
}

func helpCommand(env *env, args []dub.Node) (string, error) {
	var lines []string
	for _, cmd := range commands {
		lines = append(lines, cmd.help)
	}
	return strings.Join(lines, "\n"), nil
}

func quitCommand(env *env, args []dub.Node) (string, error) {
	return "", errQuit
}

func readArgs(args []dub.Node, slots ...interface{}) error {
	if len(args) != len(slots) {
		return errors.New("not enough arguments")
	}
	for n, arg := range args {
		dest := slots[n]
		switch p := dest.(type) {
		case *string:
			switch s := arg.(type) {
			case dub.String:
				*p = string(s)
			case dub.Identifier:
				*p = string(s)
			default:
				return fmt.Errorf("argument error: expected a string or identifier")
			}
		case *float64:
			switch v := arg.(type) {
			case dub.Float:
				*p = float64(v)
			case dub.Int:
				*p = float64(v)
			default:
				return fmt.Errorf("argument error: expected a number")
			}
		default:
			panic("readArgs: unhandled destination type: " + fmt.Sprint(p))
		}
	}
	return nil
}
