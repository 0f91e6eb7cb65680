package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mrdg/ahdsr/audio"
	lua "github.com/yuin/gopher-lua"
)

// runLua runs a Lua script with the host's commands available as functions:
//
//	set(key, value)    get(key) -> number
//	trigger(on)        pulse(secs)
//	preset(name)       sleep(secs)
//	run(line) -> results of a command line
func runLua(ctx context.Context, env *env, file string) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	funcs := map[string]lua.LGFunction{
		"set": func(L *lua.LState) int {
			check(L, env.host.Set(L.CheckString(1), float64(L.CheckNumber(2))))
			return 0
		},
		"get": func(L *lua.LState) int {
			f, err := env.host.Float(L.CheckString(1))
			check(L, err)
			L.Push(lua.LNumber(f))
			return 1
		},
		"trigger": func(L *lua.LState) int {
			env.host.Bridge().SetManualOverride(L.CheckBool(1))
			return 0
		},
		"pulse": func(L *lua.LState) int {
			check(L, env.host.Pulse(float64(L.CheckNumber(1))))
			return 0
		},
		"preset": func(L *lua.LState) int {
			check(L, audio.LoadPreset(L.CheckString(1), env.host))
			return 0
		},
		"sleep": func(L *lua.LState) int {
			d := time.Duration(float64(L.CheckNumber(1)) * float64(time.Second))
			select {
			case <-time.After(d):
			case <-ctx.Done():
				L.RaiseError("%v", ctx.Err())
			}
			return 0
		},
		"run": func(L *lua.LState) int {
			results, err := env.eval(L.CheckString(1))
			if err == errQuit {
				err = nil
			}
			check(L, err)
			L.Push(lua.LString(strings.Join(results, "\n")))
			return 1
		},
	}
	for name, f := range funcs {
		L.SetGlobal(name, L.NewFunction(f))
	}
	if err := L.DoFile(file); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

func check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%v", err)
	}
}
