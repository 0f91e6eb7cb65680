package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mrdg/ahdsr/audio"
	"github.com/mrdg/ahdsr/dub"
)

var errQuit = errors.New("quit")

type env struct {
	host *audio.Host
	out  io.Writer
}

func (e *env) eval(input string) ([]string, error) {
	cmds, err := dub.ParseAll(input)
	if err != nil {
		return nil, err
	}
	var results []string
	for _, command := range cmds {
		result, err := e.exec(command)
		if err != nil {
			return results, err
		}
		if result != "" {
			results = append(results, result)
		}
	}
	return results, nil
}

func (e *env) exec(command dub.Command) (string, error) {
	name := string(command.Name)
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if cmd.arity < 0 {
			arity := -cmd.arity
			if len(command.Args) > arity {
				return "", fmt.Errorf("%s: wrong number of arguments: want at most %v, got %v",
					cmd.name, arity, len(command.Args))
			}
		} else if len(command.Args) != cmd.arity {
			return "", fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(command.Args))
		}
		result, err := cmd.run(e, command.Args)
		if err != nil && err != errQuit {
			return result, fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return result, err
	}
	return "", fmt.Errorf("unknown command: %s", name)
}

// evalLine evaluates a line and prints its results. It returns errQuit when
// the line asks to quit and any other error as the result.
func (e *env) evalLine(line string) error {
	results, err := e.eval(line)
	for _, result := range results {
		fmt.Fprintln(e.out, result)
	}
	return err
}

func repl(env *env, rl *readline.Instance) error {
	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return nil
		}
		if err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			fmt.Fprintln(env.out, err)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		if err := env.evalLine(line); err == errQuit {
			return nil
		} else if err != nil {
			fmt.Fprintln(env.out, err)
		}
	}
}

// runLines evaluates every line of r and stops at the first error.
func runLines(env *env, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := env.evalLine(line); err == errQuit {
			return nil
		} else if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

// runScript runs a file of commands, or a Lua script when the file name ends
// in .lua.
func runScript(ctx context.Context, env *env, file string) error {
	if filepath.Ext(file) == ".lua" {
		return runLua(ctx, env, file)
	}
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := runLines(env, f); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return nil
}
