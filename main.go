package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/mrdg/ahdsr/audio"
	"golang.org/x/term"
)

const (
	noticeBuffer   = 1024
	noticeInterval = 20 * time.Millisecond
)

type output interface {
	Start() error
	Stop() error
}

func main() {
	var (
		rate     = flag.Int("rate", 44100, "sample rate in Hz")
		quantum  = flag.Int("quantum", 128, "render quantum in samples")
		buffer   = flag.Int("buffer", 512, "audio buffer size in frames")
		backend  = flag.String("backend", "portaudio", "audio output: portaudio, oto or none")
		preset   = flag.String("preset", "default", "envelope preset: "+strings.Join(audio.Presets(), ", "))
		run      = flag.String("run", "", "file with commands or a Lua script to run before reading input")
		jsonMode = flag.Bool("json", false, "read and write JSON control messages")
	)
	flag.Parse()

	bridge := audio.NewBridge(noticeBuffer)
	host, err := audio.NewHost(audio.NewProps(), bridge, audio.Config{
		SampleRate: *rate,
		Quantum:    *quantum,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := audio.LoadPreset(*preset, host); err != nil {
		log.Fatal(err)
	}

	out, err := openOutput(*backend, *rate, *buffer, host)
	if err != nil {
		log.Fatal(err)
	}
	if err := out.Start(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err = serve(ctx, host, *run, *jsonMode)
	cancel()
	if stopErr := out.Stop(); stopErr != nil {
		log.Print(stopErr)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// serve reads commands until input ends while a watcher reports notices.
func serve(ctx context.Context, host *audio.Host, script string, jsonMode bool) error {
	ctx, cancel := context.WithCancel(ctx)
	env := &env{host: host, out: os.Stdout}
	w := &watcher{bridge: host.Bridge(), interval: noticeInterval}

	var rl *readline.Instance
	interactive := !jsonMode && term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		var err error
		if rl, err = readline.New("> "); err != nil {
			cancel()
			return err
		}
		defer rl.Close()
		env.out = rl.Stdout()
	}
	if jsonMode {
		w.handle = jsonNotices(os.Stdout)
	} else {
		w.handle = newPrinter(env.out, interactive).notice
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.run(ctx)
	}()
	err := func() error {
		if script != "" {
			if err := runScript(ctx, env, script); err != nil {
				return err
			}
		}
		switch {
		case jsonMode:
			return serveJSON(ctx, host.Bridge(), os.Stdin)
		case interactive:
			return repl(env, rl)
		default:
			return runLines(env, os.Stdin)
		}
	}()

	// Leave the audio thread time to answer outstanding requests.
	if ctx.Err() == nil {
		time.Sleep(4 * noticeInterval)
	}
	cancel()
	<-done
	if err == errQuit {
		return nil
	}
	return err
}

func openOutput(backend string, sampleRate, bufferSize int, host *audio.Host) (output, error) {
	switch backend {
	case "portaudio":
		sink, err := audio.NewSink(sampleRate, bufferSize)
		if err != nil {
			return nil, err
		}
		sink.AddSources(host)
		return sink, nil
	case "oto":
		return audio.NewOtoOutput(sampleRate, bufferSize, host)
	case "none":
		return audio.NewClockOutput(sampleRate, bufferSize, host), nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}
