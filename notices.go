package main

import (
	"context"
	"log"
	"time"

	"github.com/mrdg/ahdsr/audio"
)

// watcher polls the bridge for notices from the audio thread.
type watcher struct {
	bridge   *audio.Bridge
	interval time.Duration
	handle   func(audio.Notice)
	dropped  uint64
}

func (w *watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.poll()
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

// poll hands every pending notice to the handler and reports notices the
// audio thread had to drop since the last poll.
func (w *watcher) poll() int {
	n := w.bridge.Drain(w.handle)
	if dropped := w.bridge.Dropped(); dropped != w.dropped {
		log.Printf("notice queue full: dropped %d notices", dropped-w.dropped)
		w.dropped = dropped
	}
	return n
}
