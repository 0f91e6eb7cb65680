package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"

	"github.com/mrdg/ahdsr/audio"
)

// serveJSON applies one JSON control message per line of r. Malformed
// messages are logged and skipped.
func serveJSON(ctx context.Context, bridge *audio.Bridge, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		m, err := audio.DecodeMessage(line)
		if err != nil {
			log.Printf("ignoring message: %v", err)
			continue
		}
		if err := bridge.Apply(m); err != nil {
			log.Printf("ignoring message: %v", err)
		}
	}
	return scanner.Err()
}

// jsonNotices writes every notice as one line of JSON.
func jsonNotices(w io.Writer) func(audio.Notice) {
	enc := json.NewEncoder(w)
	return func(n audio.Notice) {
		if err := enc.Encode(n.Message()); err != nil {
			log.Printf("write notice: %v", err)
		}
	}
}
