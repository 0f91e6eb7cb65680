package audio

import (
	"sync/atomic"
	"time"
)

// ClockOutput drives a Source in real time without an audio device. Every
// buffer period the source renders one buffer, which is then discarded.
type ClockOutput struct {
	source  Source
	period  time.Duration
	planes  [][]float32
	samples atomic.Uint64 // frames rendered since Start

	stop chan struct{}
	done chan struct{}
}

func NewClockOutput(sampleRate, bufferSize int, source Source) *ClockOutput {
	return &ClockOutput{
		source: source,
		period: time.Duration(bufferSize) * time.Second / time.Duration(sampleRate),
		planes: [][]float32{make([]float32, bufferSize), make([]float32, bufferSize)},
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (c *ClockOutput) Start() error {
	go c.run()
	return nil
}

func (c *ClockOutput) run() {
	defer close(c.done)
	ticker := time.NewTicker(c.period)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			for _, plane := range c.planes {
				for i := range plane {
					plane[i] = 0
				}
			}
			c.source.Process(c.planes)
			c.samples.Add(uint64(len(c.planes[0])))
		}
	}
}

// Stop waits for the buffer being rendered to finish.
func (c *ClockOutput) Stop() error {
	close(c.stop)
	<-c.done
	return nil
}

func (c *ClockOutput) Samples() uint64 {
	return c.samples.Load()
}
