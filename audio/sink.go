package audio

import (
	"github.com/gordonklaus/portaudio"
)

// Source renders non-interleaved audio into samples, one slice per channel.
// Sources add to samples rather than overwrite them.
type Source interface {
	Process(samples [][]float32)
}

// NewSink opens the default PortAudio output stream. The stream calls
// Process from its real-time thread once Start is called.
func NewSink(sampleRate, bufferSize int) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	var s Sink
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(sampleRate), bufferSize, s.Process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return &s, nil
}

func (s *Sink) Start() error {
	return s.stream.Start()
}

type Sink struct {
	sources []Source
	stream  *portaudio.Stream
}

func (s *Sink) Stop() error {
	if err := s.stream.Close(); err != nil {
		portaudio.Terminate()
		return err
	}
	return portaudio.Terminate()
}

// AddSources registers sources. It must be called before Start.
func (s *Sink) AddSources(sources ...Source) {
	s.sources = append(s.sources, sources...)
}

func (s *Sink) Process(samples [][]float32) {
	for i := range samples {
		for j := range samples[i] {
			samples[i][j] = 0.
		}
	}
	for _, source := range s.sources {
		source.Process(samples)
	}
}
