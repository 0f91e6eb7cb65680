package audio

import (
	"encoding/binary"
	"math"

	"github.com/ebitengine/oto/v3"
)

// streamReader turns a Source into an io.Reader of interleaved stereo float32
// little endian frames.
type streamReader struct {
	source Source
	planes [][]float32
}

func newStreamReader(source Source, frames int) *streamReader {
	return &streamReader{
		source: source,
		planes: [][]float32{make([]float32, frames), make([]float32, frames)},
	}
}

func (r *streamReader) Read(p []byte) (int, error) {
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	// Only happens when the device asks for more than it did before.
	if cap(r.planes[0]) < frames {
		r.planes[0] = make([]float32, frames)
		r.planes[1] = make([]float32, frames)
	}
	left := r.planes[0][:frames]
	right := r.planes[1][:frames]
	for i := range left {
		left[i] = 0
		right[i] = 0
	}
	r.planes[0] = left
	r.planes[1] = right
	r.source.Process(r.planes)
	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint32(p[i*8:], math.Float32bits(left[i]))
		binary.LittleEndian.PutUint32(p[i*8+4:], math.Float32bits(right[i]))
	}
	return frames * 8, nil
}

// OtoOutput plays a Source through oto.
type OtoOutput struct {
	ctx    *oto.Context
	player *oto.Player
}

func NewOtoOutput(sampleRate, bufferSize int, source Source) (*OtoOutput, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &OtoOutput{
		ctx:    ctx,
		player: ctx.NewPlayer(newStreamReader(source, bufferSize)),
	}, nil
}

func (o *OtoOutput) Start() error {
	o.player.Play()
	return nil
}

func (o *OtoOutput) Stop() error {
	return o.player.Close()
}
