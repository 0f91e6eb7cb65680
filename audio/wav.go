package audio

import (
	"io"

	wav "github.com/youpy/go-wav"
)

const (
	wavChannels      = 2
	wavBitsPerSample = 16
	renderBlock      = 512
)

// RenderWAV renders frames of src into a 16 bit stereo WAV file written to w.
func RenderWAV(w io.Writer, src Source, sampleRate, frames int) error {
	writer := wav.NewWriter(w, uint32(frames), wavChannels, uint32(sampleRate), wavBitsPerSample)
	planes := [][]float32{make([]float32, renderBlock), make([]float32, renderBlock)}
	samples := make([]wav.Sample, renderBlock)

	const scale = 1<<15 - 1
	for done := 0; done < frames; {
		n := renderBlock
		if frames-done < n {
			n = frames - done
		}
		block := [][]float32{planes[0][:n], planes[1][:n]}
		for ch := range block {
			for i := range block[ch] {
				block[ch][i] = 0
			}
		}
		src.Process(block)
		for i := 0; i < n; i++ {
			samples[i].Values[0] = int(scale * clamp(float64(block[0][i]), -1, 1))
			samples[i].Values[1] = int(scale * clamp(float64(block[1][i]), -1, 1))
		}
		if err := writer.WriteSamples(samples[:n]); err != nil {
			return err
		}
		done += n
	}
	return nil
}

type wavSource interface {
	io.Reader
	io.ReaderAt
}

// ReadWAV returns the first channel of a WAV file as floats in [-1, 1].
func ReadWAV(r wavSource) ([]float64, error) {
	reader := wav.NewReader(r)
	var out []float64
	for {
		samples, err := reader.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(samples) == 0 {
			break
		}
		for _, sample := range samples {
			out = append(out, reader.FloatValue(sample, 0))
		}
	}
	return out, nil
}
