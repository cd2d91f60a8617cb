// Package transform holds optional post-processing applied to decoded clips
// before they are written: channel downmix and sample rate conversion.
package transform

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"

	soxr "github.com/zaf/resample"
)

// MaxSampleRate is the highest rate accepted as a resample target.
const MaxSampleRate = 384000

// Mono averages every frame of interleaved samples into a single sample.
// Input with one channel is returned unchanged; a trailing partial frame is dropped.
func Mono(samples []int16, channels int) []int16 {
	if channels <= 1 {
		return samples
	}

	out := make([]int16, len(samples)/channels)
	for i := range out {
		sum := int32(0)
		for ch := 0; ch < channels; ch++ {
			sum += int32(samples[i*channels+ch])
		}
		out[i] = int16(sum / int32(channels))
	}
	return out
}

// Resample converts interleaved 16-bit samples from fromRate to toRate
// using SoXR at high quality.
func Resample(samples []int16, fromRate, toRate, channels int) ([]int16, error) {
	if fromRate == toRate || len(samples) == 0 {
		return samples, nil
	}
	if fromRate <= 0 || toRate <= 0 || toRate > MaxSampleRate {
		return nil, fmt.Errorf("invalid sample rate conversion %d -> %d (valid range 1-%d)", fromRate, toRate, MaxSampleRate)
	}

	var bufResampled bytes.Buffer
	bufWriter := bufio.NewWriter(&bufResampled)

	resampler, err := soxr.New(
		bufWriter,
		float64(fromRate),
		float64(toRate),
		channels,
		soxr.I16,
		soxr.HighQ,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	if _, err := resampler.Write(Bytes(samples)); err != nil {
		resampler.Close()
		return nil, fmt.Errorf("failed to resample: %w", err)
	}

	if err := resampler.Close(); err != nil {
		return nil, fmt.Errorf("failed to close resampler: %w", err)
	}

	if err := bufWriter.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush buffer: %w", err)
	}

	return Samples(bufResampled.Bytes()), nil
}

// Bytes encodes samples as little-endian 16-bit PCM.
func Bytes(samples []int16) []byte {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	return buf
}

// Samples decodes little-endian 16-bit PCM; a trailing odd byte is ignored.
func Samples(data []byte) []int16 {
	out := make([]int16, len(data)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return out
}
