// Package wavfile writes canonical 44-byte-header PCM WAV files holding
// interleaved signed 16-bit samples.
package wavfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/youpy/go-wav"
)

const (
	// HeaderSize is the size of the RIFF, fmt and data chunk headers together.
	HeaderSize    = 44
	bitsPerSample = 16
	fmtChunkSize  = 16
)

// ErrWrite reports that the destination could not be created or written.
var ErrWrite = errors.New("failed to write WAV")

// Format returns the fmt chunk body for 16-bit integer PCM.
func Format(channels int, sampleRate uint32) wav.WavFormat {
	blockAlign := uint16(channels * bitsPerSample / 8)
	return wav.WavFormat{
		AudioFormat:   wav.AudioFormatPCM,
		NumChannels:   uint16(channels),
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: bitsPerSample,
	}
}

// Write serializes samples as a WAV stream.
//
// Layout:
//   - "RIFF", size of everything after this field (36 + data bytes), "WAVE"
//   - "fmt ", 16, fmt body (see Format)
//   - "data", 2*len(samples), samples little-endian
//
// The data size always reflects every sample given, even when the count is
// not a multiple of the channel count.
func Write(w io.Writer, samples []int16, channels int, sampleRate uint32) error {
	if channels < 1 {
		return fmt.Errorf("invalid channel count: %d", channels)
	}

	dataSize, err := dataChunkSize(len(samples))
	if err != nil {
		return err
	}
	format := Format(channels, sampleRate)

	bw := bufio.NewWriter(w)
	fields := []any{
		[]byte("RIFF"),
		uint32(HeaderSize - 8 + dataSize),
		[]byte("WAVE"),
		[]byte("fmt "),
		uint32(fmtChunkSize),
		&format,
		[]byte("data"),
		dataSize,
	}
	for _, f := range fields {
		if err := binary.Write(bw, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	if len(samples) > 0 {
		if err := binary.Write(bw, binary.LittleEndian, samples); err != nil {
			return fmt.Errorf("failed to write samples: %w", err)
		}
	}

	return bw.Flush()
}

// dataChunkSize returns the data chunk size for n samples, or an error when
// the RIFF size field (36 + data bytes) cannot hold it.
func dataChunkSize(n int) (uint32, error) {
	size := 2 * uint64(n)
	if size > math.MaxUint32-(HeaderSize-8) {
		return 0, fmt.Errorf("%d samples exceed the 4 GiB RIFF size limit", n)
	}
	return uint32(size), nil
}

// WriteFile creates (or truncates) path and writes samples into it.
// Every failure wraps ErrWrite.
func WriteFile(path string, samples []int16, channels int, sampleRate uint32) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := Write(f, samples, channels, sampleRate); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}
