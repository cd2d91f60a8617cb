package wav

import (
	"fmt"
	"io"
	"os"

	"github.com/youpy/go-wav"
)

// Decoder wraps go-wav for reading exported 16-bit PCM WAV files.
// Implements types.AudioDecoder interface.
type Decoder struct {
	file     *os.File
	reader   *wav.Reader
	rate     int
	channels int
	bps      int
}

// NewDecoder creates a new WAV decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Open opens a WAV file for decoding
func (d *Decoder) Open(fileName string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("failed to open WAV file: %w", err)
	}

	reader := wav.NewReader(file)
	format, err := reader.Format()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to read WAV format: %w", err)
	}

	if format.AudioFormat != wav.AudioFormatPCM || format.BitsPerSample != 16 {
		file.Close()
		return fmt.Errorf("unsupported WAV format: %d/%d-bit (only 16-bit PCM supported)", format.AudioFormat, format.BitsPerSample)
	}
	if format.NumChannels < 1 || format.NumChannels > 2 {
		file.Close()
		return fmt.Errorf("unsupported channel count: %d", format.NumChannels)
	}

	d.file = file
	d.reader = reader
	d.rate = int(format.SampleRate)
	d.channels = int(format.NumChannels)
	d.bps = int(format.BitsPerSample)

	return nil
}

// Close closes the WAV file
func (d *Decoder) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	d.reader = nil
	return err
}

// GetFormat returns the audio format (sample rate, channels, bits per sample)
func (d *Decoder) GetFormat() (rate, channels, bitsPerSample int) {
	return d.rate, d.channels, d.bps
}

// DecodeSamples reads up to samples frames into audio as little-endian PCM.
func (d *Decoder) DecodeSamples(samples int, audio []byte) (int, error) {
	if d.reader == nil {
		return 0, fmt.Errorf("decoder not initialized")
	}

	frameBytes := d.channels * 2
	samples = min(samples, len(audio)/frameBytes)
	if samples == 0 {
		return 0, nil
	}

	frames, err := d.reader.ReadSamples(uint32(samples))
	if len(frames) == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	for i, frame := range frames {
		for ch := 0; ch < d.channels; ch++ {
			v := frame.Values[ch]
			offset := i*frameBytes + ch*2
			audio[offset] = byte(v)
			audio[offset+1] = byte(v >> 8)
		}
	}

	return len(frames), nil
}
