package sdp

import (
	"fmt"
	"io"
	"strconv"

	sdpfile "github.com/drgolem/sdptools/pkg/sdp"
)

// Decoder exposes one entry of an SDP container as a stream of 16-bit PCM.
// Implements types.AudioDecoder interface.
type Decoder struct {
	entry string
	index int
	name  string
	clip  *sdpfile.Clip
	pos   int // next sample (not frame) to hand out
}

// NewDecoder creates a decoder for the entry selected by name or decimal index.
// An empty selector picks entry 0.
func NewDecoder(entry string) *Decoder {
	return &Decoder{entry: entry, index: -1}
}

// Open loads the container and decodes the selected entry into memory.
func (d *Decoder) Open(fileName string) error {
	c, err := sdpfile.ReadFile(fileName)
	if err != nil {
		return err
	}

	index, err := resolve(c, d.entry)
	if err != nil {
		return err
	}

	clip, err := c.Clip(index)
	if err != nil {
		return fmt.Errorf("entry %d: %w", index, err)
	}

	d.index = index
	d.name = c.Records[index].Name()
	d.clip = &clip
	d.pos = 0
	return nil
}

func resolve(c *sdpfile.Container, entry string) (int, error) {
	if entry == "" {
		entry = "0"
	}
	if i := c.Lookup(entry); i >= 0 {
		return i, nil
	}
	i, err := strconv.Atoi(entry)
	if err != nil || i < 0 || i >= len(c.Records) {
		return 0, fmt.Errorf("no entry %q (container has %d entries)", entry, len(c.Records))
	}
	return i, nil
}

// Close drops the decoded clip.
func (d *Decoder) Close() error {
	d.clip = nil
	return nil
}

// GetFormat returns the audio format (sample rate, channels, bits per sample)
func (d *Decoder) GetFormat() (rate, channels, bitsPerSample int) {
	if d.clip == nil {
		return 0, 0, 0
	}
	return int(d.clip.SampleRate), d.clip.Channels, 16
}

// DecodeSamples copies up to samples frames of little-endian PCM into audio.
func (d *Decoder) DecodeSamples(samples int, audio []byte) (int, error) {
	if d.clip == nil {
		return 0, fmt.Errorf("decoder not initialized")
	}

	channels := d.clip.Channels
	remaining := (len(d.clip.Samples) - d.pos) / channels
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(samples, remaining, len(audio)/(2*channels))
	n := frames * channels
	for i, s := range d.clip.Samples[d.pos : d.pos+n] {
		audio[2*i] = byte(s)
		audio[2*i+1] = byte(s >> 8)
	}
	d.pos += n

	return frames, nil
}

// Index returns the resolved entry index, or -1 before Open.
func (d *Decoder) Index() int {
	return d.index
}

// Name returns the record name of the opened entry.
func (d *Decoder) Name() string {
	return d.name
}

// TotalSamples returns the number of frames in the entry.
func (d *Decoder) TotalSamples() int {
	if d.clip == nil {
		return 0
	}
	return d.clip.Frames()
}
