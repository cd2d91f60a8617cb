package sdp

import (
	"encoding/binary"
	"fmt"

	"github.com/drgolem/sdptools/pkg/adpcm"
)

// Clip is one decoded entry: interleaved 16-bit samples plus their format.
type Clip struct {
	Samples    []int16
	Channels   int
	SampleRate uint32
	Compressed bool
}

// Frames returns the number of complete sample frames in the clip.
func (c *Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Decode turns a located payload into samples according to the record flags.
func (r *Record) Decode(payload []byte) (Clip, error) {
	clip := Clip{
		Channels:   r.Channels(),
		SampleRate: r.SampleRate,
		Compressed: r.Compressed(),
	}

	if clip.Compressed {
		mode, err := adpcm.ModeForChannels(clip.Channels)
		if err != nil {
			return Clip{}, err
		}
		clip.Samples = adpcm.Decode(payload, mode)
		return clip, nil
	}

	samples, err := PCMSamples(payload)
	if err != nil {
		return Clip{}, err
	}
	clip.Samples = samples
	return clip, nil
}

// Clip locates and decodes record i.
func (c *Container) Clip(i int) (Clip, error) {
	payload, err := c.Payload(i)
	if err != nil {
		return Clip{}, err
	}
	return c.Records[i].Decode(payload)
}

// PCMSamples reinterprets data as little-endian signed 16-bit samples.
func PCMSamples(data []byte) ([]int16, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrOddPCMSize, len(data))
	}

	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return samples, nil
}
