// Package adpcm decodes the 4-bit adaptive differential PCM stream used by
// SDP sound containers into signed 16-bit samples.
//
// Every encoded byte carries two nibbles, high nibble first. In Stereo mode
// the high nibble belongs to the left channel and the low nibble to the right
// channel. In Mono mode both nibbles advance the same channel state.
package adpcm

import "fmt"

// Mode selects how the nibbles of an encoded byte map onto channels.
type Mode int

const (
	// Mono feeds both nibbles of a byte through one channel state.
	Mono Mode = iota
	// Stereo feeds the high nibble to the left state and the low nibble to the right state.
	Stereo
)

func (m Mode) String() string {
	switch m {
	case Mono:
		return "mono"
	case Stereo:
		return "stereo"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeForChannels maps a channel count of 1 or 2 onto a decode mode.
func ModeForChannels(channels int) (Mode, error) {
	switch channels {
	case 1:
		return Mono, nil
	case 2:
		return Stereo, nil
	default:
		return 0, fmt.Errorf("unsupported channel count: %d (supported: 1, 2)", channels)
	}
}

// State is the decoder state of a single channel.
// The zero value is the initial state of every entry.
type State struct {
	Predictor int // always within [-32767, 32767]
	StepIndex int // always within [0, 48]
}

// Next decodes one nibble (only the low four bits are used) and returns the
// updated state together with the emitted sample.
func (s State) Next(nibble byte) (State, int16) {
	nibble &= 0x0F
	step := stepTable[s.StepIndex]

	diff := step >> 3
	if nibble&1 != 0 {
		diff += step >> 2
	}
	if nibble&2 != 0 {
		diff += step >> 1
	}
	if nibble&4 != 0 {
		diff += step
	}
	if nibble&8 != 0 {
		diff = -diff
	}

	s.Predictor = clamp(s.Predictor+diff, minPredictor, maxPredictor)
	s.StepIndex = clamp(s.StepIndex+indexTable[nibble], minStepIndex, maxStepIndex)

	return s, int16(s.Predictor)
}

// Decode converts an encoded payload into interleaved 16-bit samples.
// The result always holds exactly 2*len(data) samples.
func Decode(data []byte, mode Mode) []int16 {
	out := make([]int16, 2*len(data))

	var left, right State
	switch mode {
	case Stereo:
		for i, b := range data {
			left, out[2*i] = left.Next(b >> 4)
			right, out[2*i+1] = right.Next(b & 0x0F)
		}
	default:
		for i, b := range data {
			left, out[2*i] = left.Next(b >> 4)
			left, out[2*i+1] = left.Next(b & 0x0F)
		}
	}

	return out
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
