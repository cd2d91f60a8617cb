package types

import (
	"time"
)

// AudioDecoder is the common interface for sources of 16-bit PCM: a single
// entry of an SDP container or an exported WAV file.
type AudioDecoder interface {
	// Open opens the source for decoding
	Open(fileName string) error

	// Close releases resources
	Close() error

	// GetFormat returns sample rate (Hz), channels (1=mono, 2=stereo) and bits per sample
	GetFormat() (rate, channels, bitsPerSample int)

	// DecodeSamples decodes up to samples frames into audio
	// Returns the number of frames written; io.EOF once the source is exhausted.
	// The buffer must hold samples * channels * (bitsPerSample/8) bytes.
	DecodeSamples(samples int, audio []byte) (int, error)
}

// PlaybackStatus holds playback information reported by a player.
type PlaybackStatus struct {
	FileName        string        // Source being played
	SampleRate      int           // Audio sample rate in Hz
	Channels        int           // Number of audio channels (1=mono, 2=stereo)
	BitsPerSample   int           // Bit depth
	FramesPerBuffer int           // PortAudio frames per buffer
	PlayedSamples   uint64        // Frames sent to audio output
	TotalSamples    uint64        // Frames in the source, 0 if unknown
	ElapsedTime     time.Duration // Wall-clock time since playback started
}

// PlaybackMonitor is implemented by players that can report their status.
type PlaybackMonitor interface {
	GetPlaybackStatus() PlaybackStatus
}
