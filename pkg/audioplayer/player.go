package audioplayer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/drgolem/sdptools/pkg/decoders"
	"github.com/drgolem/sdptools/pkg/types"

	"github.com/drgolem/go-portaudio/portaudio"
)

// Player streams an AudioDecoder to a PortAudio output device.
// A single goroutine pulls decoded frames and writes them to the blocking stream.
type Player struct {
	decoder         types.AudioDecoder
	stream          *portaudio.PaStream
	sampleRate      int
	channels        int
	bitsPerSample   int
	bytesPerSample  int
	framesPerBuffer int
	deviceIndex     int
	fileName        string
	totalSamples    uint64
	stopChan        chan struct{}
	wg              sync.WaitGroup
	mu              sync.Mutex
	stopped         bool
	samplesPlayed   atomic.Uint64
	startTime       time.Time
}

// Config holds player configuration
type Config struct {
	FramesPerBuffer int // PortAudio buffer size in frames
	DeviceIndex     int // Audio output device index
}

// DefaultConfig returns default player configuration
func DefaultConfig() Config {
	return Config{
		FramesPerBuffer: 512,
		DeviceIndex:     1,
	}
}

// NewPlayer creates a new audio player
func NewPlayer(config Config) *Player {
	return &Player{
		framesPerBuffer: config.FramesPerBuffer,
		deviceIndex:     config.DeviceIndex,
		stopChan:        make(chan struct{}),
	}
}

// OpenFile opens an .sdp entry or a .wav file for playback.
func (p *Player) OpenFile(fileName, entry string) error {
	decoder, err := decoders.NewDecoder(fileName, entry)
	if err != nil {
		return err
	}

	rate, channels, bps := decoder.GetFormat()

	slog.Info("Audio source opened",
		"file", filepath.Base(fileName),
		"sample_rate", rate,
		"channels", channels,
		"bits_per_sample", bps)

	p.decoder = decoder
	p.sampleRate = rate
	p.channels = channels
	p.bitsPerSample = bps
	p.bytesPerSample = bps / 8
	p.fileName = filepath.Base(fileName)
	p.totalSamples = 0
	if counter, ok := decoder.(interface{ TotalSamples() int }); ok {
		p.totalSamples = uint64(counter.TotalSamples())
	}

	return nil
}

// Play starts audio playback
func (p *Player) Play() error {
	if p.decoder == nil {
		return fmt.Errorf("no file opened")
	}
	if p.sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", p.sampleRate)
	}

	if err := p.initStream(); err != nil {
		return fmt.Errorf("failed to initialize audio stream: %w", err)
	}

	if err := p.stream.StartStream(); err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}

	p.startTime = time.Now()
	p.samplesPlayed.Store(0)

	p.wg.Add(1)
	go p.pump()

	slog.Info("Playback started")
	return nil
}

// Wait blocks until playback is complete
func (p *Player) Wait() {
	p.wg.Wait()
}

// Stop stops playback and releases the stream and decoder.
func (p *Player) Stop() error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	p.mu.Unlock()

	close(p.stopChan)
	p.wg.Wait()

	if p.stream != nil {
		if err := p.stream.StopStream(); err != nil {
			slog.Warn("Failed to stop stream", "error", err)
		}
		if err := p.stream.Close(); err != nil {
			slog.Warn("Failed to close stream", "error", err)
		}
	}

	if p.decoder != nil {
		if err := p.decoder.Close(); err != nil {
			slog.Warn("Failed to close decoder", "error", err)
		}
	}

	slog.Info("Playback stopped")
	return nil
}

func (p *Player) initStream() error {
	if p.bitsPerSample != 16 {
		return fmt.Errorf("unsupported bit depth: %d", p.bitsPerSample)
	}

	outParams := portaudio.PaStreamParameters{
		DeviceIndex:  p.deviceIndex,
		ChannelCount: p.channels,
		SampleFormat: portaudio.SampleFmtInt16,
	}

	stream, err := portaudio.NewStream(outParams, float64(p.sampleRate))
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	if err := stream.Open(p.framesPerBuffer); err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}

	p.stream = stream
	return nil
}

// pump decodes framesPerBuffer frames at a time and writes them to the stream
// until the source is exhausted or Stop is called.
func (p *Player) pump() {
	defer p.wg.Done()

	buffer := make([]byte, p.framesPerBuffer*p.channels*p.bytesPerSample)

	for {
		select {
		case <-p.stopChan:
			return
		default:
		}

		frames, err := p.decoder.DecodeSamples(p.framesPerBuffer, buffer)
		if frames > 0 {
			n := frames * p.channels * p.bytesPerSample
			if werr := p.stream.Write(frames, buffer[:n]); werr != nil {
				slog.Error("Failed to write to audio stream", "error", werr)
				return
			}
			p.samplesPlayed.Add(uint64(frames))
		}

		if err != nil || frames == 0 {
			if err != nil && !errors.Is(err, io.EOF) {
				slog.Error("Decode failed", "error", err)
			}
			slog.Debug("Source exhausted", "samples", p.samplesPlayed.Load())
			return
		}
	}
}

// GetPlaybackStatus returns current playback status
func (p *Player) GetPlaybackStatus() types.PlaybackStatus {
	return types.PlaybackStatus{
		FileName:        p.fileName,
		SampleRate:      p.sampleRate,
		Channels:        p.channels,
		BitsPerSample:   p.bitsPerSample,
		FramesPerBuffer: p.framesPerBuffer,
		PlayedSamples:   p.samplesPlayed.Load(),
		TotalSamples:    p.totalSamples,
		ElapsedTime:     time.Since(p.startTime),
	}
}
