package audioplayer

import (
	"path/filepath"
	"testing"

	"github.com/drgolem/sdptools/internal/sdptest"
	"github.com/drgolem/sdptools/pkg/sdp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.FramesPerBuffer != 512 {
		t.Errorf("FramesPerBuffer: got %d, want 512", cfg.FramesPerBuffer)
	}
	if cfg.DeviceIndex != 1 {
		t.Errorf("DeviceIndex: got %d, want 1", cfg.DeviceIndex)
	}
}

func TestPlayWithoutOpen(t *testing.T) {
	p := NewPlayer(DefaultConfig())
	if err := p.Play(); err == nil {
		t.Error("expected error when playing without an opened file")
	}
}

func TestOpenFileStatus(t *testing.T) {
	path := sdptest.WriteFile(t, "bank.sdp",
		sdptest.Entry{Name: "hit", Flags: sdp.FlagCompressed | sdp.FlagStereo, SampleRate: 22050, Payload: make([]byte, 100)},
	)

	p := NewPlayer(DefaultConfig())
	if err := p.OpenFile(path, "hit"); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	status := p.GetPlaybackStatus()
	if status.FileName != "bank.sdp" || status.SampleRate != 22050 || status.Channels != 2 || status.BitsPerSample != 16 {
		t.Errorf("status: got %+v", status)
	}
	if status.TotalSamples != 100 {
		t.Errorf("TotalSamples: got %d, want 100", status.TotalSamples)
	}
	if status.PlayedSamples != 0 {
		t.Errorf("PlayedSamples: got %d, want 0", status.PlayedSamples)
	}

	if err := p.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Errorf("second Stop failed: %v", err)
	}
}

func TestOpenFileUnsupported(t *testing.T) {
	p := NewPlayer(DefaultConfig())
	if err := p.OpenFile(filepath.Join(t.TempDir(), "x.ogg"), ""); err == nil {
		t.Error("expected error for unsupported format")
	}
}
