package sdp_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/drgolem/sdptools/internal/sdptest"
	"github.com/drgolem/sdptools/pkg/adpcm"
	"github.com/drgolem/sdptools/pkg/sdp"
)

func TestLocate(t *testing.T) {
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i)
	}

	tests := []struct {
		name   string
		offset uint32
		size   uint32
		want   []byte
		err    error
	}{
		{"in bounds", 4, 3, []byte{132, 133, 134}, nil},
		{"ends at file end", 70, 2, []byte{198, 199}, nil},
		{"empty", 72, 0, []byte{}, nil},
		{"past end", 70, 3, nil, sdp.ErrInvalidRange},
		{"offset past end", 100, 0, nil, sdp.ErrInvalidRange},
		{"no wrap", math.MaxUint32, math.MaxUint32, nil, sdp.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sdp.Record{Offset: tt.offset, Size: tt.size}
			got, err := sdp.Locate(data, 128, &r)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Locate: got err %v, want %v", err, tt.err)
			}
			if tt.err == nil && !bytes.Equal(got, tt.want) {
				t.Errorf("Locate: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocateDoesNotCopy(t *testing.T) {
	data := make([]byte, 80)
	r := sdp.Record{Offset: 0, Size: 8}

	view, err := sdp.Locate(data, 64, &r)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	data[64] = 0xAB
	if view[0] != 0xAB {
		t.Error("payload view does not alias the source buffer")
	}
	if cap(view) != len(view) {
		t.Errorf("view capacity: got %d, want %d", cap(view), len(view))
	}
}

func TestPCMSamples(t *testing.T) {
	in := []int16{0, 1, -1, math.MaxInt16, math.MinInt16, 12345}
	got, err := sdp.PCMSamples(sdptest.PCM(in...))
	if err != nil {
		t.Fatalf("PCMSamples failed: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("length: got %d, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("sample %d: got %d, want %d", i, got[i], in[i])
		}
	}

	if _, err := sdp.PCMSamples([]byte{1, 2, 3}); !errors.Is(err, sdp.ErrOddPCMSize) {
		t.Errorf("odd input: got err %v, want %v", err, sdp.ErrOddPCMSize)
	}
}

func TestContainerClip(t *testing.T) {
	c, err := sdp.Parse(sdptest.Build(
		sdptest.Entry{Name: "adpcm-mono", Flags: sdp.FlagCompressed, SampleRate: 22050, Payload: []byte{0x00, 0x77}},
		sdptest.Entry{Name: "adpcm-stereo", Flags: sdp.FlagCompressed | sdp.FlagStereo, SampleRate: 44100, Payload: []byte{0x7F}},
		sdptest.Entry{Name: "pcm", Flags: sdp.FlagStereo, SampleRate: 48000, Payload: sdptest.PCM(5, -5)},
		sdptest.Entry{Name: "odd", Payload: []byte{1, 2, 3}},
		sdptest.Entry{Name: "bad", Payload: []byte{0}, Size: sdptest.U32(1 << 20)},
	))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	clip, err := c.Clip(0)
	if err != nil {
		t.Fatalf("Clip(0) failed: %v", err)
	}
	want := adpcm.Decode([]byte{0x00, 0x77}, adpcm.Mono)
	if clip.Channels != 1 || clip.SampleRate != 22050 || !clip.Compressed || len(clip.Samples) != len(want) {
		t.Fatalf("Clip(0): got %+v", clip)
	}
	for i := range want {
		if clip.Samples[i] != want[i] {
			t.Errorf("Clip(0) sample %d: got %d, want %d", i, clip.Samples[i], want[i])
		}
	}

	clip, err = c.Clip(1)
	if err != nil {
		t.Fatalf("Clip(1) failed: %v", err)
	}
	if clip.Channels != 2 || clip.Frames() != 1 || clip.Samples[0] != 480 || clip.Samples[1] != -480 {
		t.Errorf("Clip(1): got %+v", clip)
	}

	clip, err = c.Clip(2)
	if err != nil {
		t.Fatalf("Clip(2) failed: %v", err)
	}
	if clip.Compressed || len(clip.Samples) != 2 || clip.Samples[0] != 5 || clip.Samples[1] != -5 {
		t.Errorf("Clip(2): got %+v", clip)
	}

	if _, err := c.Clip(3); !errors.Is(err, sdp.ErrOddPCMSize) {
		t.Errorf("Clip(3): got err %v, want %v", err, sdp.ErrOddPCMSize)
	}
	if _, err := c.Clip(4); !errors.Is(err, sdp.ErrInvalidRange) {
		t.Errorf("Clip(4): got err %v, want %v", err, sdp.ErrInvalidRange)
	}
	if _, err := c.Clip(5); err == nil {
		t.Error("Clip(5): expected index error")
	}
}
