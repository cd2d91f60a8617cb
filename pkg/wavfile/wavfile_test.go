package wavfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/youpy/go-wav"
)

func TestWriteHeaderSizes(t *testing.T) {
	tests := []struct {
		name     string
		samples  int
		channels int
	}{
		{"empty mono", 0, 1},
		{"empty stereo", 0, 2},
		{"one sample", 1, 1},
		{"odd stereo", 3, 2},
		{"larger", 4096, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, make([]int16, tt.samples), tt.channels, 22050); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			data := buf.Bytes()
			if len(data) != HeaderSize+2*tt.samples {
				t.Fatalf("size: got %d, want %d", len(data), HeaderSize+2*tt.samples)
			}

			le := binary.LittleEndian
			if got, want := le.Uint32(data[4:8]), uint32(HeaderSize+2*tt.samples-8); got != want {
				t.Errorf("riff size: got %d, want %d", got, want)
			}
			if got, want := le.Uint32(data[40:44]), uint32(2*tt.samples); got != want {
				t.Errorf("data size: got %d, want %d", got, want)
			}
			if string(data[0:4]) != "RIFF" || string(data[8:16]) != "WAVEfmt " || string(data[36:40]) != "data" {
				t.Errorf("chunk tags: got %q", data[:40])
			}
		})
	}
}

func TestWriteFormatFields(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []int16{1, 2}, 2, 44100); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data := buf.Bytes()
	le := binary.LittleEndian
	checks := []struct {
		field string
		got   uint32
		want  uint32
	}{
		{"fmt size", le.Uint32(data[16:20]), 16},
		{"audio format", uint32(le.Uint16(data[20:22])), 1},
		{"channels", uint32(le.Uint16(data[22:24])), 2},
		{"sample rate", le.Uint32(data[24:28]), 44100},
		{"byte rate", le.Uint32(data[28:32]), 44100 * 4},
		{"block align", uint32(le.Uint16(data[32:34])), 4},
		{"bits per sample", uint32(le.Uint16(data[34:36])), 16},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %d, want %d", c.field, c.got, c.want)
		}
	}

	if !bytes.Equal(data[44:], []byte{1, 0, 2, 0}) {
		t.Errorf("sample bytes: got %v", data[44:])
	}
}

func TestWriteInvalidChannels(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, 0, 8000); err == nil {
		t.Error("expected error for zero channels")
	}
}

func TestWriteFileReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	in := []int16{100, -100, 32767, -32767, 0, 7}

	if err := WriteFile(path, in, 2, 32000); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()

	reader := wav.NewReader(f)
	format, err := reader.Format()
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if format.AudioFormat != wav.AudioFormatPCM || format.NumChannels != 2 || format.SampleRate != 32000 || format.BitsPerSample != 16 {
		t.Fatalf("format: got %+v", format)
	}

	var got []int16
	for len(got) < len(in) {
		samples, err := reader.ReadSamples(1)
		if err != nil || len(samples) == 0 {
			break
		}
		got = append(got, int16(samples[0].Values[0]), int16(samples[0].Values[1]))
	}

	if len(got) != len(in) {
		t.Fatalf("read back %d samples, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("sample %d: got %d, want %d", i, got[i], in[i])
		}
	}
}

func TestWriteFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "clip.wav")
	err := WriteFile(path, []int16{1}, 1, 8000)
	if !errors.Is(err, ErrWrite) {
		t.Errorf("WriteFile: got err %v, want %v", err, ErrWrite)
	}
}

func BenchmarkWrite(b *testing.B) {
	samples := make([]int16, 64*1024)
	var buf bytes.Buffer

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		_ = Write(&buf, samples, 2, 44100)
	}
}

func TestDataChunkSize(t *testing.T) {
	const limit = (math.MaxUint32 - (HeaderSize - 8)) / 2

	tests := []struct {
		name    string
		n       int
		want    uint32
		wantErr bool
	}{
		{"empty", 0, 0, false},
		{"small", 10, 20, false},
		{"largest", limit, 2 * limit, false},
		{"one past largest", limit + 1, 0, true},
		{"wraps uint32", 1 << 31, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dataChunkSize(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("dataChunkSize(%d): err=%v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("dataChunkSize(%d)=%d, want %d", tt.n, got, tt.want)
			}
		})
	}
}
