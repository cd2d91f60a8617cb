// Package sdptest builds SDP container images for tests.
package sdptest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/drgolem/sdptools/pkg/sdp"
)

// Entry describes one clip to place in a test container.
type Entry struct {
	Name       string
	Flags      uint32
	SampleRate uint32
	Payload    []byte

	// When set, these replace the offset and size computed from Payload.
	Offset *uint32
	Size   *uint32
}

// Build lays out entries the way the format does: header, record table,
// then all payloads back to back in entry order.
func Build(entries ...Entry) []byte {
	buf := make([]byte, sdp.HeaderSize+len(entries)*sdp.RecordSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(entries)))

	var offset uint32
	for i, e := range entries {
		r := sdp.Record{
			ID:         uint32(i + 1),
			Flags:      e.Flags,
			SampleRate: e.SampleRate,
			Offset:     offset,
			Size:       uint32(len(e.Payload)),
		}
		r.SetName(e.Name)
		if e.Offset != nil {
			r.Offset = *e.Offset
		}
		if e.Size != nil {
			r.Size = *e.Size
		}

		copy(buf[sdp.HeaderSize+i*sdp.RecordSize:], r.Marshal())
		offset += uint32(len(e.Payload))
	}

	for _, e := range entries {
		buf = append(buf, e.Payload...)
	}
	return buf
}

// WriteFile writes the container built from entries into a temp dir and returns its path.
func WriteFile(t testing.TB, name string, entries ...Entry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, Build(entries...), 0644); err != nil {
		t.Fatalf("write container: %v", err)
	}
	return path
}

// PCM encodes samples as little-endian 16-bit bytes.
func PCM(samples ...int16) []byte {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	return buf
}

// U32 returns a pointer to v, for Entry.Offset and Entry.Size.
func U32(v uint32) *uint32 {
	return &v
}
