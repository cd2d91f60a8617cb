package sdp

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Flag bits of Record.Flags.
const (
	FlagStereo     uint32 = 1 << 0
	FlagCompressed uint32 = 1 << 2
)

// NameSize is the size of the name field including its terminator.
const NameSize = 28

// Record is one 64-byte attribute entry of the record table.
//
// Binary layout (little-endian, tightly packed):
//   - ID           (4 bytes, uint32)
//   - Reserved2    (2 bytes, uint16)
//   - Reserved3    (2 bytes, uint16)
//   - Flags        (4 bytes, uint32)
//   - Attenuation  (4 bytes, int32)
//   - Reserved6    (4 bytes, uint32)
//   - Offset       (4 bytes, uint32, relative to the payload region)
//   - Size         (4 bytes, uint32, encoded payload bytes)
//   - Reserved7    (4 bytes, uint32)
//   - SampleRate   (4 bytes, uint32)
//   - RawName      (28 bytes, NUL terminated)
type Record struct {
	ID          uint32
	Reserved2   uint16
	Reserved3   uint16
	Flags       uint32
	Attenuation int32
	Reserved6   uint32
	Offset      uint32
	Size        uint32
	Reserved7   uint32
	SampleRate  uint32
	RawName     [NameSize]byte
}

// Unmarshal decodes a record from the first RecordSize bytes of data.
// The last byte of the name is always forced to NUL.
func (r *Record) Unmarshal(data []byte) error {
	if len(data) < RecordSize {
		return fmt.Errorf("buffer too small: got %d bytes, need at least %d bytes", len(data), RecordSize)
	}

	le := binary.LittleEndian
	r.ID = le.Uint32(data[0:4])
	r.Reserved2 = le.Uint16(data[4:6])
	r.Reserved3 = le.Uint16(data[6:8])
	r.Flags = le.Uint32(data[8:12])
	r.Attenuation = int32(le.Uint32(data[12:16]))
	r.Reserved6 = le.Uint32(data[16:20])
	r.Offset = le.Uint32(data[20:24])
	r.Size = le.Uint32(data[24:28])
	r.Reserved7 = le.Uint32(data[28:32])
	r.SampleRate = le.Uint32(data[32:36])
	copy(r.RawName[:], data[36:36+NameSize])
	r.RawName[NameSize-1] = 0

	return nil
}

// Marshal encodes the record into its 64-byte on-disk form.
func (r *Record) Marshal() []byte {
	buf := make([]byte, RecordSize)

	le := binary.LittleEndian
	le.PutUint32(buf[0:4], r.ID)
	le.PutUint16(buf[4:6], r.Reserved2)
	le.PutUint16(buf[6:8], r.Reserved3)
	le.PutUint32(buf[8:12], r.Flags)
	le.PutUint32(buf[12:16], uint32(r.Attenuation))
	le.PutUint32(buf[16:20], r.Reserved6)
	le.PutUint32(buf[20:24], r.Offset)
	le.PutUint32(buf[24:28], r.Size)
	le.PutUint32(buf[28:32], r.Reserved7)
	le.PutUint32(buf[32:36], r.SampleRate)
	copy(buf[36:36+NameSize], r.RawName[:])

	return buf
}

// Name returns the name up to the first NUL byte.
func (r *Record) Name() string {
	if i := bytes.IndexByte(r.RawName[:], 0); i >= 0 {
		return string(r.RawName[:i])
	}
	return string(r.RawName[:])
}

// SetName stores name, truncated so the terminator always fits.
func (r *Record) SetName(name string) {
	r.RawName = [NameSize]byte{}
	copy(r.RawName[:NameSize-1], name)
}

// Channels returns 2 when the stereo flag is set, 1 otherwise.
func (r *Record) Channels() int {
	if r.Flags&FlagStereo != 0 {
		return 2
	}
	return 1
}

// Compressed reports whether the payload is ADPCM encoded.
func (r *Record) Compressed() bool {
	return r.Flags&FlagCompressed != 0
}
