// Package sdp reads SDP sound containers: a count-prefixed table of 64-byte
// attribute records followed by one payload region holding every clip's
// encoded or raw audio back to back.
//
// All offsets and sizes read from the file are validated against the real
// file size before any slice is taken.
package sdp

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	// HeaderSize is the fixed offset of the first attribute record.
	HeaderSize = 64
	// RecordSize is the stride of the attribute record table.
	RecordSize = 64
)

// Container is a parsed SDP file. It keeps the source buffer and hands out
// read-only views into it; the buffer is never modified after Parse.
type Container struct {
	data    []byte
	Records []Record
}

// ReadFile loads and parses the container at path.
func ReadFile(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse validates the header and record table of data and decodes every record.
func Parse(data []byte) (*Container, error) {
	fileSize := uint64(len(data))
	if fileSize < HeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d bytes", ErrTooSmall, fileSize, HeaderSize)
	}

	count := uint64(binary.LittleEndian.Uint32(data[0:4]))
	tableEnd := HeaderSize + count*RecordSize
	if fileSize < tableEnd {
		return nil, fmt.Errorf("%w: %d entries need %d bytes, file has %d", ErrTruncated, count, tableEnd, fileSize)
	}

	records := make([]Record, count)
	for i := range records {
		off := HeaderSize + i*RecordSize
		if err := records[i].Unmarshal(data[off : off+RecordSize]); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	return &Container{data: data, Records: records}, nil
}

// Size returns the physical size of the source file in bytes.
func (c *Container) Size() int {
	return len(c.data)
}

// PayloadStart returns the absolute offset of the payload region.
func (c *Container) PayloadStart() uint64 {
	return HeaderSize + uint64(len(c.Records))*RecordSize
}

// Payload returns the payload bytes of record i without copying.
func (c *Container) Payload(i int) ([]byte, error) {
	if i < 0 || i >= len(c.Records) {
		return nil, fmt.Errorf("entry index %d out of range [0, %d)", i, len(c.Records))
	}
	return Locate(c.data, c.PayloadStart(), &c.Records[i])
}

// Locate returns the view of data holding r's payload. The range is computed
// in 64-bit arithmetic so 32-bit offset and size fields cannot wrap.
func Locate(data []byte, payloadStart uint64, r *Record) ([]byte, error) {
	fileSize := uint64(len(data))
	start := payloadStart + uint64(r.Offset)
	end := start + uint64(r.Size)

	if start < payloadStart || end < start || end > fileSize {
		return nil, fmt.Errorf("%w: range [%d, %d) exceeds file size %d", ErrInvalidRange, start, end, fileSize)
	}

	return data[start:end:end], nil
}

// Lookup finds a record by name and returns its index, or -1.
func (c *Container) Lookup(name string) int {
	for i := range c.Records {
		if c.Records[i].Name() == name {
			return i
		}
	}
	return -1
}
