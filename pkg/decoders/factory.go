package decoders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/drgolem/sdptools/pkg/decoders/sdp"
	"github.com/drgolem/sdptools/pkg/decoders/wav"
	"github.com/drgolem/sdptools/pkg/types"
)

// NewDecoder creates and opens the appropriate decoder based on file extension.
// For .sdp containers entry selects the clip by name or index; it is ignored
// for .wav files.
func NewDecoder(fileName, entry string) (types.AudioDecoder, error) {
	ext := strings.ToLower(filepath.Ext(fileName))

	var decoder types.AudioDecoder

	switch ext {
	case ".sdp":
		decoder = sdp.NewDecoder(entry)
	case ".wav":
		decoder = wav.NewDecoder()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .sdp, .wav)", ext)
	}

	if err := decoder.Open(fileName); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fileName, err)
	}

	return decoder, nil
}
