package sdp

import "errors"

var (
	// ErrTooSmall reports a file shorter than the fixed container header.
	ErrTooSmall = errors.New("file too small to be a valid SDP")
	// ErrTruncated reports a record table that does not fit in the file.
	ErrTruncated = errors.New("file truncated or corrupted")
	// ErrInvalidRange reports an entry whose payload lies outside the file.
	ErrInvalidRange = errors.New("invalid payload offset/size")
	// ErrOddPCMSize reports a raw PCM payload with an odd byte length.
	ErrOddPCMSize = errors.New("PCM data size odd")
)
