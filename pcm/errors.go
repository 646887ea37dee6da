package pcm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when encoding or decoding anything
	// other than mono linear PCM at the supported bit depth.
	ErrUnsupportedFormat = errors.New("pcm: unsupported format")
)

// WriteError reports a failure to create or write an output file.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("pcm: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
