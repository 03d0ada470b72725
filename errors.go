package video_fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrResolve is returned when a video or playlist could not be looked up or parsed.
	ErrResolve = errors.New("failed to resolve")
	// ErrInvalidSelection is returned for out-of-range or unparsable stream numbers and commands.
	ErrInvalidSelection = errors.New("invalid stream number")
	// ErrInvalidDestination is returned when the download directory does not exist.
	ErrInvalidDestination = errors.New("invalid download path")
	// ErrTransferFailed is returned when the transfer of a chosen stream fails.
	ErrTransferFailed = errors.New("download failed")
)

// ResolveError wraps a lookup failure for a specific video or playlist.
func ResolveError(target string, err error) error {
	return fmt.Errorf("%w %s: %v", ErrResolve, target, err)
}

// TransferError wraps a failed transfer, keeping the underlying cause inspectable.
type TransferError struct {
	Err error
}

func (e *TransferError) Error() string {
	return e.Err.Error()
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

func (e *TransferError) Is(target error) bool {
	return target == ErrTransferFailed
}
