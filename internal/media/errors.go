package media

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUpstreamUnavailable indicates the remote asset store could not be
// reached at all. Individual upload failures inside a batch are reported
// through PartialFailure instead.
var ErrUpstreamUnavailable = errors.New("asset store unavailable")

// CapacityExceeded is returned when an attach would push a gallery past
// MaxGallerySize. The batch is rejected entirely; nothing is truncated.
type CapacityExceeded struct {
	Requested int
	Remaining int
}

func (e *CapacityExceeded) Error() string {
	return fmt.Sprintf("gallery capacity exceeded: requested %d, remaining %d of %d",
		e.Requested, e.Remaining, MaxGallerySize)
}

// FileError records one failed upload inside a batch.
type FileError struct {
	Name string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// PartialFailure reports a batch upload where some files failed. Uploaded
// carries the handles that did succeed so the caller can retry only the
// failed files.
type PartialFailure struct {
	Uploaded []AssetHandle
	Failed   []FileError
}

func (e *PartialFailure) Error() string {
	names := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		names = append(names, f.Name)
	}
	return fmt.Sprintf("%d of %d uploads failed: %s",
		len(e.Failed), len(e.Failed)+len(e.Uploaded), strings.Join(names, ", "))
}

// CheckCapacity validates that requested more images fit into a gallery that
// currently holds current entries.
func CheckCapacity(current, requested int) error {
	if current+requested > MaxGallerySize {
		return &CapacityExceeded{
			Requested: requested,
			Remaining: MaxGallerySize - current,
		}
	}
	return nil
}
