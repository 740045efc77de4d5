package pass

import (
	"fmt"
	"strings"
)

// SurfaceErrorKind classifies swapchain texture acquisition failures so the
// frame loop can decide between reconfiguring, skipping a frame, or aborting.
type SurfaceErrorKind int

const (
	// SurfaceUnknown is an unclassified acquisition failure. Treated like a
	// skippable frame.
	SurfaceUnknown SurfaceErrorKind = iota
	// SurfaceLost means the surface needs to be reconfigured before the next
	// acquisition can succeed.
	SurfaceLost
	// SurfaceOutdated means the surface no longer matches the window (usually
	// mid-resize). The frame is skipped; the resize handler reconfigures.
	SurfaceOutdated
	// SurfaceTimeout means the presentation engine did not hand back an image
	// in time. The frame is skipped.
	SurfaceTimeout
	// SurfaceOutOfMemory is unrecoverable; the loop must exit.
	SurfaceOutOfMemory
)

// String returns a human-readable name for the error kind.
//
// Returns:
//   - string: the kind name
func (k SurfaceErrorKind) String() string {
	switch k {
	case SurfaceLost:
		return "lost"
	case SurfaceOutdated:
		return "outdated"
	case SurfaceTimeout:
		return "timeout"
	case SurfaceOutOfMemory:
		return "out of memory"
	default:
		return "unknown"
	}
}

// FrameError wraps a frame rendering failure with its classification.
type FrameError struct {
	Kind SurfaceErrorKind
	Err  error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame error (%s): %v", e.Kind, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// classifySurfaceError maps a wgpu surface acquisition error onto a
// SurfaceErrorKind. wgpu-native reports these as opaque error strings, so
// classification is by substring.
//
// Parameters:
//   - err: the acquisition error
//
// Returns:
//   - *FrameError: the classified frame error
func classifySurfaceError(err error) *FrameError {
	msg := strings.ToLower(err.Error())
	kind := SurfaceUnknown
	switch {
	case strings.Contains(msg, "out of memory") || strings.Contains(msg, "outofmemory"):
		kind = SurfaceOutOfMemory
	case strings.Contains(msg, "lost"):
		kind = SurfaceLost
	case strings.Contains(msg, "outdated"):
		kind = SurfaceOutdated
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		kind = SurfaceTimeout
	}
	return &FrameError{Kind: kind, Err: err}
}
