package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSwapchainOutOfDate is returned by backends when the presentable
	// surface no longer matches the window and must be rebuilt.
	ErrSwapchainOutOfDate = errors.New("swapchain out of date, needs recreation")
	ErrDeviceLost         = errors.New("device lost")
)

// ResourceCreationError reports a failed factory call (bad shader source,
// unsupported vertex layout, out-of-range indices). Fatal to that resource
// only; the caller may retry with corrected input.
type ResourceCreationError struct {
	Resource string
	Cause    error
}

func (e *ResourceCreationError) Error() string {
	return fmt.Sprintf("failed to create %s: %v", e.Resource, e.Cause)
}

func (e *ResourceCreationError) Unwrap() error { return e.Cause }

// PipelineMismatchError reports an encode-time contract violation: a draw
// whose slice layout or target format disagrees with the pipeline. Always a
// programming error, never retried.
type PipelineMismatchError struct {
	Pipeline string
	Reason   string
}

func (e *PipelineMismatchError) Error() string {
	return fmt.Sprintf("pipeline %q mismatch: %s", e.Pipeline, e.Reason)
}

// SubmissionError reports a command sequence the backend rejected, including
// sequences referencing destroyed resources and device loss.
type SubmissionError struct {
	Command int
	Cause   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed at command %d: %v", e.Command, e.Cause)
}

func (e *SubmissionError) Unwrap() error { return e.Cause }

// PresentationError reports a lost or resized surface at present time. The
// frame loop answers it with a target rebuild, not termination.
type PresentationError struct {
	Cause error
}

func (e *PresentationError) Error() string {
	return fmt.Sprintf("presentation failed: %v", e.Cause)
}

func (e *PresentationError) Unwrap() error { return e.Cause }
