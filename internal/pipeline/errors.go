package pipeline

import (
	"errors"
	"fmt"

	"image-analyser/internal/models"
)

var (
	ErrMissingPrimaryInput   = errors.New("missing primary input image")
	ErrMissingSecondaryInput = errors.New("missing secondary input image")
	ErrParameterKindMismatch = errors.New("parameter kind mismatch")
	ErrTransformFailed       = errors.New("transform failed")
	ErrUnknownVariant        = errors.New("unknown filter variant")
)

// TransformError reports a failed library call. errors.Is matches it against
// ErrTransformFailed and Unwrap yields the library's own error.
type TransformError struct {
	Variant models.FilterVariant
	Stage   string
	Cause   error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%s: %s stage %s: %v", ErrTransformFailed, e.Variant, e.Stage, e.Cause)
}

func (e *TransformError) Unwrap() error {
	return e.Cause
}

func (e *TransformError) Is(target error) bool {
	return target == ErrTransformFailed
}
