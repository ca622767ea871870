package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType marks files no extraction strategy handles.
var ErrUnsupportedType = errors.New("unsupported file type")

// ExtractionError wraps a failure for one source file.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
