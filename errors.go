package badgekit

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common badge rendering failure conditions.
var (
	ErrInvalidTemplate  = errors.New("badgekit: invalid template")
	ErrUnknownElement   = errors.New("badgekit: unknown element type")
	ErrImageDecode      = errors.New("badgekit: image data could not be decoded")
	ErrUnsupportedImage = errors.New("badgekit: unsupported image type")
	ErrBarcode          = errors.New("badgekit: barcode could not be encoded")
	ErrElementPanic     = errors.New("badgekit: element renderer panicked")
)

// RenderError represents a failure of the PDF backend during a specific
// operation. It wraps the underlying error and names the operation.
type RenderError struct {
	Op  string // operation name, e.g. "Output", "Image"
	Err error  // underlying error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("badgekit.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("badgekit.%s: unknown error", e.Op)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func newRenderError(op string, err error) *RenderError {
	return &RenderError{Op: op, Err: err}
}

// PageLevel is the ValidationError index used for problems that are not tied
// to a single element.
const PageLevel = -1

// ValidationError describes one template invariant violation.
type ValidationError struct {
	Index  int    `json:"index"` // element index, or PageLevel
	Field  string `json:"field"` // JSON field name, e.g. "type" or "page.widthIn"
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if e.Index == PageLevel {
		return fmt.Sprintf("template: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("element %d: %s %s", e.Index, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidTemplate.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidTemplate
}

// ValidationErrors collects every violation found in a template.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "badgekit: invalid template: " + strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match ErrInvalidTemplate.
func (v ValidationErrors) Unwrap() error {
	return ErrInvalidTemplate
}

// ElementError is a non-fatal failure confined to one element. The page is
// still produced; the element shows an error placeholder or is skipped.
type ElementError struct {
	Index int
	ID    string
	Type  ElementType
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("badgekit: element %d (%s %q): %v", e.Index, e.Type, e.ID, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}
