package xlcompose

import "fmt"

// AnchorError reports a drawing anchor that could not be resolved to a
// bounding box. It is recovered at the call site by substituting a
// degenerate zero-size box, so one bad anchor never blocks the rest of the
// sheet.
type AnchorError struct {
	SheetName string
	Object    string
	Err       error
}

func (e *AnchorError) Error() string {
	return fmt.Sprintf("anchor resolution failed for %q on sheet %q: %v", e.Object, e.SheetName, e.Err)
}

func (e *AnchorError) Unwrap() error {
	return e.Err
}

// DrawingError reports a drawing part that could not be read or parsed. It
// is recovered by treating the sheet as having no drawn objects.
type DrawingError struct {
	SheetName string
	Err       error
}

func (e *DrawingError) Error() string {
	return fmt.Sprintf("drawing parse failed for sheet %q: %v", e.SheetName, e.Err)
}

func (e *DrawingError) Unwrap() error {
	return e.Err
}

// DecodeError reports embedded image bytes that could not be decoded. The
// raw bytes are still emitted as a file; the object is excluded from overlap
// analysis.
type DecodeError struct {
	SheetName string
	Object    string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("image decode failed for %q on sheet %q: %v", e.Object, e.SheetName, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
