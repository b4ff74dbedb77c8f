package j2mask

import "fmt"

// A Diagnostic records a malformed placeholder token that a lenient Unmask
// left verbatim in the output.
type Diagnostic struct {
	Token  string
	Offset int
	Reason string
}

// An UnmaskError aborts a strict-mode Unmask at the first malformed
// placeholder token.
type UnmaskError struct {
	Token  string
	Offset int
	Err    error
}

func (e *UnmaskError) Error() string {
	return fmt.Sprintf("j2mask: cannot unmask token %q at offset %d: %v", e.Token, e.Offset, e.Err)
}

func (e *UnmaskError) Unwrap() error { return e.Err }
