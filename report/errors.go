package report

import (
	"errors"
	"fmt"
)

// TextSpan represents a range or "span" of source text.  Lines and columns are
// zero-indexed.  The start position is the first character in the span and the
// end column is one past the last character in the span.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func (ts *TextSpan) String() string {
	return fmt.Sprintf("%d:%d", ts.StartLine+1, ts.StartCol+1)
}

// -----------------------------------------------------------------------------

// Enumeration of the compilation stages an error can originate from.
const (
	KindSyntax   = iota // Malformed source text.
	KindBuild           // Unsupported or misordered syntactic shape.
	KindType            // Ill-typed program.
	KindGenerate        // Inconsistency between the checker and the generator.
)

var kindNames = map[int]string{
	KindSyntax:   "syntax",
	KindBuild:    "build",
	KindType:     "type",
	KindGenerate: "generator",
}

// CompileError is an error in the compiled program.  It aborts the whole
// compilation: there is no recovery across statements or stages.
type CompileError struct {
	// The stage the error comes from.  Must be one of the enumerated kinds.
	Kind int

	// The error message.
	Message string

	// The span over which the error occurs.  May be nil.
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	return kindNames[ce.Kind] + " error: " + ce.Message
}

// KindName returns the display name of the error's kind.
func (ce *CompileError) KindName() string {
	return kindNames[ce.Kind]
}

// Raise creates a new compile error.  Stages call `panic(report.Raise(...))`
// to abort and rely on `CatchErrors` at their entry point.
func Raise(kind int, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// CatchErrors converts a compile error thrown by `panic` during a stage of
// compilation into a returned error.  Any other panic keeps unwinding.
// NB: This function must ALWAYS be deferred.
func CatchErrors(err *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			*err = cerr
			return
		}

		panic(x)
	}
}

// AsCompileError extracts a compile error from err if there is one.
func AsCompileError(err error) (*CompileError, bool) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		return cerr, true
	}

	return nil, false
}
