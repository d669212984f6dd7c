package report

import (
	"errors"
	"fmt"
	"testing"
)

func raising(kind int) (err error) {
	defer CatchErrors(&err)

	panic(Raise(kind, &TextSpan{StartLine: 1, StartCol: 4, EndLine: 1, EndCol: 9}, "bad thing: %s", "x"))
}

func TestCatchErrors(t *testing.T) {
	err := raising(KindType)
	if err == nil {
		t.Fatal("expected an error")
	}

	if err.Error() != "type error: bad thing: x" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	cerr, ok := AsCompileError(fmt.Errorf("wrapped: %w", err))
	if !ok {
		t.Fatal("expected wrapped compile error to be found")
	}

	if cerr.Kind != KindType || cerr.Span.String() != "2:5" {
		t.Errorf("unexpected compile error: %+v (%s)", cerr, cerr.Span)
	}
}

func TestCatchErrorsRepanics(t *testing.T) {
	defer func() {
		if x := recover(); x == nil {
			t.Fatal("expected foreign panic to propagate")
		}
	}()

	func() (err error) {
		defer CatchErrors(&err)
		panic(errors.New("not a compile error"))
	}()
}

func TestKindNames(t *testing.T) {
	for kind, want := range map[int]string{
		KindSyntax:   "syntax error: m",
		KindBuild:    "build error: m",
		KindType:     "type error: m",
		KindGenerate: "generator error: m",
	} {
		if got := Raise(kind, nil, "m").Error(); got != want {
			t.Errorf("kind %d: got %q, want %q", kind, got, want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	if lvl, ok := ParseLogLevel("warn"); !ok || lvl != LogLevelWarn {
		t.Errorf("warn: got %d %v", lvl, ok)
	}

	if _, ok := ParseLogLevel("loud"); ok {
		t.Error("loud must be rejected")
	}
}
