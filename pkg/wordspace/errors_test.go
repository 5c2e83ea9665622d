package wordspace

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError_WrongWorkspaceType(t *testing.T) {
	err := &WrongWorkspaceTypeError{Op: "SimilarWords", Have: COL}
	if got := ClassifyError(err); got != ErrClassWrongWordspace {
		t.Errorf("ClassifyError() = %v, want %v", got, ErrClassWrongWordspace)
	}
}

func TestClassifyError_CorruptIndex(t *testing.T) {
	err := &CorruptIndexError{Path: "/tmp/space", Err: fmt.Errorf("bad header")}
	if got := ClassifyError(err); got != ErrClassCorruptIndex {
		t.Errorf("ClassifyError() = %v, want %v", got, ErrClassCorruptIndex)
	}
}

func TestClassifyError_Parse(t *testing.T) {
	err := &ParseError{Token: "AND(", Err: fmt.Errorf("unbalanced parens")}
	if got := ClassifyError(err); got != ErrClassParse {
		t.Errorf("ClassifyError() = %v, want %v", got, ErrClassParse)
	}
}

func TestClassifyError_Shape(t *testing.T) {
	tests := []error{
		fmt.Errorf("vector shape mismatch: 3 vs 4"),
		fmt.Errorf("vectors have different length"),
	}
	for _, err := range tests {
		if got := ClassifyError(err); got != ErrClassShape {
			t.Errorf("ClassifyError(%v) = %v, want %v", err, got, ErrClassShape)
		}
	}
}

func TestClassifyError_IO(t *testing.T) {
	tests := []error{
		context.DeadlineExceeded,
		fmt.Errorf("read timeout"),
		fmt.Errorf("sql: no rows in result set"),
		fmt.Errorf("open disco.config: no such file or directory"),
	}
	for _, err := range tests {
		if got := ClassifyError(err); got != ErrClassIO {
			t.Errorf("ClassifyError(%v) = %v, want %v", err, got, ErrClassIO)
		}
	}
}

func TestClassifyError_Unknown(t *testing.T) {
	if got := ClassifyError(errors.New("something unexpected")); got != ErrClassUnknown {
		t.Errorf("ClassifyError() = %v, want %v", got, ErrClassUnknown)
	}
}

func TestClassifyError_NilIsEmpty(t *testing.T) {
	if got := ClassifyError(nil); got != "" {
		t.Errorf("ClassifyError(nil) = %q, want empty", got)
	}
}

func TestWrongWorkspaceTypeErrorMessage(t *testing.T) {
	err := &WrongWorkspaceTypeError{Op: "SolveAnalogyApprox", Have: COL}
	want := "wordspace: SolveAnalogyApprox requires a SIM word space, have COL"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
