package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseElaborate,
				Kind:   KindElaboration,
				Path:   []string{"top", "u_core", "u_alu"},
				Detail: "definition missing",
			},
			contains: []string{"[elaborate]", "elaboration", "top.u_core.u_alu", "definition missing"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseSession,
				Kind:  KindNotFound,
			},
			contains: []string{"[session]", "not_found"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRestore,
				Kind:   KindIO,
				Detail: "open design",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[restore]", "io", "open design", "caused by", "underlying error"},
		},
		{
			name:     "sentinel",
			err:      ErrInvalidHandle,
			contains: []string{"invalid_handle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Load("design.yaml", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseSession,
		Kind:  KindNotFound,
	}

	if !err.Is(&Error{Phase: PhaseSession, Kind: KindNotFound}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseTraverse, Kind: KindNotFound}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseSession, Kind: KindNotLoaded}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("phase-less sentinel should match any phase")
	}
	if errors.Is(err, ErrNotLoaded) {
		t.Error("sentinel of another kind should not match")
	}
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		err    error
		target error
	}{
		{Load("x.yaml", nil), ErrLoad},
		{Elaboration("bind", nil), ErrElaboration},
		{SessionNotFound(7), ErrNotFound},
		{NotFound(PhaseTraverse, "scope", "top.x"), ErrNotFound},
		{NotLoaded(7), ErrNotLoaded},
		{InvalidHandle("nil handle"), ErrInvalidHandle},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.target) {
			t.Errorf("%v should match %v", tt.err, tt.target)
		}
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseElaborate, KindElaboration).
		Path("top", "u0").
		Value(42).
		Cause(cause).
		Detail("definition %q not found", "work@core").
		Build()

	if err.Phase != PhaseElaborate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseElaborate)
	}
	if err.Kind != KindElaboration {
		t.Errorf("Kind = %v, want %v", err.Kind, KindElaboration)
	}
	if len(err.Path) != 2 || err.Path[1] != "u0" {
		t.Errorf("Path = %v", err.Path)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if err.Detail != `definition "work@core" not found` {
		t.Errorf("Detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("Cause not wired")
	}
}

func TestConstructors(t *testing.T) {
	if e := SessionNotFound(12); e.Value != uint32(12) || e.Phase != PhaseSession {
		t.Errorf("SessionNotFound = %+v", e)
	}
	if e := InvalidData(PhaseRestore, []string{"designs", "0"}, "bad kind"); !strings.Contains(e.Error(), "designs.0") {
		t.Errorf("InvalidData = %v", e)
	}
	if e := ParseFailed("yaml", errors.New("eof")); e.Phase != PhaseRestore || e.Kind != KindInvalidData {
		t.Errorf("ParseFailed = %+v", e)
	}
	if e := Wrap(PhaseEncode, KindIO, errors.New("disk"), "write"); e.Cause == nil {
		t.Error("Wrap lost cause")
	}
}
