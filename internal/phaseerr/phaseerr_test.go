package phaseerr

import (
	"strings"
	"testing"
)

func TestUnresolvedMessage(t *testing.T) {
	err := &Unresolved{Names: []string{"left-pad", "is-odd"}}
	got := err.Error()
	want := "Missing typescript definitions for the following libraries: left-pad, is-odd. Try to add a corresponding `@types` npm package, or use `stIgnore` to ignore"
	if got != want {
		t.Fatalf("Unresolved.Error() = %q, want %q", got, want)
	}
}

func TestParseErrorIncludesFileAndMsg(t *testing.T) {
	err := &ParseError{File: "index.d.ts", Msg: "unexpected token"}
	got := err.Error()
	if !strings.Contains(got, "index.d.ts") || !strings.Contains(got, "unexpected token") {
		t.Fatalf("ParseError.Error() = %q, missing file or message", got)
	}
}

func TestTypeMappingKindString(t *testing.T) {
	tests := []struct {
		k    TypeMappingKind
		want string
	}{
		{NotStatic, "NotStatic"},
		{InvalidType, "InvalidType"},
		{Loop, "Loop"},
		{TypeNotFound, "TypeNotFound"},
		{NotKeysFromTarget, "NotKeysFromTarget"},
		{NoMembers, "NoMembers"},
		{UnsupportedTM, "UnsupportedTM"},
		{CouldNotPickKeys, "CouldNotPickKeys"},
		{UnsupportedPredicate, "UnsupportedPredicate"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.k.String(); got != tt.want {
				t.Errorf("TypeMappingKind(%d).String() = %q, want %q", tt.k, got, tt.want)
			}
		})
	}
}

func TestTypeMappingProblemOmitsDetailWhenEmpty(t *testing.T) {
	err := &TypeMappingProblem{Kind: NoMembers, Target: "Pick<T,K>"}
	if strings.Contains(err.Error(), ":") {
		t.Fatalf("expected no detail suffix when Detail is empty, got %q", err.Error())
	}
	withDetail := &TypeMappingProblem{Kind: NoMembers, Target: "Pick<T,K>", Detail: "T has no members"}
	if !strings.Contains(withDetail.Error(), "T has no members") {
		t.Fatalf("expected detail in message, got %q", withDetail.Error())
	}
}

func TestInferenceMissError(t *testing.T) {
	err := &InferenceMiss{Pass: "InferReturnTypes", Target: "foo"}
	got := err.Error()
	if !strings.Contains(got, "InferReturnTypes") || !strings.Contains(got, "foo") {
		t.Fatalf("InferenceMiss.Error() = %q", got)
	}
}

func TestCycleDetectedError(t *testing.T) {
	err := &CycleDetected{Key: "lib|T"}
	if !strings.Contains(err.Error(), "lib|T") {
		t.Fatalf("CycleDetected.Error() = %q", err.Error())
	}
}

func TestPhaseResKinds(t *testing.T) {
	ok := Ok(42)
	if !ok.IsOk() || ok.Value != 42 {
		t.Fatalf("Ok(42) = %+v", ok)
	}

	ign := Ignore[int]()
	if !ign.IsIgnore() {
		t.Fatalf("Ignore() = %+v", ign)
	}

	failed := Failed[int](Failure{Source: "left-pad", Msg: "boom"})
	if !failed.IsFailure() || len(failed.Failures) != 1 || failed.Failures[0].Msg != "boom" {
		t.Fatalf("Failed(...) = %+v", failed)
	}
}

func TestFailureStringPrefersStack(t *testing.T) {
	f := Failure{Source: "x", Stack: "trace", Msg: "msg"}
	if f.String() != "trace" {
		t.Fatalf("Failure.String() = %q, want stack to win", f.String())
	}
	g := Failure{Source: "x", Msg: "msg"}
	if g.String() != "msg" {
		t.Fatalf("Failure.String() = %q, want msg", g.String())
	}
}

func TestPedanticErrorAndResolveWarningShareSite(t *testing.T) {
	rw := &ResolveWarning{Module: "left-pad"}
	pe := &PedanticError{Module: "left-pad"}
	if !strings.Contains(rw.Error(), "left-pad") || !strings.Contains(pe.Error(), "left-pad") {
		t.Fatalf("expected both to name the module: %q / %q", rw.Error(), pe.Error())
	}
}
