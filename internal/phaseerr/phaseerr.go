// Package phaseerr models the error taxonomy of spec.md §7: a small set of
// named error kinds distinguished by how they propagate, not by Go type
// hierarchy. Most of them never escape a library's own processing -- they
// are logged and the affected pass backs off to its input -- so this
// package is mostly plain value types plus formatting, grounded on the
// teacher's pkg/types.ExitError (a small struct carrying just enough to
// format a user-facing message and, where relevant, an exit code).
package phaseerr

import (
	"fmt"
	"strings"
)

// Unresolved reports that one or more user-requested libraries could not be
// found. It carries the missing names so the caller can render spec.md
// §7's exact message text.
type Unresolved struct {
	Names []string
}

func (e *Unresolved) Error() string {
	return fmt.Sprintf("Missing typescript definitions for the following libraries: %s. Try to add a corresponding `@types` npm package, or use `stIgnore` to ignore", strings.Join(e.Names, ", "))
}

// ParseError is fatal within a single library: the library it names aborts,
// the rest of the run continues.
type ParseError struct {
	File string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.File, e.Msg)
}

// ResolveWarning is non-fatal: a module reference didn't resolve, and the
// pass that hit it logs and moves on.
type ResolveWarning struct {
	Module string
}

func (e *ResolveWarning) Error() string {
	return fmt.Sprintf("could not resolve module %s", e.Module)
}

// PedanticError sits at the same call site as ResolveWarning but is
// escalated to fatal when the active config runs in pedantic mode. Callers
// decide fatality by checking the config, not by the error's Go type.
type PedanticError struct {
	Module string
}

func (e *PedanticError) Error() string {
	return fmt.Sprintf("pedantic: could not resolve module %s", e.Module)
}

// CycleDetected names a reference that loops back on itself, the condition
// scope.LoopDetector.Including signals by returning ok == false. The pass
// that hits it backs off and returns its input unchanged; it is not
// propagated further.
type CycleDetected struct {
	Key string
}

func (e *CycleDetected) Error() string {
	return fmt.Sprintf("cycle detected at %s", e.Key)
}

// TypeMappingKind enumerates the nine ExpandTypeMappings sub-problems of
// spec.md §4.7. Each is reported to the logger and suppressed: the pass
// keeps the original node rather than producing a malformed rewrite.
type TypeMappingKind int

const (
	NotStatic TypeMappingKind = iota
	InvalidType
	Loop
	TypeNotFound
	NotKeysFromTarget
	NoMembers
	UnsupportedTM
	CouldNotPickKeys
	UnsupportedPredicate
)

func (k TypeMappingKind) String() string {
	switch k {
	case NotStatic:
		return "NotStatic"
	case InvalidType:
		return "InvalidType"
	case Loop:
		return "Loop"
	case TypeNotFound:
		return "TypeNotFound"
	case NotKeysFromTarget:
		return "NotKeysFromTarget"
	case NoMembers:
		return "NoMembers"
	case UnsupportedTM:
		return "UnsupportedTM"
	case CouldNotPickKeys:
		return "CouldNotPickKeys"
	case UnsupportedPredicate:
		return "UnsupportedPredicate"
	default:
		return "TypeMappingKind(?)"
	}
}

// TypeMappingProblem names which of the nine ExpandTypeMappings sub-kinds
// was hit, on which declaration, with an optional detail string for the
// log line.
type TypeMappingProblem struct {
	Kind   TypeMappingKind
	Target string
	Detail string
}

func (e *TypeMappingProblem) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("type mapping problem (%s) on %s", e.Kind, e.Target)
	}
	return fmt.Sprintf("type mapping problem (%s) on %s: %s", e.Kind, e.Target, e.Detail)
}

// InferenceMiss reports that a pass wanting to infer something (e.g.
// InferReturnTypes) could not, and left its input unchanged.
type InferenceMiss struct {
	Pass   string
	Target string
}

func (e *InferenceMiss) Error() string {
	return fmt.Sprintf("%s: could not infer for %s", e.Pass, e.Target)
}
