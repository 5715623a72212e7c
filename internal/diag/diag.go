// Package diag classifies pipeline failures and renders the fixed
// diagnostic strings callers pattern-match on.
package diag

import (
	"errors"
	"fmt"
)

// Kind is the failure class of one tool call.
type Kind int

const (
	// StructuralAbsence means an expected element was not in the page.
	StructuralAbsence Kind = iota + 1
	// InsufficientLength means extraction produced too little text.
	InsufficientLength
	// TransportFailure means the page could not be fetched at all.
	TransportFailure
)

func (k Kind) String() string {
	switch k {
	case StructuralAbsence:
		return "structural_absence"
	case InsufficientLength:
		return "insufficient_length"
	case TransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Op identifies which pipeline produced an error.
type Op string

const (
	OpBriefing Op = "get_latest_briefing"
	OpArticle  Op = "read_full_article"
)

// Error carries the failure kind through the pipeline. Only the tool
// boundary turns it into text.
type Error struct {
	Kind Kind
	Op   Op
	// Detail names what was missing or measured, for logs.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Soft reports whether the failure is returned to callers as ordinary text
// instead of failing the call.
func (e *Error) Soft() bool {
	return e.Kind == StructuralAbsence || e.Kind == InsufficientLength
}

// Diagnostic strings. Callers match on the "Error: " prefix, so the wording
// must not change.
const (
	BriefingNotFound = "Error: Could not find briefing content. Check cookie validity or paywall status."
	BriefingTooShort = "Error: Briefing content too short. Check cookie validity."
	ArticleNotFound  = "Error: Could not find article container. Check URL or cookie validity."
	ArticleNotEnough = "Error: Could not extract sufficient text. Check cookie validity or paywall status."
	DiagnosticPrefix = "Error: "
)

// Message returns the fixed diagnostic string for a soft failure. ok is
// false for nil errors, transport failures and errors not produced by this
// package.
func Message(err error) (string, bool) {
	var e *Error
	if !errors.As(err, &e) || !e.Soft() {
		return "", false
	}
	switch e.Op {
	case OpBriefing:
		if e.Kind == StructuralAbsence {
			return BriefingNotFound, true
		}
		return BriefingTooShort, true
	case OpArticle:
		if e.Kind == StructuralAbsence {
			return ArticleNotFound, true
		}
		return ArticleNotEnough, true
	}
	return "", false
}

// Absent builds a StructuralAbsence error.
func Absent(op Op, detail string) *Error {
	return &Error{Kind: StructuralAbsence, Op: op, Detail: detail}
}

// TooShort builds an InsufficientLength error.
func TooShort(op Op, detail string) *Error {
	return &Error{Kind: InsufficientLength, Op: op, Detail: detail}
}

// Transport wraps a fetch failure.
func Transport(op Op, err error) *Error {
	return &Error{Kind: TransportFailure, Op: op, Err: err}
}

// IsKind reports whether err carries kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
