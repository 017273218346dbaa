package selector

import (
	"errors"
	"fmt"
	"strings"
)

// ParseErrorKind classifies selector parse failures.
type ParseErrorKind int

const (
	// ErrUnknownEngine: an engine prefix before "=" is not a known engine.
	ErrUnknownEngine ParseErrorKind = iota
	// ErrEmptySegment: two combinators in a row, or a leading/trailing
	// combinator, or an empty selector.
	ErrEmptySegment
	// ErrUnterminatedLiteral: a quote or bracket is still open at end of input.
	ErrUnterminatedLiteral
	// ErrBadPattern: an engine body fails its static validation (bad regex,
	// non-integer index, malformed xpath step, bad container arguments).
	ErrBadPattern
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrUnknownEngine:
		return "unknown engine"
	case ErrEmptySegment:
		return "empty segment"
	case ErrUnterminatedLiteral:
		return "unterminated literal"
	case ErrBadPattern:
		return "bad pattern"
	default:
		return "parse error"
	}
}

// ParseError reports a selector that could not be tokenized. Offset is the
// byte position of the offending fragment within the original selector.
type ParseError struct {
	Kind     ParseErrorKind
	Offset   int
	Fragment string
	Message  string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
	if e.Fragment != "" {
		msg += fmt.Sprintf(": %q", e.Fragment)
	}
	if e.Message != "" {
		msg += " (" + e.Message + ")"
	}
	return msg
}

func parseErr(kind ParseErrorKind, offset int, fragment, message string) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Fragment: fragment, Message: message}
}

// ResolutionErrorKind classifies single-match resolution failures.
type ResolutionErrorKind int

const (
	// ErrNotFound: the selector matched no node.
	ErrNotFound ResolutionErrorKind = iota
	// ErrAmbiguous: the selector matched more than one node where exactly
	// one was required.
	ErrAmbiguous
)

// ResolutionError reports a FindOne call that did not land on exactly one
// node. For ambiguous matches, Candidates describes the first few matches
// so the caller can refine the selector without another query.
type ResolutionError struct {
	Kind       ResolutionErrorKind
	Selector   string
	Count      int
	Candidates []string
}

func (e *ResolutionError) Error() string {
	if e.Kind == ErrNotFound {
		return fmt.Sprintf("no node matches selector %q", e.Selector)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d nodes match selector %q, expected exactly one", e.Count, e.Selector)
	for _, c := range e.Candidates {
		fmt.Fprintf(&b, "\n  %s", c)
	}
	return b.String()
}

// IsNotFound reports whether err is a not-found resolution error.
func IsNotFound(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re) && re.Kind == ErrNotFound
}

// IsAmbiguous reports whether err is an ambiguous-match resolution error.
func IsAmbiguous(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re) && re.Kind == ErrAmbiguous
}

// IsParseError reports whether err is a selector parse error.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
