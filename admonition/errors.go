package admonition

import (
	"fmt"
	"strings"
)

// Classification of block processing failures.
// ENUM(badSyntax, unknownKey, unknownEscape, unterminatedString, invalidValue, unbalancedIndentation, idSpaceExhausted)
type ErrorKind int

// ParseError describes why an admonition block could not be processed. It is
// a value, not an abort: depending on the on-failure policy the caller either
// renders it inline or stops the whole run.
type ParseError struct {
	Kind ErrorKind
	// Offset is a byte offset into the offending input. It always falls on a
	// character boundary, even for non-ASCII input.
	Offset int
	// Key names the offending option, when one is known.
	Key    string
	Detail string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Key != "" {
		fmt.Fprintf(&b, " (key %q)", e.Key)
	}
	fmt.Fprintf(&b, " at offset %d", e.Offset)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func syntaxErr(offset int, detail string) *ParseError {
	return &ParseError{Kind: ErrorKindBadSyntax, Offset: offset, Detail: detail}
}
