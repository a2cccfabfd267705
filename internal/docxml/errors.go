// Package docxml implements the update-XML dialect: the per-document data
// model, the byte-span-preserving reader, and the conditional writer.
package docxml

import (
	"encoding/xml"
	"fmt"
)

// ParseError wraps a structural failure raised by the reader (a malformed
// token stream, a <doc> left open at EOF, or a Doc slice that fails its
// <doc>...</doc> invariant). It exposes an optional line number lifted
// from the underlying encoding/xml error when available.
type ParseError struct {
	Msg  string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("docxml: parse error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("docxml: parse error: %s", e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// wrapParseErr normalizes an arbitrary reader-time error into a *ParseError,
// lifting the line number out of encoding/xml.SyntaxError when present.
func wrapParseErr(msg string, err error) error {
	if se, ok := err.(*xml.SyntaxError); ok {
		return &ParseError{Msg: msg, Line: se.Line, Err: err}
	}
	return &ParseError{Msg: msg, Err: err}
}
