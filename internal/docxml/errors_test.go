package docxml

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorMessage(t *testing.T) {
	base := &ParseError{Msg: "unexpected EOF inside <doc>"}
	assert.Equal(t, "docxml: parse error: unexpected EOF inside <doc>", base.Error())

	withLine := &ParseError{Msg: "bad token", Line: 7}
	assert.Equal(t, "docxml: parse error at line 7: bad token", withLine.Error())
}

func TestWrapParseErrLiftsLine(t *testing.T) {
	underlying := &xml.SyntaxError{Msg: "unexpected EOF", Line: 12}
	wrapped := wrapParseErr("reader failed", underlying)

	var pe *ParseError
	assert.True(t, errors.As(wrapped, &pe))
	assert.Equal(t, 12, pe.Line)
	assert.ErrorIs(t, wrapped, underlying)
}

func TestWrapParseErrWithoutSyntaxError(t *testing.T) {
	wrapped := wrapParseErr("doc slice invariant violated", errors.New("boom"))

	var pe *ParseError
	assert.True(t, errors.As(wrapped, &pe))
	assert.Equal(t, 0, pe.Line)
}
