// errors_test.go
package kixpr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WrapErrorWithSource_ParseError(t *testing.T) {
	src := "(a"
	_, err := Parse(src)
	require.Error(t, err)

	wrapped := WrapErrorWithSource(err, src)
	want := "PARSE ERROR at 1:3: unexpected end of input, expected ')'\n" +
		"\n" +
		"   1 | (a\n" +
		"     |   ^\n"
	assert.Equal(t, want, wrapped.Error())
}

func Test_WrapErrorWithSource_LexError(t *testing.T) {
	src := `x "a\qb"`
	_, err := Parse(src)
	require.Error(t, err)

	wrapped := WrapErrorWithSource(err, src)
	assert.Contains(t, wrapped.Error(), "LEXICAL ERROR at ")
	assert.Contains(t, wrapped.Error(), "   1 | "+src+"\n")
	assert.Contains(t, wrapped.Error(), "^")
}

func Test_WrapErrorWithName_IncludesName(t *testing.T) {
	src := ",x"
	_, err := Parse(src)
	require.Error(t, err)

	wrapped := WrapErrorWithName(err, "scratch.kx", src)
	assert.Contains(t, wrapped.Error(), "PARSE ERROR in scratch.kx at 1:1:")
}

func Test_WrapErrorWithSource_MultiLineContext(t *testing.T) {
	src := "a\n(b\nc"
	_, err := Parse(src)
	require.Error(t, err)
	// "a" followed by "(b" is an alphanumeric call whose group is never
	// closed, so the failure lands at end of input on line 3.
	wrapped := WrapErrorWithSource(err, src)
	assert.Contains(t, wrapped.Error(), "   2 | (b\n")
	assert.Contains(t, wrapped.Error(), "   3 | c\n")
}

func Test_WrapErrorWithSource_Passthrough(t *testing.T) {
	plain := errors.New("disk on fire")
	assert.Equal(t, plain, WrapErrorWithSource(plain, "whatever"))
	assert.Nil(t, WrapErrorWithSource(nil, ""))
}
