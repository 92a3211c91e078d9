// sexp_test.go
package kixpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Stringify_Leaves(t *testing.T) {
	assert.Equal(t, "foo", Stringify(&Sexp{Kind: SexpName, Text: "foo"}))
	assert.Equal(t, "<=_<", Stringify(&Sexp{Kind: SexpName, Text: "<=_<"}))
	assert.Equal(t, `"hi"`, Stringify(&Sexp{Kind: SexpString, Text: "hi"}))
	assert.Equal(t, "42", Stringify(&Sexp{Kind: SexpNumber, Number: 42}))
}

func Test_Stringify_StringEscapes(t *testing.T) {
	assert.Equal(t, `"a\nb\tc\\d\"e"`,
		Stringify(&Sexp{Kind: SexpString, Text: "a\nb\tc\\d\"e"}))
	assert.Equal(t, `""`, Stringify(&Sexp{Kind: SexpString, Text: ""}))
}

func Test_Stringify_Numbers(t *testing.T) {
	assert.Equal(t, "123.456", Stringify(&Sexp{Kind: SexpNumber, Number: 123.456}))
	assert.Equal(t, "0.5", Stringify(&Sexp{Kind: SexpNumber, Number: 0.5}))
	assert.Equal(t, "7", Stringify(&Sexp{Kind: SexpNumber, Number: 7}))
	assert.Equal(t, "-3", Stringify(&Sexp{Kind: SexpNumber, Number: -3}))
	assert.Equal(t, "1e+21", Stringify(&Sexp{Kind: SexpNumber, Number: 1e21}))
}

func Test_Stringify_Lists(t *testing.T) {
	assert.Equal(t, "()", Stringify(&Sexp{Kind: SexpList}))

	tree := &Sexp{Kind: SexpList, List: []*Sexp{
		{Kind: SexpName, Text: "f"},
		{Kind: SexpList, List: []*Sexp{
			{Kind: SexpName, Text: "g"},
			{Kind: SexpNumber, Number: 1},
		}},
		{Kind: SexpString, Text: "tail"},
	}}
	assert.Equal(t, `(f (g 1) "tail")`, Stringify(tree))
}

func Test_Sexp_StringMatchesStringify(t *testing.T) {
	sexp, err := Parse("n *: n - 1 .factorial")
	assert.NoError(t, err)
	assert.Equal(t, Stringify(sexp), sexp.String())
}
