package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKey(t *testing.T) {
	testCases := []struct {
		name       string
		symbolic   string
		credential string
		want       Key
	}{
		{name: "grouped", symbolic: "只因你太美 只因", credential: "k", want: "只因你太美只因:k"},
		{name: "ungrouped", symbolic: "只因你太美只因", credential: "k", want: "只因你太美只因:k"},
		{name: "mixed whitespace", symbolic: " 只\t因\n你\v太\f美\r", credential: "k", want: "只因你太美:k"},
		{name: "credential kept verbatim", symbolic: "只", credential: " a b:c ", want: "只: a b:c "},
		{name: "empty", symbolic: "", credential: "", want: ":"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewKey(tc.symbolic, tc.credential))
		})
	}
}

func TestStripWhitespace_KeepsUnicodeSpaces(t *testing.T) {
	// Only ASCII whitespace is removed; the ideographic space survives.
	assert.Equal(t, "只　因", StripWhitespace("只 　 因"))
}
