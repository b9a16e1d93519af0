package codec

import (
	"regexp"
	"strings"

	"github.com/vk/kunyue/internal/alphabet"
)

const (
	// Prefix opens every formatted output.
	Prefix = "坤曰：只因你太美，你我美积极，"
	// Separator divides the symbolic text from the credential.
	Separator = "，"

	// SymbolCount is the maximum number of digest characters turned into glyphs.
	SymbolCount = 60
	// ClusterSize is the number of glyphs per space-separated cluster.
	ClusterSize = 5
)

// formatPattern captures the symbolic part lazily up to the first separator
// after the prefix, then the credential greedily to the end of the input,
// line breaks included.
var formatPattern = regexp.MustCompile(regexp.QuoteMeta(Prefix) + `(.*?)` + regexp.QuoteMeta(Separator) + `((?s:.*))$`)

// symbolize maps each hex character onto the alphabet using its character
// code: (c & 0x7) % 5. Codes 5, 6 and 7 fold back onto the first three glyphs,
// and 'a'..'f' land differently from their numeric values.
func symbolize(hexDigest string) string {
	n := min(len(hexDigest), SymbolCount)
	var b strings.Builder
	b.Grow(n * 3)
	for i := 0; i < n; i++ {
		b.WriteString(alphabet.Glyph(int(hexDigest[i]&0x7) % alphabet.Size))
	}
	return b.String()
}

// group inserts a single space after every ClusterSize glyphs, never after
// the last one.
func group(symbolic string) string {
	runes := []rune(symbolic)
	var b strings.Builder
	for i, r := range runes {
		b.WriteRune(r)
		if (i+1)%ClusterSize == 0 && i < len(runes)-1 {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// format assembles the full output string.
func format(grouped, credential string) string {
	return Prefix + grouped + Separator + credential
}

// parse splits a formatted string into its symbolic and credential parts.
func parse(formatted string) (symbolic, credential string, ok bool) {
	m := formatPattern.FindStringSubmatch(formatted)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// ExtractCredential returns the credential embedded at the end of a formatted
// string. The boolean is false when the input does not have the expected
// shape. It does not consult any registry.
func ExtractCredential(formatted string) (string, bool) {
	_, credential, ok := parse(formatted)
	return credential, ok
}
