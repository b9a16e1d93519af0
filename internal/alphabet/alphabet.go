// Package alphabet defines the fixed five-glyph symbol set that encoded text
// is rendered in.
package alphabet

import "strings"

// Size is the number of glyphs in the alphabet. It never changes at runtime.
const Size = 5

// Symbol is a single glyph together with its bit-pattern annotation. The
// annotation is for display only and takes no part in encoding.
type Symbol struct {
	Glyph string
	Bits  string
}

var symbols = [Size]Symbol{
	{Glyph: "只", Bits: "11100111 10101001"},
	{Glyph: "因", Bits: "10111001 10000101"},
	{Glyph: "你", Bits: "10101101 10000001"},
	{Glyph: "太", Bits: "10111101 10010001"},
	{Glyph: "美", Bits: "10110011 10001101"},
}

// Symbols returns a copy of the alphabet in its fixed order.
func Symbols() []Symbol {
	out := make([]Symbol, Size)
	copy(out, symbols[:])
	return out
}

// Glyph returns the glyph at index i. It panics if i is outside [0, Size).
func Glyph(i int) string {
	return symbols[i].Glyph
}

// Glyphs returns every glyph concatenated in order.
func Glyphs() string {
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s.Glyph)
	}
	return b.String()
}

// Contains reports whether r is one of the alphabet glyphs.
func Contains(r rune) bool {
	for _, s := range symbols {
		if s.Glyph == string(r) {
			return true
		}
	}
	return false
}
