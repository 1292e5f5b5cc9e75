package prices

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleTurkish lower-cases every whitespace-delimited token and
// re-capitalizes only its first letter. Lower-casing the capital dotted İ
// leaves a combining dot above (U+0307) after the plain i; that codepoint is
// stripped so "İSPANAK" renders as "Ispanak" rather than "İ̇spanak". This is
// deliberate Turkish handling, not generic Unicode case folding.
func TitleTurkish(s string) string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		lower := strings.ToLower(field)
		lower = strings.ReplaceAll(lower, "i̇", "i")
		r, size := utf8.DecodeRuneInString(lower)
		if r == utf8.RuneError && size <= 1 {
			out = append(out, lower)
			continue
		}
		out = append(out, string(unicode.ToUpper(r))+lower[size:])
	}
	return strings.Join(out, " ")
}
