package utils

import (
	"golang.org/x/text/width"
)

// TruncateHalfWidth cuts text once its half-width-equivalent length
// exceeds maxHW, appending "...". Fullwidth, wide and ambiguous runes
// count as 2, everything else as 1, so Japanese labels and ASCII mix
// to a consistent display width.
func TruncateHalfWidth(text string, maxHW int) string {
	count := 0
	for i, r := range text {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide, width.EastAsianAmbiguous:
			count += 2
		default:
			count++
		}
		if count > maxHW {
			return text[:i] + "..."
		}
	}
	return text
}
