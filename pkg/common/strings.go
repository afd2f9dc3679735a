package common

import "strings"

// IsStringInSlice returns true if string `str` is found in `slice`.
func IsStringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if str == s {
			return true
		}
	}
	return false
}

// SplitIntoLines splits `text` into lines of at most `maxLength` bytes, breaking at word boundaries. A single word
// longer than `maxLength` gets its own line.
func SplitIntoLines(text string, maxLength int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > maxLength {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
