package common

import "strings"

// FileExtension returns the lower-cased substring after the last '.' in `name`, or an empty string if there's no
// dot at all.
func FileExtension(name string) string {
	index := strings.LastIndex(name, ".")
	if index == -1 {
		return ""
	}
	return strings.ToLower(name[index+1:])
}

// IsImageFormat returns true if `name` (a file name or a URL path) has one of the given image extensions.
func IsImageFormat(name string, extensions []string) bool {
	return IsStringInSlice(FileExtension(name), extensions)
}
