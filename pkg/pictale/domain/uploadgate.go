package domain

import "kgeyst.com/pictale/pkg/common"

// AllowedImageExtensions the only file extensions accepted for upload (compared case-insensitively).
var AllowedImageExtensions = []string{"jpg", "jpeg", "png"}

// UploadGate rejects uploads by their declared file name before any model is involved. It doesn't look at the
// content: malformed pictures are caught later, when decoding.
type UploadGate struct {
	allowedExtensions []string
}

func NewUploadGate() *UploadGate {
	return &UploadGate{
		allowedExtensions: AllowedImageExtensions,
	}
}

// Validate returns *RejectedFormatError if the extension of `filename` isn't allowed.
func (u *UploadGate) Validate(filename string) error {
	extension := common.FileExtension(filename)
	if !common.IsStringInSlice(extension, u.allowedExtensions) {
		return &RejectedFormatError{Extension: extension}
	}
	return nil
}
