package domain

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

var formatMIMETypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
}

// UploadedImage a file as submitted by the user. It's owned by the pipeline run which received it.
type UploadedImage struct {
	Name string
	Data []byte
}

// DecodedImage an uploaded image which is known to be a valid picture. Format is the actual format of the data as
// detected by the decoder ("png" or "jpeg"), regardless of the file name.
type DecodedImage struct {
	Name   string
	Format string
	Data   []byte
	Width  int
	Height int
}

// MIMEType the media type of Data.
func (d *DecodedImage) MIMEType() string {
	return formatMIMETypes[d.Format]
}

// DecodeImage makes sure the upload is a PNG or JPEG picture. Errors are of type *InferenceError (StageDecode).
func DecodeImage(upload UploadedImage) (*DecodedImage, error) {
	decoded, format, err := image.Decode(bytes.NewReader(upload.Data))
	if err != nil {
		return nil, &InferenceError{Stage: StageDecode, Cause: err}
	}
	if _, ok := formatMIMETypes[format]; !ok {
		return nil, &InferenceError{Stage: StageDecode, Cause: fmt.Errorf("unsupported image format %q", format)}
	}
	bounds := decoded.Bounds()
	return &DecodedImage{
		Name:   upload.Name,
		Format: format,
		Data:   upload.Data,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
