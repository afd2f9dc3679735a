package domain

// ProgressListener receives intermediate results while the pipeline runs, so that a frontend can show them before
// the whole run completes. Calls happen on the goroutine which runs the pipeline.
type ProgressListener interface {
	// ImageDecoded the upload is a valid picture; a preview can be shown. It stays valid even if later stages fail.
	ImageDecoded(image *DecodedImage)
	// StageStarted a potentially long stage is about to start.
	StageStarted(stage Stage)
	// CaptionGenerated the caption is ready; the story is generated next.
	CaptionGenerated(caption string)
}

// NopProgressListener ignores all notifications. Embed it to implement only some of the methods.
type NopProgressListener struct{}

func (NopProgressListener) ImageDecoded(*DecodedImage) {}

func (NopProgressListener) StageStarted(Stage) {}

func (NopProgressListener) CaptionGenerated(string) {}
