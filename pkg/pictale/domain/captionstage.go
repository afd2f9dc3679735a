package domain

import "context"

// CaptionStage turns an image into a caption by calling the captioning model exactly once.
type CaptionStage struct{}

func NewCaptionStage() *CaptionStage {
	return &CaptionStage{}
}

// Caption returns the best candidate. Errors are of type *InferenceError (StageCaption).
func (c *CaptionStage) Caption(ctx context.Context, image *DecodedImage, model CaptionModel) (string, error) {
	candidates, err := model.Caption(ctx, image)
	if err != nil {
		return "", &InferenceError{Stage: StageCaption, Cause: err}
	}
	if len(candidates) == 0 {
		return "", &InferenceError{Stage: StageCaption, Cause: ErrNoCandidates}
	}
	return candidates[0].Text, nil
}
