package domain

import "context"

// StoryResult what a successful run shows to the user.
type StoryResult struct {
	Image   *DecodedImage
	Caption string
	Story   string
}

// Pipeline is the orchestrator of a single upload: it receives a list of passes and runs them one after another,
// stopping at the first error.
type Pipeline struct {
	passes []Pass
}

func NewPipeline(passes []Pass) *Pipeline {
	return &Pipeline{
		passes: passes,
	}
}

// Run processes the upload synchronously. Errors are *RejectedFormatError, *ModelLoadError or *InferenceError,
// depending on the pass which failed.
func (p *Pipeline) Run(ctx context.Context, upload UploadedImage, listener ProgressListener) (*StoryResult, error) {
	passContext := NewPassContext(ctx, upload, listener)
	err := p.applyPassAtIndex(passContext, 0)
	if err != nil {
		return nil, err
	}
	return &StoryResult{
		Image:   passContext.Image,
		Caption: passContext.Caption,
		Story:   passContext.Story,
	}, nil
}

func (p *Pipeline) applyPassAtIndex(passContext *PassContext, index int) error {
	if index >= len(p.passes) {
		return nil
	}
	nextPassFunc := func(passContext *PassContext) error {
		return p.applyPassAtIndex(passContext, index+1)
	}
	return p.passes[index].Apply(passContext, nextPassFunc)
}
