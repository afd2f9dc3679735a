package domain

import "context"

// PassContext the state of a single pipeline run, handed from pass to pass.
type PassContext struct {
	Context  context.Context
	Listener ProgressListener
	Upload   UploadedImage
	Image    *DecodedImage
	Models   *Models
	Caption  string
	Story    string
}

func NewPassContext(ctx context.Context, upload UploadedImage, listener ProgressListener) *PassContext {
	if listener == nil {
		listener = NopProgressListener{}
	}
	return &PassContext{
		Context:  ctx,
		Listener: listener,
		Upload:   upload,
	}
}

func (p *PassContext) WithImage(image *DecodedImage) *PassContext {
	p.Image = image
	return p
}

func (p *PassContext) WithModels(models *Models) *PassContext {
	p.Models = models
	return p
}

func (p *PassContext) WithCaption(caption string) *PassContext {
	p.Caption = caption
	return p
}

func (p *PassContext) WithStory(story string) *PassContext {
	p.Story = story
	return p
}
