package domain

import "context"

// GeneratedText a single candidate returned by a model.
type GeneratedText struct {
	Text string
}

// CaptionModel a pretrained model which describes an image in natural language.
type CaptionModel interface {
	// Name the identifier of the model. Useful for debugging.
	Name() string
	// Caption returns the candidate descriptions of the image, best first.
	Caption(ctx context.Context, image *DecodedImage) ([]GeneratedText, error)
}

type GenerateOptions struct {
	// MaxNewTokens bounds the number of tokens the model generates on top of the prompt
	MaxNewTokens int
}

// StoryModel a pretrained model which continues a text prompt.
type StoryModel interface {
	// Name the identifier of the model. Useful for debugging.
	Name() string
	// Generate returns the candidate continuations of `prompt`, best first.
	Generate(ctx context.Context, prompt string, options GenerateOptions) ([]GeneratedText, error)
}

// Models the pair of handles used by the pipeline. Both are read-only once loaded and can be shared between
// concurrent runs.
type Models struct {
	Caption CaptionModel
	Story   StoryModel
}

// ModelLoader constructs the models. It's called at most once per ModelRegistry lifetime.
type ModelLoader interface {
	Load(ctx context.Context) (*Models, error)
}

type ModelLoaderFunc func(ctx context.Context) (*Models, error)

func (f ModelLoaderFunc) Load(ctx context.Context) (*Models, error) {
	return f(ctx)
}
