package metrics

import (
	"context"
	"time"

	"kgeyst.com/pictale/pkg/pictale/domain"
)

type captionModel struct {
	domain.CaptionModel
}

type storyModel struct {
	domain.StoryModel
}

type loader struct {
	wrappedLoader domain.ModelLoader
}

// NewLoaderDecorator wraps the loaded models so that every model call is timed.
func NewLoaderDecorator(wrappedLoader domain.ModelLoader) domain.ModelLoader {
	return &loader{wrappedLoader: wrappedLoader}
}

func (l *loader) Load(ctx context.Context) (*domain.Models, error) {
	models, err := l.wrappedLoader.Load(ctx)
	if err != nil || models == nil || models.Caption == nil || models.Story == nil {
		return models, err
	}
	return &domain.Models{
		Caption: &captionModel{models.Caption},
		Story:   &storyModel{models.Story},
	}, nil
}

func (c *captionModel) Caption(ctx context.Context, image *domain.DecodedImage) ([]domain.GeneratedText, error) {
	defer observeInference(domain.StageCaption, c.Name(), time.Now())
	return c.CaptionModel.Caption(ctx, image)
}

func (s *storyModel) Generate(ctx context.Context, prompt string, options domain.GenerateOptions) ([]domain.GeneratedText, error) {
	defer observeInference(domain.StageStory, s.Name(), time.Now())
	return s.StoryModel.Generate(ctx, prompt, options)
}
