package logging

import (
	"context"
	"time"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/domain"
)

type loaderDecorator struct {
	wrappedLoader domain.ModelLoader
	logger        common.Logger
}

// NewLoaderDecorator logs model loading and wraps the loaded models into logging decorators.
func NewLoaderDecorator(wrappedLoader domain.ModelLoader, logger common.Logger) domain.ModelLoader {
	return &loaderDecorator{
		wrappedLoader: wrappedLoader,
		logger:        logger,
	}
}

func (l *loaderDecorator) Load(ctx context.Context) (*domain.Models, error) {
	l.logger.Log("loading models")
	t := time.Now()
	models, err := l.wrappedLoader.Load(ctx)
	elapsed := time.Since(t).Milliseconds()
	if err != nil {
		l.logger.WithFields(common.Fields{"took_ms": elapsed}).Error(err, "failed to load models")
		return nil, err
	}
	if models == nil || models.Caption == nil || models.Story == nil {
		return models, nil
	}
	l.logger.WithFields(common.Fields{
		"took_ms":       elapsed,
		"caption_model": models.Caption.Name(),
		"story_model":   models.Story.Name(),
	}).Log("models loaded")
	return &domain.Models{
		Caption: NewCaptionModelDecorator(models.Caption, l.logger),
		Story:   NewStoryModelDecorator(models.Story, l.logger),
	}, nil
}
