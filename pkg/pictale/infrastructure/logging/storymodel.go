package logging

import (
	"context"
	"time"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/domain"
)

type storyModelDecorator struct {
	wrappedStoryModel domain.StoryModel
	logger            common.Logger
}

func NewStoryModelDecorator(wrappedStoryModel domain.StoryModel, logger common.Logger) domain.StoryModel {
	return &storyModelDecorator{
		wrappedStoryModel: wrappedStoryModel,
		logger:            logger,
	}
}

func (s *storyModelDecorator) Name() string {
	return s.wrappedStoryModel.Name()
}

func (s *storyModelDecorator) Generate(ctx context.Context, prompt string, options domain.GenerateOptions) ([]domain.GeneratedText, error) {
	logger := s.logger.WithFields(common.Fields{
		"model":          s.Name(),
		"max_new_tokens": options.MaxNewTokens,
	})
	logger.WithFields(common.Fields{"prompt": prompt}).Log("generating story")
	t := time.Now()
	candidates, err := s.wrappedStoryModel.Generate(ctx, prompt, options)
	elapsed := time.Since(t).Milliseconds()
	if err != nil {
		logger.WithFields(common.Fields{"took_ms": elapsed}).Error(err, "story generation failed")
		return nil, err
	}
	logger.WithFields(common.Fields{
		"took_ms":    elapsed,
		"candidates": len(candidates),
		"raw_story":  firstText(candidates),
	}).Log("story generation done")
	return candidates, nil
}
