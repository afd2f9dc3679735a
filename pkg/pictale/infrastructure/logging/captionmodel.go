package logging

import (
	"context"
	"time"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/domain"
)

type captionModelDecorator struct {
	wrappedCaptionModel domain.CaptionModel
	logger              common.Logger
}

func NewCaptionModelDecorator(wrappedCaptionModel domain.CaptionModel, logger common.Logger) domain.CaptionModel {
	return &captionModelDecorator{
		wrappedCaptionModel: wrappedCaptionModel,
		logger:              logger,
	}
}

func (c *captionModelDecorator) Name() string {
	return c.wrappedCaptionModel.Name()
}

func (c *captionModelDecorator) Caption(ctx context.Context, image *domain.DecodedImage) ([]domain.GeneratedText, error) {
	logger := c.logger.WithFields(common.Fields{
		"model":  c.Name(),
		"image":  image.Name,
		"format": image.Format,
		"size":   len(image.Data),
	})
	logger.Log("captioning image")
	t := time.Now()
	candidates, err := c.wrappedCaptionModel.Caption(ctx, image)
	elapsed := time.Since(t).Milliseconds()
	if err != nil {
		logger.WithFields(common.Fields{"took_ms": elapsed}).Error(err, "captioning failed")
		return nil, err
	}
	logger.WithFields(common.Fields{
		"took_ms":    elapsed,
		"candidates": len(candidates),
		"caption":    firstText(candidates),
	}).Log("captioning done")
	return candidates, nil
}

func firstText(candidates []domain.GeneratedText) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0].Text
}
