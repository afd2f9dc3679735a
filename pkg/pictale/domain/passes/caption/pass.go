package caption

import (
	"kgeyst.com/pictale/pkg/pictale/domain"
)

type pass struct {
	captionStage *domain.CaptionStage
}

func NewPass(captionStage *domain.CaptionStage) domain.Pass {
	return &pass{
		captionStage: captionStage,
	}
}

func (p *pass) Apply(context *domain.PassContext, nextPassFunc domain.NextPassFunc) error {
	context.Listener.StageStarted(domain.StageCaption)
	caption, err := p.captionStage.Caption(context.Context, context.Image, context.Models.Caption)
	if err != nil {
		return err
	}
	context.Listener.CaptionGenerated(caption)
	return nextPassFunc(context.WithCaption(caption))
}
