package story

import (
	"kgeyst.com/pictale/pkg/pictale/domain"
)

type pass struct {
	storyStage *domain.StoryStage
}

// NewPass uses the caption as the prompt for the story model.
func NewPass(storyStage *domain.StoryStage) domain.Pass {
	return &pass{
		storyStage: storyStage,
	}
}

func (p *pass) Apply(context *domain.PassContext, nextPassFunc domain.NextPassFunc) error {
	context.Listener.StageStarted(domain.StageStory)
	story, err := p.storyStage.Generate(context.Context, context.Caption, context.Models.Story)
	if err != nil {
		return err
	}
	return nextPassFunc(context.WithStory(story))
}
