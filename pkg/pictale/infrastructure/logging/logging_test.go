package logging

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/domain"
	"kgeyst.com/pictale/pkg/pictale/domain/domaintest"
)

func TestLoaderDecoratorWrapsModels(t *testing.T) {
	nullLogger, hook := logrustest.NewNullLogger()
	captionModel := domaintest.NewFakeCaptionModel("a dog")
	storyModel := domaintest.NewFakeStoryModel("a dog ran away")
	loader := NewLoaderDecorator(&domaintest.CountingLoader{Models: &domain.Models{Caption: captionModel, Story: storyModel}}, common.NewLogrusLogger(nullLogger))

	models, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "models loaded", hook.LastEntry().Message)
	assert.Equal(t, "fake-captioner", hook.LastEntry().Data["caption_model"])

	candidates, err := models.Caption.Caption(context.Background(), &domain.DecodedImage{Name: "dog.jpg", Format: "jpeg"})
	require.NoError(t, err)
	assert.Equal(t, "a dog", candidates[0].Text)
	assert.Equal(t, 1, captionModel.Calls())
	assert.Equal(t, "captioning done", hook.LastEntry().Message)
	assert.Equal(t, "a dog", hook.LastEntry().Data["caption"])
	assert.Equal(t, "dog.jpg", hook.LastEntry().Data["image"])

	candidates, err = models.Story.Generate(context.Background(), "a dog", domain.GenerateOptions{MaxNewTokens: 150})
	require.NoError(t, err)
	assert.Equal(t, "a dog ran away", candidates[0].Text)
	assert.Equal(t, "story generation done", hook.LastEntry().Message)
	assert.Equal(t, 150, hook.LastEntry().Data["max_new_tokens"])
}

func TestDecoratorsLogFailures(t *testing.T) {
	nullLogger, hook := logrustest.NewNullLogger()
	logger := common.NewLogrusLogger(nullLogger)

	failingLoader := NewLoaderDecorator(&domaintest.CountingLoader{Err: errors.New("no network")}, logger)
	_, err := failingLoader.Load(context.Background())
	require.EqualError(t, err, "no network")
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	storyModel := domaintest.NewFakeStoryModel()
	storyModel.Err = errors.New("CUDA out of memory")
	_, err = NewStoryModelDecorator(storyModel, logger).Generate(context.Background(), "prompt", domain.GenerateOptions{})
	require.Error(t, err)
	assert.Equal(t, "story generation failed", hook.LastEntry().Message)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
