package api

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/domain"
	"kgeyst.com/pictale/pkg/pictale/domain/domaintest"
)

type fixture struct {
	api          API
	loader       *domaintest.CountingLoader
	captionModel *domaintest.FakeCaptionModel
	storyModel   *domaintest.FakeStoryModel
}

func newFixture(config *common.Config) *fixture {
	captionModel := domaintest.NewFakeCaptionModel("a cat sleeping on a red sofa")
	storyModel := domaintest.NewFakeStoryModel("a cat sleeping on a red sofa " + strings.Repeat("and then it dreamed ", 100))
	loader := &domaintest.CountingLoader{Models: &domain.Models{Caption: captionModel, Story: storyModel}}
	nullLogger, _ := logrustest.NewNullLogger()
	return &fixture{
		api:          NewAPIWithLoader(loader, config, common.NewLogrusLogger(nullLogger)),
		loader:       loader,
		captionModel: captionModel,
		storyModel:   storyModel,
	}
}

type recordingListener struct {
	events []string
}

func (r *recordingListener) ImageDecoded(image *domain.DecodedImage) {
	r.events = append(r.events, "decoded:"+image.Format)
}

func (r *recordingListener) StageStarted(stage domain.Stage) {
	r.events = append(r.events, "started:"+string(stage))
}

func (r *recordingListener) CaptionGenerated(caption string) {
	r.events = append(r.events, "caption:"+caption)
}

func TestGenerateValidImage(t *testing.T) {
	f := newFixture(common.NewConfig(nil))
	listener := &recordingListener{}

	result, err := f.api.Generate(context.Background(), "s1", domain.UploadedImage{Name: "cat.png", Data: domaintest.PNG()}, listener)
	require.NoError(t, err)
	assert.Equal(t, "a cat sleeping on a red sofa", result.Caption)
	assert.NotEmpty(t, result.Story)
	assert.LessOrEqual(t, len(strings.Fields(result.Story)), domain.DefaultStoryWordLimit)
	assert.Len(t, strings.Fields(result.Story), domain.DefaultStoryWordLimit)
	assert.Equal(t, "png", result.Image.Format)
	assert.Equal(t, []string{"a cat sleeping on a red sofa"}, f.storyModel.Prompts())
	assert.Equal(t, domain.DefaultStoryMaxNewTokens, f.storyModel.Options()[0].MaxNewTokens)
	assert.Equal(t, []string{
		"decoded:png",
		"started:model_load",
		"started:caption",
		"caption:a cat sleeping on a red sofa",
		"started:story",
	}, listener.events)
}

func TestGenerateRejectedFormatNeverTouchesModels(t *testing.T) {
	f := newFixture(common.NewConfig(nil))
	listener := &recordingListener{}

	_, err := f.api.Generate(context.Background(), "s1", domain.UploadedImage{Name: "notes.txt", Data: []byte("hello")}, listener)
	var rejected *domain.RejectedFormatError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "txt", rejected.Extension)
	assert.Equal(t, 0, f.loader.Calls())
	assert.Equal(t, 0, f.captionModel.Calls())
	assert.Equal(t, 0, f.storyModel.Calls())
	assert.Empty(t, listener.events)
}

func TestGenerateBrokenImage(t *testing.T) {
	f := newFixture(common.NewConfig(nil))

	_, err := f.api.Generate(context.Background(), "s1", domain.UploadedImage{Name: "broken.jpg", Data: []byte("not an image")}, nil)
	var inferenceErr *domain.InferenceError
	require.ErrorAs(t, err, &inferenceErr)
	assert.Equal(t, domain.StageDecode, inferenceErr.Stage)
	assert.Equal(t, 0, f.captionModel.Calls())
	assert.Equal(t, 0, f.storyModel.Calls())
}

func TestGenerateModelLoadFailureIsSticky(t *testing.T) {
	f := newFixture(common.NewConfig(nil))
	f.loader.Err = errors.New("model assets unavailable")
	upload := domain.UploadedImage{Name: "cat.jpg", Data: domaintest.JPEG()}
	listener := &recordingListener{}

	_, err := f.api.Generate(context.Background(), "s1", upload, listener)
	var loadErr *domain.ModelLoadError
	require.ErrorAs(t, err, &loadErr)
	// The preview is shown even though the models failed.
	assert.Equal(t, []string{"decoded:jpeg", "started:model_load"}, listener.events)

	f.loader.Err = nil
	_, retryErr := f.api.Generate(context.Background(), "s1", upload, nil)
	assert.Equal(t, err, retryErr)
	assert.Equal(t, 1, f.loader.Calls())

	f.api.ResetModels()
	result, err := f.api.Generate(context.Background(), "s1", upload, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Story)
	assert.Equal(t, 2, f.loader.Calls())
}

func TestGenerateCaptionFailureSkipsStory(t *testing.T) {
	f := newFixture(common.NewConfig(nil))
	f.captionModel.Err = errors.New("unsupported color mode")

	_, err := f.api.Generate(context.Background(), "s1", domain.UploadedImage{Name: "cat.png", Data: domaintest.PNG()}, nil)
	var inferenceErr *domain.InferenceError
	require.ErrorAs(t, err, &inferenceErr)
	assert.Equal(t, domain.StageCaption, inferenceErr.Stage)
	assert.Equal(t, 0, f.storyModel.Calls())
}

func TestGenerateReusesModels(t *testing.T) {
	f := newFixture(common.NewConfig(map[string]any{domain.ConfigKeyStoryWordLimit: 3}))
	upload := domain.UploadedImage{Name: "cat.PNG", Data: domaintest.PNG()}

	for i := 0; i < 3; i++ {
		result, err := f.api.Generate(context.Background(), "s1", upload, nil)
		require.NoError(t, err)
		assert.Equal(t, "a cat sleeping", result.Story)
	}
	assert.Equal(t, 1, f.loader.Calls())
	assert.Equal(t, 3, f.captionModel.Calls())
}

func TestPreloadModels(t *testing.T) {
	f := newFixture(common.NewConfig(nil))
	require.NoError(t, f.api.PreloadModels(context.Background()))
	_, err := f.api.Generate(context.Background(), "s1", domain.UploadedImage{Name: "cat.png", Data: domaintest.PNG()}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.loader.Calls())
}

// blockingCaptionModel holds the pipeline inside the caption stage until released.
type blockingCaptionModel struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingCaptionModel) Name() string {
	return "blocking"
}

func (b *blockingCaptionModel) Caption(context.Context, *domain.DecodedImage) ([]domain.GeneratedText, error) {
	b.entered <- struct{}{}
	<-b.release
	return []domain.GeneratedText{{Text: "caption"}}, nil
}

func TestGenerateOneRunPerSession(t *testing.T) {
	captionModel := &blockingCaptionModel{entered: make(chan struct{}), release: make(chan struct{})}
	loader := &domaintest.CountingLoader{Models: &domain.Models{Caption: captionModel, Story: domaintest.NewFakeStoryModel("story")}}
	nullLogger, _ := logrustest.NewNullLogger()
	service := NewAPIWithLoader(loader, common.NewConfig(nil), common.NewLogrusLogger(nullLogger))
	upload := domain.UploadedImage{Name: "cat.png", Data: domaintest.PNG()}

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = service.Generate(context.Background(), "alice", upload, nil)
	}()
	<-captionModel.entered

	_, err := service.Generate(context.Background(), "alice", upload, nil)
	assert.ErrorIs(t, err, ErrSessionBusy)

	// Other sessions aren't affected.
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := service.Generate(context.Background(), "bob", upload, nil)
		assert.NoError(t, err)
	}()
	<-captionModel.entered

	close(captionModel.release)
	wg.Wait()
	require.NoError(t, firstErr)
}
