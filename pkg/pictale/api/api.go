package api

import (
	"context"
	"errors"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/domain"
	"kgeyst.com/pictale/pkg/pictale/domain/passes/caption"
	"kgeyst.com/pictale/pkg/pictale/domain/passes/decode"
	"kgeyst.com/pictale/pkg/pictale/domain/passes/gate"
	"kgeyst.com/pictale/pkg/pictale/domain/passes/models"
	"kgeyst.com/pictale/pkg/pictale/domain/passes/story"
	"kgeyst.com/pictale/pkg/pictale/infrastructure/huggingface"
	"kgeyst.com/pictale/pkg/pictale/infrastructure/logging"
	"kgeyst.com/pictale/pkg/pictale/infrastructure/metrics"
)

// ErrSessionBusy another upload of the same session is still being processed.
var ErrSessionBusy = errors.New("a story is already being generated for this session")

// See domain/config.go
const (
	ConfigKeyLogPath       = domain.ConfigKeyLogPath
	ConfigKeyLogLevel      = domain.ConfigKeyLogLevel
	ConfigKeyPreloadModels = domain.ConfigKeyPreloadModels
)

// API is the entrypoint to pictale. It shouldn't contain any logic of its own; it glues all the components together.
// This API can be used in various contexts: an HTTP server, console input/output, an IRC chat etc.
type API interface {
	// Generate captions the uploaded image and writes a story about it. Parameter `session` identifies the user
	// session: only one upload per session is processed at a time, a concurrent one fails with ErrSessionBusy.
	// `listener` (optional) is notified about intermediate results. Other errors are *domain.RejectedFormatError,
	// *domain.ModelLoadError or *domain.InferenceError.
	Generate(ctx context.Context, session string, upload domain.UploadedImage, listener domain.ProgressListener) (*domain.StoryResult, error)
	// PreloadModels loads the models right away instead of waiting for the first upload.
	PreloadModels(ctx context.Context) error
	// ResetModels forgets the loaded models (or the load failure), so that the next upload loads them again.
	ResetModels()
}

type api struct {
	pipeline *domain.Pipeline
	registry *domain.ModelRegistry
	sessions *common.NamedMutex
	logger   common.Logger
}

// NewAPI serves both models from the Hugging Face inference endpoint described by the config.
func NewAPI(config *common.Config, logger common.Logger) API {
	client := huggingface.NewClient(config)
	loader := logging.NewLoaderDecorator(
		metrics.NewLoaderDecorator(huggingface.NewLoader(client, config)),
		logger,
	)
	return NewAPIWithLoader(loader, config, logger)
}

// NewAPIWithLoader is NewAPI with custom models. Useful in tests.
func NewAPIWithLoader(loader domain.ModelLoader, config *common.Config, logger common.Logger) API {
	registry := domain.NewModelRegistry(loader)
	pipeline := domain.NewPipeline([]domain.Pass{
		gate.NewPass(domain.NewUploadGate(), logger),
		decode.NewPass(),
		models.NewPass(registry, logger),
		caption.NewPass(domain.NewCaptionStage()),
		story.NewPass(domain.NewStoryStageFromConfig(config)),
	})
	return &api{
		pipeline: pipeline,
		registry: registry,
		sessions: common.NewNamedMutex(),
		logger:   logger,
	}
}

func (a *api) Generate(ctx context.Context, session string, upload domain.UploadedImage, listener domain.ProgressListener) (*domain.StoryResult, error) {
	release, err := a.sessions.TryLock(session)
	if err != nil {
		return nil, ErrSessionBusy
	}
	defer release()
	result, err := a.pipeline.Run(ctx, upload, listener)
	metrics.ObserveRun(err)
	logger := a.logger.WithFields(common.Fields{
		"session": session,
		"file":    upload.Name,
		"outcome": metrics.OutcomeOf(err),
	})
	if err != nil {
		logger.Error(err, "upload not processed")
		return nil, err
	}
	logger.Log("story generated")
	return result, nil
}

func (a *api) PreloadModels(ctx context.Context) error {
	_, err := a.registry.Handles(ctx)
	return err
}

func (a *api) ResetModels() {
	a.registry.Reset()
}
