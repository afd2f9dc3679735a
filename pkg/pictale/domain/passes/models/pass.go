package models

import (
	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/domain"
)

type pass struct {
	registry *domain.ModelRegistry
	logger   common.Logger
}

// NewPass fetches the model handles from the registry (loading them on the very first run).
func NewPass(registry *domain.ModelRegistry, logger common.Logger) domain.Pass {
	return &pass{
		registry: registry,
		logger:   logger,
	}
}

func (p *pass) Apply(context *domain.PassContext, nextPassFunc domain.NextPassFunc) error {
	context.Listener.StageStarted(domain.StageModelLoad)
	models, err := p.registry.Handles(context.Context)
	if err != nil {
		p.logger.Error(err, "models unavailable")
		return err
	}
	return nextPassFunc(context.WithModels(models))
}
