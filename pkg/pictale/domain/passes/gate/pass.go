package gate

import (
	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/domain"
)

type pass struct {
	uploadGate *domain.UploadGate
	logger     common.Logger
}

// NewPass rejects uploads with a disallowed extension before anything else happens.
func NewPass(uploadGate *domain.UploadGate, logger common.Logger) domain.Pass {
	return &pass{
		uploadGate: uploadGate,
		logger:     logger,
	}
}

func (p *pass) Apply(context *domain.PassContext, nextPassFunc domain.NextPassFunc) error {
	err := p.uploadGate.Validate(context.Upload.Name)
	if err != nil {
		p.logger.WithFields(common.Fields{"file": context.Upload.Name}).Log("upload rejected")
		return err
	}
	return nextPassFunc(context)
}
