package decode

import (
	"kgeyst.com/pictale/pkg/pictale/domain"
)

type pass struct{}

// NewPass decodes the upload and announces the preview.
func NewPass() domain.Pass {
	return &pass{}
}

func (p *pass) Apply(context *domain.PassContext, nextPassFunc domain.NextPassFunc) error {
	image, err := domain.DecodeImage(context.Upload)
	if err != nil {
		return err
	}
	context.Listener.ImageDecoded(image)
	return nextPassFunc(context.WithImage(image))
}
