package huggingface

import (
	"context"

	"kgeyst.com/pictale/pkg/pictale/domain"
)

type captionModel struct {
	client  *Client
	modelID string
}

// NewCaptionModel an image-to-text model: the raw picture is posted as is.
func NewCaptionModel(client *Client, modelID string) domain.CaptionModel {
	return &captionModel{
		client:  client,
		modelID: modelID,
	}
}

func (c *captionModel) Name() string {
	return c.modelID
}

func (c *captionModel) Caption(ctx context.Context, image *domain.DecodedImage) ([]domain.GeneratedText, error) {
	return c.client.Infer(ctx, c.modelID, image.MIMEType(), image.Data)
}
