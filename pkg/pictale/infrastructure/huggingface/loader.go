package huggingface

import (
	"context"
	"fmt"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/domain"
)

type loader struct {
	client         *Client
	captionModelID string
	storyModelID   string
	checkStatus    bool
}

// NewLoader constructs both models on top of a shared client. Unless disabled in the config, loading fails if the
// server reports that either model can't be served, so that a broken deployment is found on the first upload
// rather than half-way through it.
func NewLoader(client *Client, config *common.Config) domain.ModelLoader {
	return &loader{
		client:         client,
		captionModelID: config.GetStringOrDefault(domain.ConfigKeyCaptionModelID, domain.DefaultCaptionModelID),
		storyModelID:   config.GetStringOrDefault(domain.ConfigKeyStoryModelID, domain.DefaultStoryModelID),
		checkStatus:    config.GetBoolOrDefault(ConfigKeyCheckModelStatus, true),
	}
}

func (l *loader) Load(ctx context.Context) (*domain.Models, error) {
	if l.checkStatus {
		for _, modelID := range []string{l.captionModelID, l.storyModelID} {
			status, err := l.client.Status(ctx, modelID)
			if err != nil {
				return nil, fmt.Errorf("model %q: %w", modelID, err)
			}
			if !status.IsServable() {
				return nil, fmt.Errorf("model %q is not servable (state %q)", modelID, status.State)
			}
		}
	}
	return &domain.Models{
		Caption: NewCaptionModel(l.client, l.captionModelID),
		Story:   NewStoryModel(l.client, l.storyModelID),
	}, nil
}
