package huggingface

import (
	"context"
	"encoding/json"
	"fmt"

	"kgeyst.com/pictale/pkg/pictale/domain"
)

type storyModel struct {
	client       *Client
	modelID      string
	waitForModel bool
}

type textGenerationRequest struct {
	Inputs     string                   `json:"inputs"`
	Parameters textGenerationParameters `json:"parameters"`
	Options    textGenerationOptions    `json:"options"`
}

// textGenerationParameters with ReturnFullText the prompt is kept at the beginning of the generated text.
type textGenerationParameters struct {
	MaxNewTokens   int  `json:"max_new_tokens,omitempty"`
	ReturnFullText bool `json:"return_full_text"`
}

type textGenerationOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// NewStoryModel a text-generation model which continues the prompt.
func NewStoryModel(client *Client, modelID string) domain.StoryModel {
	return &storyModel{
		client:       client,
		modelID:      modelID,
		waitForModel: client.waitForModel,
	}
}

func (s *storyModel) Name() string {
	return s.modelID
}

func (s *storyModel) Generate(ctx context.Context, prompt string, options domain.GenerateOptions) ([]domain.GeneratedText, error) {
	payload, err := json.Marshal(textGenerationRequest{
		Inputs: prompt,
		Parameters: textGenerationParameters{
			MaxNewTokens:   options.MaxNewTokens,
			ReturnFullText: true,
		},
		Options: textGenerationOptions{
			WaitForModel: s.waitForModel,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return s.client.Infer(ctx, s.modelID, "application/json", payload)
}
