package domain

import (
	"context"
	"strings"

	"kgeyst.com/pictale/pkg/common"
)

// StoryStage expands a caption into a story: the model is bounded by a token budget, and the result is then cut
// to a word limit.
type StoryStage struct {
	maxNewTokens int
	wordLimit    int
}

func NewStoryStage(maxNewTokens, wordLimit int) *StoryStage {
	return &StoryStage{
		maxNewTokens: maxNewTokens,
		wordLimit:    wordLimit,
	}
}

func NewStoryStageFromConfig(config *common.Config) *StoryStage {
	return NewStoryStage(
		config.GetIntOrDefault(ConfigKeyStoryMaxNewTokens, DefaultStoryMaxNewTokens),
		config.GetIntOrDefault(ConfigKeyStoryWordLimit, DefaultStoryWordLimit),
	)
}

// Generate returns the best candidate truncated to the word limit. Errors are of type *InferenceError (StageStory).
func (s *StoryStage) Generate(ctx context.Context, prompt string, model StoryModel) (string, error) {
	candidates, err := model.Generate(ctx, prompt, GenerateOptions{MaxNewTokens: s.maxNewTokens})
	if err != nil {
		return "", &InferenceError{Stage: StageStory, Cause: err}
	}
	if len(candidates) == 0 {
		return "", &InferenceError{Stage: StageStory, Cause: ErrNoCandidates}
	}
	return TruncateWords(candidates[0].Text, s.wordLimit), nil
}

// TruncateWords keeps the first `limit` whitespace-separated words of `text`, joined with single spaces. There's no
// sentence-aware trimming and no ellipsis. A negative limit is treated as zero.
func TruncateWords(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	words := strings.Fields(text)
	if len(words) > limit {
		words = words[:limit]
	}
	return strings.Join(words, " ")
}
