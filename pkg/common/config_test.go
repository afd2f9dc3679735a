package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig([]byte(`
captionModelID: my/captioner
storyWordLimit: 100
huggingFaceWaitForModel: false
inferenceTimeout: 1500
storyMaxNewTokens: "a lot"
`))
	require.NoError(t, err)
	assert.Equal(t, "my/captioner", config.GetStringOrDefault("captionModelID", "x"))
	assert.Equal(t, "fallback", config.GetStringOrDefault("storyModelID", "fallback"))
	assert.Equal(t, 100, config.GetIntOrDefault("storyWordLimit", 250))
	assert.Equal(t, 150, config.GetIntOrDefault("storyMaxNewTokens", 150))
	assert.False(t, config.GetBoolOrDefault("huggingFaceWaitForModel", true))
	assert.True(t, config.GetBoolOrDefault("preloadModels", true))
	assert.Equal(t, 1500*time.Millisecond, config.GetDurationOrDefault("inferenceTimeout", time.Minute))
	assert.Equal(t, time.Minute, config.GetDurationOrDefault("missing", time.Minute))
}

func TestLoadConfigOrDefaultWithMissingFile(t *testing.T) {
	config, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 250, config.GetIntOrDefault("storyWordLimit", 250))
}

func TestLoadConfigOrDefaultWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("httpAddr: \":9090\"\n"), 0o644))
	config, err := LoadConfigOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", config.GetString("httpAddr"))
}

func TestLoadConfigOrDefaultWithBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("httpAddr: [\n"), 0o644))
	_, err := LoadConfigOrDefault(path)
	require.Error(t, err)
}
