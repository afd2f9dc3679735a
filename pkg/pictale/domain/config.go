package domain

// A list of config keys supported by the pipeline core (frontend and infrastructure settings live next to the code
// which reads them).

const (
	// ConfigKeyCaptionModelID the identifier of the pretrained image captioning model
	ConfigKeyCaptionModelID = "captionModelID"
	// ConfigKeyStoryModelID the identifier of the pretrained text generation model which writes stories
	ConfigKeyStoryModelID = "storyModelID"
	// ConfigKeyStoryMaxNewTokens the generation budget of the story model, in tokens
	ConfigKeyStoryMaxNewTokens = "storyMaxNewTokens"
	// ConfigKeyStoryWordLimit generated stories are cut to this number of words
	ConfigKeyStoryWordLimit = "storyWordLimit"
	// ConfigKeyLogPath file path where to save the logs
	ConfigKeyLogPath = "logPath"
	// ConfigKeyLogLevel minimal level of log entries ("debug", "info", "warn", "error")
	ConfigKeyLogLevel = "logLevel"
	// ConfigKeyInferenceTimeout when to give up on a single model call, in milliseconds
	ConfigKeyInferenceTimeout = "inferenceTimeout"
	// ConfigKeyPreloadModels load both models at startup instead of on the first upload
	ConfigKeyPreloadModels = "preloadModels"
)

const (
	DefaultCaptionModelID    = "Salesforce/blip-image-captioning-base"
	DefaultStoryModelID      = "pranavpsv/genre-story-generator-v2"
	DefaultStoryMaxNewTokens = 150
	DefaultStoryWordLimit    = 250
)
