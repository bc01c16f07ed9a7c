package config

const (
	defaultDataDir       = "~/.local/share/studydeck"
	defaultLogDir        = "~/.local/share/studydeck/logs"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultLLMBaseURL    = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel      = "google/gemini-3-flash-preview"
	defaultLLMTimeout    = 120
	defaultMinQuestions  = 20
	defaultMaxQuestions  = 25
	defaultPdftotextName = "pdftotext"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Generation: Generation{
			MinQuestions: defaultMinQuestions,
			MaxQuestions: defaultMaxQuestions,
		},
		Extraction: Extraction{
			PdftotextBinary: defaultPdftotextName,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
