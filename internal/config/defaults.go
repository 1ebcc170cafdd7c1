package config

const (
	defaultConfigPath  = "~/.config/hzcli/config.toml"
	projectConfigName  = "hzcli.toml"
	defaultDataDir     = "~/.hzcli"
	defaultLLMBaseURL  = "https://api.openai.com/v1"
	defaultLLMModel    = "gpt-4.1-nano"
	defaultLLMTimeout  = 30
	defaultTemperature = 0.7
	defaultMaxTokens   = 400
	defaultQuizCount   = 10
	defaultQuizKind    = "mixed"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	envAPIKey          = "OPENAI_API_KEY"
	envAPIKeyOverride  = "HZCLI_API_KEY"
	dotenvFile         = ".env"
	maxTemperature     = 2.0
)

// QuizKinds lists the accepted values for quiz.default_kind.
var QuizKinds = []string{"mixed", "chinese-pinyin", "chinese-english", "english-chinese", "english-pinyin"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
			Temperature:    defaultTemperature,
			MaxTokens:      defaultMaxTokens,
		},
		Quiz: Quiz{
			DefaultCount: defaultQuizCount,
			DefaultKind:  defaultQuizKind,
		},
		Store: Store{
			SeedStarterDecks: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
