package model

import "time"

// Config is the complete runtime configuration, built from defaults, the
// config file, environment variables, and CLI flags.
type Config struct {
	Extract     ExtractConfig     `yaml:"extract" mapstructure:"extract"`
	Generate    GenerateConfig    `yaml:"generate" mapstructure:"generate"`
	Learn       LearnConfig       `yaml:"learn" mapstructure:"learn"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// ExtractConfig controls the structured-fact extractor.
type ExtractConfig struct {
	MaxEventsPerRecord   int  `yaml:"max_events_per_record" mapstructure:"max_events_per_record"`
	MaxEpisodesPerSeries int  `yaml:"max_episodes_per_series" mapstructure:"max_episodes_per_series"`
	SkipStubs            bool `yaml:"skip_stubs" mapstructure:"skip_stubs"`
}

// GenerateConfig controls question synthesis.
type GenerateConfig struct {
	MaxQuestionsPerRecord int      `yaml:"max_questions_per_record" mapstructure:"max_questions_per_record"`
	MaxDifficulty         float64  `yaml:"max_difficulty" mapstructure:"max_difficulty"`
	QuestionTypes         []string `yaml:"question_types" mapstructure:"question_types"`
}

// LearnConfig controls the correction library.
type LearnConfig struct {
	LibraryPath string `yaml:"library_path" mapstructure:"library_path"`
}

// LLMConfig controls the optional rephrase-suggestion provider used by the
// review command. Never consulted during synthesis or scoring.
type LLMConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"`
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"-" mapstructure:"-"`
	BaseURL           string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// CacheConfig controls the extraction record cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig controls the batch worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			MaxEventsPerRecord:   10,
			MaxEpisodesPerSeries: 20,
			SkipStubs:            true,
		},
		Generate: GenerateConfig{
			MaxQuestionsPerRecord: 25,
			MaxDifficulty:         1.0,
			QuestionTypes:         []string{"what", "who", "when", "where", "which"},
		},
		Learn: LearnConfig{
			LibraryPath: "corrections.json",
		},
		LLM: LLMConfig{
			Provider:          "", // disabled by default
			Model:             "",
			Timeout:           30,
			RequestsPerSecond: 1,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".triviaforge-cache",
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Pretty: true,
		},
	}
}
