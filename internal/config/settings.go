package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Narrative providers understood by the narrative package.
const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderStatic = "static"
)

// Settings holds runtime configuration shared by the CLI, TUI and HTTP server.
type Settings struct {
	Provider         string        `yaml:"provider"`
	Model            string        `yaml:"model"`
	OpenAIAPIKey     string        `yaml:"-"`
	OpenAIBaseURL    string        `yaml:"openai_base_url"`
	GeminiAPIKey     string        `yaml:"-"`
	NarrativeTimeout time.Duration `yaml:"narrative_timeout"`
	HTTPAddr         string        `yaml:"http_addr"`
	HistoryCapacity  int           `yaml:"history_capacity"`
	Currency         string        `yaml:"currency"`
	Language         string        `yaml:"language"`
}

// DefaultSettings returns settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Provider:         ProviderNone,
		OpenAIBaseURL:    "https://api.openai.com/v1",
		NarrativeTimeout: 30 * time.Second,
		HTTPAddr:         ":8080",
		HistoryCapacity:  50,
		Currency:         "NT$",
		Language:         "zh-TW",
	}
}

// LoadSettings builds Settings from defaults, an optional YAML file and the
// environment, in that order of precedence (environment wins). A .env file in
// the working directory is loaded first when present.
func LoadSettings(path string) (Settings, error) {
	// .env is optional
	_ = godotenv.Load()

	s := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("failed to parse settings YAML: %w", err)
		}
	}

	if err := s.applyEnv(os.LookupEnv); err != nil {
		return s, err
	}

	// Pick a provider from the available keys when none was chosen explicitly.
	if s.Provider == "" || s.Provider == ProviderNone {
		if _, explicit := os.LookupEnv("FINBUDDY_PROVIDER"); !explicit && path == "" {
			switch {
			case s.OpenAIAPIKey != "":
				s.Provider = ProviderOpenAI
			case s.GeminiAPIKey != "":
				s.Provider = ProviderGemini
			}
		}
	}

	return s, s.Validate()
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("FINBUDDY_PROVIDER"); ok {
		s.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("FINBUDDY_MODEL"); ok {
		s.Model = v
	}
	if v, ok := lookup("OPENAI_API_KEY"); ok {
		s.OpenAIAPIKey = v
	}
	if v, ok := lookup("OPENAI_BASE_URL"); ok && v != "" {
		s.OpenAIBaseURL = v
	}
	if v, ok := lookup("GEMINI_API_KEY"); ok {
		s.GeminiAPIKey = v
	}
	if v, ok := lookup("FINBUDDY_NARRATIVE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FINBUDDY_NARRATIVE_TIMEOUT %q: %w", v, err)
		}
		s.NarrativeTimeout = d
	}
	if v, ok := lookup("FINBUDDY_HTTP_ADDR"); ok && v != "" {
		s.HTTPAddr = v
	}
	if v, ok := lookup("FINBUDDY_HISTORY_CAPACITY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FINBUDDY_HISTORY_CAPACITY %q: %w", v, err)
		}
		s.HistoryCapacity = n
	}
	if v, ok := lookup("FINBUDDY_CURRENCY"); ok {
		s.Currency = v
	}
	if v, ok := lookup("FINBUDDY_LANGUAGE"); ok && v != "" {
		s.Language = v
	}
	return nil
}

// Validate checks the settings for consistency.
func (s Settings) Validate() error {
	switch s.Provider {
	case ProviderNone, ProviderGemini, ProviderOpenAI, ProviderStatic:
	default:
		return fmt.Errorf("unknown narrative provider %q (valid: none, gemini, openai, static)", s.Provider)
	}
	if s.NarrativeTimeout <= 0 {
		return fmt.Errorf("narrative timeout must be positive")
	}
	if s.HistoryCapacity < 1 {
		return fmt.Errorf("history capacity must be at least 1")
	}
	return nil
}
