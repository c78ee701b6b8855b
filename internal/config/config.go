package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"qanunyar/internal/chat"
)

// Config holds all process-wide settings. It is built once at startup and
// never mutated afterwards, so concurrent reads from request handlers are safe.
type Config struct {
	Port string

	OpenAIKey   string
	ChatModel   string
	STTModel    string
	STTLanguage string

	MaxAudioSeconds float64
	MaxUploadBytes  int64
	ScratchDir      string

	// AuthorizedDomains is the exact-match allow-list checked against the
	// X-Domain header. Case- and scheme-sensitive.
	AuthorizedDomains map[string]struct{}

	// CheckAudioOrigin enables the same origin check on the audio endpoint.
	// The original deployment only checked the text endpoint; the asymmetry is
	// kept behind this flag so the policy stays an explicit decision.
	CheckAudioOrigin bool

	SystemPrompt string
}

// defaultDomains mirrors the production allow-list of the chat widget.
var defaultDomains = []string{
	"https://mobit.ir",
	"mobit.ir",
	"www.mobit.ir",
	"http://localhost",
	"http://localhost:5000",
	"localhost",
	"file://",
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		ChatModel:   getEnv("CHAT_MODEL", "gpt-4o"),
		STTModel:    getEnv("STT_MODEL", "gpt-4o-mini-transcribe"),
		STTLanguage: getEnv("STT_LANGUAGE", "fa"),
		ScratchDir:  getEnv("SCRATCH_DIR", os.TempDir()),
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required. Please set it as environment variable:\n  Linux/Mac: export OPENAI_API_KEY=\"your_key\"\n  Windows PowerShell: $env:OPENAI_API_KEY=\"your_key\"")
	}

	maxSeconds, err := strconv.ParseFloat(getEnv("MAX_AUDIO_SECONDS", "30"), 64)
	if err != nil || maxSeconds <= 0 {
		return nil, fmt.Errorf("MAX_AUDIO_SECONDS must be a positive number, got %q", os.Getenv("MAX_AUDIO_SECONDS"))
	}
	cfg.MaxAudioSeconds = maxSeconds

	maxUploadMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "25"), 10, 64)
	if err != nil || maxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer, got %q", os.Getenv("MAX_UPLOAD_MB"))
	}
	cfg.MaxUploadBytes = maxUploadMB << 20

	cfg.AuthorizedDomains = parseDomains(os.Getenv("AUTHORIZED_DOMAINS"))

	cfg.CheckAudioOrigin = getEnv("CHECK_AUDIO_ORIGIN", "false") == "true"

	// The system prompt is a content asset. It ships built in but can be
	// swapped out without a rebuild.
	cfg.SystemPrompt = chat.DefaultSystemPrompt
	if path := os.Getenv("SYSTEM_PROMPT_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read SYSTEM_PROMPT_FILE %s: %w", path, err)
		}
		cfg.SystemPrompt = string(data)
	}

	return cfg, nil
}

// IsAuthorizedOrigin reports whether the given origin token is on the
// allow-list. Matching is exact.
func (c *Config) IsAuthorizedOrigin(origin string) bool {
	_, ok := c.AuthorizedDomains[origin]
	return ok
}

// parseDomains builds the allow-list from a comma-separated env value, falling
// back to the built-in production list when unset.
func parseDomains(raw string) map[string]struct{} {
	domains := make(map[string]struct{})
	if raw == "" {
		for _, d := range defaultDomains {
			domains[d] = struct{}{}
		}
		return domains
	}
	for _, d := range strings.Split(raw, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			domains[d] = struct{}{}
		}
	}
	return domains
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
