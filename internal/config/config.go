// Package config loads runtime settings from the environment (and an optional .env file).
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	// Output settings
	OutputFile     string
	OutputVariable string
	StrictExit     bool // exit non-zero when the snapshot could not be written

	// Sources
	SourcesConfigPath string
	TargetNewsCount   int // floor topped up with fillers

	// Fetch/enrichment settings
	FetchTimeout      time.Duration
	EnrichTimeout     time.Duration // per-page timeout used by the summary cascade
	MaxDeepEnrich     int           // items allowed a live page fetch per run
	EnrichConcurrency int

	// Localization
	TargetLocale         string
	TimezoneOffsetHours  int
	TranslateProviders   []string // google | gemini | openai, in priority order
	TranslateProbe       bool
	MaxTranslateRequests int // total cap per run (0 = unlimited)
	TranslateRPS         float64

	// ProviderRequestLimits caps single providers (MAX_TRANSLATE_REQUESTS_GOOGLE etc.).
	ProviderRequestLimits map[string]int

	// Gemini settings
	GeminiAPIKey string
	GeminiModel  string

	// OpenAI settings
	OpenAIAPIKey string
	OpenAIModel  string

	// App settings
	Debug           bool
	MetricsTextfile string
}

// Load reads the environment. The returned Config is always usable: invalid
// settings are reset to their defaults and reported in err.
func Load() (*Config, error) {
	// .env is optional; real environment wins.
	_ = godotenv.Load()

	cfg := defaults()

	cfg.OutputFile = getEnvOrDefault("OUTPUT_FILE", cfg.OutputFile)
	cfg.OutputVariable = getEnvOrDefault("OUTPUT_VARIABLE", cfg.OutputVariable)
	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.TargetLocale = getEnvOrDefault("TARGET_LOCALE", cfg.TargetLocale)
	cfg.MetricsTextfile = os.Getenv("METRICS_TEXTFILE")

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModel = getEnvOrDefault("OPENAI_MODEL", cfg.OpenAIModel)

	cfg.TargetNewsCount = getEnvIntOrDefault("TARGET_NEWS_COUNT", cfg.TargetNewsCount)
	cfg.MaxDeepEnrich = getEnvIntOrDefault("MAX_DEEP_ENRICH", cfg.MaxDeepEnrich)
	cfg.EnrichConcurrency = getEnvIntOrDefault("ENRICH_CONCURRENCY", cfg.EnrichConcurrency)
	cfg.MaxTranslateRequests = getEnvIntOrDefault("MAX_TRANSLATE_REQUESTS", cfg.MaxTranslateRequests)
	cfg.TimezoneOffsetHours = getEnvIntOrDefault("TIMEZONE_OFFSET_HOURS", cfg.TimezoneOffsetHours)

	cfg.FetchTimeout = getEnvDurationOrDefault("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.EnrichTimeout = getEnvDurationOrDefault("ENRICH_TIMEOUT", cfg.EnrichTimeout)

	if v := os.Getenv("TRANSLATE_RPS"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 {
			cfg.TranslateRPS = val
		}
	}
	if v := os.Getenv("TRANSLATE_PROVIDERS"); v != "" {
		cfg.TranslateProviders = splitList(v)
	}
	if v := os.Getenv("TRANSLATE_PROBE"); v == "false" {
		cfg.TranslateProbe = false
	}
	if v := os.Getenv("STRICT_EXIT"); v == "true" {
		cfg.StrictExit = true
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	cfg.ProviderRequestLimits = make(map[string]int)
	for _, p := range knownProviders {
		if n := getEnvIntOrDefault("MAX_TRANSLATE_REQUESTS_"+strings.ToUpper(p), 0); n > 0 {
			cfg.ProviderRequestLimits[p] = n
		}
	}

	return cfg, cfg.Sanitize()
}

var knownProviders = []string{"google", "gemini", "openai"}

func defaults() *Config {
	return &Config{
		OutputFile:          "data.js",
		OutputVariable:      "window.AI_DATA",
		SourcesConfigPath:   "configs/sources.yaml",
		TargetNewsCount:     40,
		FetchTimeout:        10 * time.Second,
		EnrichTimeout:       6 * time.Second,
		MaxDeepEnrich:       20,
		EnrichConcurrency:   4,
		TargetLocale:        "zh-CN",
		TimezoneOffsetHours: 8,
		TranslateProviders:  slices.Clone(knownProviders),
		TranslateProbe:      true,
		TranslateRPS:        5,
		GeminiModel:         "gemini-1.5-flash",
		OpenAIModel:         "gpt-4o-mini",
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Zone is the fixed-offset display zone all timestamps are rendered in.
func (c *Config) Zone() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.TimezoneOffsetHours), c.TimezoneOffsetHours*3600)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	return c.check(nil)
}

// Sanitize resets invalid settings to their defaults (unknown providers are
// dropped) and reports what it changed.
func (c *Config) Sanitize() error {
	return c.check(defaults())
}

func (c *Config) check(def *Config) error {
	var errs []error
	bad := func(err error, reset func()) {
		errs = append(errs, err)
		if def != nil {
			reset()
		}
	}

	if c.OutputFile == "" {
		bad(fmt.Errorf("OUTPUT_FILE is required"), func() { c.OutputFile = def.OutputFile })
	}
	if c.OutputVariable == "" {
		bad(fmt.Errorf("OUTPUT_VARIABLE is required"), func() { c.OutputVariable = def.OutputVariable })
	}
	if _, err := language.Parse(c.TargetLocale); err != nil {
		bad(fmt.Errorf("TARGET_LOCALE %q is not a valid BCP 47 tag: %w", c.TargetLocale, err), func() { c.TargetLocale = def.TargetLocale })
	}
	if c.TargetNewsCount < 0 {
		bad(fmt.Errorf("TARGET_NEWS_COUNT must not be negative"), func() { c.TargetNewsCount = def.TargetNewsCount })
	}
	if c.MaxDeepEnrich < 0 {
		bad(fmt.Errorf("MAX_DEEP_ENRICH must not be negative"), func() { c.MaxDeepEnrich = def.MaxDeepEnrich })
	}
	if c.EnrichConcurrency < 1 {
		bad(fmt.Errorf("ENRICH_CONCURRENCY must be at least 1"), func() { c.EnrichConcurrency = def.EnrichConcurrency })
	}
	if c.TimezoneOffsetHours < -12 || c.TimezoneOffsetHours > 14 {
		bad(fmt.Errorf("TIMEZONE_OFFSET_HOURS out of range: %d", c.TimezoneOffsetHours), func() { c.TimezoneOffsetHours = def.TimezoneOffsetHours })
	}
	var known []string
	for _, p := range c.TranslateProviders {
		if slices.Contains(knownProviders, p) {
			known = append(known, p)
			continue
		}
		bad(fmt.Errorf("TRANSLATE_PROVIDERS: unknown provider %q (valid: google, gemini, openai)", p), func() {})
	}
	if def != nil {
		c.TranslateProviders = known
	}
	return errors.Join(errs...)
}
