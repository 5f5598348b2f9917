// Package config handles application configuration loading from a YAML file
// with environment variable overrides.
package config

import (
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	contextutils "verbtrainer/internal/utils"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable that points at the config file
const ConfigFileEnv = "VERBTRAINER_CONFIG_FILE"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// OpenTelemetry Configuration
	OpenTelemetry OpenTelemetryConfig `json:"open_telemetry" yaml:"open_telemetry"`

	// Verb catalog sources
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	// Quiz behaviour
	Quiz QuizConfig `json:"quiz" yaml:"quiz"`

	// Translation proxy
	Translation TranslationConfig `json:"translation" yaml:"translation"`

	// Internal fields
	IsTest bool `json:"is_test" yaml:"is_test"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port          string   `json:"port" yaml:"port" validate:"required,numeric"`
	SessionSecret string   `json:"session_secret" yaml:"session_secret" validate:"omitempty,min=8"`
	Debug         bool     `json:"debug" yaml:"debug"`
	LogLevel      string   `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	CORSOrigins   []string `json:"cors_origins" yaml:"cors_origins"`
	DefaultLocale string   `json:"default_locale" yaml:"default_locale" validate:"omitempty,oneof=en es"`
}

// OpenTelemetryConfig holds all OpenTelemetry-related configuration
type OpenTelemetryConfig struct {
	Endpoint       string            `json:"endpoint" yaml:"endpoint"`               // Default: "localhost:4317"
	Protocol       string            `json:"protocol" yaml:"protocol"`               // "grpc" or "http"
	Insecure       bool              `json:"insecure" yaml:"insecure"`               // Default: true (for localhost)
	Headers        map[string]string `json:"headers" yaml:"headers"`                 // For authenticated endpoints
	ServiceName    string            `json:"service_name" yaml:"service_name"`       // Default: "verbtrainer"
	ServiceVersion string            `json:"service_version" yaml:"service_version"` // From version package
	EnableTracing  bool              `json:"enable_tracing" yaml:"enable_tracing"`
	EnableMetrics  bool              `json:"enable_metrics" yaml:"enable_metrics"`
	EnableLogging  bool              `json:"enable_logging" yaml:"enable_logging"`
	UseAutoSDK     bool              `json:"use_auto_sdk" yaml:"use_auto_sdk"`
	SamplingRate   float64           `json:"sampling_rate" yaml:"sampling_rate" validate:"gte=0,lte=1"`
}

// CatalogConfig points at optional on-disk replacements for the embedded data
type CatalogConfig struct {
	VerbsFile      string `json:"verbs_file" yaml:"verbs_file"`
	IrregularsFile string `json:"irregulars_file" yaml:"irregulars_file"`
	PromptsFile    string `json:"prompts_file" yaml:"prompts_file"`
}

// QuizConfig controls question sampling. A zero seed means a random seed.
type QuizConfig struct {
	Seed uint64 `json:"seed" yaml:"seed"`
}

// TranslationConfig configures the free-text translation proxy
type TranslationConfig struct {
	Enabled         bool                                 `json:"enabled" yaml:"enabled"`
	DefaultProvider string                               `json:"default_provider" yaml:"default_provider"`
	DefaultTarget   string                               `json:"default_target" yaml:"default_target"`
	Providers       map[string]TranslationProviderConfig `json:"providers" yaml:"providers"`
	// LanguageAliases maps a canonical language name to alternative spellings
	LanguageAliases map[string][]string `json:"language_aliases" yaml:"language_aliases"`
	// SpeechTags maps a language code to the BCP 47 tag handed to speech synthesis
	SpeechTags map[string]string `json:"speech_tags" yaml:"speech_tags"`
}

// TranslationProviderConfig describes a single upstream translation API
type TranslationProviderConfig struct {
	Name           string        `json:"name" yaml:"name"`
	Code           string        `json:"code" yaml:"code"`
	APIKey         string        `json:"api_key" yaml:"api_key"`
	BaseURL        string        `json:"base_url" yaml:"base_url"`
	APIEndpoint    string        `json:"api_endpoint" yaml:"api_endpoint"`
	DetectEndpoint string        `json:"detect_endpoint" yaml:"detect_endpoint"`
	MaxTextLength  int           `json:"max_text_length" yaml:"max_text_length"`
	Timeout        time.Duration `json:"timeout" yaml:"timeout"`
}

// SpeechTagFor returns the configured speech tag for a language code, or the code itself
func (c *TranslationConfig) SpeechTagFor(code string) string {
	if tag, ok := c.SpeechTags[strings.ToLower(code)]; ok {
		return tag
	}
	return code
}

// CanonicalLanguages returns the configured canonical language names, sorted
func (c *TranslationConfig) CanonicalLanguages() []string {
	names := make([]string, 0, len(c.LanguageAliases))
	for name := range c.LanguageAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewConfig loads configuration from YAML file first, then overrides with environment variables
func NewConfig() (result0 *Config, err error) {
	config, err := loadConfigWithOverrides()
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to load config: %w", err)
	}

	config.overrideFromEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks struct constraints on the loaded configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeValidationFailed, contextutils.SeverityFatal,
			"invalid configuration", err.Error(), err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.DefaultLocale == "" {
		c.Server.DefaultLocale = "en"
	}
	if c.OpenTelemetry.ServiceName == "" {
		c.OpenTelemetry.ServiceName = "verbtrainer"
	}
	if c.OpenTelemetry.Protocol == "" {
		c.OpenTelemetry.Protocol = "grpc"
	}
	if c.Translation.DefaultTarget == "" {
		c.Translation.DefaultTarget = "es"
	}
	for name, provider := range c.Translation.Providers {
		if provider.MaxTextLength <= 0 {
			provider.MaxTextLength = DefaultMaxTranslationLength
		}
		if provider.Timeout <= 0 {
			provider.Timeout = DefaultHTTPTimeout
		}
		c.Translation.Providers[name] = provider
	}
}

// overrideFromEnv overrides config values with environment variables using reflection
func (c *Config) overrideFromEnv() {
	overrideStructFromEnvWithPrefix(c, "")
}

// overrideStructFromEnvWithPrefix walks the struct and replaces every field
// whose upper-cased yaml path (joined by "_") is present in the environment.
func overrideStructFromEnvWithPrefix(v interface{}, prefix string) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		yamlTag := strings.Split(fieldType.Tag.Get("yaml"), ",")[0]
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		envKey := strings.ToUpper(strings.ReplaceAll(yamlTag, "-", "_"))
		if prefix != "" {
			envKey = prefix + "_" + envKey
		}

		// time.Duration is an int64 kind but reads better as "30s"
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			if envVal := os.Getenv(envKey); envVal != "" {
				if d, err := time.ParseDuration(envVal); err == nil {
					field.SetInt(int64(d))
				}
			}
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if envVal := os.Getenv(envKey); envVal != "" {
				field.SetString(envVal)
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if intVal, err := strconv.ParseInt(envVal, 10, 64); err == nil {
					field.SetInt(intVal)
				}
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if uintVal, err := strconv.ParseUint(envVal, 10, 64); err == nil {
					field.SetUint(uintVal)
				}
			}
		case reflect.Float32, reflect.Float64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if floatVal, err := strconv.ParseFloat(envVal, 64); err == nil {
					field.SetFloat(floatVal)
				}
			}
		case reflect.Bool:
			if envVal := os.Getenv(envKey); envVal != "" {
				if boolVal, err := strconv.ParseBool(envVal); err == nil {
					field.SetBool(boolVal)
				}
			}
		case reflect.Slice:
			if envVal := os.Getenv(envKey); envVal != "" && field.Type().Elem().Kind() == reflect.String {
				field.Set(reflect.ValueOf(strings.Split(envVal, ",")))
			}
		case reflect.Map:
			// Provider maps are keyed by name: TRANSLATION_PROVIDERS_GOOGLE_API_KEY
			if field.Type().Key().Kind() == reflect.String && field.Type().Elem().Kind() == reflect.Struct && !field.IsNil() {
				iter := field.MapRange()
				for iter.Next() {
					entry := reflect.New(iter.Value().Type())
					entry.Elem().Set(iter.Value())
					overrideStructFromEnvWithPrefix(entry.Interface(), envKey+"_"+strings.ToUpper(iter.Key().String()))
					field.SetMapIndex(iter.Key(), entry.Elem())
				}
			}
		case reflect.Struct:
			if field.CanAddr() {
				overrideStructFromEnvWithPrefix(field.Addr().Interface(), envKey)
			}
		case reflect.Ptr:
			if !field.IsNil() && field.Elem().Kind() == reflect.Struct {
				overrideStructFromEnvWithPrefix(field.Interface(), envKey)
			}
		}
	}
}

// loadConfigWithOverrides loads the file named by ConfigFileEnv, or config.yaml
func loadConfigWithOverrides() (result0 *Config, err error) {
	if envPath := os.Getenv(ConfigFileEnv); envPath != "" {
		config, err := loadConfigFromFile(envPath)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to load config from %s: %w", envPath, err)
		}
		return config, nil
	}

	return loadConfigFromFile("config.yaml")
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (result0 *Config, err error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(yamlFile, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
