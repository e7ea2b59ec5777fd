package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/pitabwire/langconfig/plugins/jsonstorage"
	"github.com/pitabwire/langconfig/plugins/standardlint"
)

type contextKey string

func (c contextKey) String() string {
	return "langconfig/config/" + string(c)
}

const (
	ctxKeyConfiguration = contextKey("configurationKey")

	DefaultStoragePluginURL = jsonstorage.SourceURL
	DefaultLintPluginURL    = standardlint.SourceURL
)

// Output formats understood by the cli.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ToContext adds tool configuration to the current supplied context.
func ToContext(ctx context.Context, config any) context.Context {
	return context.WithValue(ctx, ctxKeyConfiguration, config)
}

// FromContext extracts tool configuration from the supplied context if any exist.
func FromContext[T any](ctx context.Context) T {
	if cfg, ok := ctx.Value(ctxKeyConfiguration).(T); ok {
		return cfg
	}
	var zero T
	return zero
}

// FromEnv convenience method to process configs.
func FromEnv[T any]() (T, error) {
	return env.ParseAs[T]()
}

// FillEnv convenience method to fill a config object with environment data.
func FillEnv(v any) error {
	return env.Parse(v)
}

type ConfigurationDefault struct {
	LogLevel          string `envDefault:"info"                      env:"LOG_LEVEL"            json:"log_level"            toml:"log_level"            yaml:"log_level"`
	LogTimeFormat     string `envDefault:"2006-01-02T15:04:05Z07:00" env:"LOG_TIME_FORMAT"      json:"log_time_format"      toml:"log_time_format"      yaml:"log_time_format"`
	LogColored        bool   `envDefault:"true"                      env:"LOG_COLORED"          json:"log_colored"          toml:"log_colored"          yaml:"log_colored"`
	LogShowStackTrace bool   `envDefault:"false"                     env:"LOG_SHOW_STACK_TRACE" json:"log_show_stack_trace" toml:"log_show_stack_trace" yaml:"log_show_stack_trace"`

	OpenTelemetryDisable    bool    `envDefault:"true" env:"OPENTELEMETRY_DISABLE"        json:"opentelemetry_disable"        toml:"opentelemetry_disable"        yaml:"opentelemetry_disable"`
	OpenTelemetryTraceRatio float64 `envDefault:"1.0"  env:"OPENTELEMETRY_TRACE_ID_RATIO" json:"opentelemetry_trace_id_ratio" toml:"opentelemetry_trace_id_ratio" yaml:"opentelemetry_trace_id_ratio"`

	ServiceName    string `envDefault:"langconfig" env:"SERVICE_NAME"    json:"service_name"    toml:"service_name"    yaml:"service_name"`
	ServiceVersion string `envDefault:""           env:"SERVICE_VERSION" json:"service_version" toml:"service_version" yaml:"service_version"`

	// Empty plugin urls fall back to the canonical sources, see StorageSource and LintSource.
	StoragePluginURL string `env:"LANGCONFIG_STORAGE_PLUGIN_URL" json:"storage_plugin_url" toml:"storage_plugin_url" yaml:"storage_plugin_url"`
	LintPluginURL    string `env:"LANGCONFIG_LINT_PLUGIN_URL"    json:"lint_plugin_url"    toml:"lint_plugin_url"    yaml:"lint_plugin_url"`

	ConcurrentImport bool   `envDefault:"false" env:"LANGCONFIG_CONCURRENT_IMPORT" json:"concurrent_import" toml:"concurrent_import" yaml:"concurrent_import"`
	OutputFormat     string `envDefault:"json"  env:"LANGCONFIG_OUTPUT_FORMAT"     json:"output_format"     toml:"output_format"     yaml:"output_format"`
}

type ConfigurationService interface {
	Name() string
	Version() string
}

var _ ConfigurationService = new(ConfigurationDefault)

func (c *ConfigurationDefault) Name() string {
	return c.ServiceName
}

func (c *ConfigurationDefault) Version() string {
	return c.ServiceVersion
}

type ConfigurationLogLevel interface {
	LoggingLevel() string
	LoggingTimeFormat() string
	LoggingShowStackTrace() bool
	LoggingColored() bool
	LoggingLevelIsDebug() bool
}

var _ ConfigurationLogLevel = new(ConfigurationDefault)

func (c *ConfigurationDefault) LoggingLevel() string {
	return c.LogLevel
}

func (c *ConfigurationDefault) LoggingTimeFormat() string {
	return c.LogTimeFormat
}

func (c *ConfigurationDefault) LoggingColored() bool {
	return c.LogColored
}

func (c *ConfigurationDefault) LoggingShowStackTrace() bool {
	return c.LogShowStackTrace
}

func (c *ConfigurationDefault) LoggingLevelIsDebug() bool {
	return c.LoggingLevel() == "debug" || c.LoggingLevel() == "trace"
}

type ConfigurationTelemetry interface {
	DisableOpenTelemetry() bool
	SamplingRatio() float64
}

var _ ConfigurationTelemetry = new(ConfigurationDefault)

func (c *ConfigurationDefault) DisableOpenTelemetry() bool {
	return c.OpenTelemetryDisable
}

func (c *ConfigurationDefault) SamplingRatio() float64 {
	return c.OpenTelemetryTraceRatio
}

type ConfigurationPluginSources interface {
	StorageSource() string
	LintSource() string
	ImportConcurrently() bool
}

var _ ConfigurationPluginSources = new(ConfigurationDefault)

func (c *ConfigurationDefault) StorageSource() string {
	if strings.TrimSpace(c.StoragePluginURL) != "" {
		return strings.TrimSpace(c.StoragePluginURL)
	}
	return DefaultStoragePluginURL
}

func (c *ConfigurationDefault) LintSource() string {
	if strings.TrimSpace(c.LintPluginURL) != "" {
		return strings.TrimSpace(c.LintPluginURL)
	}
	return DefaultLintPluginURL
}

func (c *ConfigurationDefault) ImportConcurrently() bool {
	return c.ConcurrentImport
}

type ConfigurationOutput interface {
	Format() (string, error)
}

var _ ConfigurationOutput = new(ConfigurationDefault)

// Format returns the normalized output format, defaulting to json.
func (c *ConfigurationDefault) Format() (string, error) {
	format := strings.ToLower(strings.TrimSpace(c.OutputFormat))
	switch format {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatTOML:
		return format, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", c.OutputFormat)
	}
}
