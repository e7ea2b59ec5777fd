package langconfig

import "github.com/pitabwire/langconfig/telemetry"

type loadOptions struct {
	storageURL string
	lintURL    string
	concurrent bool
	tracer     telemetry.Tracer
}

// Option adjusts how LoadConfig resolves its plugins.
type Option func(o *loadOptions)

// WithStorageSource imports the storage plugin from url instead of StoragePluginURL.
func WithStorageSource(url string) Option {
	return func(o *loadOptions) {
		if url != "" {
			o.storageURL = url
		}
	}
}

// WithLintSource imports the lint rules from url instead of LintPluginURL.
func WithLintSource(url string) Option {
	return func(o *loadOptions) {
		if url != "" {
			o.lintURL = url
		}
	}
}

// WithConcurrentImport resolves both plugin modules at the same time.
// Plugin order in the result does not change.
func WithConcurrentImport() Option {
	return func(o *loadOptions) {
		o.concurrent = true
	}
}

// WithTracer records LoadConfig in spans created by t.
func WithTracer(t telemetry.Tracer) Option {
	return func(o *loadOptions) {
		if t != nil {
			o.tracer = t
		}
	}
}
