package plugin

import (
	"context"
	"errors"
	"strings"
)

// LanguagePlaceholder is the path pattern segment replaced by a language tag.
const LanguagePlaceholder = "{language}"

// Instance is a plugin built by a factory. Its shape belongs to the plugin.
type Instance = any

// Module is a resolved plugin module, reduced to its default export.
type Module struct {
	Default any
}

// Importer resolves plugin modules by url.
type Importer interface {
	ImportModule(ctx context.Context, url string) (Module, error)
}

// ImporterFunc adapts a plain function to an Importer.
type ImporterFunc func(ctx context.Context, url string) (Module, error)

func (f ImporterFunc) ImportModule(ctx context.Context, url string) (Module, error) {
	return f(ctx, url)
}

// StorageOptions configures a message storage plugin.
type StorageOptions struct {
	// PathPattern locates the message file of each language, e.g.
	// "./translations/{language}.json".
	PathPattern string `json:"pathPattern" toml:"pathPattern" yaml:"pathPattern"`
}

func (o StorageOptions) Validate() error {
	if strings.TrimSpace(o.PathPattern) == "" {
		return errors.New("pathPattern is required")
	}
	if !strings.Contains(o.PathPattern, LanguagePlaceholder) {
		return errors.New("pathPattern must contain the " + LanguagePlaceholder + " placeholder")
	}
	return nil
}

// StorageFactory builds a storage plugin from its options.
type StorageFactory func(opts StorageOptions) (Instance, error)

// LintFactory builds a lint rule set. It takes no arguments.
type LintFactory func() (Instance, error)

// AsStorageFactory reports whether v can be used as a StorageFactory and returns it.
func AsStorageFactory(v any) (StorageFactory, bool) {
	switch f := v.(type) {
	case StorageFactory:
		return f, f != nil
	case func(StorageOptions) (Instance, error):
		return f, f != nil
	case func(StorageOptions) Instance:
		if f == nil {
			return nil, false
		}
		return func(opts StorageOptions) (Instance, error) { return f(opts), nil }, true
	default:
		return nil, false
	}
}

// AsLintFactory reports whether v can be used as a LintFactory and returns it.
func AsLintFactory(v any) (LintFactory, bool) {
	switch f := v.(type) {
	case LintFactory:
		return f, f != nil
	case func() (Instance, error):
		return f, f != nil
	case func() Instance:
		if f == nil {
			return nil, false
		}
		return func() (Instance, error) { return f(), nil }, true
	default:
		return nil, false
	}
}
