// Package jsonstorage links the JSON message storage plugin into the binary.
// Each language's messages live in one JSON file located through a path pattern.
package jsonstorage

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/pitabwire/langconfig/plugin"
)

const (
	// ID identifies the plugin inside a configuration.
	ID = "inlang.plugin.json"
	// SourceURL is the canonical location the storage plugin is imported from.
	SourceURL = "https://cdn.jsdelivr.net/gh/samuelstroschein/inlang-plugin-json@2/dist/index.js"
)

// Plugin is the storage plugin instance.
type Plugin struct {
	ID          string `json:"id"          toml:"id"          yaml:"id"`
	PathPattern string `json:"pathPattern" toml:"pathPattern" yaml:"pathPattern"`
}

// New builds the storage plugin. It is the module's default export.
func New(opts plugin.StorageOptions) (plugin.Instance, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Plugin{ID: ID, PathPattern: opts.PathPattern}, nil
}

// Module returns the plugin module as it would be resolved from SourceURL.
func Module() plugin.Module {
	return plugin.Module{Default: plugin.StorageFactory(New)}
}

// Register links the module into r under SourceURL and under every non empty
// url in aliases, so mirrors configured by the user resolve to the same module.
func Register(r *plugin.Registry, aliases ...string) error {
	if err := r.Register(SourceURL, Module()); err != nil {
		return err
	}
	for _, url := range aliases {
		if url == "" || url == SourceURL {
			continue
		}
		if err := r.Register(url, Module()); err != nil {
			return err
		}
	}
	return nil
}

// PathFor returns the message file path for lang. The tag is canonicalized first,
// so "EN-us" and "en-US" map to the same file.
func (p *Plugin) PathFor(lang string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", lang, err)
	}
	return strings.ReplaceAll(p.PathPattern, plugin.LanguagePlaceholder, tag.String()), nil
}
