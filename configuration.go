// Package langconfig builds the project configuration of the translation tooling:
// the reference language every translation is checked against and the ordered
// plugins that store and lint messages.
package langconfig

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/pitabwire/langconfig/plugin"
	"github.com/pitabwire/langconfig/plugins/jsonstorage"
	"github.com/pitabwire/langconfig/plugins/standardlint"
)

const (
	// ReferenceLanguage is the baseline language translations are compared against.
	ReferenceLanguage = "en"
	// TranslationsPathPattern locates each language's message file.
	TranslationsPathPattern = "./custom_components/translations/{language}.json"

	StoragePluginURL = jsonstorage.SourceURL
	LintPluginURL    = standardlint.SourceURL
)

// Configuration is the assembled project configuration.
// Plugins are ordered: the storage plugin comes first, the lint rules second.
type Configuration struct {
	ReferenceLanguage string            `json:"referenceLanguage" toml:"referenceLanguage" yaml:"referenceLanguage"`
	Plugins           []plugin.Instance `json:"plugins"           toml:"plugins"           yaml:"plugins"`
}

// Validate checks that the reference language is a well formed language tag and
// that plugins are present.
func (c *Configuration) Validate() error {
	if c == nil {
		return errors.New("configuration is nil")
	}
	if _, err := language.Parse(c.ReferenceLanguage); err != nil {
		return fmt.Errorf("invalid reference language %q: %w", c.ReferenceLanguage, err)
	}
	if len(c.Plugins) == 0 {
		return errors.New("configuration has no plugins")
	}
	for i, p := range c.Plugins {
		if p == nil {
			return fmt.Errorf("plugin[%d] is nil", i)
		}
	}
	return nil
}

// StoragePlugin returns the storage plugin instance, the first entry of Plugins.
func (c *Configuration) StoragePlugin() plugin.Instance {
	if c == nil || len(c.Plugins) == 0 {
		return nil
	}
	return c.Plugins[0]
}

// LintPlugin returns the lint rule set, the second entry of Plugins.
func (c *Configuration) LintPlugin() plugin.Instance {
	if c == nil || len(c.Plugins) < 2 {
		return nil
	}
	return c.Plugins[1]
}

// DefaultRegistry returns an importer holding the statically linked storage and
// lint plugins under their canonical urls.
func DefaultRegistry() *plugin.Registry {
	r, err := LinkedRegistry("", "")
	if err != nil {
		panic(err)
	}
	return r
}

// LinkedRegistry returns an importer holding the statically linked plugins under
// their canonical urls and additionally under storageURL and lintURL when given.
// Registering the lint url last means a lint url equal to the storage url resolves
// to the lint module.
func LinkedRegistry(storageURL, lintURL string) (*plugin.Registry, error) {
	r := plugin.NewRegistry()
	if err := jsonstorage.Register(r, storageURL); err != nil {
		return nil, err
	}
	if err := standardlint.Register(r, lintURL); err != nil {
		return nil, err
	}
	return r, nil
}
