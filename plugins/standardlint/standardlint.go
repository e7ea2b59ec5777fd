// Package standardlint links the standard lint rule set into the binary.
package standardlint

import "github.com/pitabwire/langconfig/plugin"

const (
	// ID identifies the rule set inside a configuration.
	ID = "inlang.standardLintRules"
	// SourceURL is the canonical location the rule set is imported from.
	SourceURL = "https://cdn.jsdelivr.net/gh/inlang/standard-lint-rules@2/dist/index.js"
)

type Level string

const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Rule names a lint rule and the level its findings are reported at.
type Rule struct {
	ID    string `json:"id"    toml:"id"    yaml:"id"`
	Level Level  `json:"level" toml:"level" yaml:"level"`
}

// Plugin is the lint rule set instance.
type Plugin struct {
	ID    string `json:"id"    toml:"id"    yaml:"id"`
	Rules []Rule `json:"rules" toml:"rules" yaml:"rules"`
}

// StandardRules returns the rules in the standard set.
func StandardRules() []Rule {
	return []Rule{
		{ID: "inlang.lintRule.missingMessage", Level: LevelError},
		{ID: "inlang.lintRule.messageWithoutReference", Level: LevelWarning},
		{ID: "inlang.lintRule.identicalPattern", Level: LevelWarning},
	}
}

// New builds the rule set. It is the module's default export.
func New() (plugin.Instance, error) {
	return &Plugin{ID: ID, Rules: StandardRules()}, nil
}

// Module returns the plugin module as it would be resolved from SourceURL.
func Module() plugin.Module {
	return plugin.Module{Default: plugin.LintFactory(New)}
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
