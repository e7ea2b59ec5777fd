package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type CommandsTestSuite struct {
	suite.Suite
}

func TestCommandsSuite(t *testing.T) {
	suite.Run(t, &CommandsTestSuite{})
}

func (s *CommandsTestSuite) SetupTest() {
	s.T().Setenv("OPENTELEMETRY_DISABLE", "true")
	s.T().Setenv("LOG_LEVEL", "error")
}

func (s *CommandsTestSuite) TestShowFormats() {
	testCases := []struct {
		name   string
		args   []string
		decode func([]byte, any) error
	}{
		{name: "json default", args: nil, decode: json.Unmarshal},
		{name: "yaml", args: []string{"--format", "yaml"}, decode: yaml.Unmarshal},
		{name: "toml", args: []string{"--format", "toml"}, decode: toml.Unmarshal},
		{name: "concurrent json", args: []string{"--concurrent"}, decode: json.Unmarshal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			var out bytes.Buffer
			s.Require().NoError(cmdShow(context.Background(), tc.args, &out))

			var decoded struct {
				ReferenceLanguage string           `json:"referenceLanguage" toml:"referenceLanguage" yaml:"referenceLanguage"`
				Plugins           []map[string]any `json:"plugins"           toml:"plugins"           yaml:"plugins"`
			}
			s.Require().NoError(tc.decode(out.Bytes(), &decoded), out.String())

			s.Equal("en", decoded.ReferenceLanguage)
			s.Require().Len(decoded.Plugins, 2)
			s.Equal("inlang.plugin.json", decoded.Plugins[0]["id"])
			s.Equal("./custom_components/translations/{language}.json", decoded.Plugins[0]["pathPattern"])
			s.Equal("inlang.standardLintRules", decoded.Plugins[1]["id"])
		})
	}
}

func (s *CommandsTestSuite) TestShowRejectsUnknownFormat() {
	var out bytes.Buffer
	s.Require().Error(cmdShow(context.Background(), []string{"--format", "xml"}, &out))
	s.Empty(out.String())
}

func (s *CommandsTestSuite) TestShowWithTelemetryEnabled() {
	s.T().Setenv("OPENTELEMETRY_DISABLE", "false")
	s.T().Setenv("OTEL_TRACES_EXPORTER", "none")
	s.T().Setenv("OTEL_METRICS_EXPORTER", "none")
	s.T().Setenv("OTEL_LOGS_EXPORTER", "none")

	var out bytes.Buffer
	s.Require().NoError(cmdShow(context.Background(), nil, &out))

	var decoded struct {
		ReferenceLanguage string           `json:"referenceLanguage"`
		Plugins           []map[string]any `json:"plugins"`
	}
	s.Require().NoError(json.Unmarshal(out.Bytes(), &decoded), out.String())
	s.Equal("en", decoded.ReferenceLanguage)
	s.Len(decoded.Plugins, 2)
}

func (s *CommandsTestSuite) TestShowPluginSources() {
	testCases := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name:   "storage mirror",
			config: "storage_plugin_url: https://mirror.example.com/inlang-plugin-json.js\n",
		},
		{
			name: "both mirrors",
			config: "storage_plugin_url: https://mirror.example.com/inlang-plugin-json.js\n" +
				"lint_plugin_url: https://mirror.example.com/standard-lint-rules.js\n",
		},
		{
			name: "lint url shadows storage url",
			config: "storage_plugin_url: https://mirror.example.com/bundle.js\n" +
				"lint_plugin_url: https://mirror.example.com/bundle.js\n",
			wantErr: "not an invocable",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			path := filepath.Join(s.T().TempDir(), "langconfig.yaml")
			s.Require().NoError(os.WriteFile(path, []byte(tc.config), 0o600))

			var out bytes.Buffer
			err := cmdShow(context.Background(), []string{"--config", path}, &out)
			if tc.wantErr != "" {
				s.Require().Error(err)
				s.Contains(err.Error(), "https://mirror.example.com/bundle.js")
				s.Contains(err.Error(), tc.wantErr)
				s.Empty(out.String())
				return
			}

			s.Require().NoError(err)
			s.Contains(out.String(), "inlang.plugin.json")
			s.Contains(out.String(), "inlang.standardLintRules")
		})
	}
}

func (s *CommandsTestSuite) TestPaths() {
	var out bytes.Buffer
	s.Require().NoError(cmdPaths(context.Background(), []string{"en", "de-at"}, &out))

	s.Equal(
		"en\t./custom_components/translations/en.json\n"+
			"de-at\t./custom_components/translations/de-AT.json\n",
		out.String(),
	)
}

func (s *CommandsTestSuite) TestPathsErrors() {
	var out bytes.Buffer
	s.Require().Error(cmdPaths(context.Background(), nil, &out))
	s.Require().Error(cmdPaths(context.Background(), []string{"not a language"}, &out))
}

func (s *CommandsTestSuite) TestVersion() {
	var out bytes.Buffer
	s.Require().NoError(cmdVersion(&out))
	s.Contains(out.String(), "langconfig dev")
}
