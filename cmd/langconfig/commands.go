package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pitabwire/util"
	"gopkg.in/yaml.v3"

	"github.com/pitabwire/langconfig"
	"github.com/pitabwire/langconfig/config"
	"github.com/pitabwire/langconfig/telemetry"
	"github.com/pitabwire/langconfig/version"
)

// pathResolver is implemented by storage plugins that map a language to its message file.
type pathResolver interface {
	PathFor(lang string) (string, error)
}

func cmdShow(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	format := fs.String("format", "", "output format: json, yaml or toml")
	configPath := fs.String("config", "", "optional tool settings file")
	concurrent := fs.Bool("concurrent", false, "import plugin modules concurrently")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load[config.ConfigurationDefault](*configPath)
	if err != nil {
		return err
	}
	if *format != "" {
		cfg.OutputFormat = *format
	}
	if *concurrent {
		cfg.ConcurrentImport = true
	}

	outputFormat, err := cfg.Format()
	if err != nil {
		return err
	}

	projectCfg, err := load(ctx, &cfg)
	if err != nil {
		return err
	}

	return encode(out, outputFormat, projectCfg)
}

func cmdPaths(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("paths", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional tool settings file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("at least one language is required")
	}

	cfg, err := config.Load[config.ConfigurationDefault](*configPath)
	if err != nil {
		return err
	}

	projectCfg, err := load(ctx, &cfg)
	if err != nil {
		return err
	}

	resolver, ok := projectCfg.StoragePlugin().(pathResolver)
	if !ok {
		return fmt.Errorf("storage plugin %T does not resolve message file paths", projectCfg.StoragePlugin())
	}

	for _, lang := range fs.Args() {
		path, pathErr := resolver.PathFor(lang)
		if pathErr != nil {
			return pathErr
		}
		fmt.Fprintf(out, "%s\t%s\n", lang, path)
	}
	return nil
}

func cmdVersion(out io.Writer) error {
	v := version.Version
	if v == "" {
		v = "dev"
	}
	_, err := fmt.Fprintf(out, "langconfig %s (commit %s, built %s)\n", v, orUnknown(version.Commit), orUnknown(version.Date))
	return err
}

// load sets up logging and telemetry from cfg and assembles the project configuration
// from the statically linked plugins. Configured plugin urls act as aliases of the
// linked modules.
func load(ctx context.Context, cfg *config.ConfigurationDefault) (_ *langconfig.Configuration, err error) {
	tm := telemetry.NewManager(ctx, cfg,
		telemetry.WithServiceName(cfg.Name()),
		telemetry.WithServiceVersion(version.Version))
	if err = tm.Init(ctx); err != nil {
		return nil, fmt.Errorf("could not set up telemetry: %w", err)
	}
	defer func() {
		err = errors.Join(err, tm.Shutdown(context.WithoutCancel(ctx)))
	}()

	log := newLogger(ctx, cfg, tm)
	ctx = util.ContextWithLogger(ctx, log)

	opts := []langconfig.Option{
		langconfig.WithStorageSource(cfg.StorageSource()),
		langconfig.WithLintSource(cfg.LintSource()),
	}
	if cfg.ImportConcurrently() {
		opts = append(opts, langconfig.WithConcurrentImport())
	}

	registry, err := langconfig.LinkedRegistry(cfg.StorageSource(), cfg.LintSource())
	if err != nil {
		return nil, err
	}

	projectCfg, err := langconfig.LoadConfig(ctx, registry, opts...)
	if err != nil {
		return nil, err
	}
	if err = projectCfg.Validate(); err != nil {
		return nil, err
	}
	return projectCfg, nil
}

func newLogger(ctx context.Context, cfg config.ConfigurationLogLevel, tm telemetry.Manager) *util.LogEntry {
	opts := []util.Option{util.WithLogOutput(os.Stderr)}

	if logLevel, err := util.ParseLevel(cfg.LoggingLevel()); err == nil {
		opts = append(opts, util.WithLogLevel(logLevel))
	}
	opts = append(opts,
		util.WithLogTimeFormat(cfg.LoggingTimeFormat()),
		util.WithLogNoColor(!cfg.LoggingColored()))
	if cfg.LoggingShowStackTrace() {
		opts = append(opts, util.WithLogStackTrace())
	}

	if handler := tm.LogHandler(); handler != nil {
		opts = append(opts, util.WithLogHandler(handler))
	}

	return util.NewLogger(ctx, opts...).WithField("service", "langconfig")
}

func encode(out io.Writer, format string, v any) error {
	switch format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatTOML:
		return toml.NewEncoder(out).Encode(v)
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
