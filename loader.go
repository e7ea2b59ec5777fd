package langconfig

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lmittmann/tint"
	"github.com/pitabwire/util"
	"github.com/rs/xid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/pitabwire/langconfig/plugin"
	"github.com/pitabwire/langconfig/telemetry"
)

const (
	tintAttrCodeSource = 12
	tintAttrCodeLoadID = 214
)

//nolint:gochecknoglobals // one latency histogram per process
var defaultTracer = sync.OnceValue(func() telemetry.Tracer {
	return telemetry.NewTracer(telemetry.PackageName)
})

// Environment is the host capability LoadConfig resolves plugin modules through.
// A *plugin.Registry is the usual implementation.
type Environment interface {
	ImportModule(ctx context.Context, url string) (plugin.Module, error)
}

// LoadConfig imports the storage and lint plugin modules from env, builds one
// instance of each and returns them with the reference language.
//
// Import failures are returned as *plugin.ModuleResolutionError and factory
// failures as *plugin.FactoryInvocationError. Nothing is retried and no partial
// configuration is ever returned.
func LoadConfig(ctx context.Context, env Environment, opts ...Option) (cfg *Configuration, err error) {
	o := loadOptions{
		storageURL: StoragePluginURL,
		lintURL:    LintPluginURL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = defaultTracer()
	}

	ctx, span := o.tracer.Start(ctx, "LoadConfig", trace.WithAttributes(
		telemetry.AttrSourceKey.StringSlice([]string{o.storageURL, o.lintURL}),
	))
	defer func() {
		o.tracer.End(ctx, span, err)
	}()

	if env == nil {
		return nil, errors.New("an environment to import plugin modules from is required")
	}

	log := util.Log(ctx).With(tint.Attr(tintAttrCodeLoadID, slog.String("load_id", xid.New().String())))
	defer log.Release()

	var storageModule, lintModule plugin.Module
	if o.concurrent {
		storageModule, lintModule, err = importConcurrently(ctx, env, o.storageURL, o.lintURL, log)
	} else {
		storageModule, lintModule, err = importSequentially(ctx, env, o.storageURL, o.lintURL, log)
	}
	if err != nil {
		log.WithError(err).Error("could not import plugin modules")
		return nil, err
	}

	storage, err := invokeStorageFactory(o.storageURL, storageModule, plugin.StorageOptions{
		PathPattern: TranslationsPathPattern,
	})
	if err != nil {
		log.WithError(err).Error("could not build storage plugin")
		return nil, err
	}

	lint, err := invokeLintFactory(o.lintURL, lintModule)
	if err != nil {
		log.WithError(err).Error("could not build lint plugin")
		return nil, err
	}

	log.WithField("reference_language", ReferenceLanguage).Info("configuration loaded")

	return &Configuration{
		ReferenceLanguage: ReferenceLanguage,
		Plugins:           []plugin.Instance{storage, lint},
	}, nil
}

func importSequentially(
	ctx context.Context,
	env Environment,
	storageURL, lintURL string,
	log *util.LogEntry,
) (plugin.Module, plugin.Module, error) {
	storageModule, err := importModule(ctx, env, storageURL, log)
	if err != nil {
		return plugin.Module{}, plugin.Module{}, err
	}

	lintModule, err := importModule(ctx, env, lintURL, log)
	if err != nil {
		return plugin.Module{}, plugin.Module{}, err
	}

	return storageModule, lintModule, nil
}

func importConcurrently(
	ctx context.Context,
	env Environment,
	storageURL, lintURL string,
	log *util.LogEntry,
) (plugin.Module, plugin.Module, error) {
	var storageModule, lintModule plugin.Module

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := importModule(gCtx, env, storageURL, log)
		storageModule = m
		return err
	})
	g.Go(func() error {
		m, err := importModule(gCtx, env, lintURL, log)
		lintModule = m
		return err
	})

	if err := g.Wait(); err != nil {
		return plugin.Module{}, plugin.Module{}, err
	}
	return storageModule, lintModule, nil
}

func importModule(ctx context.Context, env Environment, url string, log *util.LogEntry) (plugin.Module, error) {
	entry := log.With(tint.Attr(tintAttrCodeSource, slog.String("url", url)))
	entry.Debug("importing plugin module")
	entry.Release()

	m, err := env.ImportModule(ctx, url)
	if err != nil {
		var resolutionErr *plugin.ModuleResolutionError
		if errors.As(err, &resolutionErr) {
			return plugin.Module{}, err
		}
		return plugin.Module{}, &plugin.ModuleResolutionError{URL: url, Err: err}
	}
	return m, nil
}

func invokeStorageFactory(url string, m plugin.Module, opts plugin.StorageOptions) (plugin.Instance, error) {
	if m.Default == nil {
		return nil, &plugin.FactoryInvocationError{URL: url, Err: plugin.ErrMissingDefaultExport}
	}
	factory, ok := plugin.AsStorageFactory(m.Default)
	if !ok {
		return nil, &plugin.FactoryInvocationError{
			URL: url,
			Err: fmt.Errorf("%w: got %T", plugin.ErrNotInvocable, m.Default),
		}
	}
	return invoke(url, func() (plugin.Instance, error) { return factory(opts) })
}

func invokeLintFactory(url string, m plugin.Module) (plugin.Instance, error) {
	if m.Default == nil {
		return nil, &plugin.FactoryInvocationError{URL: url, Err: plugin.ErrMissingDefaultExport}
	}
	factory, ok := plugin.AsLintFactory(m.Default)
	if !ok {
		return nil, &plugin.FactoryInvocationError{
			URL: url,
			Err: fmt.Errorf("%w: got %T", plugin.ErrNotInvocable, m.Default),
		}
	}
	return invoke(url, factory)
}

func invoke(url string, build func() (plugin.Instance, error)) (inst plugin.Instance, err error) {
	defer func() {
		if r := recover(); r != nil {
			inst = nil
			err = &plugin.FactoryInvocationError{URL: url, Err: fmt.Errorf("%w: %v", plugin.ErrFactoryPanicked, r)}
		}
	}()

	inst, err = build()
	if err != nil {
		return nil, &plugin.FactoryInvocationError{URL: url, Err: err}
	}
	if inst == nil {
		return nil, &plugin.FactoryInvocationError{URL: url, Err: plugin.ErrNoInstance}
	}
	return inst, nil
}
