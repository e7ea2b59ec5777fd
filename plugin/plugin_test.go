package plugin_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pitabwire/langconfig/plugin"
)

type PluginTestSuite struct {
	suite.Suite
}

func TestPluginSuite(t *testing.T) {
	suite.Run(t, &PluginTestSuite{})
}

func (s *PluginTestSuite) TestStorageOptionsValidate() {
	testCases := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{name: "valid", pattern: "./translations/{language}.json"},
		{name: "empty", pattern: "  ", wantErr: true},
		{name: "missing placeholder", pattern: "./translations/en.json", wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := plugin.StorageOptions{PathPattern: tc.pattern}.Validate()
			if tc.wantErr {
				s.Require().Error(err)
				return
			}
			s.Require().NoError(err)
		})
	}
}

func (s *PluginTestSuite) TestAsStorageFactory() {
	opts := plugin.StorageOptions{PathPattern: "{language}.json"}

	testCases := []struct {
		name   string
		export any
		ok     bool
	}{
		{
			name: "named factory",
			export: plugin.StorageFactory(func(o plugin.StorageOptions) (plugin.Instance, error) {
				return o.PathPattern, nil
			}),
			ok: true,
		},
		{
			name: "raw factory",
			export: func(o plugin.StorageOptions) (plugin.Instance, error) {
				return o.PathPattern, nil
			},
			ok: true,
		},
		{
			name:   "factory without error",
			export: func(o plugin.StorageOptions) plugin.Instance { return o.PathPattern },
			ok:     true,
		},
		{name: "nil named factory", export: plugin.StorageFactory(nil)},
		{name: "lint shape", export: func() plugin.Instance { return nil }},
		{name: "wrong argument", export: func(string) plugin.Instance { return nil }},
		{name: "not a function", export: 42},
		{name: "nil", export: nil},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			factory, ok := plugin.AsStorageFactory(tc.export)
			s.Equal(tc.ok, ok)
			if !tc.ok {
				return
			}
			inst, err := factory(opts)
			s.Require().NoError(err)
			s.Equal("{language}.json", inst)
		})
	}
}

func (s *PluginTestSuite) TestAsLintFactory() {
	testCases := []struct {
		name   string
		export any
		ok     bool
	}{
		{
			name:   "named factory",
			export: plugin.LintFactory(func() (plugin.Instance, error) { return "rules", nil }),
			ok:     true,
		},
		{name: "raw factory", export: func() (plugin.Instance, error) { return "rules", nil }, ok: true},
		{name: "factory without error", export: func() plugin.Instance { return "rules" }, ok: true},
		{name: "nil raw factory", export: (func() plugin.Instance)(nil)},
		{name: "storage shape", export: func(plugin.StorageOptions) plugin.Instance { return nil }},
		{name: "not a function", export: "rules"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			factory, ok := plugin.AsLintFactory(tc.export)
			s.Equal(tc.ok, ok)
			if !tc.ok {
				return
			}
			inst, err := factory()
			s.Require().NoError(err)
			s.Equal("rules", inst)
		})
	}
}

func (s *PluginTestSuite) TestRegistry() {
	ctx := context.Background()
	r := plugin.NewRegistry()

	s.Require().Error(r.Register(" ", plugin.Module{Default: "x"}))
	s.Require().ErrorIs(r.Register("https://a", plugin.Module{}), plugin.ErrMissingDefaultExport)

	s.Require().NoError(r.Register("https://b", plugin.Module{Default: "b"}))
	s.Require().NoError(r.Register("https://a", plugin.Module{Default: "a"}))
	s.Require().NoError(r.Register("https://a", plugin.Module{Default: "a2"}))

	s.Equal([]string{"https://a", "https://b"}, r.Sources())

	m, err := r.ImportModule(ctx, "https://a")
	s.Require().NoError(err)
	s.Equal("a2", m.Default)

	_, err = r.ImportModule(ctx, "https://missing")
	s.Require().ErrorIs(err, plugin.ErrModuleNotFound)
	s.Contains(err.Error(), "https://missing")

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = r.ImportModule(canceled, "https://a")
	s.Require().ErrorIs(err, context.Canceled)

	s.Panics(func() { r.MustRegister("", plugin.Module{Default: "x"}) })
}

func (s *PluginTestSuite) TestRegistryConcurrentAccess() {
	ctx := context.Background()
	r := plugin.NewRegistry()
	r.MustRegister("https://shared", plugin.Module{Default: "shared"})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.Register("https://other", plugin.Module{Default: "other"})
		}()
		go func() {
			defer wg.Done()
			m, err := r.ImportModule(ctx, "https://shared")
			s.NoError(err)
			s.Equal("shared", m.Default)
		}()
	}
	wg.Wait()
}

func (s *PluginTestSuite) TestImporterFunc() {
	var importer plugin.Importer = plugin.ImporterFunc(func(_ context.Context, url string) (plugin.Module, error) {
		return plugin.Module{Default: url}, nil
	})

	m, err := importer.ImportModule(context.Background(), "https://x")
	s.Require().NoError(err)
	s.Equal("https://x", m.Default)
}

func (s *PluginTestSuite) TestErrors() {
	cause := errors.New("dial tcp: timeout")

	resolution := &plugin.ModuleResolutionError{URL: "https://a", Err: cause}
	s.Contains(resolution.Error(), "https://a")
	s.Contains(resolution.Error(), "dial tcp: timeout")
	s.Require().ErrorIs(resolution, cause)

	invocation := &plugin.FactoryInvocationError{URL: "https://b", Err: plugin.ErrNotInvocable}
	s.Contains(invocation.Error(), "https://b")
	s.Require().ErrorIs(invocation, plugin.ErrNotInvocable)

	var target *plugin.ModuleResolutionError
	s.False(errors.As(invocation, &target))
}
