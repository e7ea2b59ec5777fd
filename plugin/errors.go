package plugin

import (
	"errors"
	"fmt"
)

var (
	// ErrModuleNotFound is returned by an Importer that has nothing registered under a url.
	ErrModuleNotFound = errors.New("plugin module not found")
	// ErrMissingDefaultExport is reported when a resolved module carries no default export.
	ErrMissingDefaultExport = errors.New("plugin module has no default export")
	// ErrNotInvocable is reported when the default export is not a factory of the expected shape.
	ErrNotInvocable = errors.New("plugin default export is not an invocable factory")
	// ErrNoInstance is reported when a factory returns neither an instance nor an error.
	ErrNoInstance = errors.New("plugin factory returned no instance")
	// ErrFactoryPanicked wraps a panic raised while a factory was running.
	ErrFactoryPanicked = errors.New("plugin factory panicked")
)

// ModuleResolutionError is returned when a plugin module could not be fetched or resolved.
type ModuleResolutionError struct {
	URL string
	Err error
}

func (e *ModuleResolutionError) Error() string {
	return fmt.Sprintf("could not resolve plugin module %q: %v", e.URL, e.Err)
}

func (e *ModuleResolutionError) Unwrap() error {
	return e.Err
}

// FactoryInvocationError is returned when a module's default export is missing,
// has the wrong shape, or fails while building the plugin instance.
type FactoryInvocationError struct {
	URL string
	Err error
}

func (e *FactoryInvocationError) Error() string {
	return fmt.Sprintf("could not invoke plugin factory from %q: %v", e.URL, e.Err)
}

func (e *FactoryInvocationError) Unwrap() error {
	return e.Err
}
