package logging

import (
	"context"

	"github.com/monospace/pagebuilder/pkg/interfaces"
)

const (
	rootModule        = "builder"
	componentsModule  = "builder.components"
	pagesModule       = "builder.pages"
	imagesModule      = "builder.images"
	groupsModule      = "builder.groups"
	consumptionModule = "builder.consumption"
	httpModule        = "builder.http"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ComponentsLogger returns the logger namespace reserved for the component tree store.
func ComponentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, componentsModule)
}

// PagesLogger returns the logger namespace reserved for page services.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// ImagesLogger returns the logger namespace reserved for the image pipeline.
func ImagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, imagesModule)
}

// GroupsLogger returns the logger namespace reserved for group services.
func GroupsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, groupsModule)
}

// ConsumptionLogger returns the logger namespace reserved for consumption tracking.
func ConsumptionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, consumptionModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP adapter.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
