package pagebuilder

import (
	"github.com/monospace/pagebuilder/internal/components"
	"github.com/monospace/pagebuilder/internal/consumption"
	"github.com/monospace/pagebuilder/internal/di"
	"github.com/monospace/pagebuilder/internal/groups"
	builderhttp "github.com/monospace/pagebuilder/internal/http"
	"github.com/monospace/pagebuilder/internal/images"
	"github.com/monospace/pagebuilder/internal/logging"
	"github.com/monospace/pagebuilder/internal/pages"
	"github.com/monospace/pagebuilder/internal/users"
)

// ComponentService exports the component tree service contract.
type ComponentService = components.Service

// PageService exports the page service contract.
type PageService = pages.Service

// ImageService exports the media ingestion service contract.
type ImageService = images.Service

// GroupService exports the group and chat service contract.
type GroupService = groups.Service

// ConsumptionService exports the expense service contract.
type ConsumptionService = consumption.Service

// UserRepository exports the user lookup contract.
type UserRepository = users.Repository

// Module is the top level page builder runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a builder module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Components returns the configured component tree service.
func (m *Module) Components() ComponentService {
	return m.container.ComponentService()
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Images returns the configured media ingestion service.
func (m *Module) Images() ImageService {
	return m.container.ImageService()
}

// Groups returns the configured group service.
func (m *Module) Groups() GroupService {
	return m.container.GroupService()
}

// Consumption returns the configured expense service.
func (m *Module) Consumption() ConsumptionService {
	return m.container.ConsumptionService()
}

// Users returns the configured user repository.
func (m *Module) Users() UserRepository {
	return m.container.UserRepository()
}

// API builds the HTTP adapter over the module services.
func (m *Module) API() *builderhttp.API {
	cfg := m.container.Config
	opts := []builderhttp.Option{
		builderhttp.WithComponentService(m.Components()),
		builderhttp.WithPageService(m.Pages()),
		builderhttp.WithImageService(m.Images()),
		builderhttp.WithGroupService(m.Groups()),
		builderhttp.WithConsumptionService(m.Consumption()),
		builderhttp.WithLogger(logging.HTTPLogger(m.container.LoggerProvider())),
	}
	if cfg.HTTP.BasePath != "" {
		opts = append(opts, builderhttp.WithBasePath(cfg.HTTP.BasePath))
	}
	if cfg.Images.MaxUploadBytes > 0 {
		opts = append(opts, builderhttp.WithMaxUploadBytes(cfg.Images.MaxUploadBytes))
	}
	return builderhttp.NewAPI(opts...)
}

// Close releases container-owned resources such as the database handle.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
