package http

import (
	"net/http"
	"strings"

	"github.com/monospace/pagebuilder/internal/components"
	"github.com/monospace/pagebuilder/internal/consumption"
	"github.com/monospace/pagebuilder/internal/groups"
	"github.com/monospace/pagebuilder/internal/images"
	"github.com/monospace/pagebuilder/internal/logging"
	"github.com/monospace/pagebuilder/internal/pages"
	"github.com/monospace/pagebuilder/pkg/interfaces"
)

// API registers the builder endpoints: component tree, pages, media,
// groups and expenses. Callers are identified by the X-User-ID header;
// session handling sits in front of this service.
type API struct {
	basePath    string
	components  components.Service
	pages       pages.Service
	images      images.Service
	groups      groups.Service
	consumption consumption.Service
	maxUpload   int64
	logger      interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath:  "/api",
		maxUpload: images.DefaultMaxUploadBytes,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithComponentService wires the component tree service.
func WithComponentService(service components.Service) Option {
	return func(api *API) {
		if api != nil {
			api.components = service
		}
	}
}

// WithPageService wires the page service.
func WithPageService(service pages.Service) Option {
	return func(api *API) {
		if api != nil {
			api.pages = service
		}
	}
}

// WithImageService wires the media service.
func WithImageService(service images.Service) Option {
	return func(api *API) {
		if api != nil {
			api.images = service
		}
	}
}

// WithGroupService wires the group service.
func WithGroupService(service groups.Service) Option {
	return func(api *API) {
		if api != nil {
			api.groups = service
		}
	}
}

// WithConsumptionService wires the expense service.
func WithConsumptionService(service consumption.Service) Option {
	return func(api *API) {
		if api != nil {
			api.consumption = service
		}
	}
}

// WithMaxUploadBytes bounds multipart uploads.
func WithMaxUploadBytes(limit int64) Option {
	return func(api *API) {
		if api != nil && limit > 0 {
			api.maxUpload = limit
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches every route to the mux.
func (api *API) Register(mux *http.ServeMux) {
	if api == nil || mux == nil {
		return
	}
	api.registerComponentRoutes(mux, api.basePath)
	api.registerPageRoutes(mux, api.basePath)
	api.registerImageRoutes(mux, api.basePath)
	api.registerGroupRoutes(mux, api.basePath)
	api.registerConsumptionRoutes(mux, api.basePath)
}

// Handler returns a mux with every route registered.
func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()
	api.Register(mux)
	return mux
}
