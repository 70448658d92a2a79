package di

import (
	"database/sql"
	"fmt"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/monospace/pagebuilder/internal/components"
	"github.com/monospace/pagebuilder/internal/consumption"
	"github.com/monospace/pagebuilder/internal/groups"
	"github.com/monospace/pagebuilder/internal/images"
	"github.com/monospace/pagebuilder/internal/logging"
	"github.com/monospace/pagebuilder/internal/logging/gologger"
	"github.com/monospace/pagebuilder/internal/pages"
	"github.com/monospace/pagebuilder/internal/runtimeconfig"
	"github.com/monospace/pagebuilder/internal/storage"
	"github.com/monospace/pagebuilder/internal/users"
	"github.com/monospace/pagebuilder/pkg/interfaces"

	_ "github.com/mattn/go-sqlite3"
)

// Container wires module dependencies. Without a bun database it runs on
// in-memory repositories, which is what the tests and quick-start setups use.
type Container struct {
	Config runtimeconfig.Config

	bunDB   *bun.DB
	ownedDB bool

	objectStorage interfaces.ObjectStorage
	logs          interfaces.LoggerProvider

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	componentStore *components.Store

	userRepo        users.Repository
	pageRepo        pages.Repository
	imageRepo       images.Repository
	groupRepo       groups.Repository
	consumptionRepo consumption.Repository

	componentSvc   components.Service
	pageSvc        pages.Service
	imageSvc       images.Service
	groupSvc       groups.Service
	consumptionSvc consumption.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB injects an existing database handle. The caller keeps ownership
// and is responsible for closing it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithObjectStorage overrides the storage provider selected by configuration.
func WithObjectStorage(store interfaces.ObjectStorage) Option {
	return func(c *Container) {
		c.objectStorage = store
	}
}

// WithLoggerProvider overrides the logging provider selected by configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.logs = provider
	}
}

// WithCache enables repository caching for bun-backed repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithComponentStore overrides the shared component tree store.
func WithComponentStore(store *components.Store) Option {
	return func(c *Container) {
		c.componentStore = store
	}
}

// WithUserRepository overrides the default user repository binding.
func WithUserRepository(repo users.Repository) Option {
	return func(c *Container) {
		c.userRepo = repo
	}
}

// WithPageRepository overrides the default page repository binding.
func WithPageRepository(repo pages.Repository) Option {
	return func(c *Container) {
		c.pageRepo = repo
	}
}

// WithImageRepository overrides the default image repository binding.
func WithImageRepository(repo images.Repository) Option {
	return func(c *Container) {
		c.imageRepo = repo
	}
}

// WithGroupRepository overrides the default group repository binding.
func WithGroupRepository(repo groups.Repository) Option {
	return func(c *Container) {
		c.groupRepo = repo
	}
}

// WithConsumptionRepository overrides the default consumption repository binding.
func WithConsumptionRepository(repo consumption.Repository) Option {
	return func(c *Container) {
		c.consumptionRepo = repo
	}
}

// NewContainer builds the dependency graph for the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:          cfg,
		componentStore:  components.NewStore(),
		userRepo:        users.NewMemoryUserRepository(),
		pageRepo:        pages.NewMemoryPageRepository(),
		imageRepo:       images.NewMemoryImageRepository(),
		groupRepo:       groups.NewMemoryGroupRepository(),
		consumptionRepo: consumption.NewMemoryConsumptionRepository(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	if err := c.configureDatabase(); err != nil {
		return nil, err
	}
	c.configureRepositories()
	c.configureServices()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.logs != nil {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "", "noop":
		c.logs = noopProvider{}
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
		})
		if err != nil {
			return err
		}
		c.logs = provider
	default:
		return runtimeconfig.ErrLoggingProviderUnknown
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.objectStorage != nil {
		return nil
	}

	storageCfg := c.Config.Storage
	switch strings.ToLower(strings.TrimSpace(storageCfg.Provider)) {
	case "memory":
		c.objectStorage = storage.NewMemoryStorage()
	case "local":
		c.objectStorage = storage.NewLocalStorage(storageCfg.RootDir, storageCfg.BaseURL)
	case "supabase":
		c.objectStorage = storage.NewSupabaseStorage(storage.SupabaseConfig{
			BaseURL: storageCfg.BaseURL,
			APIKey:  storageCfg.APIKey,
			Bucket:  storageCfg.Bucket,
		})
	default:
		return runtimeconfig.ErrStorageProviderUnknown
	}
	return nil
}

func (c *Container) configureDatabase() error {
	if c.bunDB != nil {
		return nil
	}

	dbCfg := c.Config.Database
	switch strings.ToLower(strings.TrimSpace(dbCfg.Driver)) {
	case "":
		return nil
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", dbCfg.DSN)
		if err != nil {
			return fmt.Errorf("open sqlite database: %w", err)
		}
		bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
		bunDB.SetMaxOpenConns(1)
		c.bunDB = bunDB
		c.ownedDB = true
	case "postgres":
		sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dbCfg.DSN)))
		c.bunDB = bun.NewDB(sqlDB, pgdialect.New())
		c.ownedDB = true
	default:
		return runtimeconfig.ErrDatabaseDriverUnknown
	}
	return nil
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.userRepo = users.NewBunUserRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.pageRepo = pages.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.imageRepo = images.NewBunImageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.groupRepo = groups.NewBunGroupRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.consumptionRepo = consumption.NewBunConsumptionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureServices() {
	if c.componentSvc == nil {
		c.componentSvc = components.NewService(
			c.componentStore,
			components.WithLogger(logging.ComponentsLogger(c.logs)),
		)
	}

	if c.pageSvc == nil {
		c.pageSvc = pages.NewService(
			c.pageRepo,
			pages.WithLogger(logging.PagesLogger(c.logs)),
		)
	}

	if c.imageSvc == nil {
		imageOpts := []images.ServiceOption{
			images.WithLogger(logging.ImagesLogger(c.logs)),
		}
		if limit := c.Config.Images.MaxUploadBytes; limit > 0 {
			imageOpts = append(imageOpts, images.WithMaxUploadBytes(limit))
		}
		c.imageSvc = images.NewService(c.imageRepo, c.objectStorage, imageOpts...)
	}

	if c.groupSvc == nil {
		c.groupSvc = groups.NewService(
			c.groupRepo,
			c.userRepo,
			groups.WithLogger(logging.GroupsLogger(c.logs)),
		)
	}

	if c.consumptionSvc == nil {
		c.consumptionSvc = consumption.NewService(
			c.consumptionRepo,
			c.groupSvc,
			consumption.WithLogger(logging.ConsumptionLogger(c.logs)),
		)
	}
}

// Close releases resources owned by the container. Injected handles are left
// untouched.
func (c *Container) Close() error {
	if c == nil || !c.ownedDB || c.bunDB == nil {
		return nil
	}
	return c.bunDB.Close()
}

// BunDB exposes the configured database handle, nil when running in memory.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// ObjectStorage exposes the configured storage backend.
func (c *Container) ObjectStorage() interfaces.ObjectStorage {
	return c.objectStorage
}

// LoggerProvider exposes the configured logging provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.logs
}

// ComponentStore exposes the shared component tree.
func (c *Container) ComponentStore() *components.Store {
	return c.componentStore
}

// UserRepository exposes the configured user repository.
func (c *Container) UserRepository() users.Repository {
	return c.userRepo
}

// PageRepository exposes the configured page repository.
func (c *Container) PageRepository() pages.Repository {
	return c.pageRepo
}

// ImageRepository exposes the configured image repository.
func (c *Container) ImageRepository() images.Repository {
	return c.imageRepo
}

// GroupRepository exposes the configured group repository.
func (c *Container) GroupRepository() groups.Repository {
	return c.groupRepo
}

// ConsumptionRepository exposes the configured consumption repository.
func (c *Container) ConsumptionRepository() consumption.Repository {
	return c.consumptionRepo
}

// ComponentService returns the configured component service.
func (c *Container) ComponentService() components.Service {
	return c.componentSvc
}

// PageService returns the configured page service.
func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

// ImageService returns the configured image service.
func (c *Container) ImageService() images.Service {
	return c.imageSvc
}

// GroupService returns the configured group service.
func (c *Container) GroupService() groups.Service {
	return c.groupSvc
}

// ConsumptionService returns the configured consumption service.
func (c *Container) ConsumptionService() consumption.Service {
	return c.consumptionSvc
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
