package pagebuilder

import "github.com/monospace/pagebuilder/internal/runtimeconfig"

var (
	ErrDatabaseDriverUnknown  = runtimeconfig.ErrDatabaseDriverUnknown
	ErrDatabaseDSNRequired    = runtimeconfig.ErrDatabaseDSNRequired
	ErrStorageProviderUnknown = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageBucketRequired  = runtimeconfig.ErrStorageBucketRequired
	ErrStorageBaseURLRequired = runtimeconfig.ErrStorageBaseURLRequired
	ErrStorageRootRequired    = runtimeconfig.ErrStorageRootRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrUploadLimitInvalid     = runtimeconfig.ErrUploadLimitInvalid
)

type (
	Config         = runtimeconfig.Config
	DatabaseConfig = runtimeconfig.DatabaseConfig
	StorageConfig  = runtimeconfig.StorageConfig
	ImagesConfig   = runtimeconfig.ImagesConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
