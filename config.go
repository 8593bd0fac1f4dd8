package press

import "github.com/goliatone/go-press/internal/runtimeconfig"

var (
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrStoreDSNRequired        = runtimeconfig.ErrStoreDSNRequired
	ErrStoreCacheRequiresStore = runtimeconfig.ErrStoreCacheRequiresStore
	ErrSyncRequiresStore       = runtimeconfig.ErrSyncRequiresStore
	ErrSchemaDirRequired       = runtimeconfig.ErrSchemaDirRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	ContentConfig  = runtimeconfig.ContentConfig
	ParserConfig   = runtimeconfig.ParserConfig
	StoreConfig    = runtimeconfig.StoreConfig
	SchemaConfig   = runtimeconfig.SchemaConfig
	Features       = runtimeconfig.Features
	CommandsConfig = runtimeconfig.CommandsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
