package config

const (
	defaultDataDir    = "~/.local/share/lettermgt"
	defaultStorageDir = "~/.local/share/lettermgt/storage"
	defaultLogDir     = "~/.local/share/lettermgt/logs"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			StorageDir: defaultStorageDir,
			LogDir:     defaultLogDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
