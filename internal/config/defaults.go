package config

const (
	defaultConfigPath  = "~/.config/winlaunch/config.toml"
	defaultDataDir     = "~/.local/share/winlaunch"
	defaultBox64Prefix = "box64"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"

	dataDirEnv = "WINLAUNCH_DATA_DIR"
)

// Default returns a Config populated with repository defaults. Paths left
// empty are derived from DataDir during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Presets: Presets{
			Box64Prefix: defaultBox64Prefix,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
