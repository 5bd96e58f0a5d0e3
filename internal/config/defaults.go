package config

const (
	defaultStateDir           = "~/.local/state/qrpayload"
	defaultMaxDepth           = 1
	defaultTryHarder          = true
	defaultOutputFileModeText = "0644"
	defaultOutputFileMode     = 0o644
	defaultLockTimeoutSeconds = 10
	defaultHistoryEnabled     = true
	defaultHistoryRetention   = 500
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Decode: Decode{
			MaxDepth:  defaultMaxDepth,
			TryHarder: defaultTryHarder,
		},
		Output: Output{
			FileMode:           defaultOutputFileModeText,
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
		},
		History: History{
			Enabled:   defaultHistoryEnabled,
			Retention: defaultHistoryRetention,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
