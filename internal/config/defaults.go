package config

const (
	defaultWatchedFolder   = "~/Downloads"
	defaultOrganizedFolder = "~/Organized"
	defaultDataDir         = "~/.local/share/fileninja"
	defaultLogDir          = "~/.local/share/fileninja/logs"
	defaultAPIBind         = "127.0.0.1:8675"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultDelaySeconds    = 2
	defaultMaxFileSizeMB   = 1000
)

func defaultIgnorePatterns() []string {
	return []string{
		"*.tmp",
		"*.temp",
		"*.part",
		"*.crdownload",
		".DS_Store",
		"Thumbs.db",
		"*.lock",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		WatchedFolders:  []string{defaultWatchedFolder},
		OrganizedFolder: defaultOrganizedFolder,
		AutoOrganize:    true,
		DelaySeconds:    defaultDelaySeconds,
		MaxFileSizeMB:   defaultMaxFileSizeMB,
		IgnorePatterns:  defaultIgnorePatterns(),
		DataDir:         defaultDataDir,
		LogDir:          defaultLogDir,
		APIBind:         defaultAPIBind,
		LogLevel:        defaultLogLevel,
		LogFormat:       defaultLogFormat,
	}
}
