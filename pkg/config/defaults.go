package config

// Gate defaults.
const (
	DefaultEnabled       = true
	DefaultCheckRelative = true
	DefaultCheckPackages = true
)

// Scan defaults.
const (
	DefaultScanWorkers     = 0
	DefaultScanMaxFileSize = "1MiB"
)

// Output defaults.
const (
	DefaultOutputFormat = "text"
	DefaultOutputFail   = true
)

// Logging defaults.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// DefaultFileName is the project configuration file looked up in the scan root.
const DefaultFileName = ".importcheck.yaml"
