package version

// Overridden at build time via -ldflags
var (
	Version = "0.4.1"
	Date    = "unknown"
)
