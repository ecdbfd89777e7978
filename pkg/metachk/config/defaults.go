// Package config provides configuration management for the metachk
// manifest auditor.
package config

// Default configuration values for metachk.
const (
	// DefaultFormat is the report output format when none is specified.
	DefaultFormat = "plain"

	// DefaultRoot is the directory inode lookups resolve against.
	DefaultRoot = "."

	// DefaultLogLevel is the logging level when none is configured.
	DefaultLogLevel = "info"
)
