// Package version holds build metadata injected at link time.
package version

// Version is the semantic version, overridden via -ldflags at release time.
var Version = "dev"

// Commit is the git commit hash the binary was built from.
var Commit = "unknown"

// BuildDate is the UTC build timestamp.
var BuildDate = "unknown"
