// Package util holds build metadata stamped in at link time.
package util

import "os"

// FileMode is the default mode for files chrono creates
const FileMode os.FileMode = 0644

var (
	// Version is the version number or commit hash
	Version = "0.0.0-unknown"
	// CommitHash is the commit this version was built on
	CommitHash = "Unknown"
	// CompileDate is the date this binary was compiled on
	CompileDate = "Unknown"
	// Debug logging, set to "ON" by the -debug flag
	Debug = "OFF"
)
