package hardrt

// Version is this core's semantic version, the Go counterpart of the
// original's always-present, always-trivial hardrt_version.c accessor.
const Version = "0.1.0"

// VersionString returns the core's semantic version string.
func VersionString() string { return Version }
