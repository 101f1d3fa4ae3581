// Package build holds build-time information of the labgen binary.
package build

// Version is reported by `labgen version` and `labgen --version`.
// It defaults to "dev" and is set with -ldflags "-X go.trai.ch/labgen/internal/build.Version=...".
var Version = "dev"
