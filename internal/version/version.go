// Package version exposes the build version of promstatic.
package version

// version is overridden at build time via
// -ldflags "-X github.com/neox5/promstatic/internal/version.version=v1.2.3".
var version = "dev"

// String returns the build version.
func String() string {
	return version
}
