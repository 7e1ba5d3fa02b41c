// Package version exposes the build version of the vprop tool itself.
package version

// current is overridable at build time via
// -ldflags "-X github.com/indaco/vprop/internal/version.current=x.y.z".
var current = "0.1.0"

// GetVersion returns the tool's build version.
func GetVersion() string {
	return current
}
