package version

// Version is the current version of argo-trend.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-trend/internal/version.Version=0.2.0"
// The value "main" marks a development build.
var Version = "v0.1.0"

// GetVersion returns the current version of the binary.
func GetVersion() string {
	return Version
}
