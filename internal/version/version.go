package version

// Version is the current jh release. It is overridden at build time with
// -ldflags "-X github.com/thomas-vilte/jh/internal/version.Version=...".
var Version = "0.3.0"

// FullVersion returns the version with the v prefix.
func FullVersion() string {
	return "v" + Version
}
