package version

import "fmt"

// Injected at build time via -ldflags "-X github.com/philipparndt/gopose/version.Version=..."
var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = ""
)

// String returns the version line shown by the CLI. Development builds
// without injected metadata report just "dev".
func String() string {
	if GitCommit == "" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
