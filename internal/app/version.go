package app

import "fmt"

// Name is the tool name reported in logs and manifests.
const Name = "revdict"

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/revdict/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs and manifests.
func BuildVersion() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", Name, Version, Commit, BuildTime)
}
