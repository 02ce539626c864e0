package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/xctinstall/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/xctinstall/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/xctinstall/internal/version.Date={{.Date}}
)

// Info renders the build information as printed by `xctinstall version`
func Info() string {
	return fmt.Sprintf("xctinstall version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
