package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// These are overridden at build time with -ldflags.
var (
	BuildDate    = "unknown"
	BuildVersion = "0.0.0"
	Commit       = "unknown"
)

// BaseVersion returns "vMAJOR.MINOR" of BuildVersion or "unknown"
// if BuildVersion is not a semantic version.
func BaseVersion() string {
	v, err := semver.NewVersion(BuildVersion)
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("v%d.%d", v.Major(), v.Minor())
}

// Long is used by the --version flag.
func Long() string {
	return fmt.Sprintf("%s (%s) on %s", BuildVersion, Commit, BuildDate)
}
