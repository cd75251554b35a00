package shared

import (
	"github.com/spf13/pflag"
)

// HasFlags reports whether any flag was explicitly set on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	has := false
	flags.Visit(func(*pflag.Flag) {
		has = true
	})
	return has
}

// Versions holds the build-time version information stamped into the binary.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}
