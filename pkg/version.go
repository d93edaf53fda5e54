// Package tapadyen holds build information for the tapadyen CLI.
package tapadyen

var (
	// Version of tapadyen, set by build flags.
	Version = "v0.1.0"

	// Build timestamp, set by build flags.
	Build = "n/a"
)
