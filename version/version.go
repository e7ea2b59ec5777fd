// Package version carries build information stamped in through -ldflags.
package version //nolint:revive // package name intentionally matches build-info convention

//nolint:gochecknoglobals // set at build time
var (
	Repository string
	Version    string
	Commit     string
	Date       string
)
