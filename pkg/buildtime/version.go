// Package buildtime exposes values fixed when the binary was built.
//
// The embedded VERSION and revision files sit next to this package.
// The release process rewrites them before building.
package buildtime

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

//go:embed revision
var revision string

func init() {
	version = strings.TrimSpace(version)
	revision = strings.TrimSpace(revision)
}

// VERSION is the release version this binary was built as.
func VERSION() string {
	return version
}

// GIT_REVISION is the commit this binary was built from.
func GIT_REVISION() string {
	return revision
}

// VersionString renders version and revision for logs and the version
// subcommand.
func VersionString() string {
	return version + " (commit: " + revision + ")"
}
