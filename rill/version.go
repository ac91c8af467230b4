package rill

import "github.com/lyraproj/semver/semver"

// VersionString is the version of this runtime, matched against the
// RequiresRuntime option at context construction.
const VersionString = `0.9.0`

var RuntimeVersion = semver.MustParseVersion(VersionString)
