// Package inkwell is a rich-text document engine for notes.
//
// Documents are schema-typed trees (package model) edited through
// transactions (package transform) that an Engine (package engine) applies
// and passes through its plugins. The heading-id and search packages are
// plugins; commands turns key presses into transactions; markup and
// snapshot store documents as HTML and msgpack.
package inkwell

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
)

// FormatVersion is the snapshot format written by this build. Snapshots with
// any other format are rejected on load.
const FormatVersion uint16 = 1

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the release version without the leading v.
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns Version in git tag form.
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v is a SemVer 2.0.0 version.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// Describe is the one-line build description printed by the CLI.
func Describe() string {
	return fmt.Sprintf("inkwell %s (snapshot format %d)", VersionTag(), FormatVersion)
}
