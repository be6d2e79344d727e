// Package changelog reads and rewrites Keep a Changelog formatted Markdown.
//
// This package implements:
//   - Loading a CHANGELOG.md into a line-oriented Document
//   - Extracting the release notes of a single version
//   - Rolling the [Unreleased] section into a dated release
//   - Listing section headers and rendering them for the terminal
//
// The document is never parsed as Markdown. Sections are found by scanning
// for "## [" header lines and the trailing "[label]: url" link references.
package changelog
