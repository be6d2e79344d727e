package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	// ErrNotFound matches any error reporting a missing changelog file.
	ErrNotFound = errors.New("changelog not found")

	// ErrVersionUnresolvable matches any error reporting that neither the
	// requested version nor a non-empty [Unreleased] section exists.
	ErrVersionUnresolvable = errors.New("version not found and Unreleased is empty")
)

// NotFoundError is returned when the changelog file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("changelog not found: %s", e.Path)
}

// Is makes errors.Is match both ErrNotFound and fs.ErrNotExist.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == fs.ErrNotExist
}

// VersionUnresolvableError is returned when a requested version is absent
// and the [Unreleased] fallback is missing or holds only blank lines.
type VersionUnresolvableError struct {
	Version string
	Path    string
}

func (e *VersionUnresolvableError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("version %s not found and [Unreleased] section is empty or missing", e.Version)
	}
	return fmt.Sprintf("version %s not found in %s and [Unreleased] section is empty or missing",
		e.Version, e.Path)
}

// Is makes errors.Is match ErrVersionUnresolvable.
func (e *VersionUnresolvableError) Is(target error) bool {
	return target == ErrVersionUnresolvable
}

// IsNotFound returns true if err reports a missing changelog file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsVersionUnresolvable returns true if err reports an unresolvable version.
func IsVersionUnresolvable(err error) bool {
	return errors.Is(err, ErrVersionUnresolvable)
}

// Extract loads the changelog at path and returns the body of version.
// See Document.Extract for the lookup rules.
func Extract(path, version string) (string, error) {
	doc, err := Load(path)
	if err != nil {
		return "", err
	}
	return doc.Extract(version)
}

// Extract returns the body of the section for version, without its header.
// Accepts both "v0.4.0" and "0.4.0". If no header matches, the body of the
// [Unreleased] section is returned instead; an exact match always wins, even
// with an empty body. Trailing blank lines are stripped.
func (d *Document) Extract(version string) (string, error) {
	normalized := NormalizeVersion(version)

	body, found := d.collect(func(line string) bool {
		return matchesVersionHeader(line, normalized)
	})
	if found {
		logDebug("[changelog] extract: found section for %s", version)
		return joinBody(body), nil
	}

	logDebug("[changelog] extract: %s not found, falling back to [%s]", version, UnreleasedLabel)
	body, found = d.collect(func(line string) bool {
		return line == unreleasedHeader
	})
	if !found || isBlank(body) {
		return "", &VersionUnresolvableError{Version: version, Path: d.Path}
	}

	return joinBody(body), nil
}

// collect finds the first line accepted by isTarget and returns the lines
// after it up to the next header or link reference.
func (d *Document) collect(isTarget func(string) bool) ([]string, bool) {
	start := -1
	for i, line := range d.Lines {
		if isTarget(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, false
	}

	end := len(d.Lines)
	for i := start + 1; i < len(d.Lines); i++ {
		if isSectionEnd(d.Lines[i]) {
			end = i
			break
		}
	}

	return d.Lines[start+1 : end], true
}

// joinBody drops trailing blank lines and joins the rest.
func joinBody(lines []string) string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[:end], "\n")
}

func isBlank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}
