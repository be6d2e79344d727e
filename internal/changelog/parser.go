package changelog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for changelog operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Load reads the changelog at path into a Document.
// Returns a *NotFoundError if the file does not exist.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("checking changelog file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("changelog path %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading changelog file: %w", err)
	}

	doc := Parse(string(data))
	doc.Path = path
	doc.mode = info.Mode().Perm()

	logDebug("[changelog] loaded %s (%d lines)", path, len(doc.Lines))
	return doc, nil
}

// LoadFromReader reads a changelog from an io.Reader.
// The returned Document has no path and cannot be saved until one is set.
func LoadFromReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	return Parse(string(data)), nil
}

// lineEndings turns "\r\n" and lone "\r" line breaks into "\n".
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Parse splits content into a Document without touching the filesystem.
// CRLF and CR line breaks are read as "\n", so a saved document always
// uses "\n".
func Parse(content string) *Document {
	return &Document{Lines: strings.Split(lineEndings.Replace(content), "\n")}
}

// String returns the document content, lines joined with "\n".
func (d *Document) String() string {
	return strings.Join(d.Lines, "\n")
}

// Save overwrites the file at d.Path with the document content.
// The original file mode is kept when the document was loaded from disk.
func (d *Document) Save() error {
	if d.Path == "" {
		return errors.New("saving changelog: document has no path")
	}

	mode := d.mode
	if mode == 0 {
		mode = 0o644
	}

	if err := os.WriteFile(d.Path, []byte(d.String()), mode); err != nil {
		return fmt.Errorf("writing changelog file: %w", err)
	}

	logDebug("[changelog] wrote %s (%d lines)", d.Path, len(d.Lines))
	return nil
}

// Sections returns every section of the document in order of appearance.
func (d *Document) Sections() []Section {
	var sections []Section
	var current *Section

	finish := func(end int) {
		current.End = end
		sections = append(sections, *current)
		current = nil
	}

	for i, line := range d.Lines {
		if isHeader(line) {
			if current != nil {
				finish(i)
			}
			s := parseHeader(line, i)
			current = &s
			continue
		}
		if current == nil {
			continue
		}
		if isLinkReference(line) {
			finish(i)
			continue
		}
		if strings.TrimSpace(line) != "" {
			current.Empty = false
		}
	}

	if current != nil {
		finish(len(d.Lines))
	}

	return sections
}

// ListVersions returns the label of every section header, newest first.
func (d *Document) ListVersions() []string {
	sections := d.Sections()
	versions := make([]string, len(sections))
	for i, s := range sections {
		versions[i] = s.Version
	}
	return versions
}

// HasUnreleased returns true if the document has a "## [Unreleased]" line.
func (d *Document) HasUnreleased() bool {
	for _, line := range d.Lines {
		if line == unreleasedHeader {
			return true
		}
	}
	return false
}

// LatestRelease returns the first section that is not [Unreleased].
// Returns nil if the document has no released sections.
func (d *Document) LatestRelease() *Section {
	for _, s := range d.Sections() {
		if !s.IsUnreleased() {
			return &s
		}
	}
	return nil
}

// parseHeader builds a Section from a "## [label] - date" line.
func parseHeader(line string, index int) Section {
	rest := strings.TrimPrefix(line, headerPrefix)
	s := Section{
		Version: rest,
		Line:    index + 1,
		Empty:   true,
		Start:   index,
	}

	closing := strings.Index(rest, "]")
	if closing < 0 {
		return s
	}

	s.Version = rest[:closing]
	tail := strings.TrimSpace(rest[closing+1:])
	if after, ok := strings.CutPrefix(tail, "-"); ok {
		s.Date = strings.TrimSpace(after)
	}
	return s
}

func isHeader(line string) bool {
	return strings.HasPrefix(line, headerPrefix)
}

func isLinkReference(line string) bool {
	return strings.HasPrefix(line, unreleasedLinkPrefix) || strings.HasPrefix(line, versionLinkPrefix)
}

// isSectionEnd reports whether line terminates the body of a section.
func isSectionEnd(line string) bool {
	return isHeader(line) || isLinkReference(line)
}

// matchesVersionHeader reports whether line is the header of version.
// version must already be normalized. The "v" in the header is optional and
// the version must be followed by the closing bracket, so "1.2" does not
// match "## [v1.2.0]".
func matchesVersionHeader(line, version string) bool {
	rest, ok := strings.CutPrefix(line, headerPrefix)
	if !ok {
		return false
	}
	rest = strings.TrimPrefix(rest, "v")
	return strings.HasPrefix(rest, version+"]")
}

// NormalizeVersion strips the leading "v" from a version string.
// This allows accepting both "v0.4.0" and "0.4.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimLeft(version, "v")
}

// EnsureVPrefix adds a "v" prefix to version if it has none.
func EnsureVPrefix(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
