package changelog

import "io/fs"

const (
	// UnreleasedLabel is the label of the section collecting unreleased changes.
	UnreleasedLabel = "Unreleased"

	unreleasedHeader     = "## [" + UnreleasedLabel + "]"
	headerPrefix         = "## ["
	unreleasedLinkPrefix = "[" + UnreleasedLabel + "]:"
	versionLinkPrefix    = "[v"
)

// Document is a changelog held in memory as its raw lines.
// Lines are split on "\n" (CRLF is read as "\n") and joined back with "\n",
// so untouched lines (including a trailing empty line for a final newline)
// survive a rewrite.
type Document struct {
	Path  string
	Lines []string

	mode fs.FileMode
}

// Section is a transient view over one header and the lines of its body.
// Start is the index of the header line, End is exclusive and points at the
// next header, the first link reference, or the end of the document.
type Section struct {
	Version string `yaml:"version" json:"version"`
	Date    string `yaml:"date,omitempty" json:"date,omitempty"`
	Line    int    `yaml:"line" json:"line"`
	Empty   bool   `yaml:"empty" json:"empty"`

	Start int `yaml:"-" json:"-"`
	End   int `yaml:"-" json:"-"`
}

// IsUnreleased returns true if this is the [Unreleased] section.
func (s Section) IsUnreleased() bool {
	return s.Version == UnreleasedLabel
}

// UpdateResult describes what an Update changed.
type UpdateResult struct {
	NewVersion      string
	PreviousVersion string
	ReleaseDate     string
	// RepoURL is the repository base URL found in the [Unreleased] link.
	RepoURL string

	HeaderRewritten bool
	LinksRewritten  bool
	// AlreadyReleased is set when NewVersion had a section before the update.
	AlreadyReleased bool
}

// Changed returns true if at least one transformation was applied.
func (r UpdateResult) Changed() bool {
	return r.HeaderRewritten || r.LinksRewritten
}
