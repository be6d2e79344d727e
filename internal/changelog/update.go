package changelog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the release date format used in version headers.
const DateLayout = "2006-01-02"

var (
	repoURLPattern = regexp.MustCompile(`https://github\.com/[^/]+/[^/]+`)
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// now is swapped in tests.
var now = time.Now

// Today returns the current date in DateLayout.
func Today() string {
	return now().Format(DateLayout)
}

// ValidateReleaseDate checks that date is a real calendar date in YYYY-MM-DD format.
func ValidateReleaseDate(date string) error {
	if !datePattern.MatchString(date) {
		return fmt.Errorf("invalid release date %q (expected: YYYY-MM-DD)", date)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("invalid release date %q: %w", date, err)
	}
	return nil
}

// Update loads the changelog at path, rolls [Unreleased] into newVersion and
// writes the file back. An empty releaseDate means today.
// Returns a *NotFoundError before writing anything if the file is missing.
func Update(path, newVersion, previousVersion, releaseDate string) (*UpdateResult, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	result := doc.Update(newVersion, previousVersion, releaseDate)

	if err := doc.Save(); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update rewrites the document for a release of newVersion.
//
// The first "## [Unreleased]" line is kept and followed by a blank line and
// a "## [newVersion] - releaseDate" header, so the old unreleased content now
// belongs to the new version. The first "[Unreleased]:" link holding a GitHub
// repository URL is replaced by a compare link against HEAD and a new link
// comparing previousVersion with newVersion. Each step runs at most once and
// is skipped silently when its line is absent. Both versions get a "v"
// prefix when missing.
//
// A document whose first "## [Unreleased]" line is followed, after blank
// lines, by the dated header of newVersion is left unchanged, so rerunning a
// release does not stack a second header under [Unreleased].
func (d *Document) Update(newVersion, previousVersion, releaseDate string) UpdateResult {
	result := UpdateResult{
		NewVersion:      EnsureVPrefix(newVersion),
		PreviousVersion: EnsureVPrefix(previousVersion),
		ReleaseDate:     releaseDate,
	}
	if result.ReleaseDate == "" {
		result.ReleaseDate = Today()
	}

	if d.releasedUnderUnreleased(result.NewVersion) {
		logDebug("[changelog] update: %s is already released below [%s], nothing to do",
			result.NewVersion, UnreleasedLabel)
		result.AlreadyReleased = true
		return result
	}

	out := make([]string, 0, len(d.Lines)+3)

	for _, line := range d.Lines {
		if !result.HeaderRewritten && line == unreleasedHeader {
			out = append(out,
				unreleasedHeader,
				"",
				VersionHeader(result.NewVersion, result.ReleaseDate),
			)
			result.HeaderRewritten = true
			continue
		}

		if !result.LinksRewritten && strings.HasPrefix(line, unreleasedLinkPrefix) {
			if repoURL := RepoURL(line); repoURL != "" {
				out = append(out,
					UnreleasedLink(repoURL, result.NewVersion),
					CompareLink(repoURL, result.PreviousVersion, result.NewVersion),
				)
				result.RepoURL = repoURL
				result.LinksRewritten = true
				continue
			}
			logDebug("[changelog] update: no GitHub URL in %q, left unchanged", line)
		}

		out = append(out, line)
	}

	logDebug("[changelog] update: header rewritten=%v, links rewritten=%v",
		result.HeaderRewritten, result.LinksRewritten)

	d.Lines = out
	return result
}

// releasedUnderUnreleased reports whether the first non-blank line after the
// first "## [Unreleased]" line is a "## [version] - " header.
func (d *Document) releasedUnderUnreleased(version string) bool {
	prefix := VersionHeader(version, "")
	for i, line := range d.Lines {
		if line != unreleasedHeader {
			continue
		}
		for _, next := range d.Lines[i+1:] {
			if strings.TrimSpace(next) != "" {
				return strings.HasPrefix(next, prefix)
			}
		}
		return false
	}
	return false
}

// RepoURL returns the first "https://github.com/<owner>/<repo>" in s.
func RepoURL(s string) string {
	return repoURLPattern.FindString(s)
}

// VersionHeader formats a released section header.
func VersionHeader(version, date string) string {
	return fmt.Sprintf("## [%s] - %s", version, date)
}

// UnreleasedLink formats the [Unreleased] comparison link against HEAD.
func UnreleasedLink(repoURL, latest string) string {
	return fmt.Sprintf("[%s]: %s/compare/%s...HEAD", UnreleasedLabel, repoURL, latest)
}

// CompareLink formats the comparison link of version against previous.
func CompareLink(repoURL, previous, version string) string {
	return fmt.Sprintf("[%s]: %s/compare/%s...%s", version, repoURL, previous, version)
}
