package changelog

import "strings"

// UnreleasedRepoURL returns the repository URL of the first "[Unreleased]:"
// link that holds one, the same link Update rewrites. Empty if none.
func (d *Document) UnreleasedRepoURL() string {
	for _, line := range d.Lines {
		if !strings.HasPrefix(line, unreleasedLinkPrefix) {
			continue
		}
		if repoURL := RepoURL(line); repoURL != "" {
			return repoURL
		}
	}
	return ""
}

// LinkedVersions returns the labels that have a link reference definition,
// such as "Unreleased" for "[Unreleased]: ...", "v0.3.0" for "[v0.3.0]: ..."
// and "0.2.0" for "[0.2.0]: ...".
func (d *Document) LinkedVersions() map[string]bool {
	linked := make(map[string]bool)
	for _, line := range d.Lines {
		rest, ok := strings.CutPrefix(line, "[")
		if !ok {
			continue
		}
		label, _, ok := strings.Cut(rest, "]:")
		if ok && label != "" && !strings.Contains(label, "]") {
			linked[label] = true
		}
	}
	return linked
}
