// Package health provides the changelog sanity checks behind 'chglog check'.
// Each check inspects the document, and optionally the surrounding git
// repository, and returns a structured result for the report.
package health

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/chglog/internal/changelog"
	"github.com/ariel-frischer/chglog/internal/git"
	"github.com/fatih/color"
)

// Status is the outcome of a single check.
type Status int

const (
	Passed Status = iota
	Failed
	Skipped
)

// CheckResult represents the result of a single check
type CheckResult struct {
	Name    string
	Status  Status
	Message string
}

// Report contains all check results
type Report struct {
	Checks []CheckResult
	Passed bool
}

// Failures returns the number of failed checks.
func (r *Report) Failures() int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == Failed {
			n++
		}
	}
	return n
}

// Options carries the settings the checks depend on.
type Options struct {
	// Dir is where the git repository is looked up.
	Dir string
	// Remote names the git remote compared with the comparison links.
	Remote string
	// CheckTags enables the latest tag comparison.
	CheckTags bool
}

func pass(name string) CheckResult { return CheckResult{Name: name, Status: Passed} }

func fail(name, format string, args ...any) CheckResult {
	return CheckResult{Name: name, Status: Failed, Message: fmt.Sprintf(format, args...)}
}

func skip(name, format string, args ...any) CheckResult {
	return CheckResult{Name: name, Status: Skipped, Message: fmt.Sprintf(format, args...)}
}

// RunChecks runs every check against doc. Git checks are skipped when
// opts.Dir is not inside a git repository.
func RunChecks(doc *changelog.Document, opts Options) *Report {
	repoURL := doc.UnreleasedRepoURL()
	report := &Report{
		Checks: []CheckResult{
			CheckUnreleasedHeader(doc),
			CheckUnreleasedLink(repoURL),
			CheckReleaseLinks(doc),
		},
	}

	if git.IsGitRepository(opts.Dir) {
		report.Checks = append(report.Checks,
			CheckLatestTag(doc, opts),
			CheckRemote(repoURL, opts),
		)
	} else {
		report.Checks = append(report.Checks,
			skip(latestTagCheck, "not a git repository"),
			skip(remoteCheckName(opts.Remote), "not a git repository"),
		)
	}

	report.Passed = report.Failures() == 0
	return report
}

const latestTagCheck = "latest release is tagged"

func remoteCheckName(remote string) string {
	return fmt.Sprintf("links match remote %s", remote)
}

// CheckUnreleasedHeader verifies the "## [Unreleased]" line update rewrites.
func CheckUnreleasedHeader(doc *changelog.Document) CheckResult {
	const name = "[Unreleased] header present"
	if doc.HasUnreleased() {
		return pass(name)
	}
	return fail(name, "no \"## [Unreleased]\" line; update would not add a release header")
}

// CheckUnreleasedLink verifies that an "[Unreleased]:" link holds a GitHub URL.
func CheckUnreleasedLink(repoURL string) CheckResult {
	const name = "[Unreleased] link present"
	if repoURL != "" {
		return pass(name)
	}
	return fail(name, "no \"[Unreleased]:\" line with a GitHub URL; update would not rewrite links")
}

// CheckReleaseLinks verifies that every released section but the oldest has
// a link reference.
func CheckReleaseLinks(doc *changelog.Document) CheckResult {
	const name = "release links present"

	var released []string
	for _, s := range doc.Sections() {
		if !s.IsUnreleased() {
			released = append(released, s.Version)
		}
	}
	if len(released) < 2 {
		return pass(name)
	}

	linked := doc.LinkedVersions()
	var missing []string
	for _, v := range released[:len(released)-1] {
		if !linked[v] {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return fail(name, "no link reference for %s", strings.Join(missing, ", "))
	}
	return pass(name)
}

// CheckLatestTag compares the newest released section with the highest version tag.
func CheckLatestTag(doc *changelog.Document, opts Options) CheckResult {
	if !opts.CheckTags {
		return skip(latestTagCheck, "disabled by check_tags")
	}

	tag, err := git.LatestTag(opts.Dir)
	if err != nil {
		return fail(latestTagCheck, "%v", err)
	}
	if tag == "" {
		return skip(latestTagCheck, "no version tags")
	}

	latest := doc.LatestRelease()
	if latest == nil {
		return fail(latestTagCheck, "latest tag is %s but the changelog has no released section", tag)
	}
	if changelog.NormalizeVersion(latest.Version) != changelog.NormalizeVersion(tag) {
		return fail(latestTagCheck, "newest section is %s, latest tag is %s", latest.Version, tag)
	}
	return pass(latestTagCheck)
}

// CheckRemote compares the repository of the comparison links with the configured remote.
func CheckRemote(repoURL string, opts Options) CheckResult {
	name := remoteCheckName(opts.Remote)
	if repoURL == "" {
		return skip(name, "no [Unreleased] link")
	}

	remoteURL, err := git.RemoteURL(opts.Dir, opts.Remote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return skip(name, "remote not configured")
		}
		return fail(name, "%v", err)
	}

	remoteRepo, ok := git.GitHubRepoURL(remoteURL)
	if !ok {
		return skip(name, "remote %s is not on GitHub", remoteURL)
	}
	if !strings.EqualFold(remoteRepo, repoURL) {
		return fail(name, "links point to %s, remote is %s", repoURL, remoteRepo)
	}
	return pass(name)
}

// FormatReport writes one line per check.
func FormatReport(report *Report, w io.Writer, plain bool) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	if plain {
		green, red, dim = fmt.Sprint, fmt.Sprint, fmt.Sprint
	}

	var b strings.Builder
	for _, c := range report.Checks {
		switch c.Status {
		case Passed:
			fmt.Fprintf(&b, "  %s %s\n", green("✓"), c.Name)
		case Failed:
			fmt.Fprintf(&b, "  %s %s: %s\n", red("✗"), c.Name, c.Message)
		case Skipped:
			fmt.Fprintf(&b, "  %s\n", dim(fmt.Sprintf("- %s (skipped: %s)", c.Name, c.Message)))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
