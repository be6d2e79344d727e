// Package git provides the read-only repository queries chglog needs: the
// repository root, remote URLs normalized to GitHub form, and version tags.
// It uses go-git so no git CLI installation is required.
package git

import (
	stderrors "errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"golang.org/x/mod/semver"
)

// ErrRemoteNotFound is returned when the requested remote is not configured.
var ErrRemoteNotFound = stderrors.New("remote not found")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the repository containing path, walking up the directory
// tree to find it. If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// GetRepositoryRoot returns the absolute path to the root of the repository containing dir.
func GetRepositoryRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] GetRepositoryRoot: %s", root)
	return root, nil
}

// IsGitRepository checks if dir is within a git repository.
func IsGitRepository(dir string) bool {
	_, err := openRepo(dir)
	result := err == nil
	logDebug("[git] IsGitRepository(%s): %v", dir, result)
	return result
}

// RemoteURL returns the first configured URL of the named remote.
func RemoteURL(dir, name string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(name)
	if err != nil {
		if stderrors.Is(err, git.ErrRemoteNotFound) {
			return "", fmt.Errorf("%w: %s", ErrRemoteNotFound, name)
		}
		return "", fmt.Errorf("reading remote %s: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	logDebug("[git] RemoteURL(%s): %s", name, urls[0])
	return urls[0], nil
}

// GitHubRepoURL converts a GitHub remote URL in any of its common forms to
// "https://github.com/<owner>/<repo>". The second result is false for
// remotes that are not hosted on GitHub.
func GitHubRepoURL(remoteURL string) (string, bool) {
	path, ok := githubPath(strings.TrimSpace(remoteURL))
	if !ok {
		return "", false
	}

	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")
	owner, repo, ok := strings.Cut(path, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", false
	}
	return "https://github.com/" + owner + "/" + repo, true
}

// githubPath returns the "<owner>/<repo>" part of a GitHub remote URL.
func githubPath(remoteURL string) (string, bool) {
	if isSSHURL(remoteURL) {
		rest := remoteURL
		for _, scheme := range []string{"ssh://", "git+ssh://"} {
			rest = strings.TrimPrefix(rest, scheme)
		}
		_, hostPath, ok := strings.Cut(rest, "@")
		if !ok {
			hostPath = rest
		}
		if after, ok := strings.CutPrefix(hostPath, "github.com:"); ok {
			return after, true
		}
		if after, ok := strings.CutPrefix(hostPath, "github.com/"); ok {
			return after, true
		}
		return "", false
	}

	for _, prefix := range []string{"https://github.com/", "http://github.com/", "git://github.com/"} {
		if after, ok := strings.CutPrefix(remoteURL, prefix); ok {
			return after, true
		}
	}
	return "", false
}

// isSSHURL checks if a URL is an SSH URL.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}

// VersionTags returns the tags that look like semantic versions, newest first.
// Both "v1.2.3" and "1.2.3" tags are recognized.
func VersionTags(dir string) ([]string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if semver.IsValid(canonicalTag(name)) {
			tags = append(tags, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.SliceStable(tags, func(i, j int) bool {
		if c := semver.Compare(canonicalTag(tags[i]), canonicalTag(tags[j])); c != 0 {
			return c > 0
		}
		return tags[i] < tags[j]
	})
	logDebug("[git] VersionTags: %d found", len(tags))
	return tags, nil
}

// LatestTag returns the highest version tag, or "" when the repository has none.
func LatestTag(dir string) (string, error) {
	tags, err := VersionTags(dir)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", nil
	}
	return tags[0], nil
}

func canonicalTag(tag string) string {
	if strings.HasPrefix(tag, "v") {
		return tag
	}
	return "v" + tag
}
