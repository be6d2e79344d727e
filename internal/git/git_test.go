package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSignature = &object.Signature{
	Name:  "Test",
	Email: "test@example.com",
	When:  time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC),
}

// initRepo creates a repository with a single commit and returns its directory.
func initRepo(t *testing.T) (string, *git.Repository, plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte("# Changelog\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("CHANGELOG.md")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{Author: testSignature})
	require.NoError(t, err)

	return dir, repo, hash
}

func TestIsGitRepository(t *testing.T) {
	t.Parallel()

	dir, _, _ := initRepo(t)
	sub := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	assert.True(t, IsGitRepository(dir))
	assert.True(t, IsGitRepository(sub), "detects the repository from a subdirectory")
	assert.False(t, IsGitRepository(t.TempDir()))
}

func TestGetRepositoryRoot(t *testing.T) {
	t.Parallel()

	dir, _, _ := initRepo(t)
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := GetRepositoryRoot(sub)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = GetRepositoryRoot(t.TempDir())
	assert.Error(t, err)
}

func TestRemoteURL(t *testing.T) {
	t.Parallel()

	dir, repo, _ := initRepo(t)
	_, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:acme/widgets.git"},
	})
	require.NoError(t, err)

	url, err := RemoteURL(dir, "origin")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/widgets.git", url)

	_, err = RemoteURL(dir, "upstream")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteNotFound)
}

func TestGitHubRepoURL(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input  string
		want   string
		wantOK bool
	}{
		"scp-like ssh":       {input: "git@github.com:acme/widgets.git", want: "https://github.com/acme/widgets", wantOK: true},
		"ssh scheme":         {input: "ssh://git@github.com/acme/widgets.git", want: "https://github.com/acme/widgets", wantOK: true},
		"git+ssh scheme":     {input: "git+ssh://git@github.com/acme/widgets", want: "https://github.com/acme/widgets", wantOK: true},
		"https with suffix":  {input: "https://github.com/acme/widgets.git", want: "https://github.com/acme/widgets", wantOK: true},
		"https trailing":     {input: "https://github.com/acme/widgets/", want: "https://github.com/acme/widgets", wantOK: true},
		"http":               {input: "http://github.com/acme/widgets", want: "https://github.com/acme/widgets", wantOK: true},
		"surrounding spaces": {input: "  https://github.com/acme/widgets\n", want: "https://github.com/acme/widgets", wantOK: true},
		"gitlab":             {input: "git@gitlab.com:acme/widgets.git", wantOK: false},
		"missing repo":       {input: "https://github.com/acme", wantOK: false},
		"nested path":        {input: "https://github.com/acme/widgets/extra", wantOK: false},
		"empty":              {input: "", wantOK: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := GitHubRepoURL(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionTags(t *testing.T) {
	t.Parallel()

	dir, repo, hash := initRepo(t)
	for _, name := range []string{"v0.2.0", "0.10.0", "v0.9.1", "nightly", "v1.0.0-rc.1"} {
		_, err := repo.CreateTag(name, hash, nil)
		require.NoError(t, err)
	}
	_, err := repo.CreateTag("v1.0.0", hash, &git.CreateTagOptions{
		Tagger:  testSignature,
		Message: "release v1.0.0",
	})
	require.NoError(t, err)

	tags, err := VersionTags(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0.0", "v1.0.0-rc.1", "0.10.0", "v0.9.1", "v0.2.0"}, tags)

	latest, err := LatestTag(dir)
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", latest)
}

func TestLatestTagWithoutTags(t *testing.T) {
	t.Parallel()

	dir, _, _ := initRepo(t)

	latest, err := LatestTag(dir)
	require.NoError(t, err)
	assert.Empty(t, latest)

	_, err = LatestTag(t.TempDir())
	assert.Error(t, err)
}

func TestDebugLogger(t *testing.T) {
	var messages []string
	SetDebugLogger(func(format string, args ...any) {
		messages = append(messages, format)
	})
	defer SetDebugLogger(nil)

	IsGitRepository(t.TempDir())
	assert.NotEmpty(t, messages)
}
