package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd(t *testing.T) {
	tests := map[string]struct {
		content    string
		args       []string
		wantStdout string
		wantStderr string
		wantErr    bool
	}{
		"v-prefixed version": {
			content:    testChangelog,
			args:       []string{"extract", "v0.3.0"},
			wantStdout: "\n### Added\n- Feature X\n",
		},
		"bare version": {
			content:    testChangelog,
			args:       []string{"extract", "0.3.0"},
			wantStdout: "\n### Added\n- Feature X\n",
		},
		"falls back to unreleased": {
			content:    testChangelog,
			args:       []string{"extract", "v0.4.0"},
			wantStdout: "\n### Added\n- Feature A\n",
		},
		"crlf line endings": {
			content:    strings.ReplaceAll(testChangelog, "\n", "\r\n"),
			args:       []string{"extract", "v0.4.0"},
			wantStdout: "\n### Added\n- Feature A\n",
		},
		"unresolvable version": {
			content:    "# Changelog\n\n## [Unreleased]\n\n## [v0.3.0] - 2025-10-03\n- X\n",
			args:       []string{"extract", "v9.9.9"},
			wantStderr: "Error: version v9.9.9 not found in CHANGELOG.md and [Unreleased] section is empty or missing\n",
			wantErr:    true,
		},
		"missing file": {
			args:       []string{"extract", "v0.3.0"},
			wantStderr: "Error: changelog not found: CHANGELOG.md\n",
			wantErr:    true,
		},
		"missing version": {
			content:    testChangelog,
			args:       []string{"extract"},
			wantStderr: "Error: version required\n",
			wantErr:    true,
		},
		"too many arguments": {
			content: testChangelog,
			args:    []string{"extract", "v0.3.0", "CHANGELOG.md", "extra"},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := setupWorkDir(t)
			if tt.content != "" {
				writeTestChangelog(t, dir, tt.content)
			}

			stdout, stderr, err := executeCommand(t, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ExitFailure, ExitCode(err))
				assert.Empty(t, stdout)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantStdout, stdout)
			if tt.wantStderr != "" {
				assert.Equal(t, tt.wantStderr, stderr)
			}
		})
	}
}

func TestExtractCmdExplicitPath(t *testing.T) {
	setupWorkDir(t)
	dir := t.TempDir()
	path := writeTestChangelog(t, dir, testChangelog)

	stdout, _, err := executeCommand(t, "extract", "v0.2.0", path)
	require.NoError(t, err)
	assert.Equal(t, "\n### Added\n- Feature W\n", stdout)

	_, stderr, err := executeCommand(t, "extract", "v0.2.0", filepath.Join(dir, "missing.md"))
	require.Error(t, err)
	assert.Contains(t, stderr, "changelog not found: "+filepath.Join(dir, "missing.md"))
}

func TestExtractCmdStdin(t *testing.T) {
	setupWorkDir(t)
	rootCmd.SetIn(strings.NewReader(strings.ReplaceAll(testChangelog, "\n", "\r\n")))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	stdout, _, err := executeCommand(t, "extract", "0.2.0", "-")
	require.NoError(t, err)
	assert.Equal(t, "\n### Added\n- Feature W\n", stdout)
}

func TestExtractCmdListsAvailableSections(t *testing.T) {
	dir := setupWorkDir(t)
	writeTestChangelog(t, dir, "# Changelog\n\n## [Unreleased]\n\n## [v0.3.0] - 2025-10-03\n- X\n")

	_, stderr, err := executeCommand(t, "extract", "v9.9.9", "--verbose")
	require.Error(t, err)
	assert.Contains(t, stderr, "version v9.9.9 not found in CHANGELOG.md")
	assert.Contains(t, stderr, "Available sections: Unreleased, v0.3.0")
}
