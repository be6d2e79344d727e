package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests in this file modify package globals and cannot run in parallel.

func TestIsDevBuild(t *testing.T) {
	tests := map[string]struct {
		version string
		want    bool
	}{
		"dev version":     {version: "dev", want: true},
		"release version": {version: "v0.4.0", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			orig := Version
			Version = tt.version
			defer func() { Version = orig }()

			assert.Equal(t, tt.want, IsDevBuild())
		})
	}
}

func TestShortCommit(t *testing.T) {
	tests := map[string]struct {
		commit string
		want   string
	}{
		"full hash": {commit: "0123456789abcdef", want: "01234567"},
		"short":     {commit: "abc", want: "abc"},
		"unknown":   {commit: "unknown", want: "unknown"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			orig := Commit
			Commit = tt.commit
			defer func() { Commit = orig }()

			assert.Equal(t, tt.want, ShortCommit())
		})
	}
}
