package cli

import (
	"fmt"

	"github.com/ariel-frischer/chglog/internal/changelog"
	clierrors "github.com/ariel-frischer/chglog/internal/errors"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <version> [changelog_path]",
	Short: "Print the release notes of a version",
	Long: `Print the body of a version section to stdout, without its header.

The version may be given with or without the "v" prefix. When the changelog
has no section for the version, the [Unreleased] section is printed instead,
so release pipelines can extract notes before the changelog is rolled.

The changelog is read from stdin when the path is "-".

The command fails when the file is missing, or when the version is absent and
[Unreleased] is missing or empty.`,
	Example: `  # Notes for v0.4.0
  chglog extract v0.4.0

  # Same, from another file
  chglog extract 0.4.0 docs/CHANGELOG.md

  # Write GitHub release notes
  chglog extract "$TAG" > release-notes.md

  # Read the changelog from another branch
  git show main:CHANGELOG.md | chglog extract v0.4.0 -`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return clierrors.MissingVersion()
		}
		return cobra.RangeArgs(1, 2)(cmd, args)
	},
	RunE: runExtract,
}

func init() {
	extractCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	version := args[0]
	path := changelogPath(args, 1)

	doc, err := loadChangelog(cmd, path)
	if err != nil {
		return changelogError(err, version, path)
	}

	body, err := doc.Extract(version)
	if err != nil {
		if changelog.IsVersionUnresolvable(err) {
			return clierrors.VersionUnresolvable(version, err, doc.ListVersions()...)
		}
		return changelogError(err, version, path)
	}

	fmt.Fprintln(cmd.OutOrStdout(), body)
	return nil
}

// changelogError maps changelog package errors to CLI errors.
func changelogError(err error, version, path string) error {
	switch {
	case changelog.IsNotFound(err):
		return clierrors.ChangelogNotFound(path, err)
	case changelog.IsVersionUnresolvable(err):
		return clierrors.VersionUnresolvable(version, err)
	default:
		return clierrors.WrapWithMessage(err, clierrors.Runtime, fmt.Sprintf("reading %s", path))
	}
}
