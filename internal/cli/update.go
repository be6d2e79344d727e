package cli

import (
	"fmt"

	"github.com/ariel-frischer/chglog/internal/changelog"
	clierrors "github.com/ariel-frischer/chglog/internal/errors"
	"github.com/spf13/cobra"
)

var (
	updateDate   string
	updateDryRun bool
)

var updateCmd = &cobra.Command{
	Use:   "update <new_version> <prev_version> [changelog_path]",
	Short: "Roll [Unreleased] into a dated release",
	Long: `Turn the [Unreleased] section into a release of new_version.

A fresh, empty [Unreleased] header is kept at the top and the existing
unreleased entries move under "## [new_version] - <date>". The GitHub
comparison links are rewritten so [Unreleased] compares new_version with
HEAD and a new link compares prev_version with new_version.

Steps whose lines are missing are skipped, so running the command twice does
not add a second release header. Versions get a "v" prefix when missing.`,
	Example: `  # Release v0.4.0 dated today
  chglog update v0.4.0 v0.3.0

  # Release with an explicit date
  chglog update 0.4.0 0.3.0 --date 2025-10-16

  # Show what would change
  chglog update v0.4.0 v0.3.0 --dry-run`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return clierrors.MissingUpdateVersions()
		}
		return cobra.RangeArgs(2, 3)(cmd, args)
	},
	RunE: runUpdate,
}

func init() {
	updateCmd.GroupID = GroupChangelog
	updateCmd.Flags().StringVar(&updateDate, "date", "", "Release date as YYYY-MM-DD (default: today)")
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "Print a diff instead of writing the file")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	newVersion, previousVersion := args[0], args[1]
	path := changelogPath(args, 2)

	if updateDate != "" {
		if err := changelog.ValidateReleaseDate(updateDate); err != nil {
			return clierrors.InvalidReleaseDate(updateDate)
		}
	}

	opts := changelog.FormatOptions{Plain: isPlain(cmd)}

	if updateDryRun {
		return previewUpdate(cmd, path, newVersion, previousVersion, opts)
	}

	result, err := changelog.Update(path, newVersion, previousVersion, updateDate)
	if err != nil {
		return changelogError(err, newVersion, path)
	}
	return changelog.FormatUpdateSummary(result, path, cmd.OutOrStdout(), opts)
}

// previewUpdate prints the diff an update would make without saving it.
func previewUpdate(cmd *cobra.Command, path, newVersion, previousVersion string, opts changelog.FormatOptions) error {
	doc, err := changelog.Load(path)
	if err != nil {
		return changelogError(err, newVersion, path)
	}

	before := doc.String()
	result := doc.Update(newVersion, previousVersion, updateDate)
	lines := changelog.Diff(before, doc.String())

	out := cmd.OutOrStdout()
	if !changelog.HasChanges(lines) {
		fmt.Fprintf(out, "No changes to %s\n", path)
		return nil
	}

	fmt.Fprintf(out, "--- %s\n+++ %s (%s)\n", path, path, result.NewVersion)
	if err := changelog.FormatDiff(lines, out, opts); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Dry run: file not written")
	return nil
}
