package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/chglog/internal/errors"
	"github.com/ariel-frischer/chglog/internal/health"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [changelog_path]",
	Short: "Sanity-check a changelog before a release",
	Long: `Report the conditions 'chglog update' and 'chglog extract' rely on:

  - the file has a "## [Unreleased]" header
  - an "[Unreleased]:" link holds a GitHub repository URL
  - every released section but the oldest has a link reference
  - the newest released section matches the latest git version tag
  - the link repository matches the configured git remote

Git checks are skipped outside a git repository. Exits non-zero when any
check fails.`,
	Example: `  chglog check
  chglog check docs/CHANGELOG.md --plain`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := changelogPath(args, 0)

	doc, err := loadChangelog(cmd, path)
	if err != nil {
		return changelogError(err, "", path)
	}

	report := health.RunChecks(doc, health.Options{
		Dir:       changelogDir(path),
		Remote:    cfg.Remote,
		CheckTags: cfg.CheckTags,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Checking %s\n", path)
	if err := health.FormatReport(report, cmd.OutOrStdout(), isPlain(cmd)); err != nil {
		return err
	}
	if !report.Passed {
		return clierrors.ChangelogCheckFailed(report.Failures())
	}
	return nil
}
