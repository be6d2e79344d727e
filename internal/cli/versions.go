package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/ariel-frischer/chglog/internal/changelog"
	clierrors "github.com/ariel-frischer/chglog/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var versionsFormat string

var outputFormats = []string{"text", "yaml", "json"}

var versionsCmd = &cobra.Command{
	Use:     "versions [changelog_path]",
	Aliases: []string{"ls"},
	Short:   "List the sections of a changelog",
	Long: `List every "## [...]" section header in file order with its release
date, header line number, and whether its body is empty.`,
	Example: `  # Table for humans
  chglog versions

  # Machine readable
  chglog versions --format json | jq -r '.[0].version'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVersions,
}

func init() {
	versionsCmd.GroupID = GroupChangelog
	versionsCmd.Flags().StringVarP(&versionsFormat, "format", "f", "text", "Output format: text, yaml, json")
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	if !slices.Contains(outputFormats, versionsFormat) {
		return clierrors.InvalidOutputFormat(versionsFormat, outputFormats)
	}
	path := changelogPath(args, 0)

	doc, err := loadChangelog(cmd, path)
	if err != nil {
		return changelogError(err, "", path)
	}

	return writeSections(cmd.OutOrStdout(), doc.Sections(), versionsFormat, isPlain(cmd))
}

func writeSections(w io.Writer, sections []changelog.Section, format string, plain bool) error {
	if sections == nil {
		sections = []changelog.Section{}
	}

	switch format {
	case "text":
		return changelog.FormatSections(sections, w, changelog.FormatOptions{Plain: plain})
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sections); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sections); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return clierrors.InvalidOutputFormat(format, outputFormats)
	}
}
