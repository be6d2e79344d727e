// Package cli implements the chglog command tree.
package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/chglog/internal/changelog"
	"github.com/ariel-frischer/chglog/internal/config"
	clierrors "github.com/ariel-frischer/chglog/internal/errors"
	"github.com/ariel-frischer/chglog/internal/git"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Command group IDs for help output.
const (
	GroupChangelog     = "changelog"
	GroupConfiguration = "configuration"
)

var (
	configFlag  string
	debugFlag   bool
	plainFlag   bool
	verboseFlag bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Configuration
)

var rootCmd = &cobra.Command{
	Use:   "chglog",
	Short: "Extract and roll Keep a Changelog release notes",
	Long: `chglog reads and rewrites a "Keep a Changelog" style CHANGELOG.md.

It extracts the notes of a single version for release pipelines and turns
the [Unreleased] section into a dated release, keeping the GitHub comparison
links at the bottom of the file in step.

Source: https://github.com/ariel-frischer/chglog`,
	Example: `  # Print the notes for v0.4.0 (falls back to [Unreleased])
  chglog extract v0.4.0

  # Release v0.4.0 after v0.3.0
  chglog update v0.4.0 v0.3.0

  # Preview the release without writing
  chglog update v0.4.0 v0.3.0 --dry-run

  # List sections and sanity-check the file
  chglog versions
  chglog check`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: runRoot,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to a project config file (default: .chglog.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log debug information to stderr")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show remediation steps with errors")
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd, err)
	}
	return err
}

// runRoot handles invocations that name no known subcommand.
func runRoot(cmd *cobra.Command, args []string) error {
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	if len(args) == 0 {
		return clierrors.NewArgumentErrorWithUsage("command required", "chglog <command> [arguments]")
	}
	return clierrors.UnknownCommand(args[0], commandNames(cmd))
}

func commandNames(cmd *cobra.Command) []string {
	var names []string
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	return names
}

// setup loads configuration and wires the output and debug settings.
func setup(cmd *cobra.Command) error {
	if debugFlag {
		logger := log.New(cmd.ErrOrStderr(), "[chglog] ", log.LstdFlags)
		changelog.SetDebugLogger(logger.Printf)
		git.SetDebugLogger(logger.Printf)
	} else {
		changelog.SetDebugLogger(nil)
		git.SetDebugLogger(nil)
	}

	loaded, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configFlag,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return clierrors.ConfigParseError(err)
	}
	cfg = loaded

	color.NoColor = isPlain(cmd)
	return nil
}

// isPlain reports whether colors are disabled by flag, config, or a non-terminal stdout.
func isPlain(cmd *cobra.Command) bool {
	if plainFlag || (cfg != nil && cfg.Plain) {
		return true
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return !ok || !term.IsTerminal(int(f.Fd()))
}

// changelogPath returns the path argument at index i, or the configured default.
func changelogPath(args []string, i int) string {
	if len(args) > i && args[i] != "" {
		return args[i]
	}
	if cfg != nil && cfg.ChangelogPath != "" {
		return cfg.ChangelogPath
	}
	return "CHANGELOG.md"
}

// stdinPath is the changelog path argument that reads from stdin.
const stdinPath = "-"

// loadChangelog loads the changelog at path, or from stdin when path is "-".
func loadChangelog(cmd *cobra.Command, path string) (*changelog.Document, error) {
	if path == stdinPath {
		return changelog.LoadFromReader(cmd.InOrStdin())
	}
	return changelog.Load(path)
}

// changelogDir returns the directory holding the changelog, used for git lookups.
func changelogDir(path string) string {
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// reportError prints err once, in the structured form when it is a CLIError.
func reportError(cmd *cobra.Command, err error) {
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		cliErr = clierrors.Wrap(err, clierrors.Runtime)
	}
	clierrors.FprintError(cmd.ErrOrStderr(), cliErr, clierrors.PrintOptions{
		Verbose: verboseFlag,
		Plain:   plainFlag || color.NoColor,
	})
}
