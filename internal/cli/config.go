package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ariel-frischer/chglog/internal/config"
	clierrors "github.com/ariel-frischer/chglog/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configInitUser  bool
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create chglog configuration",
	Long: `Inspect and create chglog configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CHGLOG_*)
  2. Project config (.chglog.yml, or --config)
  3. User config (~/.config/chglog/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration and where each value came from
  chglog config show

  # Create .chglog.yml in the current directory
  chglog config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file",
	Long: `Write a commented config file with the default values.

By default the project config .chglog.yml is created in the current
directory. Use --user for ~/.config/chglog/config.yml.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configCmd.GroupID = GroupConfiguration
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "Create the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Fprint(out, string(data))

	sources, err := config.Sources(config.LoadOptions{ProjectConfigPath: configFlag})
	if err != nil {
		return clierrors.ConfigParseError(err)
	}

	keys := make([]string, 0, len(sources))
	for key := range sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "# Sources:")
	for _, key := range keys {
		fmt.Fprintf(out, "#   %-15s %s\n", key, sources[key])
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigPath()
	if configInitUser {
		userPath, err := config.UserConfigPath()
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Configuration, "locating user config directory")
		}
		path = userPath
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return clierrors.NewConfigError(
			fmt.Sprintf("config file already exists: %s", path),
			"Pass --force to overwrite it",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path)
	return nil
}
