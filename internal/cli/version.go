package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ariel-frischer/chglog/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display version, commit, build date, and Go version information for chglog",
	Example: `  # Show version info
  chglog version

  # Plain output (for scripts)
  chglog version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout(), isPlain(cmd))
	},
}

func init() {
	versionCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(versionCmd)
}

func printVersion(w io.Writer, plain bool) {
	if plain {
		fmt.Fprintf(w, "chglog %s\n", version.Version)
		fmt.Fprintf(w, "commit: %s\n", version.Commit)
		fmt.Fprintf(w, "built: %s\n", version.BuildDate)
		fmt.Fprintf(w, "go: %s\n", runtime.Version())
		fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return
	}

	label := color.New(color.FgYellow).SprintfFunc()
	value := color.New(color.FgWhite, color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", color.New(color.FgCyan, color.Bold).Sprint("chglog"), value(version.Version))
	info := []struct {
		label string
		value string
	}{
		{"Commit", version.ShortCommit()},
		{"Built", version.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}
	for _, item := range info {
		fmt.Fprintf(w, "  %s  %s\n", label("%-8s", item.label), value(item.value))
	}
}
