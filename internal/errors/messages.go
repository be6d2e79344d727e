package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the chglog CLI.
// These templates ensure consistent, actionable error messages.

// ChangelogNotFound creates an error for a missing changelog file.
func ChangelogNotFound(path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("changelog not found: %s", path),
		Remediation: []string{
			"Pass the path explicitly: chglog extract <version> path/to/CHANGELOG.md",
			"Or set changelog_path in .chglog.yml",
		},
		Cause: cause,
	}
}

// VersionUnresolvable creates an error for a version that has no section
// and no [Unreleased] content to fall back on. available lists the section
// labels of the changelog when they are known.
func VersionUnresolvable(version string, cause error, available ...string) *CLIError {
	listing := "List available sections with: chglog versions"
	if len(available) > 0 {
		listing = "Available sections: " + strings.Join(available, ", ")
	}
	return &CLIError{
		Category: Content,
		Message:  cause.Error(),
		Remediation: []string{
			fmt.Sprintf("Add a \"## [%s] - YYYY-MM-DD\" section to the changelog", version),
			"Or add entries under \"## [Unreleased]\"",
			listing,
		},
		Cause: cause,
	}
}

// UnknownCommand creates an error for an unrecognized subcommand.
func UnknownCommand(name string, valid []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("Unknown command '%s'", name),
		"chglog <command> [arguments]",
		fmt.Sprintf("Valid commands: %s", strings.Join(valid, ", ")),
		"Run 'chglog --help' for details",
	)
}

// MissingVersion creates an error for an extract call without a version.
func MissingVersion() *CLIError {
	return NewArgumentErrorWithUsage(
		"version required",
		"chglog extract <version> [changelog_path]",
		"Example: chglog extract v0.4.0",
	)
}

// MissingUpdateVersions creates an error for an update call without both versions.
func MissingUpdateVersions() *CLIError {
	return NewArgumentErrorWithUsage(
		"new version and previous version required",
		"chglog update <new_version> <prev_version> [changelog_path]",
		"Example: chglog update v0.4.0 v0.3.0",
	)
}

// InvalidReleaseDate creates an error for a malformed --date value.
func InvalidReleaseDate(date string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid release date: %s", date),
		"chglog update <new_version> <prev_version> --date YYYY-MM-DD",
		"Use an ISO 8601 calendar date, e.g. 2025-10-16",
	)
}

// InvalidOutputFormat creates an error for an unsupported --format value.
func InvalidOutputFormat(format string, valid []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid output format: %s", format),
		fmt.Sprintf("Valid formats: %s", strings.Join(valid, ", ")),
	)
}

// ConfigParseError creates an error for a config file that cannot be loaded.
func ConfigParseError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check .chglog.yml for YAML syntax errors",
		"Environment overrides use the CHGLOG_ prefix, e.g. CHGLOG_CHANGELOG_PATH",
	)
}

// ChangelogCheckFailed creates an error summarizing failed checks.
func ChangelogCheckFailed(failed int) *CLIError {
	noun := "checks"
	if failed == 1 {
		noun = "check"
	}
	return &CLIError{
		Category: Content,
		Message:  fmt.Sprintf("%d changelog %s failed", failed, noun),
		Remediation: []string{
			"Fix the items marked ✗ above",
		},
	}
}
