package cli

// Exit codes for the chglog CLI.
// Every failure, whatever its category, exits with ExitFailure.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a missing file, an unresolvable version, invalid
	// arguments, or a failed check
	ExitFailure = 1
)

// ExitCode returns the process exit code for the error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
