package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# chglog configuration
# Environment variables override these values, e.g. CHGLOG_CHANGELOG_PATH

changelog_path: CHANGELOG.md          # Changelog used when no path argument is given
plain: false                          # Disable colored output
remote: origin                        # Git remote compared by 'chglog check'
check_tags: true                      # Compare the newest release with the latest git tag
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path": "CHANGELOG.md",
		"plain":          false,
		"remote":         "origin",
		// check_tags: skipped automatically outside a git repository.
		"check_tags": true,
	}
}
