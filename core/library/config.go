package library

import "strings"

// Config holds configuration for the library scanner.
type Config struct {
	// Roots is a semicolon-separated list of library directories.
	Roots string `mapstructure:"roots" default:""`
	// Extension is the file extension of launchable executables.
	Extension string `mapstructure:"extension" default:".exe"`
}

// RootList returns the configured roots as an ordered list.
func (c Config) RootList() []string {
	return SplitRoots(c.Roots)
}

// SplitRoots splits a semicolon-separated list, trimming blanks and dropping empty items.
func SplitRoots(s string) []string {
	var roots []string
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			roots = append(roots, part)
		}
	}
	return roots
}
