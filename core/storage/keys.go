package storage

import (
	"path/filepath"
	"strings"
)

// Key joins parts into an object name. Backslashes become slashes and empty, "." and ".."
// segments are dropped, so a key built from user input never escapes its prefix.
func Key(parts ...string) string {
	var out []string
	for _, part := range parts {
		part = strings.ReplaceAll(filepath.ToSlash(part), `\`, "/")
		for _, seg := range strings.Split(part, "/") {
			if seg == "" || seg == "." || seg == ".." {
				continue
			}
			out = append(out, seg)
		}
	}
	return strings.Join(out, "/")
}

// Folder returns the key of parts with a trailing slash, as used for prefix listings and
// folder placeholders. An empty key stays empty.
func Folder(parts ...string) string {
	key := Key(parts...)
	if key == "" {
		return ""
	}
	return key + "/"
}
