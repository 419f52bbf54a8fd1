package artwork

import (
	"os"
	"path/filepath"
	"strings"

	"shortcut-sync/core/identity"
	"shortcut-sync/core/provider"
)

// Extensions are the image extensions the cache writes and evicts.
var Extensions = []string{".jpg", ".png"}

// Size is an exact pixel size an image must match.
type Size struct {
	Width  int
	Height int
}

// requiredSizes holds the kinds that are filtered by dimensions.
var requiredSizes = map[provider.Kind]Size{
	provider.KindGrid: {Width: 600, Height: 900},
	provider.KindHome: {Width: 920, Height: 430},
}

// RequiredSize returns the size a kind must match, if any.
func RequiredSize(kind provider.Kind) (Size, bool) {
	s, ok := requiredSizes[kind]
	return s, ok
}

func suffix(kind provider.Kind) string {
	switch kind {
	case provider.KindGrid:
		return "p"
	case provider.KindHero:
		return "_hero"
	case provider.KindLogo:
		return "_logo"
	default:
		return ""
	}
}

// FileName returns the file name of kind for appID with ext (including the dot).
func FileName(appID uint32, kind provider.Kind, ext string) string {
	return identity.Format(appID) + suffix(kind) + ext
}

// ParseFileName is the inverse of FileName. Names outside the scheme report ok=false.
func ParseFileName(name string) (appID uint32, kind provider.Kind, ok bool) {
	ext := filepath.Ext(name)
	if !knownExtension(ext) {
		return 0, "", false
	}
	stem := strings.TrimSuffix(name, ext)

	switch {
	case strings.HasSuffix(stem, "_hero"):
		kind, stem = provider.KindHero, strings.TrimSuffix(stem, "_hero")
	case strings.HasSuffix(stem, "_logo"):
		kind, stem = provider.KindLogo, strings.TrimSuffix(stem, "_logo")
	case strings.HasSuffix(stem, "p"):
		kind, stem = provider.KindGrid, strings.TrimSuffix(stem, "p")
	default:
		kind = provider.KindHome
	}

	if stem == "" || strings.TrimLeft(stem, "0123456789") != "" {
		return 0, "", false
	}
	id, err := identity.Parse(stem)
	if err != nil {
		return 0, "", false
	}
	return id, kind, true
}

// Files lists the existing artwork files of appID in dir.
func Files(dir string, appID uint32) []string {
	var files []string
	for _, kind := range provider.Kinds {
		for _, ext := range Extensions {
			path := filepath.Join(dir, FileName(appID, kind, ext))
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				files = append(files, path)
			}
		}
	}
	return files
}

func knownExtension(ext string) bool {
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// extensionOf returns the lowercased extension of a URL path, ignoring the query.
func extensionOf(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	return strings.ToLower(filepath.Ext(rawURL))
}
