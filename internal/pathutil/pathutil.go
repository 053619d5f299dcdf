// Package pathutil derives the source-file labels attached to annotated
// markup from the filename a build tool passes in.
//
// Filenames may come from any platform, so both separators are accepted
// regardless of the host OS.
package pathutil

import "strings"

// splitPath splits on backslashes when the path contains any, otherwise on
// forward slashes. Mixed paths are treated as Windows paths.
func splitPath(path string) []string {
	if strings.ContainsRune(path, '\\') {
		return strings.Split(path, `\`)
	}
	return strings.Split(path, "/")
}

// DisplayName returns the short name used for the source-file attribute:
// the final path segment, or "parent/index.ext" when the final segment is an
// index file. The second result is false when no name can be derived.
func DisplayName(filename string) (string, bool) {
	if filename == "" {
		return "", false
	}

	parts := splitPath(filename)
	file := parts[len(parts)-1]
	if file == "" {
		return "", false
	}

	if strings.HasPrefix(file, "index.") && len(parts) >= 2 {
		// Output always uses a forward slash.
		if parent := parts[len(parts)-2]; parent != "" {
			return parent + "/" + file, true
		}
	}
	return file, true
}

// SourcePath returns the filename echoed verbatim for the source-path
// attribute.
func SourcePath(filename string) (string, bool) {
	return filename, filename != ""
}
