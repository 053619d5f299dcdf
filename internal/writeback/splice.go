package writeback

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
)

// Edit replaces src[Start:End] with Text. Start == End is an insertion.
type Edit struct {
	Start uint32
	End   uint32
	Text  []byte
}

// ApplyEdits splices edits into src and returns the new content. src is not
// modified. Edits may be given in any order but must not overlap.
func ApplyEdits(src []byte, edits []Edit) ([]byte, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	size := len(src)
	var prevEnd uint32
	for i, e := range sorted {
		if int(e.Start) > len(src) || int(e.End) > len(src) || e.Start > e.End {
			return nil, fmt.Errorf("invalid byte range [%d:%d] for file of length %d", e.Start, e.End, len(src))
		}
		if i > 0 && e.Start < prevEnd {
			return nil, fmt.Errorf("overlapping edits at byte %d", e.Start)
		}
		prevEnd = e.End
		size += len(e.Text) - int(e.End-e.Start)
	}

	// result = prefix + newContent + suffix, edit by edit
	result := make([]byte, 0, size)
	var pos uint32
	for _, e := range sorted {
		result = append(result, src[pos:e.Start]...)
		result = append(result, e.Text...)
		pos = e.End
	}
	result = append(result, src[pos:]...)
	return result, nil
}

// WriteFile replaces path on fs with content. The write is atomic: content
// is written to a temp file in the same directory first, then renamed.
func WriteFile(fs billy.Filesystem, path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := fs.TempFile(dir, ".annotate-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("close temp: %w", err)
	}

	// Preserve original file permissions
	if info, err := fs.Stat(path); err == nil {
		if ch, ok := fs.(billy.Change); ok {
			_ = ch.Chmod(tmpName, info.Mode()) // best-effort permission sync
		}
	}

	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("rename temp to %s: %w", path, err)
	}

	return nil
}
