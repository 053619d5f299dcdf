// Package markup holds the fixed set of standard presentation tags that the
// annotation pass treats as plain markup instead of components.
package markup

//go:generate go run ../../tools/taggen -in tags.txt -out tags_gen.go

var knownTags = func() map[string]struct{} {
	m := make(map[string]struct{}, len(knownTagList))
	for _, tag := range knownTagList {
		m[tag] = struct{}{}
	}
	return m
}()

// IsKnownTag reports whether name is a standard presentation tag.
// The comparison is case-sensitive: `Button` is a component, `button` is not.
func IsKnownTag(name string) bool {
	_, ok := knownTags[name]
	return ok
}

// KnownTags returns a copy of the tag list in generation order.
func KnownTags() []string {
	out := make([]string, len(knownTagList))
	copy(out, knownTagList)
	return out
}
