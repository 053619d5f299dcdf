package annotate

import "github.com/agentic-research/annotate/internal/markup"

// IgnoreSet answers the two membership questions the rules ask: is a name
// one the user excluded, and is it a standard presentation tag.
// It is read-only after construction.
type IgnoreSet struct {
	components map[string]struct{}
}

func NewIgnoreSet(components []string) *IgnoreSet {
	s := &IgnoreSet{components: make(map[string]struct{}, len(components))}
	for _, name := range components {
		s.components[name] = struct{}{}
	}
	return s
}

// IgnoresComponent reports whether name was listed in ignored-components.
func (s *IgnoreSet) IgnoresComponent(name string) bool {
	_, ok := s.components[name]
	return ok
}

// IsKnownTag reports whether name is plain markup rather than a component.
func (s *IgnoreSet) IsKnownTag(name string) bool {
	return markup.IsKnownTag(name)
}
