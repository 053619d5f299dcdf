// Package annotate implements the component annotation pass.
//
// The pass walks a parsed file and attaches metadata attributes to markup
// returned by component declarations: the component that rendered the
// node, the tag it was written as, and the file it came from. It never
// removes or replaces anything, and unrecognised syntax is passed over.
//
// An Engine carries per-file traversal state and must not be shared
// between goroutines. Separate files are processed by separate engines.
package annotate

import (
	"github.com/agentic-research/annotate/api"
	"github.com/agentic-research/annotate/internal/ast"
	"github.com/agentic-research/annotate/internal/pathutil"
)

// Stats counts what one Transform call did.
type Stats struct {
	Components     int // declarations whose returned markup was visited
	Attrs          int // attributes inserted
	StyledRewrites int // styled(Component) calls wrapped
}

// Changed reports whether the tree was modified.
func (s Stats) Changed() bool {
	return s.Attrs > 0 || s.StyledRewrites > 0
}

// Engine rewrites the tree of a single file.
type Engine struct {
	names         AttrNames
	ignore        *IgnoreSet
	sourceFile    string // empty when unknown
	sourcePath    string // empty when unknown
	rewriteStyled bool

	// component is the declaration whose markup root is being visited,
	// empty outside one. See visitElement for the scoping rules.
	component string
	// styledAlias is the local name bound to the styled helper import.
	styledAlias string
	stats       Stats
}

// New returns an engine for the file named filename. filename may be empty,
// in which case no source attributes are emitted.
func New(opts api.Options, filename string) *Engine {
	file, _ := pathutil.DisplayName(filename)
	path, _ := pathutil.SourcePath(filename)
	return &Engine{
		names:         ResolveNames(opts),
		ignore:        NewIgnoreSet(opts.IgnoredComponents),
		sourceFile:    file,
		sourcePath:    path,
		rewriteStyled: opts.RewriteEmotionStyled,
	}
}

// Transform annotates prog in place.
func (e *Engine) Transform(prog *ast.Program) Stats {
	e.component = ""
	e.styledAlias = ""
	e.stats = Stats{}
	if prog != nil {
		for _, stmt := range prog.Body {
			e.visit(stmt)
		}
	}
	return e.stats
}

// Annotate runs a fresh engine over prog.
func Annotate(prog *ast.Program, opts api.Options, filename string) Stats {
	return New(opts, filename).Transform(prog)
}
