package annotate

import "github.com/agentic-research/annotate/internal/ast"

// addAttributes applies the injection rules to el using the current scope.
// Attributes are appended in a fixed order: element, component, source
// file, source path. Nothing is added under a name el already carries.
func (e *Engine) addAttributes(el *ast.Element) {
	if IsFragmentTag(el.Name) {
		return
	}
	name := TagDisplayName(el.Name)
	if name == "" {
		return
	}

	scoped := e.component != ""
	// An ignored component exempts its own markup root.
	if scoped && e.ignore.IgnoresComponent(e.component) {
		return
	}
	if e.ignore.IgnoresComponent(name) {
		return
	}

	known := e.ignore.IsKnownTag(name)
	n := e.names

	if !known && !HasAttr(el, n.Element) && (n.Element != n.Component || !scoped) {
		e.add(el, n.Element, name)
	}

	if scoped && !HasAttr(el, n.Component) {
		e.add(el, n.Component, e.component)
	}

	if !scoped && known {
		return
	}

	if e.sourceFile != "" && !HasAttr(el, n.SourceFile) {
		e.add(el, n.SourceFile, e.sourceFile)
	}

	if n.EmitSourcePath && e.sourcePath != "" && !HasAttr(el, n.SourcePath) {
		e.add(el, n.SourcePath, e.sourcePath)
	}
}

func (e *Engine) add(el *ast.Element, name, value string) {
	appendAttr(el, name, value)
	e.stats.Attrs++
}
