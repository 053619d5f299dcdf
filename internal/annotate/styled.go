package annotate

import "github.com/agentic-research/annotate/internal/ast"

const (
	styledModule = "@emotion/styled"
	wrapperParam = "props"
)

// trackImport records the local name of the styled helper. A later import
// of the helper replaces an earlier one.
func (e *Engine) trackImport(imp *ast.ImportDecl) {
	if imp.Source != styledModule {
		return
	}
	for _, spec := range imp.Specs {
		if spec == nil {
			continue
		}
		switch spec.Kind {
		case ast.ImportDefault:
			e.styledAlias = spec.Local
		case ast.ImportNamed:
			if spec.Imported == "default" || spec.Imported == "styled" {
				e.styledAlias = spec.Local
			}
		}
	}
}

// rewriteStyledCall turns `binding = styled(Ref, ...)` into
// `binding = styled(props => <Ref .../>, ...)` so instances of the styled
// component carry attributes. Only a bare identifier first argument
// passed to the tracked helper qualifies.
func (e *Engine) rewriteStyledCall(binding string, call *ast.Call) {
	if e.styledAlias == "" || len(call.Args) == 0 {
		return
	}
	callee, ok := call.Callee.(*ast.Ident)
	if !ok || callee.Name != e.styledAlias {
		return
	}
	ref, ok := call.Args[0].(*ast.Ident)
	if !ok {
		return
	}

	path := ""
	if e.names.EmitSourcePath {
		path = e.sourcePath
	}
	call.Args[0] = StyledWrapper(ref.Name, binding, e.names, e.sourceFile, path)
	e.stats.StyledRewrites++
}

// StyledWrapper builds `props => <ref elem="binding" file="..." path="..." {...props} />`.
// Empty sourceFile or sourcePath omit the corresponding attribute. The
// returned nodes are all new and carry no source range.
func StyledWrapper(ref, binding string, names AttrNames, sourceFile, sourcePath string) *ast.Arrow {
	el := &ast.Element{
		Name:        &ast.TagIdent{Name: ref},
		SelfClosing: true,
	}
	appendAttr(el, names.Element, binding)
	if sourceFile != "" {
		appendAttr(el, names.SourceFile, sourceFile)
	}
	if sourcePath != "" {
		appendAttr(el, names.SourcePath, sourcePath)
	}
	el.Attrs = append(el.Attrs, &ast.Spread{Arg: &ast.Ident{Name: wrapperParam}})

	return &ast.Arrow{
		Params: []ast.Node{&ast.Ident{Name: wrapperParam}},
		Body:   el,
	}
}
