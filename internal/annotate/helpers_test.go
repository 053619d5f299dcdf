package annotate

import (
	"strings"

	"github.com/agentic-research/annotate/internal/ast"
)

// at marks hand-built nodes as originating from source so the walk enters them.
var at = &ast.Range{}

func tag(name string) ast.TagName {
	if ns, local, ok := strings.Cut(name, ":"); ok {
		return &ast.TagNamespace{Loc: at, Namespace: ns, Name: local}
	}
	parts := strings.Split(name, ".")
	var t ast.TagName = &ast.TagIdent{Loc: at, Name: parts[0]}
	for _, p := range parts[1:] {
		t = &ast.TagMember{Loc: at, Object: t, Prop: p}
	}
	return t
}

func elem(name string, children ...ast.Child) *ast.Element {
	return &ast.Element{Loc: at, Name: tag(name), Children: children, SelfClosing: len(children) == 0}
}

func frag(children ...ast.Child) *ast.Fragment {
	return &ast.Fragment{Loc: at, Children: children}
}

func withAttrs(el *ast.Element, items ...ast.AttrItem) *ast.Element {
	el.Attrs = append(el.Attrs, items...)
	return el
}

func strAttr(name, value string) *ast.Attr {
	return &ast.Attr{Loc: at, Name: name, Value: &value}
}

func ident(name string) *ast.Ident {
	return &ast.Ident{Loc: at, Name: name}
}

// attrList renders el's attributes as "name=value", "name" or "{...arg}".
func attrList(el *ast.Element) []string {
	out := []string{}
	for _, item := range el.Attrs {
		switch a := item.(type) {
		case *ast.Attr:
			name := a.Name
			if a.Namespace != "" {
				name = a.Namespace + ":" + name
			}
			if a.Value != nil {
				name += "=" + *a.Value
			}
			out = append(out, name)
		case *ast.Spread:
			if id, ok := a.Arg.(*ast.Ident); ok {
				out = append(out, "{..."+id.Name+"}")
			} else {
				out = append(out, "{...}")
			}
		}
	}
	return out
}

func returns(exprs ...ast.Expr) *ast.Block {
	b := &ast.Block{Loc: at}
	for _, x := range exprs {
		b.Stmts = append(b.Stmts, &ast.ReturnStmt{Loc: at, Arg: x})
	}
	return b
}

func fn(name string, ret ast.Expr) *ast.FuncDecl {
	return &ast.FuncDecl{Loc: at, Name: name, Body: returns(ret)}
}

func constDecl(name string, init ast.Expr) *ast.VarDecl {
	return &ast.VarDecl{Loc: at, Kind: "const", Declarators: []*ast.Declarator{{Loc: at, Name: name, Init: init}}}
}

func arrowConst(name string, body ast.Expr) *ast.VarDecl {
	return constDecl(name, &ast.Arrow{Loc: at, Body: body})
}

func prog(stmts ...ast.Stmt) *ast.Program {
	return &ast.Program{Loc: at, Body: stmts}
}
