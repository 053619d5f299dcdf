package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/agentic-research/annotate/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, path, src string) *ast.Program {
	t.Helper()
	f, err := Parse(context.Background(), []byte(src), path)
	require.NoError(t, err)
	require.False(t, f.HasErrors, "unexpected syntax errors in %s", path)
	return f.Program
}

// walkAll calls fn for n and every node reachable from it.
func walkAll(n ast.Node, fn func(ast.Node)) {
	if n == nil {
		return
	}
	fn(n)
	each := func(nodes ...ast.Node) {
		for _, c := range nodes {
			walkAll(c, fn)
		}
	}
	switch n := n.(type) {
	case *ast.Program:
		for _, s := range n.Body {
			each(s)
		}
	case *ast.Opaque:
		each(n.Children...)
	case *ast.Block:
		if n == nil {
			return
		}
		for _, s := range n.Stmts {
			each(s)
		}
	case *ast.FuncDecl:
		each(n.Params...)
		if n.Body != nil {
			each(n.Body)
		}
	case *ast.ClassDecl:
		for _, m := range n.Members {
			each(m)
		}
	case *ast.Method:
		if n.Body != nil {
			each(n.Body)
		}
	case *ast.VarDecl:
		for _, d := range n.Declarators {
			each(d)
		}
	case *ast.Declarator:
		if n.Init != nil {
			each(n.Init)
		}
	case *ast.ExportDecl:
		each(n.Decl)
	case *ast.ReturnStmt:
		if n.Arg != nil {
			each(n.Arg)
		}
	case *ast.Call:
		for _, a := range n.Args {
			each(a)
		}
	case *ast.Paren:
		if n.Inner != nil {
			each(n.Inner)
		}
	case *ast.Cond:
		each(n.Cons, n.Alt)
	case *ast.Arrow:
		if n.Body != nil {
			each(n.Body)
		}
		if n.Block != nil {
			each(n.Block)
		}
	case *ast.FuncExpr:
		if n.Body != nil {
			each(n.Body)
		}
	case *ast.Element:
		for _, c := range n.Children {
			each(c)
		}
	case *ast.Fragment:
		for _, c := range n.Children {
			each(c)
		}
	case *ast.ExprContainer:
		if n.Expr != nil {
			each(n.Expr)
		}
	}
}

func elements(n ast.Node) []*ast.Element {
	var out []*ast.Element
	walkAll(n, func(n ast.Node) {
		if el, ok := n.(*ast.Element); ok {
			out = append(out, el)
		}
	})
	return out
}

func tagText(tag ast.TagName) string {
	switch t := tag.(type) {
	case *ast.TagIdent:
		return t.Name
	case *ast.TagMember:
		return tagText(t.Object) + "." + t.Prop
	case *ast.TagNamespace:
		return t.Namespace + ":" + t.Name
	}
	return "?"
}

func slice(src string, r *ast.Range) string {
	return src[r.StartByte:r.EndByte]
}

func TestParse_Unsupported(t *testing.T) {
	for _, path := range []string{"a.ts", "a.css", "Makefile"} {
		_, err := Parse(context.Background(), []byte("x"), path)
		assert.ErrorIs(t, err, ErrUnsupported, path)
	}
}

func TestParse_Languages(t *testing.T) {
	for path, lang := range map[string]string{
		"a.js": "javascript", "a.jsx": "javascript", "a.mjs": "javascript",
		"a.cjs": "javascript", "A.TSX": "tsx", "a.tsx": "tsx",
	} {
		f, err := Parse(context.Background(), []byte("const a = 1;\n"), path)
		require.NoError(t, err, path)
		assert.Equal(t, lang, f.Language, path)
	}
}

func TestParse_SyntaxErrorsFlagged(t *testing.T) {
	f, err := Parse(context.Background(), []byte("const = <div"), "broken.jsx")
	require.NoError(t, err)
	assert.True(t, f.HasErrors)
}

func TestParse_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, []byte("const a = 1;\n"), "a.js")
	assert.Error(t, err)
}

func TestConvert_Imports(t *testing.T) {
	prog := parse(t, "a.jsx", `import React from 'react';
import styled, { css as c, keyframes } from "@emotion/styled";
import * as all from 'lib';
`)
	require.Len(t, prog.Body, 3)

	react := prog.Body[0].(*ast.ImportDecl)
	assert.Equal(t, "react", react.Source)
	assert.Equal(t, []*ast.ImportSpec{{Kind: ast.ImportDefault, Local: "React"}}, react.Specs)

	emotion := prog.Body[1].(*ast.ImportDecl)
	assert.Equal(t, "@emotion/styled", emotion.Source)
	assert.Equal(t, []*ast.ImportSpec{
		{Kind: ast.ImportDefault, Local: "styled"},
		{Kind: ast.ImportNamed, Imported: "css", Local: "c"},
		{Kind: ast.ImportNamed, Imported: "keyframes", Local: "keyframes"},
	}, emotion.Specs)

	ns := prog.Body[2].(*ast.ImportDecl)
	assert.Equal(t, []*ast.ImportSpec{{Kind: ast.ImportNamespace, Local: "all"}}, ns.Specs)
}

func TestConvert_NamedDefaultImport(t *testing.T) {
	prog := parse(t, "a.jsx", `import { default as s } from '@emotion/styled';`)
	imp := prog.Body[0].(*ast.ImportDecl)
	require.Len(t, imp.Specs, 1)
	assert.Equal(t, ast.ImportNamed, imp.Specs[0].Kind)
	assert.Equal(t, "default", imp.Specs[0].Imported)
	assert.Equal(t, "s", imp.Specs[0].Local)
}

func TestConvert_FunctionComponent(t *testing.T) {
	src := `export default function App({ items }) {
  return (
    <div className="app">
      <Tab.Panel {...rest} />
      <>{items}</>
    </div>
  );
}
`
	prog := parse(t, "App.jsx", src)
	require.Len(t, prog.Body, 1)

	exp := prog.Body[0].(*ast.ExportDecl)
	fn := exp.Decl.(*ast.FuncDecl)
	assert.Equal(t, "App", fn.Name)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Stmts, 1)

	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	paren := ret.Arg.(*ast.Paren)
	div := paren.Inner.(*ast.Element)
	assert.Equal(t, "div", tagText(div.Name))
	assert.False(t, div.SelfClosing)

	require.Len(t, div.Attrs, 1)
	cls := div.Attrs[0].(*ast.Attr)
	assert.Equal(t, "className", cls.Name)
	require.NotNil(t, cls.Value)
	assert.Equal(t, "app", *cls.Value)
	assert.Equal(t, strings.Index(src, `className="app"`)+len(`className="app"`), int(div.AttrsEnd))

	var panel *ast.Element
	var frag *ast.Fragment
	for _, child := range div.Children {
		switch c := child.(type) {
		case *ast.Element:
			panel = c
		case *ast.Fragment:
			frag = c
		}
	}
	require.NotNil(t, panel)
	require.NotNil(t, frag)

	assert.Equal(t, "Tab.Panel", tagText(panel.Name))
	assert.True(t, panel.SelfClosing)
	require.Len(t, panel.Attrs, 1)
	spread := panel.Attrs[0].(*ast.Spread)
	assert.Equal(t, "rest", spread.Arg.(*ast.Ident).Name)
	assert.Equal(t, "<Tab.Panel {...rest} />", slice(src, panel.Loc))

	var container *ast.ExprContainer
	for _, child := range frag.Children {
		if c, ok := child.(*ast.ExprContainer); ok {
			container = c
		}
	}
	require.NotNil(t, container)
	assert.Equal(t, "items", container.Expr.(*ast.Ident).Name)
}

func TestConvert_AttrsEndWithoutAttributes(t *testing.T) {
	src := `const a = <Foo.Bar />;`
	prog := parse(t, "a.jsx", src)
	els := elements(prog)
	require.Len(t, els, 1)
	assert.Equal(t, strings.Index(src, "Foo.Bar")+len("Foo.Bar"), int(els[0].AttrsEnd))
}

func TestConvert_NamespacedNames(t *testing.T) {
	prog := parse(t, "a.jsx", `const a = <svg:rect xlink:href="#x" />;`)
	els := elements(prog)
	require.Len(t, els, 1)
	assert.Equal(t, "svg:rect", tagText(els[0].Name))

	require.Len(t, els[0].Attrs, 1)
	attr := els[0].Attrs[0].(*ast.Attr)
	assert.Equal(t, "xlink", attr.Namespace)
	assert.Equal(t, "href", attr.Name)
}

func TestConvert_NamedFragmentAndNesting(t *testing.T) {
	prog := parse(t, "a.jsx", `const A = () => <React.Fragment><B><C /></B></React.Fragment>;`)
	decl := prog.Body[0].(*ast.VarDecl)
	assert.Equal(t, "const", decl.Kind)
	require.Len(t, decl.Declarators, 1)
	assert.Equal(t, "A", decl.Declarators[0].Name)

	arrow := decl.Declarators[0].Init.(*ast.Arrow)
	assert.Nil(t, arrow.Block)
	outer := arrow.Body.(*ast.Element)
	assert.Equal(t, "React.Fragment", tagText(outer.Name))

	var names []string
	for _, el := range elements(prog) {
		names = append(names, tagText(el.Name))
	}
	assert.Equal(t, []string{"React.Fragment", "B", "C"}, names)
}

func TestConvert_DeclarationShapes(t *testing.T) {
	prog := parse(t, "a.jsx", `
const A = props => { return <div />; };
var B = function () { return <span />; };
let { C } = obj;
class D extends React.Component {
  static x = 1;
  render() { return <p />; }
  ['computed']() {}
}
`)
	require.Len(t, prog.Body, 4)

	a := prog.Body[0].(*ast.VarDecl).Declarators[0]
	arrow := a.Init.(*ast.Arrow)
	require.Len(t, arrow.Params, 1)
	require.NotNil(t, arrow.Block)
	require.Len(t, arrow.Block.Stmts, 1)
	assert.IsType(t, &ast.ReturnStmt{}, arrow.Block.Stmts[0])

	b := prog.Body[1].(*ast.VarDecl)
	assert.Equal(t, "var", b.Kind)
	fn := b.Declarators[0].Init.(*ast.FuncExpr)
	require.NotNil(t, fn.Body)
	assert.Empty(t, fn.Name)

	c := prog.Body[2].(*ast.VarDecl).Declarators[0]
	assert.Empty(t, c.Name)
	assert.NotNil(t, c.Pattern)

	d := prog.Body[3].(*ast.ClassDecl)
	assert.Equal(t, "D", d.Name)
	var keys []string
	for _, m := range d.Members {
		if method, ok := m.(*ast.Method); ok {
			keys = append(keys, method.Key)
		}
	}
	assert.Equal(t, []string{"render", ""}, keys)
}

func TestConvert_Calls(t *testing.T) {
	src := `const S = styled(Button, { label: 'x' });
const T = styled.div` + "`color: red;`" + `;
`
	prog := parse(t, "a.jsx", src)

	call := prog.Body[0].(*ast.VarDecl).Declarators[0].Init.(*ast.Call)
	assert.Equal(t, "styled", call.Callee.(*ast.Ident).Name)
	require.Len(t, call.Args, 2)
	require.Len(t, call.ArgRanges, 2)
	assert.Equal(t, "Button", call.Args[0].(*ast.Ident).Name)
	assert.Equal(t, "Button", slice(src, &call.ArgRanges[0]))
	assert.Equal(t, "{ label: 'x' }", slice(src, &call.ArgRanges[1]))

	tagged := prog.Body[1].(*ast.VarDecl).Declarators[0].Init
	assert.IsType(t, &ast.Opaque{}, tagged)
}

func TestConvert_ConditionalReturn(t *testing.T) {
	prog := parse(t, "a.jsx", `function F() { return ok ? <A /> : (<B />); }`)
	ret := prog.Body[0].(*ast.FuncDecl).Body.Stmts[0].(*ast.ReturnStmt)
	cond := ret.Arg.(*ast.Cond)
	assert.Equal(t, "A", tagText(cond.Cons.(*ast.Element).Name))
	assert.Equal(t, "B", tagText(cond.Alt.(*ast.Paren).Inner.(*ast.Element).Name))
}

func TestConvert_UnrecognisedSyntaxKeepsNestedNodes(t *testing.T) {
	prog := parse(t, "a.jsx", `
function F() {
  if (x) {
    return <A />;
  }
  return null;
}
ReactDOM.render(<App />, root);
`)
	fn := prog.Body[0].(*ast.FuncDecl)
	require.Len(t, fn.Body.Stmts, 2)
	ifStmt := fn.Body.Stmts[0].(*ast.Opaque)
	assert.Equal(t, "if_statement", ifStmt.Kind)

	var names []string
	for _, el := range elements(prog) {
		names = append(names, tagText(el.Name))
	}
	assert.Equal(t, []string{"A", "App"}, names)
}

func TestConvert_TSX(t *testing.T) {
	src := `import type { FC } from 'react';
type Props = { title: string };
export const Card: FC<Props> = ({ title }: Props): JSX.Element => {
  return <section title={title}>{title}</section>;
};
export class Panel extends Base<Props> {
  render() {
    return <div />;
  }
}
`
	prog := parse(t, "Card.tsx", src)

	var decl *ast.VarDecl
	var class *ast.ClassDecl
	for _, stmt := range prog.Body {
		if exp, ok := stmt.(*ast.ExportDecl); ok {
			switch d := exp.Decl.(type) {
			case *ast.VarDecl:
				decl = d
			case *ast.ClassDecl:
				class = d
			}
		}
	}
	require.NotNil(t, decl)
	require.NotNil(t, class)

	card := decl.Declarators[0]
	assert.Equal(t, "Card", card.Name)
	arrow := card.Init.(*ast.Arrow)
	require.NotNil(t, arrow.Block)

	assert.Equal(t, "Panel", class.Name)
	require.NotEmpty(t, class.Members)
	assert.Equal(t, "render", class.Members[0].(*ast.Method).Key)

	var names []string
	for _, el := range elements(prog) {
		names = append(names, tagText(el.Name))
	}
	assert.Equal(t, []string{"section", "div"}, names)
}
