package writeback

import (
	"strings"

	"github.com/agentic-research/annotate/internal/ast"
)

var attrEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&quot;",
	`<`, "&lt;",
	`>`, "&gt;",
)

// Print renders n as JSX/JavaScript source. Nodes that came from src are
// copied verbatim from it; synthesised nodes are printed structurally.
// src may be nil when n is entirely synthesised.
func Print(n ast.Node, src []byte) string {
	p := &printer{src: src}
	p.print(n)
	return p.b.String()
}

type printer struct {
	src []byte
	b   strings.Builder
}

func (p *printer) print(n ast.Node) {
	if n == nil {
		return
	}
	if r := n.Origin(); r != nil && p.src != nil && int(r.EndByte) <= len(p.src) && r.StartByte <= r.EndByte {
		p.b.Write(p.src[r.StartByte:r.EndByte])
		return
	}

	switch n := n.(type) {
	case *ast.Ident:
		p.b.WriteString(n.Name)
	case *ast.Arrow:
		p.arrow(n)
	case *ast.Element:
		p.element(n)
	case *ast.Fragment:
		p.b.WriteString("<>")
		p.children(n.Children)
		p.b.WriteString("</>")
	case *ast.Text:
		p.b.WriteString(n.Raw)
	case *ast.ExprContainer:
		p.b.WriteByte('{')
		p.print(n.Expr)
		p.b.WriteByte('}')
	case *ast.Attr:
		if n.Namespace != "" {
			p.b.WriteString(n.Namespace)
			p.b.WriteByte(':')
		}
		p.b.WriteString(n.Name)
		switch {
		case n.Value != nil:
			p.b.WriteString(`="`)
			p.b.WriteString(attrEscaper.Replace(*n.Value))
			p.b.WriteByte('"')
		case n.Expr != nil:
			p.b.WriteString("={")
			p.print(n.Expr)
			p.b.WriteByte('}')
		}
	case *ast.Spread:
		p.b.WriteString("{...")
		p.print(n.Arg)
		p.b.WriteByte('}')
	case *ast.TagIdent:
		p.b.WriteString(n.Name)
	case *ast.TagMember:
		p.print(n.Object)
		p.b.WriteByte('.')
		p.b.WriteString(n.Prop)
	case *ast.TagNamespace:
		p.b.WriteString(n.Namespace)
		p.b.WriteByte(':')
		p.b.WriteString(n.Name)
	case *ast.Call:
		p.print(n.Callee)
		p.b.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.print(arg)
		}
		p.b.WriteByte(')')
	case *ast.Paren:
		p.b.WriteByte('(')
		p.print(n.Inner)
		p.b.WriteByte(')')
	}
}

func (p *printer) arrow(a *ast.Arrow) {
	if id, ok := singleIdent(a.Params); ok {
		p.print(id)
	} else {
		p.b.WriteByte('(')
		for i, param := range a.Params {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.print(param)
		}
		p.b.WriteByte(')')
	}

	p.b.WriteString(" => ")
	if a.Body != nil {
		p.print(a.Body)
	} else {
		p.b.WriteString("{}")
	}
}

func singleIdent(params []ast.Node) (*ast.Ident, bool) {
	if len(params) != 1 {
		return nil, false
	}
	id, ok := params[0].(*ast.Ident)
	return id, ok
}

func (p *printer) element(el *ast.Element) {
	p.b.WriteByte('<')
	p.print(el.Name)
	for _, item := range el.Attrs {
		p.b.WriteByte(' ')
		p.print(item)
	}
	if el.SelfClosing {
		p.b.WriteString(" />")
		return
	}
	p.b.WriteByte('>')
	p.children(el.Children)
	p.b.WriteString("</")
	p.print(el.Name)
	p.b.WriteByte('>')
}

func (p *printer) children(kids []ast.Child) {
	for _, k := range kids {
		p.print(k)
	}
}
