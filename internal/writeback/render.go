package writeback

import (
	"github.com/agentic-research/annotate/internal/ast"
)

// Render re-serialises a rewritten program by splicing the synthesised
// parts of prog into src, the text prog was parsed from. Everything else
// is kept byte for byte. It returns the new source and the number of
// edits applied.
//
// Two kinds of synthesised nodes are recognised: attributes appended to an
// element, inserted at the element's AttrsEnd, and call arguments replaced
// in place, written over the original argument's range.
func Render(src []byte, prog *ast.Program) ([]byte, int, error) {
	edits := CollectEdits(src, prog)
	if len(edits) == 0 {
		return src, 0, nil
	}
	out, err := ApplyEdits(src, edits)
	if err != nil {
		return nil, 0, err
	}
	return out, len(edits), nil
}

// CollectEdits returns the edits Render would apply.
func CollectEdits(src []byte, prog *ast.Program) []Edit {
	c := &collector{src: src}
	if prog != nil {
		for _, stmt := range prog.Body {
			c.visit(stmt)
		}
	}
	return c.edits
}

type collector struct {
	src   []byte
	edits []Edit
}

func (c *collector) visit(n ast.Node) {
	switch n := n.(type) {
	case *ast.Element:
		c.element(n)
	case *ast.Call:
		c.visit(n.Callee)
		for i, arg := range n.Args {
			if arg == nil {
				continue
			}
			if arg.Origin() == nil {
				if i < len(n.ArgRanges) {
					r := n.ArgRanges[i]
					c.edits = append(c.edits, Edit{Start: r.StartByte, End: r.EndByte, Text: []byte(Print(arg, c.src))})
				}
				continue
			}
			c.visit(arg)
		}

	case *ast.Fragment:
		c.children(n.Children)
	case *ast.ExprContainer:
		c.visit(n.Expr)
	case *ast.Attr:
		c.visit(n.Expr)
	case *ast.Spread:
		c.visit(n.Arg)

	case *ast.Block:
		if n != nil {
			for _, s := range n.Stmts {
				c.visit(s)
			}
		}
	case *ast.FuncDecl:
		c.nodes(n.Params)
		c.visit(n.Body)
	case *ast.ClassDecl:
		c.nodes(n.Heritage)
		c.members(n.Members)
	case *ast.Method:
		c.nodes(n.Params)
		c.visit(n.Body)
	case *ast.VarDecl:
		for _, d := range n.Declarators {
			if d != nil {
				c.visit(d.Pattern)
				c.visit(d.Init)
			}
		}
	case *ast.ExportDecl:
		c.visit(n.Decl)
	case *ast.ReturnStmt:
		c.visit(n.Arg)
	case *ast.Cond:
		c.visit(n.Test)
		c.visit(n.Cons)
		c.visit(n.Alt)
	case *ast.Paren:
		c.visit(n.Inner)
	case *ast.Arrow:
		c.nodes(n.Params)
		c.visit(n.Body)
		c.visit(n.Block)
	case *ast.FuncExpr:
		c.nodes(n.Params)
		c.visit(n.Body)
	case *ast.ClassExpr:
		c.nodes(n.Heritage)
		c.members(n.Members)
	case *ast.Opaque:
		c.nodes(n.Children)
	}
}

// element emits one insertion holding every attribute added to el, in
// list order, then continues into the original parts of el.
func (c *collector) element(el *ast.Element) {
	var text []byte
	for _, item := range el.Attrs {
		if item.Origin() == nil {
			text = append(text, ' ')
			text = append(text, Print(item, c.src)...)
			continue
		}
		c.visit(item)
	}
	if len(text) > 0 {
		c.edits = append(c.edits, Edit{Start: el.AttrsEnd, End: el.AttrsEnd, Text: text})
	}
	c.children(el.Children)
}

func (c *collector) children(kids []ast.Child) {
	for _, k := range kids {
		c.visit(k)
	}
}

func (c *collector) nodes(nodes []ast.Node) {
	for _, n := range nodes {
		c.visit(n)
	}
}

func (c *collector) members(members []ast.Member) {
	for _, m := range members {
		c.visit(m)
	}
}
