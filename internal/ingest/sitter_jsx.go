package ingest

import (
	"github.com/agentic-research/annotate/internal/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

// markupNode is what a JSX node converts to: an Element, a Fragment, or an
// Opaque for shapes the converter does not understand. Each is valid both
// as an expression and as a markup child.
type markupNode interface {
	ast.Expr
	ast.Child
}

func (c *converter) markup(n *sitter.Node) markupNode {
	if n.Type() == "jsx_self_closing_element" {
		el := c.element(n, n)
		if el == nil {
			return c.opaque(n)
		}
		el.SelfClosing = true
		return el
	}

	open := n.ChildByFieldName("open_tag")
	if open == nil {
		for _, child := range namedChildren(n) {
			if child.Type() == "jsx_opening_element" {
				open = child
				break
			}
		}
	}
	if open == nil {
		return c.opaque(n)
	}

	// `<>` is an opening element without a name.
	if tagNameNode(open) == nil {
		return &ast.Fragment{Loc: loc(n), Children: c.markupChildren(n)}
	}

	el := c.element(n, open)
	if el == nil {
		return c.opaque(n)
	}
	el.Children = c.markupChildren(n)
	return el
}

func isTagNameType(t string) bool {
	switch t {
	case "identifier", "jsx_identifier", "type_identifier", "this",
		"member_expression", "nested_identifier", "jsx_namespace_name":
		return true
	default:
		return false
	}
}

// tagNameNode finds the tag name of an opening or self-closing tag.
func tagNameNode(tag *sitter.Node) *sitter.Node {
	if name := tag.ChildByFieldName("name"); name != nil {
		return name
	}
	if first := firstNamed(tag); first != nil && isTagNameType(first.Type()) {
		return first
	}
	return nil
}

// element converts the tag part of a markup node. whole is the full element
// node, tag its opening (or self-closing) tag.
func (c *converter) element(whole, tag *sitter.Node) *ast.Element {
	name := tagNameNode(tag)
	if name == nil {
		return nil
	}

	el := &ast.Element{
		Loc:      loc(whole),
		Name:     c.tagName(name),
		AttrsEnd: name.EndByte(),
	}

	seenName := false
	for _, child := range namedChildren(tag) {
		if !seenName {
			if child.StartByte() == name.StartByte() && child.EndByte() == name.EndByte() {
				seenName = true
			}
			continue
		}
		switch child.Type() {
		case "jsx_attribute":
			el.Attrs = append(el.Attrs, c.attr(child))
		case "jsx_expression":
			el.Attrs = append(el.Attrs, c.spread(child))
		default:
			// type arguments and anything else between name and '>'
			el.Attrs = append(el.Attrs, c.opaque(child))
		}
		el.AttrsEnd = child.EndByte()
	}
	return el
}

func (c *converter) tagName(n *sitter.Node) ast.TagName {
	switch n.Type() {
	case "identifier", "jsx_identifier", "type_identifier", "property_identifier", "this":
		return &ast.TagIdent{Loc: loc(n), Name: c.text(n)}
	case "member_expression", "nested_identifier":
		obj := n.ChildByFieldName("object")
		prop := n.ChildByFieldName("property")
		if obj == nil || prop == nil {
			kids := namedChildren(n)
			if len(kids) < 2 {
				return c.opaque(n)
			}
			obj, prop = kids[0], kids[len(kids)-1]
		}
		return &ast.TagMember{Loc: loc(n), Object: c.tagName(obj), Prop: c.text(prop)}
	case "jsx_namespace_name":
		kids := namedChildren(n)
		if len(kids) != 2 {
			return c.opaque(n)
		}
		return &ast.TagNamespace{Loc: loc(n), Namespace: c.text(kids[0]), Name: c.text(kids[1])}
	default:
		return c.opaque(n)
	}
}

func (c *converter) attr(n *sitter.Node) ast.AttrItem {
	kids := namedChildren(n)
	if len(kids) == 0 {
		return c.opaque(n)
	}

	a := &ast.Attr{Loc: loc(n)}
	if name := kids[0]; name.Type() == "jsx_namespace_name" {
		parts := namedChildren(name)
		if len(parts) != 2 {
			return c.opaque(n)
		}
		a.Namespace, a.Name = c.text(parts[0]), c.text(parts[1])
	} else {
		a.Name = c.text(name)
	}

	if len(kids) > 1 {
		switch v := kids[1]; v.Type() {
		case "string":
			s := unquote(c.text(v))
			a.Value = &s
		case "jsx_expression":
			a.Expr = c.containerExpr(v)
		default:
			a.Expr = c.expr(v)
		}
	}
	return a
}

// spread converts `{...props}` in an attribute list.
func (c *converter) spread(n *sitter.Node) ast.AttrItem {
	inner := firstNamed(n)
	if inner == nil || inner.Type() != "spread_element" {
		return c.opaque(n)
	}
	s := &ast.Spread{Loc: loc(n)}
	if arg := firstNamed(inner); arg != nil {
		s.Arg = c.expr(arg)
	}
	return s
}

// containerExpr returns the expression inside `{...}`, or nil when the
// container is empty or holds only a comment.
func (c *converter) containerExpr(n *sitter.Node) ast.Expr {
	if inner := firstNamed(n); inner != nil {
		return c.expr(inner)
	}
	return nil
}

func (c *converter) markupChildren(n *sitter.Node) []ast.Child {
	var out []ast.Child
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "jsx_opening_element", "jsx_closing_element":
		case "jsx_text", "html_character_reference":
			out = append(out, &ast.Text{Loc: loc(child), Raw: c.text(child)})
		case "jsx_element", "jsx_self_closing_element":
			out = append(out, c.markup(child))
		case "jsx_expression":
			out = append(out, &ast.ExprContainer{Loc: loc(child), Expr: c.containerExpr(child)})
		default:
			out = append(out, c.opaque(child))
		}
	}
	return out
}
