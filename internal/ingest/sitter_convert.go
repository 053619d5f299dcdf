package ingest

import (
	"github.com/agentic-research/annotate/internal/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

// converter maps a tree-sitter CST onto internal/ast. Node types it does not
// model become ast.Opaque, keeping whatever recognised nodes they contain.
type converter struct {
	src []byte
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

func loc(n *sitter.Node) *ast.Range {
	return &ast.Range{StartByte: n.StartByte(), EndByte: n.EndByte()}
}

// unquote strips the delimiters of a string literal. Escapes are kept as
// written.
func unquote(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// namedChildren returns the named children of n, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if kids := namedChildren(n); len(kids) > 0 {
		return kids[0]
	}
	return nil
}

func (c *converter) program(root *sitter.Node) *ast.Program {
	prog := &ast.Program{Loc: loc(root)}
	for _, child := range namedChildren(root) {
		if child.Type() == "hash_bang_line" {
			continue
		}
		prog.Body = append(prog.Body, c.stmt(child))
	}
	return prog
}

// node converts n in whatever position it appears.
func (c *converter) node(n *sitter.Node) ast.Node {
	switch n.Type() {
	case "import_statement", "export_statement",
		"function_declaration", "generator_function_declaration",
		"class_declaration", "abstract_class_declaration",
		"lexical_declaration", "variable_declaration",
		"return_statement", "statement_block":
		return c.stmt(n)
	case "method_definition":
		return c.method(n)
	default:
		return c.expr(n)
	}
}

func (c *converter) stmt(n *sitter.Node) ast.Stmt {
	switch n.Type() {
	case "import_statement":
		return c.importDecl(n)
	case "export_statement":
		return c.exportDecl(n)
	case "function_declaration", "generator_function_declaration":
		return c.funcDecl(n)
	case "class_declaration", "abstract_class_declaration":
		return c.classDecl(n)
	case "lexical_declaration", "variable_declaration":
		return c.varDecl(n)
	case "return_statement":
		ret := &ast.ReturnStmt{Loc: loc(n)}
		if arg := firstNamed(n); arg != nil {
			ret.Arg = c.expr(arg)
		}
		return ret
	case "statement_block":
		return c.block(n)
	default:
		return c.opaque(n)
	}
}

func (c *converter) expr(n *sitter.Node) ast.Expr {
	switch n.Type() {
	case "identifier":
		return &ast.Ident{Loc: loc(n), Name: c.text(n)}
	case "parenthesized_expression":
		p := &ast.Paren{Loc: loc(n)}
		if inner := firstNamed(n); inner != nil {
			p.Inner = c.expr(inner)
		}
		return p
	case "ternary_expression":
		return &ast.Cond{
			Loc:  loc(n),
			Test: c.fieldExpr(n, "condition"),
			Cons: c.fieldExpr(n, "consequence"),
			Alt:  c.fieldExpr(n, "alternative"),
		}
	case "call_expression":
		return c.call(n)
	case "arrow_function":
		return c.arrow(n)
	case "function", "function_expression", "generator_function":
		return &ast.FuncExpr{
			Loc:    loc(n),
			Name:   c.fieldText(n, "name"),
			Params: c.fieldCollect(n, "parameters"),
			Body:   c.fieldBlock(n, "body"),
		}
	case "class":
		name, heritage, members := c.class(n)
		return &ast.ClassExpr{Loc: loc(n), Name: name, Heritage: heritage, Members: members}
	case "jsx_element", "jsx_self_closing_element":
		return c.markup(n)
	default:
		return c.opaque(n)
	}
}

// opaque keeps the recognised descendants of an unmodelled node. Nested
// opaque nodes are flattened and bare identifiers dropped: neither has
// anything for a walk to act on.
func (c *converter) opaque(n *sitter.Node) *ast.Opaque {
	return &ast.Opaque{Loc: loc(n), Kind: n.Type(), Children: c.collect(n)}
}

func (c *converter) collect(n *sitter.Node) []ast.Node {
	var out []ast.Node
	for _, child := range namedChildren(n) {
		switch x := c.node(child).(type) {
		case *ast.Opaque:
			out = append(out, x.Children...)
		case *ast.Ident:
		default:
			out = append(out, x)
		}
	}
	return out
}

func (c *converter) fieldText(n *sitter.Node, field string) string {
	if f := n.ChildByFieldName(field); f != nil {
		return c.text(f)
	}
	return ""
}

func (c *converter) fieldExpr(n *sitter.Node, field string) ast.Expr {
	if f := n.ChildByFieldName(field); f != nil {
		return c.expr(f)
	}
	return nil
}

func (c *converter) fieldCollect(n *sitter.Node, field string) []ast.Node {
	if f := n.ChildByFieldName(field); f != nil {
		return c.collect(f)
	}
	return nil
}

func (c *converter) fieldBlock(n *sitter.Node, field string) *ast.Block {
	if f := n.ChildByFieldName(field); f != nil && f.Type() == "statement_block" {
		return c.block(f)
	}
	return nil
}

func (c *converter) funcDecl(n *sitter.Node) *ast.FuncDecl {
	return &ast.FuncDecl{
		Loc:    loc(n),
		Name:   c.fieldText(n, "name"),
		Params: c.fieldCollect(n, "parameters"),
		Body:   c.fieldBlock(n, "body"),
	}
}

func (c *converter) classDecl(n *sitter.Node) *ast.ClassDecl {
	name, heritage, members := c.class(n)
	return &ast.ClassDecl{Loc: loc(n), Name: name, Heritage: heritage, Members: members}
}

func (c *converter) block(n *sitter.Node) *ast.Block {
	b := &ast.Block{Loc: loc(n)}
	for _, child := range namedChildren(n) {
		b.Stmts = append(b.Stmts, c.stmt(child))
	}
	return b
}

func (c *converter) class(n *sitter.Node) (string, []ast.Node, []ast.Member) {
	var heritage []ast.Node
	for _, child := range namedChildren(n) {
		if child.Type() == "class_heritage" {
			heritage = c.collect(child)
		}
	}

	var members []ast.Member
	if body := n.ChildByFieldName("body"); body != nil {
		for _, child := range namedChildren(body) {
			if child.Type() == "method_definition" {
				members = append(members, c.method(child))
			} else {
				members = append(members, c.opaque(child))
			}
		}
	}
	return c.fieldText(n, "name"), heritage, members
}

// method keeps the key only when it is a plain identifier; computed and
// string keys never match a name lookup.
func (c *converter) method(n *sitter.Node) *ast.Method {
	m := &ast.Method{
		Loc:    loc(n),
		Params: c.fieldCollect(n, "parameters"),
		Body:   c.fieldBlock(n, "body"),
	}
	if key := n.ChildByFieldName("name"); key != nil && key.Type() == "property_identifier" {
		m.Key = c.text(key)
	}
	return m
}

func (c *converter) varDecl(n *sitter.Node) *ast.VarDecl {
	decl := &ast.VarDecl{Loc: loc(n)}
	if kw := n.Child(0); kw != nil {
		decl.Kind = kw.Type()
	}
	for _, child := range namedChildren(n) {
		if child.Type() != "variable_declarator" {
			continue
		}
		d := &ast.Declarator{Loc: loc(child)}
		if name := child.ChildByFieldName("name"); name != nil {
			if name.Type() == "identifier" {
				d.Name = c.text(name)
			} else {
				d.Pattern = c.opaque(name)
			}
		}
		d.Init = c.fieldExpr(child, "value")
		decl.Declarators = append(decl.Declarators, d)
	}
	return decl
}

func (c *converter) call(n *sitter.Node) ast.Expr {
	fn := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")
	// Tagged templates have a template string in place of an argument list.
	if fn == nil || args == nil || args.Type() != "arguments" {
		return c.opaque(n)
	}

	call := &ast.Call{Loc: loc(n), Callee: c.expr(fn)}
	for _, arg := range namedChildren(args) {
		call.Args = append(call.Args, c.expr(arg))
		call.ArgRanges = append(call.ArgRanges, ast.Range{StartByte: arg.StartByte(), EndByte: arg.EndByte()})
	}
	return call
}

func (c *converter) arrow(n *sitter.Node) *ast.Arrow {
	a := &ast.Arrow{Loc: loc(n)}
	if p := n.ChildByFieldName("parameter"); p != nil {
		a.Params = []ast.Node{c.node(p)}
	} else {
		a.Params = c.fieldCollect(n, "parameters")
	}

	if body := n.ChildByFieldName("body"); body != nil {
		if body.Type() == "statement_block" {
			a.Block = c.block(body)
		} else {
			a.Body = c.expr(body)
		}
	}
	return a
}

func (c *converter) importDecl(n *sitter.Node) *ast.ImportDecl {
	decl := &ast.ImportDecl{Loc: loc(n)}
	if src := n.ChildByFieldName("source"); src != nil {
		decl.Source = unquote(c.text(src))
	}

	for _, child := range namedChildren(n) {
		if child.Type() != "import_clause" {
			continue
		}
		for _, part := range namedChildren(child) {
			switch part.Type() {
			case "identifier":
				// import foo from 'bar'
				decl.Specs = append(decl.Specs, &ast.ImportSpec{Kind: ast.ImportDefault, Local: c.text(part)})
			case "namespace_import":
				// import * as foo from 'bar'
				if id := firstNamed(part); id != nil {
					decl.Specs = append(decl.Specs, &ast.ImportSpec{Kind: ast.ImportNamespace, Local: c.text(id)})
				}
			case "named_imports":
				// import { a, b as c } from 'bar'
				for _, spec := range namedChildren(part) {
					if spec.Type() == "import_specifier" {
						decl.Specs = append(decl.Specs, c.importSpec(spec))
					}
				}
			}
		}
	}
	return decl
}

// importSpec reads `name` or `name as alias`. The imported name is taken
// from the first token so that keyword names such as `default` are seen
// whether or not the grammar exposes them as a field.
func (c *converter) importSpec(n *sitter.Node) *ast.ImportSpec {
	spec := &ast.ImportSpec{Kind: ast.ImportNamed}
	first := n.ChildByFieldName("name")
	if first == nil {
		first = n.Child(0)
	}
	if first != nil && first.Type() == "type" {
		// import { type Foo } from 'bar'
		first = n.Child(1)
	}
	if first != nil {
		spec.Imported = c.text(first)
		if first.Type() == "string" {
			spec.Imported = unquote(spec.Imported)
		}
	}

	spec.Local = spec.Imported
	if alias := n.ChildByFieldName("alias"); alias != nil {
		spec.Local = c.text(alias)
	} else if count := int(n.ChildCount()); count >= 3 {
		// name 'as' alias
		if last := n.Child(count - 1); last != nil && last.Type() == "identifier" {
			spec.Local = c.text(last)
		}
	}
	return spec
}

func (c *converter) exportDecl(n *sitter.Node) ast.Stmt {
	if d := n.ChildByFieldName("declaration"); d != nil {
		return &ast.ExportDecl{Loc: loc(n), Decl: c.stmt(d)}
	}
	if v := n.ChildByFieldName("value"); v != nil {
		// `export default function Name() {}` declares Name just like a
		// plain declaration, whichever way the grammar files it.
		if v.ChildByFieldName("name") != nil {
			switch v.Type() {
			case "function", "function_expression", "generator_function":
				return &ast.ExportDecl{Loc: loc(n), Decl: c.funcDecl(v)}
			case "class":
				return &ast.ExportDecl{Loc: loc(n), Decl: c.classDecl(v)}
			}
		}
		return &ast.ExportDecl{Loc: loc(n), Decl: c.expr(v)}
	}
	return c.opaque(n)
}
