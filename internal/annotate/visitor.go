package annotate

import "github.com/agentic-research/annotate/internal/ast"

// visit is the generic walk. Declarations seed the component scope for
// their returned markup first, then the walk continues into their children
// with no scope, so markup nested anywhere else in the file is still
// annotated as unscoped. Synthesised nodes (nil Origin) are not entered.
func (e *Engine) visit(n ast.Node) {
	switch n := n.(type) {
	case *ast.ImportDecl:
		e.trackImport(n)

	case *ast.FuncDecl:
		if n.Name != "" && n.Body != nil {
			e.seed(n.Name, n.Body.Stmts)
		}
		e.visitNodes(n.Params)
		e.visitBlock(n.Body)

	case *ast.ClassDecl:
		if n.Name != "" {
			for _, m := range n.Members {
				if method, ok := m.(*ast.Method); ok && method.Key == "render" && method.Body != nil {
					e.seed(n.Name, method.Body.Stmts)
				}
			}
		}
		e.visitNodes(n.Heritage)
		e.visitMembers(n.Members)

	case *ast.Method:
		e.visitNodes(n.Params)
		e.visitBlock(n.Body)

	case *ast.VarDecl:
		for _, d := range n.Declarators {
			if d != nil {
				e.visitDeclarator(d)
			}
		}

	case *ast.Declarator:
		e.visitDeclarator(n)

	case *ast.ExportDecl:
		e.visit(n.Decl)

	case *ast.ReturnStmt:
		e.visit(n.Arg)

	case *ast.Block:
		e.visitBlock(n)

	case *ast.Element:
		e.visitElement(n)

	case *ast.Fragment:
		e.visitFragment(n)

	case *ast.Call:
		e.visit(n.Callee)
		for _, arg := range n.Args {
			if arg != nil && arg.Origin() != nil {
				e.visit(arg)
			}
		}

	case *ast.Cond:
		e.visit(n.Test)
		e.visit(n.Cons)
		e.visit(n.Alt)

	case *ast.Paren:
		e.visit(n.Inner)

	case *ast.Arrow:
		if n.Loc == nil {
			return
		}
		e.visitNodes(n.Params)
		e.visit(n.Body)
		e.visitBlock(n.Block)

	case *ast.FuncExpr:
		e.visitNodes(n.Params)
		e.visitBlock(n.Body)

	case *ast.ClassExpr:
		e.visitNodes(n.Heritage)
		e.visitMembers(n.Members)

	case *ast.Opaque:
		e.visitNodes(n.Children)
	}
}

func (e *Engine) visitNodes(nodes []ast.Node) {
	for _, n := range nodes {
		e.visit(n)
	}
}

func (e *Engine) visitMembers(members []ast.Member) {
	for _, m := range members {
		e.visit(m)
	}
}

func (e *Engine) visitBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Stmts {
		e.visit(stmt)
	}
}

func (e *Engine) visitDeclarator(d *ast.Declarator) {
	if d.Name != "" {
		switch init := d.Init.(type) {
		case *ast.Arrow:
			if init.Block != nil {
				e.seed(d.Name, init.Block.Stmts)
			} else if init.Body != nil {
				e.component = d.Name
				e.stats.Components++
				e.visitReturn(init.Body)
				e.component = ""
			}
		case *ast.FuncExpr:
			if init.Body != nil {
				e.seed(d.Name, init.Body.Stmts)
			}
		case *ast.Call:
			if e.rewriteStyled {
				e.rewriteStyledCall(d.Name, init)
			}
		}
	}
	e.visit(d.Pattern)
	e.visit(d.Init)
}

// seed visits the values returned by the top-level return statements of a
// declaration body with name as the active component. Returns nested in
// other statements are not considered.
func (e *Engine) seed(name string, body []ast.Stmt) {
	e.component = name
	e.stats.Components++
	for _, stmt := range body {
		if ret, ok := stmt.(*ast.ReturnStmt); ok && ret.Arg != nil {
			e.visitReturn(ret.Arg)
		}
	}
	e.component = ""
}

// visitReturn recognises markup, conditionals and parentheses. Any other
// returned value is not markup and is left alone.
func (e *Engine) visitReturn(expr ast.Expr) {
	switch x := expr.(type) {
	case *ast.Element:
		e.visitElement(x)
	case *ast.Fragment:
		e.visitFragment(x)
	case *ast.Cond:
		e.visitReturn(x.Cons)
		e.visitReturn(x.Alt)
	case *ast.Paren:
		e.visitReturn(x.Inner)
	}
}

// visitElement annotates el and descends into its markup children. A named
// fragment is transparent: it gets no attributes and its children keep the
// current scope. Element children of a real element are visited with the
// scope cleared, and it is restored once they are done. Fragment children
// always keep the scope.
func (e *Engine) visitElement(el *ast.Element) {
	transparent := IsFragmentTag(el.Name)
	if !transparent {
		e.addAttributes(el)
	}

	for _, child := range el.Children {
		switch c := child.(type) {
		case *ast.Element:
			if transparent {
				e.visitElement(c)
				continue
			}
			saved := e.component
			e.component = ""
			e.visitElement(c)
			e.component = saved
		case *ast.Fragment:
			e.visitFragment(c)
		}
	}
}

func (e *Engine) visitFragment(f *ast.Fragment) {
	for _, child := range f.Children {
		switch c := child.(type) {
		case *ast.Element:
			e.visitElement(c)
		case *ast.Fragment:
			e.visitFragment(c)
		}
	}
}
