package ast

// Block is a braced statement list.
type Block struct {
	Loc   *Range
	Stmts []Stmt
}

// FuncDecl is `function Name(params) { body }`, including generators.
type FuncDecl struct {
	Loc    *Range
	Name   string
	Params []Node
	Body   *Block
}

// ClassDecl is `class Name extends Super { members }`.
type ClassDecl struct {
	Loc      *Range
	Name     string
	Heritage []Node
	Members  []Member
}

// Method is a class method definition. Key is empty for computed or
// non-identifier keys.
type Method struct {
	Loc    *Range
	Key    string
	Params []Node
	Body   *Block
}

// VarDecl is a `var`, `let` or `const` declaration.
type VarDecl struct {
	Loc         *Range
	Kind        string
	Declarators []*Declarator
}

// Declarator is one binding of a VarDecl. Name is empty when the binding
// target is a destructuring pattern, which is kept in Pattern.
type Declarator struct {
	Loc     *Range
	Name    string
	Pattern Node
	Init    Expr
}

// ImportDecl is an `import ... from "source"` statement.
type ImportDecl struct {
	Loc    *Range
	Source string
	Specs  []*ImportSpec
}

// ImportKind distinguishes the import clause forms.
type ImportKind uint8

const (
	ImportDefault   ImportKind = iota // import x from "m"
	ImportNamed                       // import { a as x } from "m"
	ImportNamespace                   // import * as x from "m"
)

// ImportSpec is a single local binding introduced by an import.
// Imported is the exported name for ImportNamed and empty otherwise.
type ImportSpec struct {
	Kind     ImportKind
	Imported string
	Local    string
}

// ExportDecl wraps an exported declaration or default export value.
type ExportDecl struct {
	Loc  *Range
	Decl Node
}

// ReturnStmt is `return arg`. Arg is nil for a bare return.
type ReturnStmt struct {
	Loc *Range
	Arg Expr
}

func (s *Block) Origin() *Range      { return s.Loc }
func (s *FuncDecl) Origin() *Range   { return s.Loc }
func (s *ClassDecl) Origin() *Range  { return s.Loc }
func (m *Method) Origin() *Range     { return m.Loc }
func (s *VarDecl) Origin() *Range    { return s.Loc }
func (d *Declarator) Origin() *Range { return d.Loc }
func (s *ImportDecl) Origin() *Range { return s.Loc }
func (s *ExportDecl) Origin() *Range { return s.Loc }
func (s *ReturnStmt) Origin() *Range { return s.Loc }

func (*Block) isStmt()      {}
func (*FuncDecl) isStmt()   {}
func (*ClassDecl) isStmt()  {}
func (*VarDecl) isStmt()    {}
func (*ImportDecl) isStmt() {}
func (*ExportDecl) isStmt() {}
func (*ReturnStmt) isStmt() {}
func (*Opaque) isStmt()     {}

func (*Method) isMember() {}
func (*Opaque) isMember() {}
