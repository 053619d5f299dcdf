package ast

// Ident is a bare identifier reference.
type Ident struct {
	Loc  *Range
	Name string
}

// Call is `callee(args...)`. ArgRanges holds the original range of every
// argument slot so a replaced argument can be spliced back into the source.
type Call struct {
	Loc       *Range
	Callee    Expr
	Args      []Expr
	ArgRanges []Range
}

// Cond is `test ? cons : alt`.
type Cond struct {
	Loc  *Range
	Test Expr
	Cons Expr
	Alt  Expr
}

// Paren is a parenthesised expression.
type Paren struct {
	Loc   *Range
	Inner Expr
}

// Arrow is an arrow function. Exactly one of Body and Block is set.
type Arrow struct {
	Loc    *Range
	Params []Node
	Body   Expr
	Block  *Block
}

// FuncExpr is a function expression, named or anonymous.
type FuncExpr struct {
	Loc    *Range
	Name   string
	Params []Node
	Body   *Block
}

// ClassExpr is a class expression.
type ClassExpr struct {
	Loc      *Range
	Name     string
	Heritage []Node
	Members  []Member
}

func (e *Ident) Origin() *Range     { return e.Loc }
func (e *Call) Origin() *Range      { return e.Loc }
func (e *Cond) Origin() *Range      { return e.Loc }
func (e *Paren) Origin() *Range     { return e.Loc }
func (e *Arrow) Origin() *Range     { return e.Loc }
func (e *FuncExpr) Origin() *Range  { return e.Loc }
func (e *ClassExpr) Origin() *Range { return e.Loc }

func (*Ident) isExpr()     {}
func (*Call) isExpr()      {}
func (*Cond) isExpr()      {}
func (*Paren) isExpr()     {}
func (*Arrow) isExpr()     {}
func (*FuncExpr) isExpr()  {}
func (*ClassExpr) isExpr() {}
func (*Element) isExpr()   {}
func (*Fragment) isExpr()  {}
func (*Opaque) isExpr()    {}
