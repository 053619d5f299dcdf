// Package ast is the syntax tree the annotation pass rewrites.
//
// Only the shapes the pass reasons about are modelled. Everything else is
// kept as an Opaque node that remembers its byte range and the recognised
// nodes nested inside it, so a walk can still reach inner declarations
// while leaving the unrecognised construct itself untouched.
package ast

// Range tracks the byte range of a construct in its source file.
// Used by write-back to splice edits into the original source.
type Range struct {
	StartByte uint32
	EndByte   uint32
}

// Node is implemented by every tree node.
type Node interface {
	// Origin returns the source range of the node, or nil for nodes
	// synthesised by a rewrite.
	Origin() *Range
}

// These interfaces are never called. Their purpose is to encode the closed
// variant sets in Go's type system.

// Stmt is a statement-level node.
type Stmt interface {
	Node
	isStmt()
}

// Expr is an expression-level node.
type Expr interface {
	Node
	isExpr()
}

// Child is a node that may appear between an element's opening and closing tags.
type Child interface {
	Node
	isChild()
}

// AttrItem is an entry of an element's attribute list.
type AttrItem interface {
	Node
	isAttrItem()
}

// TagName is the tag reference of an element.
type TagName interface {
	Node
	isTagName()
}

// Member is a class body entry.
type Member interface {
	Node
	isMember()
}

// Program is the root of one parsed file.
type Program struct {
	Loc  *Range
	Body []Stmt
}

func (p *Program) Origin() *Range { return p.Loc }

// Opaque is any construct the pass does not recognise. Children holds the
// recognised nodes found inside it, in source order.
type Opaque struct {
	Loc      *Range
	Kind     string // grammar node type, for debugging
	Children []Node
}

func (o *Opaque) Origin() *Range { return o.Loc }
