package ast

// Element is `<Name attrs>children</Name>` or `<Name attrs />`.
//
// AttrsEnd is the byte offset just after the tag name or the last original
// attribute; attributes added by a rewrite are inserted there.
type Element struct {
	Loc         *Range
	Name        TagName
	Attrs       []AttrItem
	Children    []Child
	SelfClosing bool
	AttrsEnd    uint32
}

// Fragment is `<>children</>`.
type Fragment struct {
	Loc      *Range
	Children []Child
}

// Text is literal markup text.
type Text struct {
	Loc *Range
	Raw string
}

// ExprContainer is `{expr}` between tags. Expr is nil for an empty
// container or one holding only a comment.
type ExprContainer struct {
	Loc  *Range
	Expr Expr
}

// Attr is `name`, `name="value"` or `name={expr}`. Namespace is set for
// `ns:name` attributes. Exactly one of Value (string literal, unquoted)
// and Expr may be set; both are empty for a bare boolean attribute.
type Attr struct {
	Loc       *Range
	Namespace string
	Name      string
	Value     *string
	Expr      Node
}

// Spread is `{...arg}` in an attribute list.
type Spread struct {
	Loc *Range
	Arg Expr
}

// TagIdent is a simple tag name such as `div` or `Button`.
type TagIdent struct {
	Loc  *Range
	Name string
}

// TagMember is a dotted tag reference such as `Tab.Panel`. Object is a
// TagIdent or another TagMember.
type TagMember struct {
	Loc    *Range
	Object TagName
	Prop   string
}

// TagNamespace is a namespaced tag such as `svg:rect`.
type TagNamespace struct {
	Loc       *Range
	Namespace string
	Name      string
}

// NewStringAttr returns a synthesised `name="value"` attribute.
func NewStringAttr(name, value string) *Attr {
	return &Attr{Name: name, Value: &value}
}

func (e *Element) Origin() *Range       { return e.Loc }
func (e *Fragment) Origin() *Range      { return e.Loc }
func (e *Text) Origin() *Range          { return e.Loc }
func (e *ExprContainer) Origin() *Range { return e.Loc }
func (a *Attr) Origin() *Range          { return a.Loc }
func (a *Spread) Origin() *Range        { return a.Loc }
func (t *TagIdent) Origin() *Range      { return t.Loc }
func (t *TagMember) Origin() *Range     { return t.Loc }
func (t *TagNamespace) Origin() *Range  { return t.Loc }

func (*Element) isChild()       {}
func (*Fragment) isChild()      {}
func (*Text) isChild()          {}
func (*ExprContainer) isChild() {}
func (*Opaque) isChild()        {}

func (*Attr) isAttrItem()   {}
func (*Spread) isAttrItem() {}
func (*Opaque) isAttrItem() {}

func (*TagIdent) isTagName()     {}
func (*TagMember) isTagName()    {}
func (*TagNamespace) isTagName() {}
func (*Opaque) isTagName()       {}
