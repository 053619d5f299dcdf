package annotate

import (
	"strings"

	"github.com/agentic-research/annotate/internal/ast"
)

const (
	fragmentName  = "Fragment"
	namespaceName = "React"
)

// IsFragmentTag reports whether tag names the grouping component, either
// `Fragment` or `React.Fragment`.
func IsFragmentTag(tag ast.TagName) bool {
	switch t := tag.(type) {
	case *ast.TagIdent:
		return t.Name == fragmentName
	case *ast.TagMember:
		obj, ok := t.Object.(*ast.TagIdent)
		return ok && obj.Name == namespaceName && t.Prop == fragmentName
	default:
		return false
	}
}

// TagDisplayName renders tag as written: `Button`, `Tab.Panel.Item` or
// `svg:rect`. Unrecognised tag shapes render as "".
func TagDisplayName(tag ast.TagName) string {
	switch t := tag.(type) {
	case *ast.TagIdent:
		return t.Name
	case *ast.TagMember:
		var parts []string
		var cur ast.TagName = t
		for {
			m, ok := cur.(*ast.TagMember)
			if !ok {
				break
			}
			parts = append(parts, m.Prop)
			cur = m.Object
		}
		parts = append(parts, TagDisplayName(cur))
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
		return strings.Join(parts, ".")
	case *ast.TagNamespace:
		return t.Namespace + ":" + t.Name
	default:
		return ""
	}
}

// HasAttr reports whether el already carries a plain (non-namespaced)
// attribute called name. The value is not inspected.
func HasAttr(el *ast.Element, name string) bool {
	for _, item := range el.Attrs {
		if a, ok := item.(*ast.Attr); ok && a.Namespace == "" && a.Name == name {
			return true
		}
	}
	return false
}

func appendAttr(el *ast.Element, name, value string) {
	el.Attrs = append(el.Attrs, ast.NewStringAttr(name, value))
}
