package ingest

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// DetectLanguageFromExt returns the language name and tree-sitter Language
// for a given file extension. Returns ok=false for unsupported extensions.
//
// Plain .ts files are not supported: the TypeScript grammar has no markup,
// so there is nothing to annotate and a rewritten call could not be parsed
// back.
func DetectLanguageFromExt(ext string) (langName string, lang *sitter.Language, ok bool) {
	switch ext {
	case ".js", ".jsx", ".mjs", ".cjs":
		return "javascript", javascript.GetLanguage(), true
	case ".tsx":
		return "tsx", tsx.GetLanguage(), true
	default:
		return "", nil, false
	}
}

// SupportedExtensions lists the extensions DetectLanguageFromExt accepts.
func SupportedExtensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".tsx"}
}
