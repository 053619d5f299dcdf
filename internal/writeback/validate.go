package writeback

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentic-research/annotate/internal/ingest"
	sitter "github.com/smacker/go-tree-sitter"
)

// ValidationError contains structured information about a syntax error.
type ValidationError struct {
	FilePath string
	Line     uint32 // 0-indexed
	Column   uint32 // 0-indexed
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line+1, e.Column+1, e.Message)
}

// Validate parses content with tree-sitter and returns an error if the AST
// contains syntax errors. Files with no known tree-sitter language pass
// through without validation (returns nil).
func Validate(content []byte, filePath string) error {
	root, done, err := parseRoot(content, filePath)
	if err != nil || root == nil {
		return err
	}
	defer done()

	if !root.HasError() {
		return nil
	}

	// Walk tree to find first ERROR node for a useful error message
	if errNode := findFirstError(root); errNode != nil {
		return &ValidationError{
			FilePath: filePath,
			Line:     errNode.StartPoint().Row,
			Column:   errNode.StartPoint().Column,
			Message:  "syntax error in AST",
		}
	}

	return &ValidationError{
		FilePath: filePath,
		Message:  "AST contains errors",
	}
}

// ASTErrors returns all ERROR node locations in the content for diagnostic reporting.
// Returns nil if no errors or unknown language.
func ASTErrors(content []byte, filePath string) []ValidationError {
	root, done, err := parseRoot(content, filePath)
	if err != nil || root == nil {
		return nil
	}
	defer done()

	if !root.HasError() {
		return nil
	}

	var errs []ValidationError
	collectErrors(root, filePath, &errs)
	return errs
}

// parseRoot returns a nil root for files with no known language. done
// releases the tree and must be called once root is no longer used.
func parseRoot(content []byte, filePath string) (*sitter.Node, func(), error) {
	_, lang, ok := ingest.DetectLanguageFromExt(strings.ToLower(filepath.Ext(filePath)))
	if !ok {
		return nil, nil, nil // unknown language, pass through
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, nil, fmt.Errorf("tree-sitter parse failed for %s: %w", filePath, err)
	}

	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, nil, fmt.Errorf("tree-sitter returned nil root for %s", filePath)
	}
	return root, tree.Close, nil
}

// findFirstError does a depth-first search for the first ERROR node.
func findFirstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			if found := findFirstError(child); found != nil {
				return found
			}
		}
	}
	return nil
}

// collectErrors gathers all ERROR/MISSING nodes in the tree.
func collectErrors(node *sitter.Node, filePath string, errs *[]ValidationError) {
	if node.IsError() || node.IsMissing() {
		msg := "syntax error in AST"
		if node.IsMissing() {
			msg = fmt.Sprintf("missing %s", node.Type())
		}
		*errs = append(*errs, ValidationError{
			FilePath: filePath,
			Line:     node.StartPoint().Row,
			Column:   node.StartPoint().Column,
			Message:  msg,
		})
		return // don't recurse into error children
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			collectErrors(child, filePath, errs)
		}
	}
}
