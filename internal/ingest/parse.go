package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentic-research/annotate/internal/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

// ErrUnsupported is returned for files whose extension has no grammar.
var ErrUnsupported = errors.New("unsupported file type")

// File is a parsed source file.
type File struct {
	Path     string
	Language string
	Source   []byte
	Program  *ast.Program
	// HasErrors is set when tree-sitter had to recover from syntax errors.
	// The tree is still converted, but byte ranges around the error may
	// not line up with valid syntax, so callers should not rewrite it.
	HasErrors bool
}

// Parse parses src as the language implied by path's extension and
// converts the result into an ast.Program.
func Parse(ctx context.Context, src []byte, path string) (*File, error) {
	name, lang, ok := DetectLanguageFromExt(strings.ToLower(filepath.Ext(path)))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	// New parser per call: parsers are not safe for concurrent use.
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed for %s: %w", path, err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled for %s: %w", path, err)
	}

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root for %s", path)
	}

	c := &converter{src: src}
	return &File{
		Path:      path,
		Language:  name,
		Source:    src,
		Program:   c.program(root),
		HasErrors: root.HasError(),
	}, nil
}
