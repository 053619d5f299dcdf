// Package batch runs the annotation pass over files: one source at a time
// with AnnotateSource, or many files concurrently with a Runner.
package batch

import (
	"bytes"
	"context"
	"fmt"

	"github.com/agentic-research/annotate/api"
	"github.com/agentic-research/annotate/internal/annotate"
	"github.com/agentic-research/annotate/internal/ingest"
	"github.com/agentic-research/annotate/internal/writeback"
)

// Result is the outcome of annotating one source.
type Result struct {
	Path   string
	Source []byte
	// Output is the annotated source, or Source when nothing changed or the
	// file was skipped.
	Output  []byte
	Stats   annotate.Stats
	Changed bool
	// Skipped explains why the source was left unchanged despite being
	// supported. Empty otherwise.
	Skipped string
}

// AnnotateSource parses src as the file at path, annotates it and renders
// the result. Sources that do not parse cleanly, and results that would
// not parse, are returned unchanged with Skipped set; only unsupported
// files and parser failures are errors.
func AnnotateSource(ctx context.Context, src []byte, path string, opts api.Options) (*Result, error) {
	res := &Result{Path: path, Source: src, Output: src}

	f, err := ingest.Parse(ctx, src, path)
	if err != nil {
		return nil, err
	}
	if f.HasErrors {
		res.Skipped = "input has syntax errors"
		if verr := writeback.Validate(src, path); verr != nil {
			res.Skipped = fmt.Sprintf("input has syntax errors: %v", verr)
		}
		return res, nil
	}

	res.Stats = annotate.Annotate(f.Program, opts, path)
	if !res.Stats.Changed() {
		return res, nil
	}

	out, _, err := writeback.Render(src, f.Program)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}
	if err := writeback.Validate(out, path); err != nil {
		res.Skipped = fmt.Sprintf("output failed validation: %v", err)
		return res, nil
	}

	res.Output = out
	res.Changed = !bytes.Equal(out, src)
	return res, nil
}
