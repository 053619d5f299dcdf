package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/agentic-research/annotate/api"
	"github.com/agentic-research/annotate/internal/cache"
	"github.com/agentic-research/annotate/internal/ingest"
	"github.com/agentic-research/annotate/internal/writeback"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"
)

// DefaultExclude is applied by the CLI when no --exclude is given.
var DefaultExclude = []string{"**/node_modules/**"}

// Options configures a Runner.
type Options struct {
	Plugin api.Options
	// Write replaces changed files in place.
	Write bool
	// List prints the paths of files that would change.
	List bool
	// Diff prints a unified diff for files that would change.
	Diff bool
	// Jobs bounds concurrent files; <= 0 means GOMAXPROCS.
	Jobs int
	// Exclude holds doublestar patterns matched against slash-separated
	// paths found while walking directories.
	Exclude []string
	// Extensions limits directory walks; nil means every supported one.
	Extensions []string
	// Cache, when set, skips files recorded as up to date and records the
	// files that end the run annotated.
	Cache Cache
}

// Cache is the store behind Options.Cache, implemented by *cache.Cache.
type Cache interface {
	Fresh(path, digest string) (bool, error)
	Store(entries []cache.Entry) error
}

// Report summarises a run.
type Report struct {
	Files   int
	Changed int
	Skipped int
	// Cached counts files skipped because the cache had them up to date.
	Cached int
}

// Runner annotates files on a billy filesystem.
type Runner struct {
	fs     billy.Filesystem
	opts   Options
	logger *slog.Logger
	out    io.Writer
}

func NewRunner(fs billy.Filesystem, opts Options, logger *slog.Logger, out io.Writer) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = ingest.SupportedExtensions()
	}
	return &Runner{fs: fs, opts: opts, logger: logger, out: out}
}

type fileResult struct {
	res    *Result
	err    error
	cached bool
}

// Run annotates every file named by paths, walking directories. Files are
// processed concurrently and reported in input order. A file that cannot
// be read or annotated is logged and counted as skipped; Run itself only
// fails when a path does not exist, output cannot be written, or ctx is
// canceled.
func (r *Runner) Run(ctx context.Context, paths []string) (*Report, error) {
	files, err := r.expand(paths)
	if err != nil {
		return nil, err
	}

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexes are unique per goroutine, so no lock is needed.
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(jobs, len(files)), 1))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			src, err := util.ReadFile(r.fs, path)
			if err != nil {
				results[i] = fileResult{err: fmt.Errorf("read %s: %w", path, err)}
				return nil
			}
			if r.fresh(path, src) {
				results[i] = fileResult{res: &Result{Path: path, Source: src, Output: src}, cached: true}
				return nil
			}
			res, err := AnnotateSource(gctx, src, path, r.opts.Plugin)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = fileResult{res: res, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{}
	var entries []cache.Entry
	for i, path := range files {
		report.Files++
		fr := results[i]
		if fr.cached {
			report.Cached++
		}
		if fr.err != nil {
			r.logger.Warn("skipping file", "path", path, "err", fr.err)
			report.Skipped++
			continue
		}
		if fr.res.Skipped != "" {
			r.logger.Warn("file left unchanged", "path", path, "reason", fr.res.Skipped)
			report.Skipped++
		}
		r.logger.Debug("annotated",
			"path", path,
			"components", fr.res.Stats.Components,
			"attrs", fr.res.Stats.Attrs,
			"styled", fr.res.Stats.StyledRewrites,
		)
		if fr.res.Changed {
			report.Changed++
		}
		if err := r.emit(fr.res); err != nil {
			return report, err
		}
		if r.opts.Cache != nil && fr.res.Skipped == "" {
			switch {
			case !fr.res.Changed:
				entries = append(entries, cache.Entry{Path: path, Digest: cache.Digest(r.opts.Plugin, fr.res.Source)})
			case r.opts.Write:
				entries = append(entries, cache.Entry{Path: path, Digest: cache.Digest(r.opts.Plugin, fr.res.Output)})
			}
		}
	}

	if r.opts.Cache != nil {
		if err := r.opts.Cache.Store(entries); err != nil {
			r.logger.Warn("cache update failed", "err", err)
		}
	}
	return report, nil
}

// fresh reports whether the cache has path recorded as up to date with
// content src. Cache errors are logged and treated as a miss.
func (r *Runner) fresh(path string, src []byte) bool {
	if r.opts.Cache == nil {
		return false
	}
	ok, err := r.opts.Cache.Fresh(path, cache.Digest(r.opts.Plugin, src))
	if err != nil {
		r.logger.Warn("cache lookup failed", "path", path, "err", err)
		return false
	}
	return ok
}

// emit produces the output for one file according to the output mode.
// Without -w, -l or -d every file's annotated source goes to the writer.
func (r *Runner) emit(res *Result) error {
	if !r.opts.Write && !r.opts.List && !r.opts.Diff {
		_, err := r.out.Write(res.Output)
		return err
	}
	if !res.Changed {
		return nil
	}
	if r.opts.List {
		if _, err := fmt.Fprintln(r.out, res.Path); err != nil {
			return err
		}
	}
	if r.opts.Diff {
		diff := writeback.UnifiedDiff(res.Path, res.Source, res.Output)
		if _, err := io.WriteString(r.out, writeback.ColorDiff(diff)); err != nil {
			return err
		}
	}
	if r.opts.Write {
		if err := writeback.WriteFile(r.fs, res.Path, res.Output); err != nil {
			return fmt.Errorf("write %s: %w", res.Path, err)
		}
	}
	return nil
}

// expand resolves paths into the list of files to process, in order and
// without duplicates. Files named explicitly are kept even when they match
// an exclude pattern.
func (r *Runner) expand(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := r.fs.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			if !r.supported(root) {
				r.logger.Warn("unsupported file type", "path", root)
				continue
			}
			add(root)
			continue
		}

		err = util.Walk(r.fs, root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if p != root && r.excluded(p+"/") {
					return filepath.SkipDir
				}
				return nil
			}
			if r.supported(p) && !r.excluded(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return files, nil
}

func (r *Runner) supported(path string) bool {
	return slices.Contains(r.opts.Extensions, strings.ToLower(filepath.Ext(path)))
}

func (r *Runner) excluded(path string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range r.opts.Exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// bad pattern shouldn't break the walk
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// IsUnsupported reports whether err means the file type has no grammar.
func IsUnsupported(err error) bool {
	return errors.Is(err, ingest.ErrUnsupported)
}
