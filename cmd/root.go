package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentic-research/annotate/api"
	"github.com/agentic-research/annotate/internal/batch"
	"github.com/agentic-research/annotate/internal/cache"
	"github.com/agentic-research/annotate/internal/config"
	"github.com/agentic-research/annotate/internal/writeback"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
)

// rootFlags holds the flag values of one command tree.
type rootFlags struct {
	write    bool
	list     bool
	diff     bool
	jobs     int
	exclude  []string
	stdin    string
	logLevel string
	cache    string

	configFile string
	configPath string

	native         bool
	ignore         []string
	rewriteStyled  bool
	componentAttr  string
	elementAttr    string
	sourceFileAttr string
	sourcePathAttr string
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "annotate [flags] [path ...]",
		Short: "Annotate JSX with component, element and source file attributes",
		Long: `annotate adds metadata attributes to the JSX of React components so
rendered markup can be traced back to the component and file that produced it.

Paths may be files or directories. With no paths, or the single path "-",
source is read from stdin and --stdin-filename names it.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, f, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&f.write, "write", "w", false, "Write results back to the source files")
	flags.BoolVarP(&f.list, "list", "l", false, "List files whose annotation would change")
	flags.BoolVarP(&f.diff, "diff", "d", false, "Print a unified diff instead of the annotated source")
	flags.IntVarP(&f.jobs, "jobs", "j", 0, "Files processed concurrently (0 means one per CPU)")
	flags.StringSliceVar(&f.exclude, "exclude", batch.DefaultExclude, "Glob patterns of paths to skip while walking directories")
	flags.StringVar(&f.stdin, "stdin-filename", "", "File name to use for source read from stdin")
	flags.StringVar(&f.cache, "cache", "", "Path to a cache database of files already annotated")

	pflags := cmd.PersistentFlags()
	pflags.StringVar(&f.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	pflags.StringVarP(&f.configFile, "config", "c", "", "Path to a JSON plugin configuration")
	pflags.StringVar(&f.configPath, "config-path", "", "JSONPath of the plugin options inside --config, e.g. $.jsc.experimental.plugins[0][1]")
	pflags.BoolVar(&f.native, "native", false, "Use React Native attribute names")
	pflags.StringSliceVar(&f.ignore, "ignore", nil, "Component or element names that never receive attributes")
	pflags.BoolVar(&f.rewriteStyled, "rewrite-emotion-styled", false, "Wrap components passed to @emotion/styled")
	pflags.StringVar(&f.componentAttr, "component-attr", "", "Override the component attribute name")
	pflags.StringVar(&f.elementAttr, "element-attr", "", "Override the element attribute name")
	pflags.StringVar(&f.sourceFileAttr, "source-file-attr", "", "Override the source file attribute name")
	pflags.StringVar(&f.sourcePathAttr, "source-path-attr", "", "Emit the source path under this attribute name")

	cmd.AddCommand(newAttrsCmd(f))
	cmd.AddCommand(newMCPCmd(f))
	return cmd
}

func runRoot(cmd *cobra.Command, f *rootFlags, args []string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), f.logLevel)
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cmd, f, logger)
	if err != nil {
		return err
	}

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return runStdin(cmd, f, opts)
	}

	fs, paths, err := hostFS(args)
	if err != nil {
		return err
	}

	batchOpts := batch.Options{
		Plugin:  opts,
		Write:   f.write,
		List:    f.list,
		Diff:    f.diff,
		Jobs:    f.jobs,
		Exclude: f.exclude,
	}
	if f.cache != "" {
		c, err := cache.Open(f.cache)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()
		batchOpts.Cache = c
	}

	runner := batch.NewRunner(fs, batchOpts, logger, cmd.OutOrStdout())

	report, err := runner.Run(cmd.Context(), paths)
	if err != nil {
		return err
	}
	logger.Info("done",
		"files", report.Files,
		"changed", report.Changed,
		"skipped", report.Skipped,
		"cached", report.Cached,
	)
	return nil
}

func runStdin(cmd *cobra.Command, f *rootFlags, opts api.Options) error {
	if f.write {
		return errors.New("cannot use --write with stdin")
	}
	if f.stdin == "" {
		return errors.New("--stdin-filename is required when reading from stdin")
	}

	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	res, err := batch.AnnotateSource(cmd.Context(), src, f.stdin, opts)
	if err != nil {
		return err
	}
	if res.Skipped != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: left unchanged: %s\n", f.stdin, res.Skipped)
	}

	out := cmd.OutOrStdout()
	switch {
	case f.list:
		if res.Changed {
			_, err = fmt.Fprintln(out, f.stdin)
		}
	case f.diff:
		_, err = io.WriteString(out, writeback.ColorDiff(writeback.UnifiedDiff(f.stdin, res.Source, res.Output)))
	default:
		_, err = out.Write(res.Output)
	}
	return err
}

// resolveOptions loads --config, if any, and applies the flag overrides on
// top. A config that cannot be decoded is reported and replaced by the
// defaults; a config that cannot be read is an error.
func resolveOptions(cmd *cobra.Command, f *rootFlags, logger *slog.Logger) (api.Options, error) {
	opts := api.DefaultOptions()
	if f.configFile != "" {
		data, err := os.ReadFile(f.configFile)
		if err != nil {
			return opts, fmt.Errorf("read config: %w", err)
		}
		opts, err = config.DecodeAt(data, f.configPath)
		if err != nil {
			logger.Warn("invalid config, using defaults", "path", f.configFile, "err", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("native") {
		opts.Native = f.native
	}
	if flags.Changed("rewrite-emotion-styled") {
		opts.RewriteEmotionStyled = f.rewriteStyled
	}
	opts.IgnoredComponents = append(opts.IgnoredComponents, f.ignore...)
	for name, dst := range map[string]**string{
		"component-attr":   &opts.ComponentAttr,
		"element-attr":     &opts.ElementAttr,
		"source-file-attr": &opts.SourceFileAttr,
		"source-path-attr": &opts.SourcePathAttr,
	} {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			*dst = api.String(v)
		}
	}
	return opts, nil
}

// hostFS returns a filesystem rooted at the working directory when every
// path stays below it, so paths are reported as given. Otherwise it roots
// the filesystem at / and makes every path absolute.
func hostFS(args []string) (billy.Filesystem, []string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("get working directory: %w", err)
	}

	local := true
	for _, p := range args {
		clean := filepath.Clean(p)
		if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			local = false
			break
		}
	}
	if local {
		paths := make([]string, len(args))
		for i, p := range args {
			paths[i] = filepath.Clean(p)
		}
		return osfs.New(cwd), paths, nil
	}

	paths := make([]string, len(args))
	for i, p := range args {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, nil, err
		}
		paths[i] = abs
	}
	return osfs.New(string(filepath.Separator)), paths, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
