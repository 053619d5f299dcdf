package annotate

import "github.com/agentic-research/annotate/api"

// AttrNames holds the resolved metadata attribute names for one run.
type AttrNames struct {
	Component  string
	Element    string
	SourceFile string
	SourcePath string
	// EmitSourcePath is true only when the source path attribute name was
	// configured explicitly.
	EmitSourcePath bool
}

// ResolveNames picks the attribute names for opts. An override always wins
// over the web or native default.
func ResolveNames(opts api.Options) AttrNames {
	pick := func(override *string, web, native string) string {
		switch {
		case override != nil:
			return *override
		case opts.Native:
			return native
		default:
			return web
		}
	}
	return AttrNames{
		Component:      pick(opts.ComponentAttr, "data-component", "dataComponent"),
		Element:        pick(opts.ElementAttr, "data-element", "dataElement"),
		SourceFile:     pick(opts.SourceFileAttr, "data-source-file", "dataSourceFile"),
		SourcePath:     pick(opts.SourcePathAttr, "data-source-path", "dataSourcePath"),
		EmitSourcePath: opts.SourcePathAttr != nil,
	}
}
