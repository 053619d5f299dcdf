// Package config decodes the JSON plugin configuration into api.Options.
//
// Decoding is all-or-nothing: a document that does not match the schema
// yields the full default configuration, never a partially applied one.
// The error is still returned so callers can report it.
package config

import (
	"bytes"
	"fmt"

	"github.com/agentic-research/annotate/api"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Decode parses a JSON plugin configuration. Empty input is not an error and
// yields the defaults.
func Decode(data []byte) (api.Options, error) {
	return DecodeAt(data, "")
}

// DecodeAt parses a JSON document and decodes the value selected by the
// JSONPath expression selector, e.g. `$.jsc.experimental.plugins[0][1]` for
// an .swcrc plugin entry. An empty selector or "$" selects the whole
// document.
func DecodeAt(data []byte, selector string) (api.Options, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return api.DefaultOptions(), nil
	}

	doc, err := oj.Parse(data)
	if err != nil {
		return api.DefaultOptions(), fmt.Errorf("parse config: %w", err)
	}

	if selector != "" && selector != "$" {
		x, err := jp.ParseString(selector)
		if err != nil {
			return api.DefaultOptions(), fmt.Errorf("invalid config path '%s': %w", selector, err)
		}
		results := x.Get(doc)
		if len(results) == 0 {
			return api.DefaultOptions(), fmt.Errorf("config path '%s' matched nothing", selector)
		}
		doc = results[0]
	}

	opts, err := fromValue(doc)
	if err != nil {
		return api.DefaultOptions(), err
	}
	return opts, nil
}

// Load reads and decodes a configuration file from fs.
func Load(fs billy.Filesystem, path, selector string) (api.Options, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return api.DefaultOptions(), fmt.Errorf("read config %s: %w", path, err)
	}
	opts, err := DecodeAt(data, selector)
	if err != nil {
		return opts, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

func fromValue(v any) (api.Options, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return api.Options{}, fmt.Errorf("config must be an object, got %s", typeName(v))
	}

	var opts api.Options
	for key, val := range obj {
		var err error
		switch key {
		case "native":
			opts.Native, err = asBool(key, val)
		case "ignored-components":
			opts.IgnoredComponents, err = asStrings(key, val)
		case "component-attr":
			opts.ComponentAttr, err = asOptString(key, val)
		case "element-attr":
			opts.ElementAttr, err = asOptString(key, val)
		case "source-file-attr":
			opts.SourceFileAttr, err = asOptString(key, val)
		case "source-path-attr":
			opts.SourcePathAttr, err = asOptString(key, val)
		case "rewrite-emotion-styled":
			opts.RewriteEmotionStyled, err = asBool(key, val)
		default:
			// Unknown keys are ignored so configs shared with other tools still load.
		}
		if err != nil {
			return api.Options{}, err
		}
	}
	return opts, nil
}

func asBool(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: expected boolean, got %s", key, typeName(v))
	}
	return b, nil
}

func asStrings(key string, v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected array of strings, got %s", key, typeName(v))
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected string, got %s", key, i, typeName(item))
		}
		out = append(out, s)
	}
	return out, nil
}

// asOptString accepts a string or null; null leaves the override unset.
func asOptString(key string, v any) (*string, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &s, nil
	default:
		return nil, fmt.Errorf("%s: expected string, got %s", key, typeName(v))
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case int64, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
