// Command taggen generates the known-tag table of internal/markup from a
// plain text list (one tag per line, '#' starts a comment line).
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/gofumpt/format"
)

func main() {
	in := flag.String("in", "tags.txt", "Path to the tag list")
	out := flag.String("out", "tags_gen.go", "Path of the generated Go file")
	pkg := flag.String("pkg", "markup", "Package name of the generated file")
	flag.Parse()

	tags, err := readTags(*in)
	if err != nil {
		fatal(err)
	}

	src, err := generate(*pkg, *in, tags)
	if err != nil {
		fatal(err)
	}

	if err := os.WriteFile(*out, src, 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %d tags to %s\n", len(tags), *out)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// readTags returns the non-comment lines of path in file order, rejecting
// duplicates so the generated table stays a set.
func readTags(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	seen := make(map[string]bool)
	var tags []string
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		tag := strings.TrimSpace(sc.Text())
		if tag == "" || strings.HasPrefix(tag, "#") {
			continue
		}
		if seen[tag] {
			return nil, fmt.Errorf("%s:%d: duplicate tag %q", path, line, tag)
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tags, nil
}

// generate renders the Go source for the tag table and formats it with gofumpt.
func generate(pkg, source string, tags []string) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by taggen from %s. DO NOT EDIT.\n\n", source)
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	fmt.Fprintf(&buf, "// knownTagList holds the tag names listed in %s, in file order.\n", source)
	buf.WriteString("var knownTagList = []string{\n")
	for _, tag := range tags {
		fmt.Fprintf(&buf, "%q,\n", tag)
	}
	buf.WriteString("}\n")

	formatted, err := format.Source(buf.Bytes(), format.Options{})
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return formatted, nil
}
