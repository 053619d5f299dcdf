package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	buttonSrc  = "export function Button() {\n  return <button>ok</button>;\n}\n"
	buttonWant = "export function Button() {\n  return <button data-component=\"Button\" data-source-file=\"Button.jsx\">ok</button>;\n}\n"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRoot_Stdin(t *testing.T) {
	out, _, err := execute(t, buttonSrc, "--stdin-filename", "src/Button.jsx")
	require.NoError(t, err)
	assert.Equal(t, buttonWant, out)

	out, _, err = execute(t, buttonSrc, "-l", "--stdin-filename", "src/Button.jsx", "-")
	require.NoError(t, err)
	assert.Equal(t, "src/Button.jsx\n", out)
}

func TestRoot_StdinErrors(t *testing.T) {
	_, _, err := execute(t, buttonSrc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--stdin-filename")

	_, _, err = execute(t, buttonSrc, "-w", "--stdin-filename", "a.jsx")
	require.Error(t, err)

	_, _, err = execute(t, buttonSrc, "--stdin-filename", "a.ts")
	require.Error(t, err)
}

func TestRoot_WriteRelative(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "src", "Button.jsx"), buttonSrc)
	writeFile(t, filepath.Join(dir, "src", "node_modules", "x", "Dep.jsx"), buttonSrc)

	out, _, err := execute(t, "", "-w", "-l", "src")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("src", "Button.jsx")+"\n", out)

	got, err := os.ReadFile(filepath.Join(dir, "src", "Button.jsx"))
	require.NoError(t, err)
	assert.Equal(t, buttonWant, string(got))

	dep, err := os.ReadFile(filepath.Join(dir, "src", "node_modules", "x", "Dep.jsx"))
	require.NoError(t, err)
	assert.Equal(t, buttonSrc, string(dep))
}

func TestRoot_AbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Button.jsx")
	writeFile(t, path, buttonSrc)

	out, _, err := execute(t, "", "-l", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestRoot_ConfigAndOverrides(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), ".swcrc")
	writeFile(t, cfg, `{"jsc":{"experimental":{"plugins":[["annotate",{"native":true,"ignored-components":["Button"]}]]}}}`)

	// Button is ignored by the config; --native=false restores web names.
	out, _, err := execute(t, "const App = () => <div><Button /></div>;\n",
		"-c", cfg, "--config-path", "$.jsc.experimental.plugins[0][1]",
		"--native=false", "--stdin-filename", "App.jsx")
	require.NoError(t, err)
	assert.Equal(t, "const App = () => <div data-component=\"App\" data-source-file=\"App.jsx\"><Button /></div>;\n", out)
}

func TestRoot_InvalidConfigFallsBack(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "annotate.json")
	writeFile(t, cfg, `{"native": "yes"}`)

	out, errOut, err := execute(t, buttonSrc, "-c", cfg, "--stdin-filename", "Button.jsx")
	require.NoError(t, err)
	assert.Equal(t, buttonWant, out)
	assert.Contains(t, errOut, "invalid config")

	_, _, err = execute(t, buttonSrc, "-c", filepath.Join(t.TempDir(), "missing.json"), "--stdin-filename", "Button.jsx")
	require.Error(t, err)
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, buttonSrc, "--log-level", "loud", "--stdin-filename", "a.jsx")
	require.Error(t, err)
}

func TestAttrs(t *testing.T) {
	out, _, err := execute(t, "", "attrs", "--native", "--source-path-attr", "dataPath", "--ignore", "Secret")
	require.NoError(t, err)

	got := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		require.Len(t, fields, 2, line)
		got[fields[0]] = fields[1]
	}
	assert.Equal(t, map[string]string{
		"component":   "dataComponent",
		"element":     "dataElement",
		"source-file": "dataSourceFile",
		"source-path": "dataPath",
		"ignored":     "Secret",
	}, got)
}

func TestRoot_Cache(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "Button.jsx"), buttonSrc)
	db := filepath.Join(dir, "cache.db")

	_, errOut, err := execute(t, "", "-w", "--cache", db, "--log-level", "info", "Button.jsx")
	require.NoError(t, err)
	assert.Contains(t, errOut, "changed=1")

	_, errOut, err = execute(t, "", "-w", "--cache", db, "--log-level", "info", "Button.jsx")
	require.NoError(t, err)
	assert.Contains(t, errOut, "cached=1")
	assert.Contains(t, errOut, "changed=0")
}
