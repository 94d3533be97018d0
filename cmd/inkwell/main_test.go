package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/markup"
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/snapshot"
)

// run executes the CLI with an empty config file and colors off.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "inkwell.toml")
	require.NoError(t, os.WriteFile(cfg, nil, 0o644))

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfg, "--color", "off"}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeNote(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSlug(t *testing.T) {
	out, err := run(t, "", "slug", "Hello, World!", "한국어 제목")
	require.NoError(t, err)
	assert.Equal(t, "hello-world\n한국어-제목\n", out)
}

func TestRelpath(t *testing.T) {
	out, err := run(t, "", "relpath", "/root/folder/A.md", "/root/other/B.md")
	require.NoError(t, err)
	assert.Equal(t, "../other/B.md\n", out)
}

func TestFmt_Stdin(t *testing.T) {
	out, err := run(t, "<h1>Hello World</h1>\n<p onclick=\"x()\">body</p>", "fmt")
	require.NoError(t, err)
	assert.Equal(t, `<h1 id="hello-world">Hello World</h1><p>body</p>`+"\n", out)
}

func TestFmt_WriteAndCheck(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "a.html", "<h2>Plan</h2>\n<ul><li>one</li></ul>\n")

	_, err := run(t, "", "fmt", "--check", path)
	require.Error(t, err)

	_, err = run(t, "", "fmt", "-w", path)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `<h2 id="plan">Plan</h2><ul><li><p>one</p></li></ul>`, string(got))

	_, err = run(t, "", "fmt", "--check", path)
	require.NoError(t, err)
}

func TestFmt_WriteNeedsFiles(t *testing.T) {
	_, err := run(t, "<p>x</p>", "fmt", "-w")
	require.Error(t, err)
}

func TestToc_SeveralFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeNote(t, dir, "a.html", "<h1>Alpha</h1><h2>Beta</h2>")
	b := writeNote(t, dir, "b.html", "<h1>Gamma</h1>")

	out, err := run(t, "", "toc", a, b)
	require.NoError(t, err)
	for _, want := range []string{"a.html", "- [Alpha](#alpha)", "  - [Beta](#beta)", "b.html", "- [Gamma](#gamma)"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Alpha"), strings.Index(out, "Gamma"))
}

func TestToc_MissingFile(t *testing.T) {
	_, err := run(t, "", "toc", filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
}

func TestSearch(t *testing.T) {
	path := writeNote(t, t.TempDir(), "n.html", "<p>foo bar foo</p>")

	out, err := run(t, "", "search", "FOO", path)
	require.NoError(t, err)
	assert.Equal(t, "2 match(es) for \"FOO\"\nfoo bar foo\n", out)

	out, err = run(t, "", "search", "zzz", path)
	require.NoError(t, err)
	assert.Equal(t, "no matches for \"zzz\"\n", out)
}

func TestPackUnpack(t *testing.T) {
	dir := t.TempDir()
	in := writeNote(t, dir, "n.html", `<h1 id="x">X</h1><div class="image-container size-small"><img src="a.png"></div>`)
	snap := filepath.Join(dir, "n.snap")

	_, err := run(t, "", "pack", in, snap)
	require.NoError(t, err)

	f, err := os.Open(snap)
	require.NoError(t, err)
	defer f.Close()
	s, err := snapshot.Decode(f, nil)
	require.NoError(t, err)
	want, err := markup.ParseString(`<h1 id="x">X</h1><div class="image-container size-small"><img src="a.png"></div>`, markup.Options{})
	require.NoError(t, err)
	assert.True(t, want.Eq(s.Doc), "doc: %s", s.Doc)
	assert.Equal(t, model.Cursor(0), s.Selection)

	out, err := run(t, "", "unpack", snap)
	require.NoError(t, err)
	assert.Equal(t, `<h1 id="x">X</h1><div class="image-container size-small" data-size="small"><img src="a.png"/></div>`+"\n", out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, inkwell.Describe()+"\n", out)

	out, err = run(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, inkwell.Describe()+"\n", out)
}

func TestBadFlags(t *testing.T) {
	_, err := run(t, "", "--color", "maybe", "version")
	require.Error(t, err)

	_, err = run(t, "", "--log-level", "loud", "version")
	require.Error(t, err)
}
