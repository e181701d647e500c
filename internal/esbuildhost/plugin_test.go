package esbuildhost

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rawassets/internal/plugin"
	"git.home.luguber.info/inful/rawassets/internal/rawasset"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func bundle(dir string, plugins ...api.Plugin) api.BuildResult {
	return api.Build(api.BuildOptions{
		EntryPoints:      []string{filepath.Join(dir, "main.js")},
		Bundle:           true,
		Write:            false,
		Outdir:           filepath.Join(dir, "out"),
		Format:           api.FormatESModule,
		MinifyWhitespace: true,
		LogLevel:         api.LogLevelSilent,
		Plugins:          plugins,
	})
}

func TestFilter(t *testing.T) {
	re := regexp.MustCompile(Filter(rawasset.MustExtensions(".ttf", ".woff2")))

	require.True(t, re.MatchString("/a/font.ttf"))
	require.True(t, re.MatchString("/a/font.woff2"))
	require.False(t, re.MatchString("/a/font.ttfx"))
	require.False(t, re.MatchString("/a/fontxttf"), "dots must be escaped")
}

func TestPluginInlinesFont(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.js":  `import font from "./font.ttf"; console.log(font.data.length);`,
		"font.ttf": "\x00\x01\x02",
	})
	tr := rawasset.NewTransformer(rawasset.MustExtensions(".ttf"))

	result := bundle(dir, Plugin(tr, tr.Extensions()))
	require.Empty(t, result.Errors)
	require.Len(t, result.OutputFiles, 1)

	out := string(result.OutputFiles[0].Contents)
	require.Contains(t, out, "Buffer")
	require.Contains(t, out, "[0,1,2]")
}

func TestPluginDefersUnhandledModules(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.js":   `import notes from "./notes.txt"; console.log(notes);`,
		"notes.txt": "plain text asset",
	})
	// The filter admits .txt but the transformer only handles .ttf, so esbuild
	// must fall back to its default text loader.
	tr := rawasset.NewTransformer(rawasset.MustExtensions(".ttf"))

	result := bundle(dir, Plugin(tr, rawasset.MustExtensions(".ttf", ".txt")))
	require.Empty(t, result.Errors)
	require.Contains(t, string(result.OutputFiles[0].Contents), "plain text asset")
}

func TestPluginReadFailureFailsBuild(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.js":  `import font from "./font.ttf"; console.log(font);`,
		"font.ttf": "\x00",
	})
	// esbuild resolves the file on disk; the transformer reads from an empty
	// filesystem so the read fails after resolution.
	tr := rawasset.NewTransformer(rawasset.MustExtensions(".ttf"), rawasset.WithFilesystem(memfs.New()))

	result := bundle(dir, Plugin(tr, tr.Extensions()))
	require.NotEmpty(t, result.Errors)
	require.Empty(t, result.OutputFiles)

	msg := result.Errors[0]
	require.Equal(t, rawasset.DefaultPluginName, msg.PluginName)
	require.Contains(t, msg.Text, "read asset")
	require.True(t, strings.Contains(msg.Text, "font.ttf"), "error must name the offending path: %s", msg.Text)
}

func TestPipelineReadFailureKeepsPluginError(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.js":  `import font from "./font.ttf"; console.log(font);`,
		"font.ttf": "\x00",
	})
	tr := rawasset.NewTransformer(rawasset.MustExtensions(".ttf"), rawasset.WithFilesystem(memfs.New()))
	p, err := plugin.NewPipeline(tr)
	require.NoError(t, err)

	result := bundle(dir, Plugin(p, tr.Extensions()))
	require.Len(t, result.Errors, 1)

	msg := result.Errors[0]
	require.Equal(t, rawasset.DefaultPluginName, msg.PluginName)

	detail, ok := msg.Detail.(error)
	require.True(t, ok, "esbuild must keep the callback error as the message detail")
	var pluginErr *plugin.PluginError
	require.ErrorAs(t, detail, &pluginErr)
	require.Equal(t, filepath.Join(dir, "font.ttf"), pluginErr.ModuleID)
	require.True(t, rawasset.IsAssetReadError(detail))
}
