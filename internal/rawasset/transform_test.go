package rawasset

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rawassets/internal/foundation/errors"
	"git.home.luguber.info/inful/rawassets/internal/metrics"
	"git.home.luguber.info/inful/rawassets/internal/plugin"
)

// countingFS counts files opened through it.
type countingFS struct {
	billy.Filesystem
	reads atomic.Int64
}

func (c *countingFS) Open(name string) (billy.File, error) {
	c.reads.Add(1)
	return c.Filesystem.Open(name)
}

func (c *countingFS) OpenFile(name string, flag int, perm os.FileMode) (billy.File, error) {
	c.reads.Add(1)
	return c.Filesystem.OpenFile(name, flag, perm)
}

func newCountingFS(t *testing.T, files map[string][]byte) *countingFS {
	t.Helper()
	fs := memfs.New()
	for name, data := range files {
		require.NoError(t, util.WriteFile(fs, name, data, 0o644))
	}
	return &countingFS{Filesystem: fs}
}

func decodeResult(t *testing.T, res plugin.Result) []byte {
	t.Helper()
	tr, ok := plugin.IsTransformed(res)
	require.True(t, ok, "expected a transformed module, got %T", res)
	require.Nil(t, tr.Map)
	data, err := Decode(tr.Code)
	require.NoError(t, err)
	return data
}

func TestTransformNoMatchPerformsNoReads(t *testing.T) {
	fs := newCountingFS(t, map[string][]byte{"icon.svg": []byte("<svg/>")})
	tr := NewTransformer(MustExtensions(".ttf", ".otf"), WithFilesystem(fs))

	for _, id := range []string{"icon.svg", "foo.ttfx", "foo.TTF", "font.ttf?url"} {
		res, err := tr.Transform(nil, id)
		require.NoError(t, err)
		require.Equal(t, plugin.NoTransform, res, id)
	}
	require.Zero(t, fs.reads.Load())
}

func TestTransformInlinesBytes(t *testing.T) {
	fs := newCountingFS(t, map[string][]byte{
		"font.ttf":  {0x00, 0x01, 0x02},
		"empty.otf": {},
		"bin.ttf":   {0xff, 0xfe, 0x00, 0xc3, 0x28},
	})
	tr := NewTransformer(MustExtensions(".ttf", ".otf"), WithFilesystem(fs))

	res, err := tr.Transform(nil, "font.ttf")
	require.NoError(t, err)
	require.Equal(t, []byte{0, 1, 2}, decodeResult(t, res))
	require.Equal(t, int64(1), fs.reads.Load(), "exactly one read per matched request")

	res, err = tr.Transform(nil, "empty.otf")
	require.NoError(t, err)
	require.Empty(t, decodeResult(t, res))

	res, err = tr.Transform([]byte("ignored source"), "bin.ttf")
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xfe, 0x00, 0xc3, 0x28}, decodeResult(t, res))
}

func TestTransformIsIdempotent(t *testing.T) {
	fs := newCountingFS(t, map[string][]byte{"font.ttf": []byte("glyphs\x00\x01")})
	tr := NewTransformer(MustExtensions(".ttf"), WithFilesystem(fs))

	first, err := tr.Transform(nil, "font.ttf")
	require.NoError(t, err)
	second, err := tr.Transform(nil, "font.ttf")
	require.NoError(t, err)

	a, _ := plugin.IsTransformed(first)
	b, _ := plugin.IsTransformed(second)
	require.Equal(t, a.Code, b.Code)
	require.Equal(t, int64(2), fs.reads.Load(), "no caching between calls")
}

func TestTransformMissingFile(t *testing.T) {
	fs := newCountingFS(t, nil)
	tr := NewTransformer(MustExtensions(".ttf"), WithFilesystem(fs))

	res, err := tr.Transform(nil, "/no/such/file.ttf")
	require.Nil(t, res, "no partial output on failure")
	require.Error(t, err)
	require.True(t, IsAssetReadError(err))

	path, ok := AssetPath(err)
	require.True(t, ok)
	require.Equal(t, "/no/such/file.ttf", path)
	require.Contains(t, err.Error(), "read asset")
}

func TestTransformOSFilesystem(t *testing.T) {
	dir := t.TempDir()
	font := filepath.Join(dir, "font.ttf")
	require.NoError(t, os.WriteFile(font, []byte{0x00, 0x01, 0x02}, 0o644))

	res, err := Transform([]string{".ttf"}, font)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 1, 2}, decodeResult(t, res))

	wire, err := json.Marshal(res)
	require.NoError(t, err)
	require.JSONEq(t, `{"code":"export default {\"type\":\"Buffer\",\"data\":[0,1,2]}","map":null}`, string(wire))

	res, err = Transform([]string{".ttf", ".otf"}, filepath.Join(dir, "icon.svg"))
	require.NoError(t, err)
	require.Equal(t, plugin.NoTransform, res)

	_, err = Transform([]string{".ttf"}, filepath.Join(dir, "missing.ttf"))
	require.True(t, IsAssetReadError(err))

	_, err = Transform(nil, font)
	require.Error(t, err)
	require.False(t, IsAssetReadError(err))
}

func TestTransformConcurrent(t *testing.T) {
	files := map[string][]byte{}
	for i := range 16 {
		files[filepath.Join("fonts", string(rune('a'+i))+".ttf")] = []byte{byte(i), byte(i * 2)}
	}
	fs := newCountingFS(t, files)
	tr := NewTransformer(MustExtensions(".ttf"), WithFilesystem(fs))

	var wg sync.WaitGroup
	errs := make(chan error, len(files)*4)
	for round := 0; round < 4; round++ {
		for name, want := range files {
			wg.Add(1)
			go func(name string, want []byte) {
				defer wg.Done()
				res, err := tr.Transform(nil, name)
				if err != nil {
					errs <- err
					return
				}
				out, _ := plugin.IsTransformed(res)
				got, err := Decode(out.Code)
				if err != nil {
					errs <- err
					return
				}
				if string(got) != string(want) {
					errs <- os.ErrInvalid
				}
			}(name, want)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int64(len(files)*4), fs.reads.Load())
}

type countingRecorder struct {
	metrics.NoopRecorder
	mu      sync.Mutex
	results map[metrics.TransformResultLabel]int
	bytes   int
}

func (r *countingRecorder) IncTransformResult(_ string, result metrics.TransformResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[result]++
}

func (r *countingRecorder) ObserveInlinedBytes(_ string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bytes += n
}

func TestTransformRecordsMetrics(t *testing.T) {
	fs := newCountingFS(t, map[string][]byte{"font.ttf": {1, 2, 3, 4}})
	rec := &countingRecorder{results: map[metrics.TransformResultLabel]int{}}
	tr := NewTransformer(MustExtensions(".ttf"), WithFilesystem(fs), WithRecorder(rec), WithName("fonts"))
	require.Equal(t, "fonts", tr.Name())

	_, _ = tr.Transform(nil, "font.ttf")
	_, _ = tr.Transform(nil, "style.css")
	_, _ = tr.Transform(nil, "gone.ttf")

	require.Equal(t, 1, rec.results[metrics.TransformInlined])
	require.Equal(t, 1, rec.results[metrics.TransformSkipped])
	require.Equal(t, 1, rec.results[metrics.TransformFailed])
	require.Equal(t, 4, rec.bytes)
}

func TestTransformerThroughPipeline(t *testing.T) {
	fs := newCountingFS(t, nil)
	p, err := plugin.NewPipeline(NewTransformer(MustExtensions(".ttf"), WithFilesystem(fs)))
	require.NoError(t, err)

	_, err = p.Transform(nil, "/no/such/file.ttf")
	require.True(t, IsAssetReadError(err), "classification must survive plugin wrapping")
}

func TestAssetReadErrorBeneathBuildError(t *testing.T) {
	cause := NewAssetReadError("/fonts/a.ttf", fs.ErrNotExist)
	wrapped := errors.WrapError(plugin.NewPluginError(DefaultPluginName, "transform", "/fonts/a.ttf", cause),
		errors.CategoryBuild, "bundle failed").Build()

	require.True(t, IsAssetReadError(wrapped))
	path, ok := AssetPath(wrapped)
	require.True(t, ok)
	require.Equal(t, "/fonts/a.ttf", path)

	require.False(t, IsAssetReadError(errors.BuildError("bundle failed").Build()))
	_, ok = AssetPath(errors.BuildError("bundle failed").Build())
	require.False(t, ok)
}

func TestAssetReadErrorNamesPath(t *testing.T) {
	err := NewAssetReadError("/fonts/a.ttf", fs.ErrNotExist)
	require.Contains(t, err.Error(), "/fonts/a.ttf")
	require.ErrorIs(t, err, fs.ErrNotExist)
}
