package rawasset

import (
	"context"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"git.home.luguber.info/inful/rawassets/internal/logfields"
	"git.home.luguber.info/inful/rawassets/internal/metrics"
	"git.home.luguber.info/inful/rawassets/internal/plugin"
)

// DefaultPluginName is the name the transformer registers under.
const DefaultPluginName = "raw-assets"

// Transformer is the raw-asset plugin. It holds no mutable state and is safe
// for concurrent use.
type Transformer struct {
	name     string
	exts     Extensions
	fs       billy.Basic
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithFilesystem sets the filesystem assets are read from. Module ids are
// passed to it unchanged.
func WithFilesystem(fs billy.Basic) Option {
	return func(t *Transformer) {
		t.fs = fs
	}
}

// WithLogger sets the logger for per-asset debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) {
		t.logger = logger
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(t *Transformer) {
		t.recorder = r
	}
}

// WithName overrides the registration name.
func WithName(name string) Option {
	return func(t *Transformer) {
		t.name = name
	}
}

// NewTransformer creates a transformer for the given allow-list, reading from
// the OS filesystem unless configured otherwise.
func NewTransformer(exts Extensions, options ...Option) *Transformer {
	t := &Transformer{
		name:     DefaultPluginName,
		exts:     exts,
		fs:       osfs.Default,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// Name implements plugin.Plugin.
func (t *Transformer) Name() string {
	return t.name
}

// Extensions returns the allow-list the transformer matches against.
func (t *Transformer) Extensions() Extensions {
	return t.exts
}

// Transform implements plugin.Plugin. code is ignored. Ids that match no
// allow-listed suffix yield plugin.NoTransform without touching the
// filesystem; matching ids are read exactly once and inlined. A failed read
// is returned as an asset error carrying the module id.
func (t *Transformer) Transform(_ []byte, id string) (plugin.Result, error) {
	ext, ok := t.exts.Match(id)
	if !ok {
		t.recorder.IncTransformResult(t.name, metrics.TransformSkipped)
		return plugin.NoTransform, nil
	}

	data, err := util.ReadFile(t.fs, id)
	if err != nil {
		t.recorder.IncTransformResult(t.name, metrics.TransformFailed)
		return nil, NewAssetReadError(id, err)
	}

	t.recorder.IncTransformResult(t.name, metrics.TransformInlined)
	t.recorder.ObserveInlinedBytes(t.name, len(data))
	t.logger.LogAttrs(context.Background(), slog.LevelDebug, "Inlined raw asset",
		logfields.Plugin(t.name),
		logfields.ModuleID(id),
		logfields.Extension(ext),
		logfields.Bytes(len(data)))

	return &plugin.Transformed{Code: Encode(data)}, nil
}

// Transform is a one-shot convenience that inlines id from the OS filesystem
// when it matches allowList.
func Transform(allowList []string, id string) (plugin.Result, error) {
	exts, err := NewExtensions(allowList)
	if err != nil {
		return nil, err
	}
	return NewTransformer(exts).Transform(nil, id)
}

var _ plugin.Plugin = (*Transformer)(nil)
