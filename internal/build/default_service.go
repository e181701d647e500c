package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/rawassets/internal/config"
	"git.home.luguber.info/inful/rawassets/internal/esbuildhost"
	"git.home.luguber.info/inful/rawassets/internal/foundation/errors"
	"git.home.luguber.info/inful/rawassets/internal/logfields"
	"git.home.luguber.info/inful/rawassets/internal/metrics"
	"git.home.luguber.info/inful/rawassets/internal/plugin"
	"git.home.luguber.info/inful/rawassets/internal/rawasset"
)

// DefaultBuildService is the esbuild-backed BuildService.
type DefaultBuildService struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	options  []rawasset.Option
}

// NewBuildService creates a DefaultBuildService with no metrics.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder used for builds and transforms.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	s.recorder = r
	return s
}

// WithLogger sets the logger.
func (s *DefaultBuildService) WithLogger(logger *slog.Logger) *DefaultBuildService {
	s.logger = logger
	return s
}

// WithTransformOptions passes extra options to the raw-asset transformer,
// e.g. an alternative filesystem in tests.
func (s *DefaultBuildService) WithTransformOptions(opts ...rawasset.Option) *DefaultBuildService {
	s.options = append(s.options, opts...)
	return s
}

// Run implements BuildService.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	if req.Config == nil {
		return nil, errors.ValidationError("build request has no configuration").Build()
	}
	if err := req.Config.ValidateForBuild(); err != nil {
		return nil, err
	}
	exts, err := rawasset.NewExtensions(req.Config.Assets.Extensions)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{ID: uuid.NewString(), StartTime: time.Now()}
	logger := s.logger.With(logfields.BuildID(result.ID))

	if err := ctx.Err(); err != nil {
		s.finish(result, BuildStatusCancelled)
		return result, err
	}

	opts := append([]rawasset.Option{
		rawasset.WithLogger(logger),
		rawasset.WithRecorder(s.recorder),
	}, s.options...)
	pipeline, err := plugin.NewPipeline(rawasset.NewTransformer(exts, opts...))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to register transform plugins").Build()
	}

	buildOpts, err := esbuildOptions(req, esbuildhost.Plugin(pipeline, exts))
	if err != nil {
		return nil, err
	}

	logger.Info("Starting bundle build",
		logfields.Count(len(buildOpts.EntryPoints)),
		logfields.Path(buildOpts.Outdir),
		logfields.Plugin(pipeline.Name()),
		slog.Any("extensions", exts.List()))
	for _, entry := range buildOpts.EntryPoints {
		logger.Debug("Bundling entry point", logfields.Entry(entry))
	}

	res := api.Build(buildOpts)

	for _, w := range res.Warnings {
		text := formatMessage(w)
		result.Warnings = append(result.Warnings, text)
		logger.Warn("Bundle warning", slog.String("message", text))
	}
	if len(res.Errors) > 0 {
		s.finish(result, BuildStatusFailed)
		err := buildFailure(res.Errors)
		logger.Error("Bundle build failed", logfields.Error(err))
		return result, err
	}

	for _, f := range res.OutputFiles {
		result.OutputFiles = append(result.OutputFiles, f.Path)
		if req.DryRun {
			if result.Contents == nil {
				result.Contents = make(map[string][]byte, len(res.OutputFiles))
			}
			result.Contents[f.Path] = f.Contents
		}
	}
	s.finish(result, BuildStatusSuccess)
	logger.Info("Bundle build completed",
		logfields.Count(len(result.OutputFiles)),
		logfields.DurationMS(float64(result.Duration.Microseconds())/1000))
	return result, nil
}

func (s *DefaultBuildService) finish(result *BuildResult, status BuildStatus) {
	result.Status = status
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	s.recorder.ObserveBuildDuration(result.Duration)
	switch {
	case status == BuildStatusSuccess && len(result.Warnings) > 0:
		s.recorder.IncBuildOutcome(metrics.BuildWarning)
	case status == BuildStatusSuccess:
		s.recorder.IncBuildOutcome(metrics.BuildSuccess)
	default:
		s.recorder.IncBuildOutcome(metrics.BuildFailed)
	}
}

func esbuildOptions(req BuildRequest, plugins ...api.Plugin) (api.BuildOptions, error) {
	cfg := req.Config
	workDir := req.WorkingDir
	if workDir == "" {
		workDir = "."
	}
	absWorkDir, err := filepath.Abs(workDir)
	if err != nil {
		return api.BuildOptions{}, errors.WrapError(err, errors.CategoryFileSystem, "resolve working directory").
			WithContext("path", workDir).
			Build()
	}

	format, err := esbuildFormat(cfg.Build.Format)
	if err != nil {
		return api.BuildOptions{}, err
	}

	outdir := cfg.Build.Outdir
	if !filepath.IsAbs(outdir) {
		outdir = filepath.Join(absWorkDir, outdir)
	}

	sourcemap := api.SourceMapNone
	if cfg.Build.Sourcemap {
		sourcemap = api.SourceMapLinked
	}

	return api.BuildOptions{
		AbsWorkingDir:     absWorkDir,
		EntryPoints:       cfg.Build.EntryPoints,
		Bundle:            true,
		Outdir:            outdir,
		Write:             !req.DryRun,
		Format:            format,
		Sourcemap:         sourcemap,
		MinifyWhitespace:  cfg.Build.Minify,
		MinifyIdentifiers: cfg.Build.Minify,
		MinifySyntax:      cfg.Build.Minify,
		External:          cfg.Build.External,
		LogLevel:          api.LogLevelSilent,
		Plugins:           plugins,
	}, nil
}

func esbuildFormat(f config.OutputFormat) (api.Format, error) {
	switch f {
	case config.OutputFormatESM:
		return api.FormatESModule, nil
	case config.OutputFormatCJS:
		return api.FormatCommonJS, nil
	case config.OutputFormatIIFE:
		return api.FormatIIFE, nil
	default:
		return api.FormatDefault, errors.ConfigError("unsupported build format").
			WithContext("format", string(f)).
			Build()
	}
}

// buildFailure turns esbuild errors into one classified build error. esbuild
// keeps an error returned by a plugin callback as the message detail; the
// first such error (a *plugin.PluginError) becomes the cause so asset read
// errors stay detectable.
func buildFailure(msgs []api.Message) error {
	texts := make([]string, len(msgs))
	var cause error
	for i, m := range msgs {
		texts[i] = formatMessage(m)
		if detail, ok := m.Detail.(error); ok && cause == nil {
			cause = detail
		}
	}
	if cause == nil {
		cause = fmt.Errorf("%s", strings.Join(texts, "; "))
	}
	return errors.WrapError(cause, errors.CategoryBuild, "bundle failed").
		Fatal().
		WithContext("errors", len(msgs)).
		WithContext("messages", texts).
		Build()
}

func formatMessage(m api.Message) string {
	var b strings.Builder
	if m.Location != nil {
		fmt.Fprintf(&b, "%s:%d:%d: ", m.Location.File, m.Location.Line, m.Location.Column)
	}
	if m.PluginName != "" {
		fmt.Fprintf(&b, "[plugin %s] ", m.PluginName)
	}
	b.WriteString(m.Text)
	return b.String()
}
