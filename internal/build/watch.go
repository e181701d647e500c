package build

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/rawassets/internal/foundation/errors"
	"git.home.luguber.info/inful/rawassets/internal/logfields"
)

// DefaultDebounce coalesces bursts of file events into one rebuild.
const DefaultDebounce = 200 * time.Millisecond

// Watcher rebuilds whenever files under its directories change. Assets are
// re-read on every rebuild; nothing is cached between builds.
type Watcher struct {
	service  BuildService
	req      BuildRequest
	dirs     []string
	debounce time.Duration
	logger   *slog.Logger
	onBuild  func(*BuildResult, error)
}

// NewWatcher creates a watcher that runs req through service.
func NewWatcher(service BuildService, req BuildRequest, dirs []string) *Watcher {
	return &Watcher{
		service:  service,
		req:      req,
		dirs:     dirs,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
}

// WithDebounce sets the quiet period before a rebuild starts.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// WithLogger sets the logger.
func (w *Watcher) WithLogger(logger *slog.Logger) *Watcher {
	w.logger = logger
	return w
}

// OnBuild registers a callback invoked after every build, including failed ones.
func (w *Watcher) OnBuild(fn func(*BuildResult, error)) *Watcher {
	w.onBuild = fn
	return w
}

// Run performs an initial build and then rebuilds on change until ctx is done.
// Build failures are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.RuntimeError("failed to create file watcher").WithCause(err).Build()
	}
	defer func() {
		if err := fsw.Close(); err != nil {
			w.logger.Warn("Failed to close file watcher", logfields.Error(err))
		}
	}()

	ignore := w.ignoredRoot()
	for _, dir := range w.dirs {
		if err := w.addTree(fsw, w.resolve(dir), ignore); err != nil {
			return err
		}
	}
	w.logger.Info("Watching for changes", slog.Any("dirs", w.dirs))

	w.build(ctx)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ignore != "" && isWithin(event.Name, ignore) {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(fsw, event.Name, ignore); err != nil {
						w.logger.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.build(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) build(ctx context.Context) {
	res, err := w.service.Run(ctx, w.req)
	if err != nil {
		w.logger.Error("Rebuild failed", logfields.Error(err))
	}
	if w.onBuild != nil {
		w.onBuild(res, err)
	}
}

func (w *Watcher) resolve(p string) string {
	if filepath.IsAbs(p) || w.req.WorkingDir == "" {
		return p
	}
	return filepath.Join(w.req.WorkingDir, p)
}

// ignoredRoot is the absolute output directory; events there are our own writes.
func (w *Watcher) ignoredRoot() string {
	if w.req.Config == nil || w.req.Config.Build.Outdir == "" {
		return ""
	}
	abs, err := filepath.Abs(w.resolve(w.req.Config.Build.Outdir))
	if err != nil {
		return ""
	}
	return abs
}

func (w *Watcher) addTree(fsw *fsnotify.Watcher, root, ignore string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.FileSystemError("failed to walk watch directory").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
			return filepath.SkipDir
		}
		if ignore != "" && isWithin(path, ignore) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return errors.FileSystemError("failed to watch directory").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return nil
	})
}

func isWithin(path, root string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
