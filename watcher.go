package signalplot

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// FileWatcher invokes a callback whenever the watched recording is written.
// The watch is on the containing directory rather than the file itself, so
// editors and recorders that replace the file atomically are still seen.
type FileWatcher struct {
	dir      string
	base     string
	onChange func()
	debounce time.Duration

	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
	logger  logrus.FieldLogger
}

func NewFileWatcher(path string, onChange func()) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, &FileError{Op: "watch", Path: dir, Err: err}
	}

	return &FileWatcher{
		dir:      dir,
		base:     filepath.Base(abs),
		onChange: onChange,
		debounce: 250 * time.Millisecond,
		watcher:  watcher,
		logger:   logrus.WithField("tag", "FileWatcher"),
	}, nil
}

// Start begins watching in a background goroutine until ctx is canceled.
func (w *FileWatcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Wait blocks until the watch goroutine exits.
func (w *FileWatcher) Wait() {
	w.wg.Wait()
}

func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}

func (w *FileWatcher) run(ctx context.Context) {
	// Bursts of write events (recorders flush in chunks) collapse into a
	// single callback after a quiet period.
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.logger.WithField("event", event.Op.String()).Debug("input file changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("watch error")

		case <-ctx.Done():
			return
		}
	}
}
