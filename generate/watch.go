package generate

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/logger"
)

// RunCallback receives the outcome of every run started by Watch.
type RunCallback func(*Result, error)

// Watch runs opts once, then again whenever an input header or the template
// changes, until ctx is done. Rapid changes are debounced into one run, and
// runs never overlap. Run failures are reported to onRun and do not stop
// watching.
func (g *Generator) Watch(ctx context.Context, opts Options, onRun RunCallback) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer watcher.Close()

	watched := g.watchedFiles(opts)

	// Directories are watched rather than files so editors that replace a
	// file by rename keep being noticed.
	dirs := lo.Uniq(lo.Map(lo.Keys(watched), func(p string, _ int) string { return filepath.Dir(p) }))
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
	}

	g.log.Infow("Watching for changes",
		logger.FieldCount, len(watched),
		logger.FieldOutput, opts.Output)

	run := func() {
		res, err := g.Run(opts)
		if err != nil {
			g.log.Errorw("Generation failed", logger.FieldError, err)
		}
		if onRun != nil {
			onRun(res, err)
		}
	}
	run()

	var (
		timer *time.Timer
		fire  <-chan time.Time
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

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}

			g.log.Debugw("Watcher detected change",
				logger.FieldFile, event.Name,
				"op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(g.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(g.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// watchedFiles is the absolute path set of inputs and the template.
func (g *Generator) watchedFiles(opts Options) map[string]bool {
	files := map[string]bool{}
	for _, p := range append(append([]string{}, opts.Inputs...), opts.Template) {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			g.log.Warnw("Cannot watch file", logger.FieldFile, p, logger.FieldError, err)
			continue
		}
		files[abs] = true
	}
	return files
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
