package main

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// watch runs the file at path, then runs it again after every change until
// ctx is done. Run errors are reported rather than returned.
func (s *session) watch(ctx context.Context, path string) error {
	if path == "-" {
		return errors.New("cannot watch standard input")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// editors often replace a file rather than write it in place, which
	// drops any watch on the file itself
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	rerun := func() {
		if err := s.runFile(ctx, path); err != nil {
			s.log.Printf("ERROR", "%v", err)
		}
	}
	rerun()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == target && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				debounce = time.After(watchDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Printf("WARN", "watch: %v", err)

		case <-debounce:
			debounce = nil
			s.log.Printf("INFO", "%v changed", path)
			rerun()
		}
	}
}
