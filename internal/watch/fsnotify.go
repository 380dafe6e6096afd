package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// fsnotifySource adapts fsnotify to the EventSource interface. fsnotify
// watches are per-directory, so registration walks the tree and new
// subdirectories are added as their create events arrive.
type fsnotifySource struct {
	watcher *fsnotify.Watcher
	events  chan Event
	errors  chan error

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewFSNotifySource returns the default filesystem notification source.
func NewFSNotifySource() (EventSource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	source := &fsnotifySource{
		watcher: watcher,
		events:  make(chan Event, 64),
		errors:  make(chan error, 8),
		done:    make(chan struct{}),
	}
	source.wg.Add(1)
	go source.loop()
	return source, nil
}

func (s *fsnotifySource) Watch(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if entry.IsDir() {
			if err := s.watcher.Add(path); err != nil && path == root {
				return err
			}
		}
		return nil
	})
}

func (s *fsnotifySource) Events() <-chan Event { return s.events }

func (s *fsnotifySource) Errors() <-chan error { return s.errors }

func (s *fsnotifySource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.watcher.Close()
		s.wg.Wait()
		close(s.events)
		close(s.errors)
	})
	return err
}

func (s *fsnotifySource) loop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handle(event)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			select {
			case s.errors <- err:
			case <-s.done:
				return
			}
		}
	}
}

func (s *fsnotifySource) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	info, err := os.Lstat(event.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		// New subdirectory under a watched root: extend coverage.
		_ = s.watcher.Add(event.Name)
		return
	}
	if !info.Mode().IsRegular() {
		return
	}

	kind := KindCreated
	if event.Has(fsnotify.Rename) {
		kind = KindMoved
	}
	select {
	case s.events <- Event{Path: event.Name, Kind: kind}:
	case <-s.done:
	}
}
