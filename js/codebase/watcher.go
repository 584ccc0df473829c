package codebase

import (
	"context"
	"os"
	"time"
)

// FileWatcher polls the project for added, modified and removed sources
// and keeps the codebase in sync.
type FileWatcher struct {
	codebase     *Codebase
	pollInterval time.Duration
	modTimes     map[string]time.Time

	// OnUpdate is called after a file has been reparsed.
	OnUpdate func(*FileInfo)
	// OnRemove is called after a file has been dropped.
	OnRemove func(path string)
}

func NewFileWatcher(c *Codebase) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		pollInterval: time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) SetInterval(d time.Duration) {
	w.pollInterval = d
}

// Run scans immediately and then at every interval until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Scan()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan performs one polling pass.
func (w *FileWatcher) Scan() {
	log := w.codebase.log
	paths, err := w.codebase.project.Files()
	if err != nil {
		log.Errorf("watch: %s", err)
		return
	}

	current := make(map[string]bool, len(paths))
	for _, path := range paths {
		current[path] = true
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			continue
		}
		w.modTimes[path] = info.ModTime()
		if err := w.codebase.ScanFile(path); err != nil {
			log.Warningf("watch: %s", err)
			continue
		}
		if w.OnUpdate != nil {
			w.OnUpdate(w.codebase.GetFile(path))
		}
	}

	for path := range w.modTimes {
		if current[path] {
			continue
		}
		delete(w.modTimes, path)
		w.codebase.RemoveFile(path)
		if w.OnRemove != nil {
			w.OnRemove(path)
		}
	}
}
