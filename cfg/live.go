/*
Copyright 2024 - 2026 the ChatterNet authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cfg

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDelay = time.Second * 5

// Live is a configuration that reloads itself when its file changes.
//
// Reloads are debounced, so an editor that writes the file in several
// chunks triggers one reload. A reload that fails to parse keeps the
// previous configuration.
type Live struct {
	wg      sync.WaitGroup
	w       *fsnotify.Watcher
	current atomic.Pointer[Config]
}

// Static wraps a fixed configuration in the [Live] interface.
func Static(c *Config) *Live {
	var l Live
	l.current.Store(c)
	return &l
}

// NewLive loads a configuration file and watches it for changes.
//
// An empty path yields a static default configuration.
func NewLive(log *slog.Logger, path string) (*Live, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return Static(c), nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	// watch the directory: editors often replace the file instead of
	// writing it in place
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	absPath := filepath.Join(dir, filepath.Base(path))

	l := &Live{w: w}
	l.current.Store(c)

	timer := time.NewTimer(math.MaxInt64)
	timer.Stop()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					timer.Stop()
					return
				}

				if (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) && event.Name == absPath {
					timer.Reset(reloadDelay)
				}

			case <-timer.C:
				reloaded, err := Load(path)
				if err != nil {
					log.Warn("Failed to reload configuration", "path", path, "error", err)
					continue
				}

				log.Info("Reloaded configuration", "path", path)
				l.current.Store(reloaded)
			}
		}
	}()

	return l, nil
}

// Current returns the configuration as of the last successful load.
func (l *Live) Current() *Config {
	return l.current.Load()
}

// Close stops watching the configuration file.
func (l *Live) Close() {
	if l.w != nil {
		l.w.Close()
	}
	l.wg.Wait()
}
