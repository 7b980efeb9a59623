/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package catalogue is the level catalogue (C3): it hands each session the
// nth level of a directory's lexicographically sorted .lvl files, caching
// the listing and invalidating it on filesystem change instead of
// re-reading the directory on every lookup.
package catalogue

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	liberr "github.com/nabbar/pacmand/errors"
	"github.com/nabbar/pacmand/internal/board"
	"github.com/nabbar/pacmand/internal/lifecycle"
	"github.com/nabbar/pacmand/levelfile"
)

// Catalogue lists and loads the level set found in a single directory.
type Catalogue interface {
	// Count returns the number of available levels.
	Count() int

	// LoadNth parses the index-th level (0-based, in sorted order) and
	// everything it references - grid, pacman, ghosts - into a fresh
	// board.Board. carryPoints seeds the pacman's score (level transition).
	LoadNth(index int, carryPoints int) (*board.Board, liberr.Error)

	// Close stops watching the level directory.
	Close()
}

type catalogue struct {
	dir string

	mu     sync.RWMutex
	names  []string
	loaded bool

	watch  *fsnotify.Watcher
	runner lifecycle.Runner
}

// New opens a catalogue over dir and starts watching it for changes. The
// first Count/LoadNth call populates the cache; every later call reuses it
// until a filesystem event invalidates it.
func New(dir string) (Catalogue, liberr.Error) {
	w, e := fsnotify.NewWatcher()
	if e != nil {
		return nil, ErrorWatch.Error(e)
	}
	if e = w.Add(dir); e != nil {
		_ = w.Close()
		return nil, ErrorWatch.Error(e)
	}

	c := &catalogue{dir: dir, watch: w}
	c.runner = lifecycle.New(c.watchStart, c.watchStop)
	_ = c.runner.Start(context.Background())

	return c, nil
}

func (c *catalogue) watchStart(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-c.watch.Events:
			if !ok {
				return nil
			}
			c.invalidate()
		case _, ok := <-c.watch.Errors:
			if !ok {
				return nil
			}
		}
	}
}

func (c *catalogue) watchStop(_ context.Context) error {
	return c.watch.Close()
}

func (c *catalogue) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.names = nil
}

func (c *catalogue) ensureLoaded() liberr.Error {
	c.mu.RLock()
	if c.loaded {
		c.mu.RUnlock()
		return nil
	}
	c.mu.RUnlock()

	names, err := levelfile.SortedLevels(c.dir)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.names = names
	c.loaded = true
	c.mu.Unlock()

	return nil
}

func (c *catalogue) Count() int {
	if err := c.ensureLoaded(); err != nil {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}

func (c *catalogue) LoadNth(index int, carryPoints int) (*board.Board, liberr.Error) {
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	if index < 0 || index >= len(c.names) {
		c.mu.RUnlock()
		return nil, ErrorLevelIndex.Error()
	}
	name := c.names[index]
	c.mu.RUnlock()

	lvl, err := levelfile.ParseLevel(filepath.Join(c.dir, name))
	if err != nil {
		return nil, err
	}

	pac, err := levelfile.ParsePacman(lvl, carryPoints)
	if err != nil {
		return nil, err
	}

	ghosts := make([]board.Ghost, 0, len(lvl.GhostFiles))
	for _, gf := range lvl.GhostFiles {
		g, err := levelfile.ParseGhost(gf)
		if err != nil {
			return nil, err
		}
		ghosts = append(ghosts, g)
	}

	return board.New(lvl.Width, lvl.Height, lvl.Tempo, lvl.Cells, pac, ghosts), nil
}

func (c *catalogue) Close() {
	_ = c.runner.Stop(context.Background())
}
