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

// Package board holds the per-session game state: the grid, the single
// pacman, and the ghosts sharing it. Board owns the reader/writer lock
// that disciplines concurrent access across the ghost workers (writers,
// one per ghost), the pacman worker (writer) and the broadcaster (reader)
// - callers take StateLock themselves around whichever group of calls must
// be atomic, rather than Board locking internally per-method, because the
// spec's move/render operations each span several field reads/writes that
// must not interleave with another goroutine's.
package board

import (
	"sync"

	libdur "github.com/nabbar/pacmand/duration"
	liberr "github.com/nabbar/pacmand/errors"
	"github.com/nabbar/pacmand/protocol"
)

// Cell is one grid tile. Wall and Portal are mutually exclusive static
// terrain; Dot is cleared the first time pacman passes over it.
type Cell struct {
	Wall   bool
	Portal bool
	Dot    bool
}

// Pacman is the single player-controlled entity in a session.
type Pacman struct {
	Alive  bool
	X, Y   int
	Points int
	Passo  int
}

// Ghost is one non-player entity following a periodic movement program.
type Ghost struct {
	X, Y        int
	Moves       []byte
	CurrentMove int
	Passo       int
	Charged     bool
}

// CurrentCommand returns the move this ghost must apply on its current
// tick, per the periodic program rule (moves[k mod n_moves]).
func (g *Ghost) CurrentCommand() byte {
	if len(g.Moves) == 0 {
		return 0
	}
	return g.Moves[g.CurrentMove%len(g.Moves)]
}

// Board is the shared, lockable game-state for one session. The zero
// value is an empty, unusable board; Load (see level package) populates it.
type Board struct {
	// StateLock is the board's reader/writer lock (spec §3/§5): ghosts and
	// the pacman worker take it for writing, the broadcaster for reading.
	StateLock sync.RWMutex

	Width, Height int
	Tempo         libdur.Duration

	Cells  []Cell
	Pacman Pacman
	Ghosts []Ghost
}

// New builds a Board from pre-parsed dimensions, tempo, cell grid (row
// major, length width*height) and initial entities. Callers - the level
// loader - hold no lock on the returned Board; it is not yet shared.
func New(width, height int, tempo libdur.Duration, cells []Cell, pacman Pacman, ghosts []Ghost) *Board {
	return &Board{
		Width:  width,
		Height: height,
		Tempo:  tempo,
		Cells:  cells,
		Pacman: pacman,
		Ghosts: ghosts,
	}
}

// Reset overwrites b in place with a freshly loaded level, preserving the
// StateLock value (never copy a sync.RWMutex once shared). Used by the
// level-transition sequence (§4.6) which loads the next level into the
// same Board the broadcaster and ghosts already reference.
func (b *Board) Reset(width, height int, tempo libdur.Duration, cells []Cell, pacman Pacman, ghosts []Ghost) {
	b.Width = width
	b.Height = height
	b.Tempo = tempo
	b.Cells = cells
	b.Pacman = pacman
	b.Ghosts = ghosts
}

// InBounds reports whether (x, y) addresses a real cell.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

func (b *Board) index(x, y int) int {
	return y*b.Width + x
}

// Cell returns the tile at (x, y). Caller must hold at least StateLock.RLock.
func (b *Board) Cell(x, y int) (Cell, liberr.Error) {
	if !b.InBounds(x, y) {
		return Cell{}, ErrorOutOfBounds.Error()
	}
	return b.Cells[b.index(x, y)], nil
}

// SetCell overwrites the tile at (x, y). Caller must hold StateLock.Lock.
func (b *Board) SetCell(x, y int, c Cell) liberr.Error {
	if !b.InBounds(x, y) {
		return ErrorOutOfBounds.Error()
	}
	b.Cells[b.index(x, y)] = c
	return nil
}

// Render produces the BOARD frame's cell buffer per the §4.2 glyph table.
// Caller must hold at least StateLock.RLock.
func (b *Board) Render() []byte {
	out := make([]byte, len(b.Cells))

	for i, c := range b.Cells {
		switch {
		case c.Wall:
			out[i] = protocol.CellWall
		case c.Portal:
			out[i] = protocol.CellPortal
		case c.Dot:
			out[i] = protocol.CellDot
		default:
			out[i] = protocol.CellEmpty
		}
	}

	if b.Pacman.Alive && b.InBounds(b.Pacman.X, b.Pacman.Y) {
		out[b.index(b.Pacman.X, b.Pacman.Y)] = protocol.CellPacman
	}

	for _, g := range b.Ghosts {
		if !b.InBounds(g.X, g.Y) {
			continue
		}
		if g.Charged {
			out[b.index(g.X, g.Y)] = protocol.CellGhostCharged
		} else {
			out[b.index(g.X, g.Y)] = protocol.CellGhost
		}
	}

	return out
}
