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

package session

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// Table is the session table (§3): it owns the `active` bits and the slice
// of live Sessions, sized once at startup to max_games. Claim/Release guard
// only the bits, per §5's "global session-table mutex guards active bits
// only" - a Session's own fields are guarded by its own mutex.
type Table struct {
	mu       sync.Mutex
	bits     *bitset.BitSet
	sessions []*Session
}

// NewTable builds a table with size slots, all initially free.
func NewTable(size uint) *Table {
	return &Table{
		bits:     bitset.New(size),
		sessions: make([]*Session, size),
	}
}

// Len returns the table's total slot count.
func (t *Table) Len() int {
	return len(t.sessions)
}

// Claim reserves the lowest-numbered free slot, returning false if the
// table is full.
func (t *Table) Claim() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := uint(0); i < t.bits.Len(); i++ {
		if !t.bits.Test(i) {
			t.bits.Set(i)
			return int(i), true
		}
	}

	return -1, false
}

// Set attaches a Session to an already-claimed slot.
func (t *Table) Set(idx int, s *Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[idx] = s
}

// Release frees a slot and clears its Session reference.
func (t *Table) Release(idx int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bits.Clear(uint(idx))
	t.sessions[idx] = nil
}

// Snapshot returns every currently active Session, in table order (the tie
// break the host listener's top-5 dump relies on, per §6).
func (t *Table) Snapshot() []*Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*Session, 0, len(t.sessions))
	for _, s := range t.sessions {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
