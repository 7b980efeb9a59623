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

// Package host implements the C9 Host Listener: the single goroutine that
// owns the register pipe, turns incoming CONNECT frames into C1 queue
// insertions, and answers SIGUSR1 by writing a top-5-clients-by-points
// snapshot file, mirroring game.c's host_thread.
package host

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	liberr "github.com/nabbar/pacmand/errors"
	"github.com/nabbar/pacmand/internal/queue"
	"github.com/nabbar/pacmand/internal/session"
	"github.com/nabbar/pacmand/protocol"
)

// DefaultSnapshotPath is the historical on-disk name SIGUSR1 writes to.
const DefaultSnapshotPath = "top5_clients.txt"

// Listener is the C9 Host Listener: it owns the register pipe, fans
// CONNECT requests into the shared queue, and serves SIGUSR1 snapshots
// from the shared session table.
type Listener struct {
	path         string
	snapshotPath string
	queue        queue.Queue
	table        *session.Table
}

// New builds a Listener over the register pipe at path. An empty
// snapshotPath falls back to DefaultSnapshotPath.
func New(path string, q queue.Queue, table *session.Table, snapshotPath string) *Listener {
	if snapshotPath == "" {
		snapshotPath = DefaultSnapshotPath
	}
	return &Listener{path: path, snapshotPath: snapshotPath, queue: q, table: table}
}

// Start is a lifecycle.FuncStart: it opens the register pipe O_RDWR (so a
// transient absence of writers never delivers EOF, per §5), then services
// SIGUSR1 and incoming CONNECT frames until ctx is done.
func (l *Listener) Start(ctx context.Context) error {
	f, e := os.OpenFile(l.path, os.O_RDWR, 0)
	if e != nil {
		return ErrorPipeOpen.Error(e)
	}
	defer func() { _ = f.Close() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1)
	defer signal.Stop(sigCh)

	conns := make(chan protocol.Connect)
	errs := make(chan error, 1)
	go l.readLoop(ctx, f, conns, errs)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-sigCh:
			if e := l.writeSnapshot(); e != nil {
				_ = e // a failed snapshot write never takes the listener down
			}

		case c := <-conns:
			// ReqPath/NotifPath ride the wire for compatibility (§4.2) but
			// are never trusted: the session worker rebuilds both paths
			// itself from ClientID.
			_ = l.queue.Insert(ctx, queue.Request{ClientID: c.ClientID})

		case err := <-errs:
			return err
		}
	}
}

// Stop is a lifecycle.FuncStop; cancellation of the context passed to
// Start is what actually unblocks the loop, so there is nothing further
// to do here.
func (l *Listener) Stop(_ context.Context) error {
	return nil
}

// readLoop blocks on the register pipe one opcode byte at a time,
// decoding and forwarding only CONNECT frames - any other opcode on this
// pipe is silently ignored, per §4.8.
func (l *Listener) readLoop(ctx context.Context, f *os.File, conns chan<- protocol.Connect, errs chan<- error) {
	op := make([]byte, 1)
	for {
		if ctx.Err() != nil {
			return
		}

		n, err := f.Read(op)
		if err != nil {
			select {
			case errs <- err:
			case <-ctx.Done():
			}
			return
		}
		if n == 0 {
			continue
		}
		if protocol.Kind(op[0]) != protocol.KindConnect {
			continue
		}

		c, err := protocol.ReadConnect(f)
		if err != nil {
			continue
		}

		select {
		case conns <- c:
		case <-ctx.Done():
			return
		}
	}
}

type clientScore struct {
	id     int32
	points int
}

// formatSnapshot renders the top5_clients.txt body: scores sorted
// descending by points, capped at five entries, or the no-clients
// fallback line. Kept separate from file I/O so the text contract is
// unit-testable on its own.
func formatSnapshot(scores []clientScore) string {
	sorted := make([]clientScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].points > sorted[j].points
	})

	out := "Top 5 Clients Connected\n\n"

	if len(sorted) == 0 {
		return out + "No active clients.\n"
	}

	limit := len(sorted)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		out += fmt.Sprintf("%d. Client ID %d - %d points\n", i+1, sorted[i].id, sorted[i].points)
	}

	return out
}

// writeSnapshot is the SIGUSR1 handler's body: collect every active
// session's points and write formatSnapshot's rendering to the snapshot
// file.
func (l *Listener) writeSnapshot() liberr.Error {
	sessions := l.table.Snapshot()

	scores := make([]clientScore, 0, len(sessions))
	for _, s := range sessions {
		scores = append(scores, clientScore{id: s.ClientID, points: s.TotalPoints()})
	}

	if e := os.WriteFile(l.snapshotPath, []byte(formatSnapshot(scores)), 0o644); e != nil {
		return ErrorSnapshotWrite.Error(e)
	}

	return nil
}
