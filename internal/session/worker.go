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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nabbar/pacmand/internal/catalogue"
	"github.com/nabbar/pacmand/internal/lifecycle"
	"github.com/nabbar/pacmand/internal/queue"
	"github.com/nabbar/pacmand/protocol"
)

// PipeDir is where derived request/notification pipe paths are rooted.
const PipeDir = "/tmp"

// RequestPipePath and NotifPipePath build the canonical pipe paths for a
// given client id. The server side (this package's Pool) uses these to
// rebuild the paths itself rather than trusting the two wire-supplied path
// fields at face value; the client side (cmd/pacman-client) uses the same
// functions so the FIFOs it creates land exactly where the server will
// look for them. The CONNECT frame still carries ReqPath/NotifPath for
// wire compatibility, but only the client_id drives which files either
// side actually opens.
func RequestPipePath(clientID int32) string {
	return filepath.Join(PipeDir, fmt.Sprintf("%d_request", clientID))
}

func NotifPipePath(clientID int32) string {
	return filepath.Join(PipeDir, fmt.Sprintf("%d_notification", clientID))
}

// Pool is the C8 Session Worker pool: max_games goroutines, each looping
// over C1's request queue, running one session to completion, then
// looping back for the next request.
type Pool struct {
	table             *Table
	queue             queue.Queue
	cat               catalogue.Catalogue
	totalLevels       int
	broadcastInterval time.Duration

	runners []lifecycle.Runner
}

// NewPool builds a worker pool sized to maxGames, sharing the request
// queue (C1) and the level catalogue (C3) every worker draws from.
func NewPool(maxGames int, q queue.Queue, cat catalogue.Catalogue, totalLevels int, broadcastInterval time.Duration) *Pool {
	p := &Pool{
		table:             NewTable(uint(maxGames)),
		queue:             q,
		cat:               cat,
		totalLevels:       totalLevels,
		broadcastInterval: broadcastInterval,
	}

	p.runners = make([]lifecycle.Runner, maxGames)
	for i := range p.runners {
		p.runners[i] = lifecycle.New(p.workerLoop, func(context.Context) error { return nil })
	}

	return p
}

// Table exposes the session table for the host listener's admin snapshot.
func (p *Pool) Table() *Table {
	return p.table
}

// Start launches every worker goroutine.
func (p *Pool) Start(ctx context.Context) {
	for _, r := range p.runners {
		_ = r.Start(ctx)
	}
}

// Stop cancels every worker goroutine and waits for it to return.
func (p *Pool) Stop(ctx context.Context) {
	for _, r := range p.runners {
		_ = r.Stop(ctx)
	}
}

func (p *Pool) workerLoop(ctx context.Context) error {
	for {
		req, err := p.queue.Remove(ctx)
		if err != nil {
			return nil
		}
		p.handle(req)
	}
}

// handle is one iteration of C8's loop: claim a slot, complete the
// handshake, load level 0, run the session to completion, clean up,
// release the slot.
func (p *Pool) handle(req queue.Request) {
	idx, ok := p.table.Claim()
	if !ok {
		// workers == slots (§4.7 step 2): defensive only, never expected.
		return
	}

	notifPath := NotifPipePath(req.ClientID)
	reqPath := RequestPipePath(req.ClientID)

	notif, e := os.OpenFile(notifPath, os.O_WRONLY, 0)
	if e != nil {
		p.table.Release(idx)
		return
	}

	if e := protocol.WriteConnectAck(notif, protocol.ConnectAck{Result: 0}); e != nil {
		_ = notif.Close()
		p.table.Release(idx)
		return
	}

	reqPipe, e := os.OpenFile(reqPath, os.O_RDONLY, 0)
	if e != nil {
		_ = notif.Close()
		p.table.Release(idx)
		return
	}

	b, err := p.cat.LoadNth(0, 0)
	if err != nil {
		_ = notif.Close()
		_ = reqPipe.Close()
		p.table.Release(idx)
		return
	}

	s := newSession(req.ClientID, reqPath, notifPath, b, reqPipe, notif, p.cat, p.totalLevels, p.broadcastInterval)
	p.table.Set(idx, s)

	s.run()
	s.cleanup()

	p.table.Release(idx)
}
