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

// Package queue implements the bounded connection-request queue (C1): a
// fixed-capacity FIFO shared between the host listener, which inserts one
// connection_request per incoming CONNECT frame, and the pool of session
// workers, which remove requests to spin up new game sessions. Capacity is
// enforced with a pair of counting semaphores - one counting empty slots,
// one counting full slots - mirroring buffer_init/buffer_insert/
// buffer_remove/buffer_destroy, with Go contexts standing in for the
// original's unconditional pthread_sem_wait blocking.
package queue

import (
	"context"
	"sync"

	liberr "github.com/nabbar/pacmand/errors"
	"golang.org/x/sync/semaphore"
)

// DefaultCapacity is the historical BUFFER_SIZE: ten pending connection
// requests before the host listener blocks on Insert.
const DefaultCapacity = 10

// Request is one pending connection, captured from a CONNECT frame on the
// register pipe and waiting for a session worker to pick it up. Only the
// client id survives the handoff: the worker derives the request/
// notification pipe paths itself rather than trusting the wire-supplied
// path fields, so those are never copied past the host listener.
type Request struct {
	ClientID int32
}

// Queue is a bounded, thread-safe FIFO of Request values.
type Queue interface {
	// Insert blocks until a slot is free or ctx is done, then appends req.
	Insert(ctx context.Context, req Request) liberr.Error

	// Remove blocks until a request is available or ctx is done, then pops
	// and returns the oldest one.
	Remove(ctx context.Context) (Request, liberr.Error)

	// Len reports the number of requests currently buffered.
	Len() int

	// Close releases every goroutine blocked in Insert or Remove with
	// ErrorClosed. Further calls to Insert or Remove also fail immediately.
	Close()
}

type queue struct {
	mu        sync.Mutex
	slots     []Request
	in        int
	out       int
	count     int
	empty     *semaphore.Weighted
	full      *semaphore.Weighted
	closeCtx  context.Context
	closeStop context.CancelFunc
	once      sync.Once
}

// New builds a Queue of the given capacity. A capacity of zero or less
// falls back to DefaultCapacity.
func New(capacity int) Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	cctx, cstop := context.WithCancel(context.Background())
	q := &queue{
		slots:     make([]Request, capacity),
		empty:     semaphore.NewWeighted(int64(capacity)),
		full:      semaphore.NewWeighted(int64(capacity)),
		closeCtx:  cctx,
		closeStop: cstop,
	}
	q.full.Acquire(context.Background(), int64(capacity))
	return q
}

// waitCtx merges the caller's context with the queue's internal close
// signal, so a blocked Acquire wakes up as soon as either fires.
func (q *queue) waitCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	merged, stop := context.WithCancel(ctx)
	go func() {
		select {
		case <-q.closeCtx.Done():
			stop()
		case <-merged.Done():
		}
	}()
	return merged, stop
}

func (q *queue) isClosed() bool {
	select {
	case <-q.closeCtx.Done():
		return true
	default:
		return false
	}
}

func (q *queue) Insert(ctx context.Context, req Request) liberr.Error {
	if q.isClosed() {
		return ErrorClosed.Error()
	}

	wctx, stop := q.waitCtx(ctx)
	err := q.empty.Acquire(wctx, 1)
	stop()
	if err != nil {
		return q.acquireErr(ctx, err)
	}

	q.mu.Lock()
	q.slots[q.in] = req
	q.in = (q.in + 1) % len(q.slots)
	q.count++
	q.mu.Unlock()

	q.full.Release(1)
	return nil
}

func (q *queue) Remove(ctx context.Context) (Request, liberr.Error) {
	if q.isClosed() {
		return Request{}, ErrorClosed.Error()
	}

	wctx, stop := q.waitCtx(ctx)
	err := q.full.Acquire(wctx, 1)
	stop()
	if err != nil {
		return Request{}, q.acquireErr(ctx, err)
	}

	q.mu.Lock()
	req := q.slots[q.out]
	q.slots[q.out] = Request{}
	q.out = (q.out + 1) % len(q.slots)
	q.count--
	q.mu.Unlock()

	q.empty.Release(1)
	return req, nil
}

func (q *queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

func (q *queue) Close() {
	q.once.Do(func() {
		q.closeStop()
	})
}

func (q *queue) acquireErr(callerCtx context.Context, err error) liberr.Error {
	if q.isClosed() {
		return ErrorClosed.Error()
	}
	return ErrorTimeout.Error(err)
}
