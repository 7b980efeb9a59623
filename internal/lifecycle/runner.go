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

// Package lifecycle wraps a start/stop function pair into a supervised
// goroutine with start/stop/restart semantics, uptime tracking and an
// error history - the shape every long-lived worker in this module (ghost,
// pacman, broadcaster, session pool, host listener) is built on, so none of
// them hand-roll their own goroutine bookkeeping.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// FuncStart is run in its own goroutine when Start is called. It must
// return once ctx is cancelled.
type FuncStart func(ctx context.Context) error

// FuncStop is run synchronously by Stop, after the running FuncStart (if
// any) has returned.
type FuncStop func(ctx context.Context) error

// Runner supervises one FuncStart/FuncStop pair.
type Runner interface {
	// Start stops any instance already running, clears the error history,
	// then launches a new one in the background. It never blocks on the
	// started function and always returns nil.
	Start(ctx context.Context) error

	// Stop cancels the running instance, waits for it to return, then
	// invokes the stop function. Safe to call when not running, and safe
	// to call more than once.
	Stop(ctx context.Context) error

	// Restart is Stop followed by Start.
	Restart(ctx context.Context) error

	IsRunning() bool
	Uptime() time.Duration

	ErrorsLast() error
	ErrorsList() []error
}

type runner struct {
	fnStart FuncStart
	fnStop  FuncStop

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	running   atomic.Bool
	startedAt atomic.Value

	errMu sync.Mutex
	errs  []error
}

// New builds a Runner around the given start/stop pair. Either may be nil;
// calling Start/Stop at that point records an "invalid start/stop function"
// error instead of panicking.
func New(start FuncStart, stop FuncStop) Runner {
	r := &runner{fnStart: start, fnStop: stop}
	r.startedAt.Store(time.Time{})
	return r
}

func (r *runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked(ctx)
	r.clearErrors()

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	r.running.Store(true)
	r.startedAt.Store(time.Now())

	fn := r.fnStart
	go func() {
		defer close(done)
		defer func() {
			r.running.Store(false)
			r.startedAt.Store(time.Time{})
			if rec := recover(); rec != nil {
				r.addError(fmt.Errorf("panic in start function: %v", rec))
			}
		}()

		if fn == nil {
			r.addError(fmt.Errorf("invalid start function"))
			return
		}
		if err := fn(runCtx); err != nil {
			r.addError(err)
		}
	}()

	return nil
}

func (r *runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopLocked(ctx)
}

// stopLocked cancels and waits for the currently running instance (if any),
// then invokes the stop function exactly once. Must be called with mu held.
func (r *runner) stopLocked(ctx context.Context) error {
	cancel := r.cancel
	done := r.done
	if cancel == nil {
		return nil
	}

	r.cancel = nil
	r.done = nil

	cancel()
	if done != nil {
		<-done
	}

	fn := r.fnStop
	if fn == nil {
		r.addError(fmt.Errorf("invalid stop function"))
		return nil
	}

	var stopErr error
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				stopErr = fmt.Errorf("panic in stop function: %v", rec)
			}
		}()
		stopErr = fn(ctx)
	}()

	if stopErr != nil {
		r.addError(stopErr)
	}

	return nil
}

func (r *runner) Restart(ctx context.Context) error {
	if err := r.Stop(ctx); err != nil {
		return err
	}
	return r.Start(ctx)
}

func (r *runner) IsRunning() bool {
	return r.running.Load()
}

func (r *runner) Uptime() time.Duration {
	if !r.running.Load() {
		return 0
	}

	st, ok := r.startedAt.Load().(time.Time)
	if !ok || st.IsZero() {
		return 0
	}

	return time.Since(st)
}

func (r *runner) addError(err error) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *runner) clearErrors() {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	r.errs = nil
}

func (r *runner) ErrorsLast() error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[len(r.errs)-1]
}

func (r *runner) ErrorsList() []error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}
