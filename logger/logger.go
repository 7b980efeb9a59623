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

// Package logger provides the structured logger shared by every server and
// client component: a thin level-aware wrapper around logrus that produces
// logger/entry.Entry values carrying fields, errors and call-site context.
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	logent "github.com/nabbar/pacmand/logger/entry"
	logfld "github.com/nabbar/pacmand/logger/fields"
	loglvl "github.com/nabbar/pacmand/logger/level"
	"github.com/sirupsen/logrus"
)

// Logger is the server-wide logging façade. Every component obtains one
// from the server context (see context.Config) instead of constructing
// logrus instances of its own.
type Logger interface {
	SetLevel(lvl loglvl.Level)
	GetLevel() loglvl.Level

	SetOutput(w io.Writer)
	SetFields(f logfld.Fields)

	NewEntry(lvl loglvl.Level, msg string) logent.Entry

	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warning(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})

	Logrus() *logrus.Logger
}

type logger struct {
	mu  sync.Mutex
	lvl atomic.Value
	log *logrus.Logger
	fld atomic.Value
}

// New builds a Logger writing to os.Stderr at the given level. ctx is kept
// only to mirror the teacher's context-first constructor idiom; the
// implementation does not retain it beyond this call.
func New(_ context.Context, lvl loglvl.Level) Logger {
	l := &logrus.Logger{
		Out:       os.Stderr,
		Formatter: &logrus.TextFormatter{FullTimestamp: true},
		Hooks:     make(logrus.LevelHooks),
		Level:     lvl.Logrus(),
	}

	o := &logger{log: l}
	o.lvl.Store(lvl)
	o.fld.Store(logfld.New(nil))
	return o
}

// NewFrom builds a Logger reusing fields already accumulated on an existing
// one, at a (possibly different) level - used when a component narrows the
// verbosity of a child logger without losing the parent's base fields.
func NewFrom(parent Logger, lvl loglvl.Level) Logger {
	n := New(context.Background(), lvl).(*logger)
	if parent != nil {
		n.SetFields(parent.(*logger).fields().Clone())
	}
	return n
}

func (o *logger) fields() logfld.Fields {
	return o.fld.Load().(logfld.Fields)
}

func (o *logger) SetLevel(lvl loglvl.Level) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lvl.Store(lvl)
	o.log.SetLevel(lvl.Logrus())
}

func (o *logger) GetLevel() loglvl.Level {
	return o.lvl.Load().(loglvl.Level)
}

func (o *logger) SetOutput(w io.Writer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.log.SetOutput(w)
}

func (o *logger) SetFields(f logfld.Fields) {
	if f == nil {
		f = logfld.New(nil)
	}
	o.fld.Store(f)
}

func (o *logger) NewEntry(lvl loglvl.Level, msg string) logent.Entry {
	e := logent.New(lvl)
	e = e.SetLogger(func() *logrus.Logger { return o.log })
	e = e.SetEntryContext(time.Now(), 0, "", "", 0, msg)
	e = e.FieldSet(o.fields().Clone())
	return e
}

func (o *logger) Debug(msg string, args ...interface{}) { o.emit(loglvl.DebugLevel, msg, args...) }
func (o *logger) Info(msg string, args ...interface{})   { o.emit(loglvl.InfoLevel, msg, args...) }
func (o *logger) Warning(msg string, args ...interface{}) {
	o.emit(loglvl.WarnLevel, msg, args...)
}
func (o *logger) Error(msg string, args ...interface{}) { o.emit(loglvl.ErrorLevel, msg, args...) }
func (o *logger) Fatal(msg string, args ...interface{}) { o.emit(loglvl.FatalLevel, msg, args...) }

func (o *logger) emit(lvl loglvl.Level, msg string, args ...interface{}) {
	errs := make([]error, 0, len(args))
	for _, a := range args {
		if e, k := a.(error); k {
			errs = append(errs, e)
		}
	}

	e := o.NewEntry(lvl, msg)
	if len(errs) > 0 {
		e = e.ErrorAdd(true, errs...)
	}
	e.Log()
}

func (o *logger) Logrus() *logrus.Logger {
	return o.log
}
