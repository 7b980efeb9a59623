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

// Package session implements one client's game end-to-end: its Board, its
// ghost workers (C5), its pacman worker (C6), its broadcaster (C7), and
// the worker pool (C8) that dequeues connection requests and runs sessions
// to completion. A Table (the session table) owns every live Session,
// sized once to max_games at startup.
package session

import (
	"context"
	"io"
	"sync"
	"time"

	libdur "github.com/nabbar/pacmand/duration"
	"github.com/nabbar/pacmand/internal/board"
	"github.com/nabbar/pacmand/internal/catalogue"
	"github.com/nabbar/pacmand/internal/lifecycle"
	"github.com/nabbar/pacmand/protocol"
)

// DefaultBroadcastInterval is the broadcaster's fixed cadence (§4.6),
// independent of any level's tempo so that transitions and shutdown stay
// reactive. Exposed as a config knob per §9's open question.
const DefaultBroadcastInterval = 50 * time.Millisecond

// Session is one client's end-to-end game: from CONNECT to disconnect,
// victory or death. Its mutex guards the flags the worker trio coordinate
// through (§5): thread_shutdown, victory, level_change_pending,
// new_level_index, current_level, accumulated_points. Board has its own
// lock; per §5's ordering rule this session lock is always acquired first
// when both are needed, never the reverse.
type Session struct {
	ClientID  int32
	ReqPath   string
	NotifPath string

	Board *board.Board

	mu   sync.Mutex
	cond *sync.Cond

	shutdown           bool
	victory            bool
	levelChangePending bool
	newLevelIndex      int
	currentLevel       int
	totalLevels        int
	accumulatedPoints  int

	cat               catalogue.Catalogue
	broadcastInterval time.Duration

	reqPipe   io.ReadCloser
	notifPipe io.WriteCloser

	ghosts        []lifecycle.Runner
	pacmanDone    chan struct{}
	broadcastDone chan struct{}
}

func newSession(clientID int32, reqPath, notifPath string, b *board.Board, reqPipe io.ReadCloser, notifPipe io.WriteCloser, cat catalogue.Catalogue, totalLevels int, broadcastInterval time.Duration) *Session {
	s := &Session{
		ClientID:          clientID,
		ReqPath:           reqPath,
		NotifPath:         notifPath,
		Board:             b,
		cat:               cat,
		totalLevels:       totalLevels,
		broadcastInterval: broadcastInterval,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// TotalPoints is the score the admin snapshot (§6) reports: points banked
// from completed levels plus whatever the current level's pacman holds.
func (s *Session) TotalPoints() int {
	s.mu.Lock()
	acc := s.accumulatedPoints
	s.mu.Unlock()

	s.Board.StateLock.RLock()
	pts := s.Board.Pacman.Points
	s.Board.StateLock.RUnlock()

	return acc + pts
}

// run spawns the ghost workers, the broadcaster, and the pacman worker,
// then blocks until the pacman worker returns (C8 step 8's "join pacman
// thread").
func (s *Session) run() {
	s.mu.Lock()
	s.spawnGhostsLocked()
	s.mu.Unlock()

	s.broadcastDone = make(chan struct{})
	go s.broadcastLoop()

	s.pacmanDone = make(chan struct{})
	go s.pacmanLoop()

	<-s.pacmanDone
}

// cleanup is cleanup_session: set shutdown, join the broadcaster and every
// ghost, close both pipes.
func (s *Session) cleanup() {
	s.mu.Lock()
	s.shutdown = true
	s.cond.Broadcast()
	s.mu.Unlock()

	<-s.broadcastDone

	s.mu.Lock()
	ghosts := s.ghosts
	s.mu.Unlock()

	for _, g := range ghosts {
		_ = g.Stop(context.Background())
	}

	_ = s.reqPipe.Close()
	_ = s.notifPipe.Close()
}

// spawnGhostsLocked allocates one lifecycle.Runner per ghost the current
// board holds. Must be called with mu held.
func (s *Session) spawnGhostsLocked() {
	s.ghosts = make([]lifecycle.Runner, len(s.Board.Ghosts))
	for i := range s.ghosts {
		idx := i
		s.ghosts[i] = lifecycle.New(s.ghostLoop(idx), func(context.Context) error { return nil })
		_ = s.ghosts[i].Start(context.Background())
	}
}

// ghostLoop is the C5 state machine for one ghost. The move itself is made
// while holding the board's write lock, not its read lock: the source's
// read-then-mutate pattern (§9) is the documented deviation this
// implementation always takes, because a ghost move mutates position, the
// charged flag, and the grid cell it leaves/enters.
func (s *Session) ghostLoop(index int) lifecycle.FuncStart {
	return func(ctx context.Context) error {
		for {
			s.mu.Lock()
			down := s.shutdown
			s.mu.Unlock()
			if down {
				return nil
			}

			s.Board.StateLock.Lock()
			if index >= len(s.Board.Ghosts) {
				s.Board.StateLock.Unlock()
				return nil
			}
			tempo := s.Board.Tempo
			passo := s.Board.Ghosts[index].Passo
			_ = s.Board.MoveGhost(index)
			s.Board.StateLock.Unlock()

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(tempoSteps(tempo, passo)):
			}
		}
	}
}

// pacmanLoop is C6: reads one PLAY/DISCONNECT frame at a time and applies
// it to the board, running the level-change handshake with the
// broadcaster when pacman reaches a portal.
func (s *Session) pacmanLoop() {
	defer close(s.pacmanDone)

	for {
		s.mu.Lock()
		down := s.shutdown
		victory := s.victory
		s.mu.Unlock()

		s.Board.StateLock.RLock()
		alive := s.Board.Pacman.Alive
		s.Board.StateLock.RUnlock()

		if !alive || down || victory {
			return
		}

		frame, err := protocol.ReadRequestFrame(s.reqPipe)
		if err != nil || frame.Kind == protocol.KindDisconnect {
			s.mu.Lock()
			s.shutdown = true
			s.cond.Broadcast()
			s.mu.Unlock()
			return
		}

		if frame.Kind != protocol.KindPlay {
			continue
		}

		s.applyCommand(frame.Play.Command)
	}
}

func (s *Session) applyCommand(cmd byte) {
	if cmd == 'Q' {
		s.Board.StateLock.Lock()
		s.Board.Pacman.Alive = false
		tempo := s.Board.Tempo
		s.Board.StateLock.Unlock()
		time.Sleep(tempo.Time())
		return
	}

	s.Board.StateLock.Lock()
	result := s.Board.MovePacman(cmd)
	tempo := s.Board.Tempo
	passo := s.Board.Pacman.Passo
	points := s.Board.Pacman.Points
	alive := s.Board.Pacman.Alive
	s.Board.StateLock.Unlock()

	switch {
	case result == board.MoveDeadPacman || !alive:
		time.Sleep(tempo.Time())

	case result == board.MoveReachedPortal:
		time.Sleep(tempo.Time())
		s.requestLevelChange(tempo, points)

	default:
		time.Sleep(tempoSteps(tempo, passo))
	}
}

// tempoSteps scales a level's base tempo by one plus a ghost's or pacman's
// current step count (passo), the periodic-slowdown rule §4.4/§4.5 apply
// on every move.
func tempoSteps(tempo libdur.Duration, passo int) time.Duration {
	return tempo.Time() * time.Duration(1+passo)
}

// requestLevelChange is C6's half of the one-shot level-change handshake:
// it posts the request, then waits for C7 to clear it before resuming.
func (s *Session) requestLevelChange(tempo libdur.Duration, levelPoints int) {
	s.mu.Lock()
	s.currentLevel++
	if s.currentLevel >= s.totalLevels {
		s.victory = true
		s.mu.Unlock()
		time.Sleep(tempo.Time())
		return
	}

	s.accumulatedPoints += levelPoints
	s.levelChangePending = true
	s.newLevelIndex = s.currentLevel
	s.cond.Broadcast()
	s.mu.Unlock()

	time.Sleep(tempo.Time())

	s.mu.Lock()
	for s.levelChangePending {
		s.cond.Wait()
	}
	s.mu.Unlock()

	time.Sleep(tempo.Time())
}

// broadcastLoop is C7: a fixed-cadence snapshot/send loop that also
// executes the level transition protocol on C6's request.
func (s *Session) broadcastLoop() {
	defer close(s.broadcastDone)

	interval := s.broadcastInterval
	if interval <= 0 {
		interval = DefaultBroadcastInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		if s.levelChangePending {
			s.mu.Unlock()
			if err := s.transitionLevel(); err != nil {
				return
			}
			continue
		}
		if s.shutdown {
			s.mu.Unlock()
			return
		}
		victory := s.victory
		accumulated := s.accumulatedPoints
		s.mu.Unlock()

		s.Board.StateLock.RLock()
		width, height, tempo := s.Board.Width, s.Board.Height, s.Board.Tempo
		gameOver := !s.Board.Pacman.Alive
		points := s.Board.Pacman.Points
		cells := s.Board.Render()
		s.Board.StateLock.RUnlock()

		frame := protocol.Board{
			Width:       int32(width),
			Height:      int32(height),
			Tempo:       int32(tempo.Time() / time.Millisecond),
			Victory:     boolToInt32(victory),
			GameOver:    boolToInt32(gameOver),
			TotalPoints: int32(accumulated + points),
			Cells:       cells,
		}

		if err := protocol.WriteBoard(s.notifPipe, frame); err != nil {
			s.mu.Lock()
			s.shutdown = true
			s.mu.Unlock()
			return
		}

		if gameOver || victory {
			time.Sleep(tempo.Time())
			s.mu.Lock()
			s.shutdown = true
			s.mu.Unlock()
			return
		}
	}
}

// transitionLevel is the Level Transition sequence (§4.6 a-f): stop every
// ghost, swap the board's contents in place, then start fresh ghosts for
// the new level before clearing level_change_pending.
func (s *Session) transitionLevel() error {
	s.mu.Lock()
	s.shutdown = true
	oldGhosts := s.ghosts
	index := s.newLevelIndex
	s.mu.Unlock()

	for _, g := range oldGhosts {
		_ = g.Stop(context.Background())
	}

	next, err := s.cat.LoadNth(index, 0)
	if err != nil {
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		return err
	}

	s.Board.StateLock.Lock()
	s.Board.Reset(next.Width, next.Height, next.Tempo, next.Cells, next.Pacman, next.Ghosts)
	s.Board.StateLock.Unlock()

	s.mu.Lock()
	s.shutdown = false
	s.spawnGhostsLocked()
	s.levelChangePending = false
	s.cond.Broadcast()
	s.mu.Unlock()

	return nil
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
