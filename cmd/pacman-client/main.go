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

// Command pacman-client connects one player to a running pacman-server: it
// opens its own request and notification pipes, performs the CONNECT
// handshake over the server's register pipe, then either replays a scripted
// commands file or forwards interactive keystrokes, the way client_main.c's
// main() and api.c's pacman_connect wire the same pieces together.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nabbar/pacmand/config"
	"github.com/nabbar/pacmand/internal/admin"
	"github.com/nabbar/pacmand/internal/session"
	"github.com/nabbar/pacmand/logger"
	loglvl "github.com/nabbar/pacmand/logger/level"
	"github.com/nabbar/pacmand/protocol"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		queryAddr  string
	)

	cmd := &cobra.Command{
		Use:   "pacman-client <client_id> <register_pipe> [commands_file]",
		Short: "Connects one player to a pacman-server",
		Args: func(cmd *cobra.Command, args []string) error {
			if queryAddr != "" {
				return nil
			}
			return cobra.RangeArgs(2, 3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if queryAddr != "" {
				return runQuery(queryAddr)
			}

			scriptFile := ""
			if len(args) == 3 {
				scriptFile = args[2]
			}
			return run(cmd.Context(), args[0], args[1], scriptFile, configFile)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "optional config file (yaml/toml/json)")
	cmd.Flags().StringVar(&queryAddr, "query", "", "print the server's top-5 snapshot from this admin listener address and exit")

	return cmd
}

func run(parent context.Context, clientID, registerPipe, scriptFile, configFile string) error {
	cfg, e := config.LoadClient(clientID, registerPipe, scriptFile, configFile)
	if e != nil {
		return e
	}

	log := logger.New(parent, loglvl.Parse(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, e := connect(cfg)
	if e != nil {
		log.Error("connection refused", e)
		return e
	}
	defer sess.close()

	status := color.New(color.FgGreen).SprintFunc()
	log.Info(fmt.Sprintf("%s client %d connected", status("ok"), cfg.ClientID))

	errCh := make(chan error, 2)
	go sess.receiveLoop(ctx, errCh)

	if cfg.ScriptFile != "" {
		go sess.scriptLoop(ctx, cfg.ScriptFile, errCh)
	} else {
		go sess.interactiveLoop(ctx, errCh)
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Error("session ended", err)
		}
	}

	_ = protocol.WriteDisconnect(sess.req)
	return nil
}

// clientSession owns the two pipes one connected client reads and writes.
// req/notif are narrowed to io.WriteCloser/io.ReadCloser (rather than
// *os.File) so scriptLoop and interactiveLoop can be driven over an
// io.Pipe in tests instead of a real named FIFO.
type clientSession struct {
	reqPath   string
	notifPath string
	req       io.WriteCloser
	notif     io.ReadCloser
}

func connect(cfg config.ClientConfig) (*clientSession, error) {
	// Paths are built with the same convention the server's session worker
	// uses to rebuild them from ClientID, so both sides agree on the FIFOs
	// regardless of what ReqPath/NotifPath carry on the wire.
	reqPath := session.RequestPipePath(cfg.ClientID)
	notifPath := session.NotifPipePath(cfg.ClientID)

	_ = os.Remove(reqPath)
	_ = os.Remove(notifPath)

	if err := syscall.Mkfifo(reqPath, 0o600); err != nil {
		return nil, fmt.Errorf("creating request pipe: %w", err)
	}
	if err := syscall.Mkfifo(notifPath, 0o600); err != nil {
		return nil, fmt.Errorf("creating notification pipe: %w", err)
	}

	register, err := os.OpenFile(cfg.RegisterPipe, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("opening register pipe: %w", err)
	}

	err = protocol.WriteConnect(register, protocol.Connect{
		ClientID:  cfg.ClientID,
		ReqPath:   reqPath,
		NotifPath: notifPath,
	})
	_ = register.Close()
	if err != nil {
		return nil, fmt.Errorf("sending connect frame: %w", err)
	}

	// The server's session worker opens the notification pipe for writing
	// before it opens the request pipe for reading, so the client must open
	// them read-before-write in that same order or both sides deadlock.
	notif, err := os.OpenFile(notifPath, os.O_RDONLY, 0)
	if err != nil {
		_ = os.Remove(reqPath)
		_ = os.Remove(notifPath)
		return nil, fmt.Errorf("opening notification pipe: %w", err)
	}

	ack, err := protocol.ReadConnectAck(notif)
	if err != nil || ack.Result != 0 {
		_ = notif.Close()
		_ = os.Remove(reqPath)
		_ = os.Remove(notifPath)
		return nil, fmt.Errorf("server refused connection")
	}

	req, err := os.OpenFile(reqPath, os.O_WRONLY, 0)
	if err != nil {
		_ = notif.Close()
		_ = os.Remove(reqPath)
		_ = os.Remove(notifPath)
		return nil, fmt.Errorf("opening request pipe: %w", err)
	}

	return &clientSession{reqPath: reqPath, notifPath: notifPath, req: req, notif: notif}, nil
}

func (s *clientSession) close() {
	_ = s.req.Close()
	_ = s.notif.Close()
	_ = os.Remove(s.reqPath)
	_ = os.Remove(s.notifPath)
}

func (s *clientSession) receiveLoop(ctx context.Context, errCh chan<- error) {
	for {
		if ctx.Err() != nil {
			return
		}
		b, err := protocol.ReadBoard(s.notif)
		if err != nil {
			select {
			case errCh <- err:
			default:
			}
			return
		}
		renderBoard(b)
		if b.GameOver != 0 || b.Victory != 0 {
			select {
			case errCh <- nil:
			default:
			}
			return
		}
	}
}

func renderBoard(b protocol.Board) {
	won := color.New(color.FgYellow).SprintFunc()
	lost := color.New(color.FgRed).SprintFunc()

	fmt.Printf("\n-- points %d --\n", b.TotalPoints)
	for y := int32(0); y < b.Height; y++ {
		row := b.Cells[y*b.Width : (y+1)*b.Width]
		fmt.Println(string(row))
	}
	if b.Victory != 0 {
		fmt.Println(won("level cleared"))
	}
	if b.GameOver != 0 {
		fmt.Println(lost("game over"))
	}
}

// scriptLoop replays a recorded commands file, looping back to the start
// whenever it reaches EOF, matching client_main.c's scripted-run behavior.
func (s *clientSession) scriptLoop(ctx context.Context, path string, errCh chan<- error) {
	f, err := os.Open(path)
	if err != nil {
		errCh <- fmt.Errorf("opening commands file: %w", err)
		return
	}
	defer func() { _ = f.Close() }()

	reader := bufio.NewReader(f)

	for {
		if ctx.Err() != nil {
			return
		}

		line, readErr := reader.ReadString('\n')
		line = strings.TrimSpace(line)

		if line != "" && !strings.HasPrefix(line, "#") {
			fields := strings.Fields(line)
			head := strings.ToUpper(fields[0])

			switch head {
			case "PASSO", "POS":
				// positional bookkeeping lines carry no playable command.
			case "T":
				repeat := 1
				if len(fields) > 1 {
					if n, convErr := strconv.Atoi(fields[1]); convErr == nil {
						repeat = n
					}
				}
				for i := 0; i < repeat; i++ {
					_ = protocol.WritePlay(s.req, protocol.Play{Command: 'T'})
					time.Sleep(200 * time.Millisecond)
				}
			default:
				_ = protocol.WritePlay(s.req, protocol.Play{Command: head[0]})
				time.Sleep(200 * time.Millisecond)
			}
		}

		if readErr != nil {
			if _, seekErr := f.Seek(0, os.SEEK_SET); seekErr != nil {
				errCh <- fmt.Errorf("rewinding commands file: %w", seekErr)
				return
			}
			reader = bufio.NewReader(f)
		}
	}
}

// interactiveLoop forwards single keystrokes typed on stdin as PLAY frames.
// The terminal's raw-mode keystroke reader and any on-screen prompt chrome
// are the interactive TUI this binary deliberately leaves unimplemented.
func (s *clientSession) interactiveLoop(ctx context.Context, errCh chan<- error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		if ctx.Err() != nil {
			return
		}
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			cmd := strings.ToUpper(line)[0]
			if err := protocol.WritePlay(s.req, protocol.Play{Command: cmd}); err != nil {
				errCh <- err
				return
			}
		}
		if err != nil {
			errCh <- err
			return
		}
	}
}

// runQuery fetches and prints the server's admin snapshot as a table,
// an alternative to the SIGUSR1 text dump for operators who'd rather
// poll the loopback admin endpoint directly.
func runQuery(addr string) error {
	return admin.PrintSnapshot(addr, os.Stdout)
}
