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

// Command pacman-server runs the multi-player Pacman game server: the C9
// host listener, the C8 session worker pool, and (optionally) the
// loopback admin endpoint, wired through a server context the way
// game.c's main() wires its worker/host threads together.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nabbar/pacmand/config"
	libctx "github.com/nabbar/pacmand/context"
	"github.com/nabbar/pacmand/internal/admin"
	"github.com/nabbar/pacmand/internal/catalogue"
	"github.com/nabbar/pacmand/internal/host"
	"github.com/nabbar/pacmand/internal/lifecycle"
	"github.com/nabbar/pacmand/internal/queue"
	"github.com/nabbar/pacmand/internal/session"
	"github.com/nabbar/pacmand/logger"
	loglvl "github.com/nabbar/pacmand/logger/level"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile   string
		levelPack    string
		adminListen  string
		adminTLSCert string
		adminTLSKey  string
	)

	cmd := &cobra.Command{
		Use:   "pacman-server <levels_dir> <max_games> <register_pipe>",
		Short: "Runs the Pacman game server",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), args[0], args[1], args[2], configFile, levelPack, adminListen, adminTLSCert, adminTLSKey)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "optional config file (yaml/toml/json)")
	cmd.Flags().StringVar(&levelPack, "level-pack", "", "packaged level set (tar/zip/gzip/bz2 archive) to extract before serving")
	cmd.Flags().StringVar(&adminListen, "admin-listen", "", "loopback address (host:port) for the /metrics and /snapshot admin endpoint; disabled when empty")
	cmd.Flags().StringVar(&adminTLSCert, "admin-tls-cert", "", "PEM certificate file for the admin listener; requires --admin-tls-key")
	cmd.Flags().StringVar(&adminTLSKey, "admin-tls-key", "", "PEM private key file for the admin listener; requires --admin-tls-cert")

	return cmd
}

func run(parent context.Context, levelsDir, maxGames, registerPipe, configFile, levelPackFlag, adminListenFlag, adminTLSCertFlag, adminTLSKeyFlag string) error {
	cfg, e := config.LoadServer(levelsDir, maxGames, registerPipe, configFile)
	if e != nil {
		return e
	}
	if levelPackFlag != "" {
		cfg.LevelPack = levelPackFlag
	}
	if adminListenFlag != "" {
		cfg.AdminListen = adminListenFlag
	}
	if adminTLSCertFlag != "" {
		cfg.AdminTLSCert = adminTLSCertFlag
	}
	if adminTLSKeyFlag != "" {
		cfg.AdminTLSKey = adminTLSKeyFlag
	}

	log := logger.New(parent, loglvl.Parse(cfg.LogLevel))

	signalCtx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srvCtx := libctx.New[string](signalCtx)
	srvCtx.Store("logger", log)

	dir := cfg.LevelsDir
	if cfg.LevelPack != "" {
		dir = filepath.Join(os.TempDir(), "pacmand-levels")
		if e := catalogue.ExtractLevelPack(cfg.LevelPack, dir); e != nil {
			log.Error("cannot extract level pack", e)
			return e
		}
	}

	cat, e := catalogue.New(dir)
	if e != nil {
		log.Error("cannot open level catalogue", e)
		return e
	}
	defer cat.Close()
	srvCtx.Store("catalogue", cat)

	q := queue.New(cfg.QueueCapacity)
	defer q.Close()
	srvCtx.Store("queue", q)

	pool := session.NewPool(cfg.MaxGames, q, cat, cat.Count(), cfg.BroadcastInterval)
	pool.Start(srvCtx)
	defer pool.Stop(context.Background())
	srvCtx.Store("table", pool.Table())

	hostListener := host.New(cfg.RegisterPipe, q, pool.Table(), host.DefaultSnapshotPath)
	hostRunner := lifecycle.New(hostListener.Start, hostListener.Stop)
	if err := hostRunner.Start(srvCtx); err != nil {
		return fmt.Errorf("starting host listener: %w", err)
	}
	defer func() { _ = hostRunner.Stop(context.Background()) }()

	if cfg.AdminListen != "" {
		_, reg := admin.NewMetrics()
		adminSrv := admin.New(cfg.AdminListen, pool.Table(), q, reg)
		if cfg.AdminTLSCert != "" {
			if err := adminSrv.WithTLS(cfg.AdminTLSCert, cfg.AdminTLSKey); err != nil {
				log.Error("cannot load admin TLS certificate", err)
				return err
			}
		}
		adminRunner := lifecycle.New(adminSrv.Start, adminSrv.Stop)
		if err := adminRunner.Start(srvCtx); err != nil {
			return fmt.Errorf("starting admin listener: %w", err)
		}
		defer func() { _ = adminRunner.Stop(context.Background()) }()
		log.Info(fmt.Sprintf("admin listener starting on %s", adminSrv.Addr()))
	}

	log.Info(fmt.Sprintf("server ready: %d game slots, levels dir %s, register pipe %s", cfg.MaxGames, dir, cfg.RegisterPipe))

	<-srvCtx.Done()
	log.Info("server shutting down")

	// Give in-flight sessions a moment to observe shutdown and flush their
	// final frame before the deferred Stop calls force them closed.
	time.Sleep(100 * time.Millisecond)
	return nil
}
