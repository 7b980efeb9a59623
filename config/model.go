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

// Package config binds the server's and client's configuration structs
// from three sources, in priority order: the mandatory positional CLI
// arguments (§6), environment variables prefixed PACMAND_, and an
// optional --config file of whatever format viper detects from its
// extension. go-playground/validator then checks the result before any
// goroutine starts.
package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	liberr "github.com/nabbar/pacmand/errors"
	"github.com/nabbar/pacmand/internal/queue"
	"github.com/nabbar/pacmand/internal/session"
)

var validate = validator.New()

// ServerConfig is the bound, validated configuration for cmd/pacman-server.
type ServerConfig struct {
	LevelsDir         string        `mapstructure:"levels_dir" validate:"required"`
	MaxGames          int           `mapstructure:"max_games" validate:"required,min=1,max=100"`
	RegisterPipe      string        `mapstructure:"register_pipe" validate:"required"`
	QueueCapacity     int           `mapstructure:"queue_capacity" validate:"min=1"`
	BroadcastInterval time.Duration `mapstructure:"broadcast_interval"`
	LevelPack         string        `mapstructure:"level_pack"`
	AdminListen       string        `mapstructure:"admin_listen"`
	AdminTLSCert      string        `mapstructure:"admin_tls_cert" validate:"required_with=AdminTLSKey"`
	AdminTLSKey       string        `mapstructure:"admin_tls_key" validate:"required_with=AdminTLSCert"`
	LogLevel          string        `mapstructure:"log_level" validate:"required"`
}

// ClientConfig is the bound, validated configuration for cmd/pacman-client.
type ClientConfig struct {
	ClientID     int32  `mapstructure:"client_id" validate:"required"`
	RegisterPipe string `mapstructure:"register_pipe" validate:"required"`
	ScriptFile   string `mapstructure:"script_file"`
	LogLevel     string `mapstructure:"log_level" validate:"required"`
}

func newViper(configFile string) (*viper.Viper, liberr.Error) {
	v := viper.New()
	v.SetEnvPrefix("PACMAND")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, ErrorBind.Error(err)
		}
	}

	return v, nil
}

// LoadServer binds a ServerConfig from the three mandatory positional
// arguments (levels_dir, max_games, register_pipe, matching §6 exactly),
// an optional config file, and PACMAND_* environment overrides for the
// remaining knobs.
func LoadServer(levelsDir, maxGames, registerPipe, configFile string) (ServerConfig, liberr.Error) {
	v, e := newViper(configFile)
	if e != nil {
		return ServerConfig{}, e
	}

	v.SetDefault("queue_capacity", queue.DefaultCapacity)
	v.SetDefault("broadcast_interval", session.DefaultBroadcastInterval)
	v.SetDefault("log_level", "info")

	games, err := strconv.Atoi(maxGames)
	if err != nil {
		return ServerConfig{}, ErrorBind.Error(fmt.Errorf("max_games: %w", err))
	}

	v.Set("levels_dir", levelsDir)
	v.Set("max_games", games)
	v.Set("register_pipe", registerPipe)

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return ServerConfig{}, ErrorBind.Error(err)
	}

	if err := validate.Struct(cfg); err != nil {
		return ServerConfig{}, ErrorValidation.Error(err)
	}

	return cfg, nil
}

// LoadClient binds a ClientConfig from the client's positional arguments
// (client_id, register_pipe, and an optional scripted commands file, per
// client_main.c's usage line).
func LoadClient(clientID, registerPipe, scriptFile, configFile string) (ClientConfig, liberr.Error) {
	v, e := newViper(configFile)
	if e != nil {
		return ClientConfig{}, e
	}

	v.SetDefault("log_level", "info")

	id, err := strconv.Atoi(clientID)
	if err != nil {
		return ClientConfig{}, ErrorBind.Error(fmt.Errorf("client_id: %w", err))
	}

	v.Set("client_id", id)
	v.Set("register_pipe", registerPipe)
	v.Set("script_file", scriptFile)

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return ClientConfig{}, ErrorBind.Error(err)
	}

	if err := validate.Struct(cfg); err != nil {
		return ClientConfig{}, ErrorValidation.Error(err)
	}

	return cfg, nil
}
