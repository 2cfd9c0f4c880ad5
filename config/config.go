// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config 讀取服務設定：YAML 檔 → 環境變數覆寫 (前綴 WHEEL_) → 檢查。
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/prize"
	"github.com/zintix-labs/prizewheel/spin"
	"github.com/zintix-labs/prizewheel/storage"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 環境變數前綴
const EnvPrefix = "WHEEL_"

type Config struct {
	Addr           string        `yaml:"addr" env:"ADDR"`
	LogMode        string        `yaml:"log_mode" env:"LOG_MODE"`
	Storage        Storage       `yaml:"storage" envPrefix:"STORAGE_"`
	Draw           Draw          `yaml:"draw" envPrefix:"DRAW_"`
	Timing         Timing        `yaml:"timing" envPrefix:"TIMING_"`
	Audio          Audio         `yaml:"audio" envPrefix:"AUDIO_"`
	Telemetry      Telemetry     `yaml:"telemetry" envPrefix:"TELEMETRY_"`
	RestockCron    string        `yaml:"restock_cron" env:"RESTOCK_CRON"`
	RecoverPending string        `yaml:"recover_pending" env:"RECOVER_PENDING"`
	CORSOrigins    []string      `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
	Console        bool          `yaml:"console" env:"CONSOLE"`
	Prizes         []prize.Prize `yaml:"prizes"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	Path   string `yaml:"path" env:"PATH"`
}

type Draw struct {
	Weighting string `yaml:"weighting" env:"WEIGHTING"`
	// Seed <= 0 代表每次啟動使用隨機種子
	Seed int64 `yaml:"seed" env:"SEED"`
}

type Timing struct {
	RevealDelay time.Duration `yaml:"reveal_delay" env:"REVEAL_DELAY"`
	Overlay     time.Duration `yaml:"overlay" env:"OVERLAY"`
	Cue         time.Duration `yaml:"cue" env:"CUE"`
	Animation   time.Duration `yaml:"animation" env:"ANIMATION"`
}

// Audio Command 為空時只把音效寫進 log。
type Audio struct {
	Command string            `yaml:"command" env:"COMMAND"`
	Args    []string          `yaml:"args" env:"ARGS" envSeparator:" "`
	Cues    map[string]string `yaml:"cues"`
}

// Telemetry URL 為空時不送出紀錄。
type Telemetry struct {
	URL        string        `yaml:"url" env:"URL"`
	Timeout    time.Duration `yaml:"timeout" env:"TIMEOUT"`
	TimeLayout string        `yaml:"time_layout" env:"TIME_LAYOUT"`
	Location   string        `yaml:"location" env:"LOCATION"`
}

// Default 回傳內建預設值。
func Default() Config {
	return Config{
		Addr:    ":5808",
		LogMode: "dev",
		Storage: Storage{Driver: storage.DriverFile, Path: "data"},
		Draw:    Draw{Weighting: prize.WeightByStock.String()},
		Timing: Timing{
			RevealDelay: 3 * time.Second,
			Overlay:     4 * time.Second,
			Cue:         3 * time.Second,
			Animation:   3 * time.Second,
		},
		Audio: Audio{Cues: map[string]string{
			"wheel": "assets/wheel.mp3",
			"win1":  "assets/win1.mp3",
			"win":   "assets/win.mp3",
		}},
		Telemetry:      Telemetry{Timeout: 10 * time.Second, Location: "Asia/Seoul"},
		RecoverPending: spin.RecoverCommit.String(),
	}
}

// Load 讀取 path (可為空字串) 並套用環境變數覆寫。
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errs.Configf("read config %s: %v", path, err)
		}
		if err := decodeYAML(raw, &cfg); err != nil {
			return Config{}, errs.Configf("parse config %s: %v", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, errs.Configf("parse env: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(raw []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate 檢查設定是否可用。
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errs.Configf("addr required")
	}
	switch c.Storage.Driver {
	case storage.DriverFile, storage.DriverSQLite:
		if c.Storage.Path == "" {
			return errs.Configf("storage.path required for driver %q", c.Storage.Driver)
		}
	case storage.DriverMemory:
	default:
		return errs.Configf("unknown storage driver %q", c.Storage.Driver)
	}
	if _, err := prize.ParseWeighting(c.Draw.Weighting); err != nil {
		return err
	}
	if _, err := spin.ParseRecoverPolicy(c.RecoverPending); err != nil {
		return err
	}
	t := c.Timing
	if t.RevealDelay <= 0 || t.Overlay <= 0 || t.Cue <= 0 || t.Animation <= 0 {
		return errs.Configf("timing values must be > 0: %+v", t)
	}
	if c.Telemetry.Timeout <= 0 {
		return errs.Configf("telemetry.timeout must be > 0")
	}
	if c.Telemetry.Location != "" {
		if _, err := time.LoadLocation(c.Telemetry.Location); err != nil {
			return errs.Configf("telemetry.location %q: %v", c.Telemetry.Location, err)
		}
	}
	if _, err := c.Inventory(); err != nil {
		return err
	}
	return nil
}

// Inventory 回傳設定的獎項表；未設定時使用內建預設。
func (c *Config) Inventory() (prize.Inventory, error) {
	if len(c.Prizes) == 0 {
		return prize.Default(), nil
	}
	return prize.New(c.Prizes...)
}

func (c *Config) Weighting() prize.Weighting {
	w, _ := prize.ParseWeighting(c.Draw.Weighting)
	return w
}

func (c *Config) RecoverPolicy() spin.RecoverPolicy {
	p, _ := spin.ParseRecoverPolicy(c.RecoverPending)
	return p
}

func (c *Config) SpinTiming() spin.Timing {
	return spin.Timing{
		RevealDelay:     c.Timing.RevealDelay,
		OverlayDuration: c.Timing.Overlay,
		CueDuration:     c.Timing.Cue,
	}
}

// TelemetryLocation 回傳時間戳記使用的時區，未設定時為本地時區。
func (c *Config) TelemetryLocation() *time.Location {
	if c.Telemetry.Location == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Telemetry.Location)
	if err != nil {
		return time.Local
	}
	return loc
}
