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

package svrcfg

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/prizewheel/allocator"
	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/inventory"
	"github.com/zintix-labs/prizewheel/server/logger"
	"github.com/zintix-labs/prizewheel/spin"
)

// SvrCfg 是操作 API 需要的依賴。
type SvrCfg struct {
	Log            *slog.Logger
	Addr           string
	Client         *spin.Client
	Store          *inventory.Store
	Allocator      *allocator.Allocator
	CORSOrigins    []string
	RequestTimeout time.Duration
}

func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		sc.Log = logger.NewDefaultLogger(logger.ModeSilence)
	}
	if sc.Client == nil {
		return errs.NewFatal("spin client is required")
	}
	if sc.Store == nil {
		return errs.NewFatal("inventory store is required")
	}
	if sc.Allocator == nil {
		return errs.NewFatal("allocator is required")
	}
	// 1s <= RequestTimeout <= 30s
	if sc.RequestTimeout <= 0 {
		sc.RequestTimeout = 5 * time.Second
	}
	sc.RequestTimeout = min(max(sc.RequestTimeout, time.Second), 30*time.Second)
	return nil
}
