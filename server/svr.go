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

// Package server 組裝操作 API 並交給 app.App 管理生命週期。
package server

import (
	"context"
	"log/slog"

	"github.com/zintix-labs/prizewheel/errs"
	"github.com/zintix-labs/prizewheel/server/api"
	"github.com/zintix-labs/prizewheel/server/app"
	"github.com/zintix-labs/prizewheel/server/netsvr"
	"github.com/zintix-labs/prizewheel/server/svrcfg"
)

// Run 以內建的 chi 伺服器執行，extra 為其他要一併管理的元件 (抽獎迴圈、主控台、排程)。
// extra 依序在 HTTP 伺服器之後關閉，因此抽獎迴圈應放在最後。
func Run(ctx context.Context, sCfg *svrcfg.SvrCfg, extra ...app.Component) error {
	return RunWithSvr(ctx, sCfg, netsvr.NewChiServer(sCfg.Addr), extra...)
}

// RunWithSvr 與 Run 相同，但使用呼叫端提供的 NetSvr。
func RunWithSvr(ctx context.Context, sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr, extra ...app.Component) error {
	if err := sCfg.Valid(); err != nil {
		return err
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		return errNotReady
	}
	api.RegisterRoutes(svr, sCfg)

	a := app.NewWith(sCfg.Log, append([]app.Component{svr}, extra...)...)
	sCfg.Log.Info("[prizewheel] listening on http://localhost" + svr.Address())
	if err := a.Run(ctx); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}

var errNotReady = errs.NewFatal("server is not ready")
