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

package api

import (
	"net/http"

	v1 "github.com/zintix-labs/prizewheel/server/api/v1"
	"github.com/zintix-labs/prizewheel/server/netsvr"
	"github.com/zintix-labs/prizewheel/server/netsvr/middleware"
	"github.com/zintix-labs/prizewheel/server/svrcfg"
)

// RegisterRoutes 註冊 middleware、健康檢查與 v1 API。
func RegisterRoutes(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) {
	registerMiddleware(svr, sCfg)
	svr.Get("/healthz", healthz)
	registerV1API(svr, sCfg)
}

func registerMiddleware(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(sCfg.Log))
	svr.Use(middleware.Recover(sCfg.Log))
	svr.Use(middleware.CORS(sCfg.CORSOrigins))
	svr.Use(middleware.Compression)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func registerV1API(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) {
	h := v1.NewWheelHandler(sCfg)
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/inventory", h.Inventory)
		vOne.Get("/session", h.Session)

		vOne.Post("/spin", h.Spin)
		vOne.Post("/dismiss", h.Dismiss)
		vOne.Post("/reset", h.Reset)
		vOne.Post("/animation-done", h.AnimationDone)
	})
}
