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

package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/zintix-labs/prizewheel/allocator"
	"github.com/zintix-labs/prizewheel/inventory"
	"github.com/zintix-labs/prizewheel/prize"
	"github.com/zintix-labs/prizewheel/server/httperr"
	"github.com/zintix-labs/prizewheel/server/svrcfg"
	"github.com/zintix-labs/prizewheel/spin"
)

// ============================================================
// ** WheelHandler **
// ============================================================

type WheelHandler struct {
	client  *spin.Client
	store   *inventory.Store
	alloc   *allocator.Allocator
	log     *slog.Logger
	timeout time.Duration
}

func NewWheelHandler(sCfg *svrcfg.SvrCfg) *WheelHandler {
	return &WheelHandler{
		client:  sCfg.Client,
		store:   sCfg.Store,
		alloc:   sCfg.Allocator,
		log:     sCfg.Log,
		timeout: sCfg.RequestTimeout,
	}
}

type PrizeView struct {
	ID       prize.ID `json:"id"`
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Tickets  int      `json:"tickets"`
	NoWin    bool     `json:"no_win"`
	Image    string   `json:"image,omitempty"`
}

type InventoryView struct {
	Weighting    string      `json:"weighting"`
	TotalTickets int         `json:"total_tickets"`
	Prizes       []PrizeView `json:"prizes"`
}

// Inventory GET /v1/inventory：已提交庫存與目前票數。
func (h *WheelHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	inv := h.store.Current()
	weights, total := h.alloc.Odds(inv)
	out := InventoryView{
		Weighting:    h.alloc.Mode().String(),
		TotalTickets: total,
		Prizes:       make([]PrizeView, 0, inv.Len()),
	}
	for i, p := range inv.Prizes() {
		out.Prizes = append(out.Prizes, PrizeView{
			ID:       p.ID,
			Name:     p.Name,
			Quantity: p.Quantity,
			Tickets:  weights[i],
			NoWin:    p.NoWin,
			Image:    p.Image,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Session GET /v1/session
func (h *WheelHandler) Session(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "session", nil)
}

// Spin POST /v1/spin：抽獎進行中回 409。
func (h *WheelHandler) Spin(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "spin", h.client.Trigger)
}

// Dismiss POST /v1/dismiss：沒有顯示中的結果回 409。
func (h *WheelHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "dismiss", h.client.Dismiss)
}

// Reset POST /v1/reset：抽獎進行中回 409。
func (h *WheelHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "reset", h.client.Reset)
}

// AnimationDone POST /v1/animation-done：外部畫面通知轉盤已停止。
func (h *WheelHandler) AnimationDone(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "animation-done", h.client.AnimationDone)
}

// respond 執行 op (可為 nil) 後回傳控制器快照。
func (h *WheelHandler) respond(w http.ResponseWriter, r *http.Request, name string, op func(context.Context) error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if op != nil {
		if err := op(ctx); err != nil {
			httperr.Log(h.log, name, err)
			httperr.Errs(w, err)
			return
		}
	}
	st, err := h.client.Snapshot(ctx)
	if err != nil {
		httperr.Log(h.log, name, err)
		httperr.Errs(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
