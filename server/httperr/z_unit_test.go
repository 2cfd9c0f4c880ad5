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

package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zintix-labs/prizewheel/errs"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.With(errs.ErrBusy, "animating", nil), http.StatusConflict},
		{errs.With(errs.ErrNoResult, "idle", nil), http.StatusConflict},
		{errs.With(errs.ErrExhaustedInventory, "", nil), http.StatusConflict},
		{errs.NewWarn("bad input"), http.StatusBadRequest},
		{errs.NewFatal("disk"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errs.Wrap(context.Canceled, "loop"), http.StatusRequestTimeout},
	}
	for _, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Fatalf("%v: got %d want %d", c.err, got, c.want)
		}
	}
}

func TestErrsWritesJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	Errs(rec, errs.With(errs.ErrBusy, "animating", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %d", rec.Code)
	}
	var b Body
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatal(err)
	}
	if b.Kind != "busy" || b.Error == "" {
		t.Fatalf("unexpected body: %+v", b)
	}
}
