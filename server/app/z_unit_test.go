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

package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

type blockComp struct {
	stop     chan struct{}
	shutdown int
}

func (b *blockComp) Run() error { <-b.stop; return nil }

func (b *blockComp) Shutdown(context.Context) error {
	b.shutdown++
	select {
	case <-b.stop:
	default:
		close(b.stop)
	}
	return nil
}

type failComp struct{}

func (failComp) Run() error { return errors.New("listen failed") }
func (failComp) Shutdown(context.Context) error { return nil }

func TestAppStopsOnComponentError(t *testing.T) {
	b := &blockComp{stop: make(chan struct{})}
	err := NewWith(nil, b, failComp{}).Run(context.Background())
	if err == nil || err.Error() != "listen failed" {
		t.Fatalf("expected component error, got %v", err)
	}
	if b.shutdown != 1 {
		t.Fatalf("other components must be shut down")
	}
}

func TestAppStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loopRan := make(chan struct{})
	f := NewFunc(func(ctx context.Context) error {
		close(loopRan)
		<-ctx.Done()
		return ctx.Err()
	})
	go func() {
		<-loopRan
		cancel()
	}()
	if err := NewWith(nil, f).Run(ctx); err != nil {
		t.Fatalf("ctx stop should be clean, got %v", err)
	}
	sctx, scancel := context.WithTimeout(context.Background(), time.Second)
	defer scancel()
	if err := f.Shutdown(sctx); err != nil {
		t.Fatalf("func component should already be done: %v", err)
	}
}
