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

package middleware

import (
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// encoder 是 gzip.Writer 與 zstd.Encoder 的共同行為。
type encoder interface {
	io.Writer
	Reset(w io.Writer)
	Flush() error
	Close() error
}

type gzipEnc struct{ *gzip.Writer }

func (g gzipEnc) Reset(w io.Writer) { g.Writer.Reset(w) }

type zstdEnc struct{ *zstd.Encoder }

func (z zstdEnc) Reset(w io.Writer) { z.Encoder.Reset(w) }

var (
	gzipPool = sync.Pool{New: func() any {
		gw, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
		return gzipEnc{gw}
	}}
	zstdPool = sync.Pool{New: func() any {
		zw, err := zstd.NewWriter(io.Discard,
			zstd.WithEncoderLevel(zstd.SpeedFastest),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(err)
		}
		return zstdEnc{zw}
	}}
)

// pickEncoding 依 Accept-Encoding 選 zstd 優先，其次 gzip。
func pickEncoding(accept string) (string, *sync.Pool) {
	switch {
	case strings.Contains(accept, "zstd"):
		return "zstd", &zstdPool
	case strings.Contains(accept, "gzip"):
		return "gzip", &gzipPool
	}
	return "", nil
}

type compressWriter struct {
	http.ResponseWriter
	enc      encoder
	disabled bool // 204/304/1xx 沒有 body，不壓縮
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if cw.disabled {
		return cw.ResponseWriter.Write(b)
	}
	cw.Header().Del("Content-Length")
	if cw.Header().Get("Content-Type") == "" {
		cw.Header().Set("Content-Type", http.DetectContentType(b))
	}
	return cw.enc.Write(b)
}

func (cw *compressWriter) WriteHeader(code int) {
	cw.Header().Del("Content-Length")
	if (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified {
		cw.disabled = true
		cw.Header().Del("Content-Encoding")
		cw.Header().Del("Vary")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Flush() {
	if !cw.disabled {
		_ = cw.enc.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not support Hijacker")
	}
	return hj.Hijack()
}

// Compression 以 zstd 或 gzip 壓縮回應。HEAD、升級連線與已編碼的回應直接略過。
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrade := r.Header.Get("Upgrade") != "" ||
			strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
		if r.Method == http.MethodHead || upgrade || w.Header().Get("Content-Encoding") != "" {
			next.ServeHTTP(w, r)
			return
		}
		name, pool := pickEncoding(r.Header.Get("Accept-Encoding"))
		if pool == nil {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", name)
		w.Header().Add("Vary", "Accept-Encoding")
		enc := pool.Get().(encoder)
		enc.Reset(w)
		cw := &compressWriter{ResponseWriter: w, enc: enc}
		defer func() {
			// 沒有 body 時把結尾 footer 丟掉
			if cw.disabled {
				enc.Reset(io.Discard)
			}
			_ = enc.Close()
			enc.Reset(io.Discard)
			pool.Put(enc)
		}()
		next.ServeHTTP(cw, r)
	})
}
