// Copyright 2021 FerretDB Inc.
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

// Package debug provides debug facilities.
package debug

import (
	"bytes"
	"context"
	"errors"
	"expvar"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"slices"
	"text/template"
	"time"

	"github.com/arl/statsviz"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/FerretDB/bookstore/internal/util/lazyerrors"
	"github.com/FerretDB/bookstore/internal/util/must"
)

// Handler serves debug pages: metrics, graphs, expvar, and pprof.
type Handler struct {
	mux      *http.ServeMux
	handlers map[string]string
}

// NewHandler creates debug HTTP handler for the given registry.
func NewHandler(r prometheus.Registerer, g prometheus.Gatherer, l *zap.Logger) (*Handler, error) {
	stdL, err := zap.NewStdLogAt(l, zap.WarnLevel)
	if err != nil {
		return nil, lazyerrors.Error(err)
	}

	mux := http.NewServeMux()

	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	metricsHandler := promhttp.InstrumentMetricHandler(
		r, promhttp.HandlerFor(g, promhttp.HandlerOpts{
			ErrorLog:          stdL,
			ErrorHandling:     promhttp.ContinueOnError,
			Registry:          r,
			EnableOpenMetrics: true,
		}),
	)
	mux.Handle("/debug/metrics", metricsHandler)

	if err = statsviz.Register(mux, statsviz.Root("/debug/graphs")); err != nil {
		return nil, lazyerrors.Error(err)
	}

	handlers := map[string]string{
		// custom handlers registered above
		"/debug/graphs":  "Visualize runtime metrics",
		"/debug/metrics": "Metrics in Prometheus format",

		// stdlib handlers
		"/debug/vars":   "Expvar package metrics",
		"/debug/pprof/": "Runtime profiling data for pprof",
	}

	var page bytes.Buffer
	must.NoError(template.Must(template.New("debug").Parse(`
	<html>
	<body>
	<ul>
	{{range $path, $desc := .}}
		<li><a href="{{$path}}">{{$path}}</a>: {{$desc}}</li>
	{{end}}
	</ul>
	</body>
	</html>
	`)).Execute(&page, handlers))

	mux.HandleFunc("/debug", func(rw http.ResponseWriter, _ *http.Request) {
		_, _ = rw.Write(page.Bytes())
	})

	return &Handler{
		mux:      mux,
		handlers: handlers,
	}, nil
}

// ServeHTTP implements [http.Handler].
func (h *Handler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	if req.URL.Path == "/" {
		http.Redirect(rw, req, "/debug", http.StatusSeeOther)
		return
	}

	h.mux.ServeHTTP(rw, req)
}

// Serve runs debug handler on the given listener until ctx is canceled.
func (h *Handler) Serve(ctx context.Context, lis net.Listener, l *zap.Logger) {
	root := fmt.Sprintf("http://%s", lis.Addr())

	l.Sugar().Infof("Starting debug server on %s ...", root)

	paths := maps.Keys(h.handlers)
	slices.Sort(paths)

	for _, path := range paths {
		l.Sugar().Infof("%s%s - %s", root, path, h.handlers[path])
	}

	s := http.Server{
		Handler:  h,
		ErrorLog: must.NotFail(zap.NewStdLogAt(l, zap.WarnLevel)),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
			l.Error("Debug server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()

	_ = s.Shutdown(stopCtx) //nolint:contextcheck // use new context for cancellation

	s.Close()
	l.Info("Debug server stopped.")
}

// RunHandler listens on addr and runs debug handler until ctx is canceled.
func RunHandler(ctx context.Context, addr string, r prometheus.Registerer, g prometheus.Gatherer, l *zap.Logger) error {
	h, err := NewHandler(r, g, l)
	if err != nil {
		return lazyerrors.Error(err)
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return lazyerrors.Error(err)
	}

	h.Serve(ctx, lis, l)

	return nil
}
