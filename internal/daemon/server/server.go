// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package server serves grid searches over http.
//
//	GET /v1/grids                 lists the registered grids
//	GET /v1/grids/{name}          searches a grid; the search string is read
//	                              from the configured query parameter and an
//	                              optional bexpr "filter" parameter narrows rows
//	GET /metrics                  prometheus metrics
package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/gridsearch/internal/daemon/metric"
	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/hashicorp/gridsearch/internal/grid"
	"github.com/hashicorp/gridsearch/internal/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the http daemon.
type Server struct {
	logger          hclog.Logger
	handler         http.Handler
	httpSrv         *http.Server
	shutdownTimeout time.Duration

	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates a Server over repo. Supported options: WithLogger,
// WithPrometheusRegistry, WithReadTimeout and WithShutdownTimeout.
func New(ctx context.Context, repo *grid.Repository, opt ...Option) (*Server, error) {
	const op = "server.New"
	if util.IsNil(repo) {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "repository is missing")
	}
	opts, err := getOpts(opt...)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidParameter))
	}
	reg := opts.withPrometheusRegistry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metric.InitializeApiCollectors(reg)
	metric.InitializeBuildInfo(reg)

	mux := http.NewServeMux()
	listFn, err := newListGridsHandlerFunc(ctx, repo)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	mux.HandleFunc(metric.PathGrids, listFn)
	searchFn, err := newSearchGridHandlerFunc(ctx, repo, opts.withLogger)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	mux.HandleFunc(metric.PathGrid, searchFn)
	mux.Handle(metric.PathMetrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", new404Func(ctx))

	handler := withRequestId(opts.withLogger, metric.InstrumentApiHandler(mux))
	return &Server{
		logger:  opts.withLogger,
		handler: handler,
		httpSrv: &http.Server{
			Handler:     handler,
			ReadTimeout: opts.withReadTimeout,
		},
		shutdownTimeout: opts.withShutdownTimeout,
	}, nil
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on l until ctx is done or the server is shut
// down.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	const op = "server.(Server).Serve"
	if l == nil {
		return errors.New(ctx, errors.InvalidParameter, op, "listener is missing")
	}
	s.logger.Info("serving grid searches", "address", l.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.Serve(l)
	}()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
			return errors.Wrap(ctx, err, op, errors.WithCode(errors.Io))
		}
		return nil
	case <-ctx.Done():
		if err := s.Shutdown(); err != nil {
			return errors.Wrap(ctx, err, op)
		}
		<-errCh
		return nil
	}
}

// Shutdown gracefully stops the server. Only the first call has an effect.
func (s *Server) Shutdown() error {
	const op = "server.(Server).Shutdown"
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			s.shutdownErr = errors.Wrap(ctx, err, op, errors.WithMsg("error shutting down server"), errors.WithCode(errors.Io))
		}
	})
	return s.shutdownErr
}
