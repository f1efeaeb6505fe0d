// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package server

import (
	"context"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/hashicorp/gridsearch/internal/grid"
	"github.com/hashicorp/gridsearch/internal/util"
)

// GridInfo describes a registered grid.
type GridInfo struct {
	*grid.Grid
	Search string `json:"search"`
}

// GridList is the body returned when listing grids.
type GridList struct {
	// SearchKey is the query parameter holding the search string.
	SearchKey string     `json:"search_key"`
	Grids     []GridInfo `json:"grids"`
}

func newListGridsHandlerFunc(ctx context.Context, repo *grid.Repository) (http.HandlerFunc, error) {
	const op = "server.newListGridsHandlerFunc"
	if util.IsNil(repo) {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "repository is missing")
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		grids := repo.Registry().List()
		list := GridList{
			SearchKey: repo.SearchKey(),
			Grids:     make([]GridInfo, 0, len(grids)),
		}
		for _, g := range grids {
			list.Grids = append(list.Grids, GridInfo{Grid: g, Search: g.SearchMode()})
		}
		writeJson(w, list)
	}, nil
}

// newSearchGridHandlerFunc serves the rows of the grid named in the path,
// searched with the request's query parameters.
func newSearchGridHandlerFunc(ctx context.Context, repo *grid.Repository, logger hclog.Logger) (http.HandlerFunc, error) {
	const op = "server.newSearchGridHandlerFunc"
	switch {
	case util.IsNil(repo):
		return nil, errors.New(ctx, errors.InvalidParameter, op, "repository is missing")
	case util.IsNil(logger):
		return nil, errors.New(ctx, errors.InvalidParameter, op, "logger is missing")
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ctx := r.Context()
		res, err := repo.Search(ctx, r.PathValue("name"), r.URL.Query())
		if err != nil {
			status := statusFromError(err)
			if status == http.StatusInternalServerError {
				logger.Error("search failed", "request_id", requestId(ctx), "grid", r.PathValue("name"), "error", err)
			}
			writeError(w, err.Error(), status)
			return
		}
		if res == nil {
			writeError(w, "nil search result generated", http.StatusInternalServerError)
			return
		}
		writeJson(w, res)
	}, nil
}
