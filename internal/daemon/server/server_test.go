// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/gridsearch/internal/db"
	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/hashicorp/gridsearch/internal/grid"
	"github.com/hashicorp/gridsearch/internal/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, opt ...Option) *Server {
	t.Helper()
	require := require.New(t)
	ctx := context.Background()
	_, rw := db.TestSetup(t)
	db.TestExec(t, rw,
		`create table users (id integer primary key, name text, age integer)`,
		`insert into users values (1, 'joan', 30), (2, 'John', 17), (3, 'mary', 45)`,
	)
	reg := grid.NewRegistry()
	users, err := grid.NewGrid(ctx, "users", "users", []grid.Column{
		{Name: "id", Unsearchable: true},
		{Name: "name", Label: "Name"},
		{Name: "age", Label: "Age"},
	}, grid.WithOrder("id"))
	require.NoError(err)
	require.NoError(reg.Register(ctx, users))
	ghosts, err := grid.NewGrid(ctx, "ghosts", "ghosts", []grid.Column{{Name: "id"}})
	require.NoError(err)
	require.NoError(reg.Register(ctx, ghosts))

	repo, err := grid.NewRepository(ctx, rw, reg, grid.WithSearchConfig(search.NewConfig("q")))
	require.NoError(err)
	s, err := New(ctx, repo, opt...)
	require.NoError(err)
	return s
}

func TestNew(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, err := New(ctx, nil)
	assert.True(t, errors.Match(errors.T(errors.InvalidParameter), err))

	_, rw := db.TestSetup(t)
	repo, err := grid.NewRepository(ctx, rw, grid.NewRegistry())
	require.NoError(t, err)
	_, err = New(ctx, repo, WithReadTimeout(-time.Second))
	assert.True(t, errors.Match(errors.T(errors.InvalidParameter), err))
	_, err = New(ctx, repo, WithShutdownTimeout(0))
	assert.True(t, errors.Match(errors.T(errors.InvalidParameter), err))
}

func TestServer_searchGrid(t *testing.T) {
	t.Parallel()
	s := testServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		query      url.Values
		wantStatus int
		wantNames  []string
	}{
		{name: "all", path: "/v1/grids/users", wantStatus: http.StatusOK, wantNames: []string{"joan", "John", "mary"}},
		{name: "search", path: "/v1/grids/users", query: url.Values{"q": {"Age:>=18 |Name:%jo%"}}, wantStatus: http.StatusOK, wantNames: []string{"joan", "John", "mary"}},
		{name: "search-and", path: "/v1/grids/users", query: url.Values{"q": {"Age:>=18 Name:%jo%"}}, wantStatus: http.StatusOK, wantNames: []string{"joan"}},
		{name: "default-key-ignored", path: "/v1/grids/users", query: url.Values{search.DefaultKey: {"name:mary"}}, wantStatus: http.StatusOK, wantNames: []string{"joan", "John", "mary"}},
		{name: "filter", path: "/v1/grids/users", query: url.Values{grid.FilterKey: {`"/item/name" matches "^J"`}}, wantStatus: http.StatusOK, wantNames: []string{"John"}},
		{name: "bad-search", path: "/v1/grids/users", query: url.Values{"q": {"age:<NULL"}}, wantStatus: http.StatusBadRequest},
		{name: "bad-filter", path: "/v1/grids/users", query: url.Values{grid.FilterKey: {"name =="}}, wantStatus: http.StatusBadRequest},
		{name: "unknown-grid", path: "/v1/grids/nope", wantStatus: http.StatusNotFound},
		{name: "broken-grid", path: "/v1/grids/ghosts", wantStatus: http.StatusInternalServerError},
		{name: "wrong-method", method: http.MethodPost, path: "/v1/grids/users", wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			target := tt.path
			if tt.query != nil {
				target += "?" + tt.query.Encode()
			}
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
			require.Equal(tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal("application/json", rec.Header().Get("Content-Type"))
			assert.NotEmpty(rec.Header().Get(requestIdHeader))

			if tt.wantStatus != http.StatusOK {
				var apiErr ApiError
				require.NoError(json.Unmarshal(rec.Body.Bytes(), &apiErr))
				assert.Equal(tt.wantStatus, apiErr.Status)
				assert.NotEmpty(apiErr.Message)
				assert.Equal(rec.Header().Get(requestIdHeader), apiErr.RequestId)
				return
			}
			var res grid.Result
			require.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
			assert.Equal("users", res.Grid)
			assert.Equal(grid.PlacementRight, res.Placement)
			var names []string
			for _, item := range res.Items {
				names = append(names, item["name"].(string))
			}
			assert.Equal(tt.wantNames, names)
		})
	}
}

func TestServer_listGrids(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	s := testServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/grids", nil))
	require.Equal(http.StatusOK, rec.Code)

	var got struct {
		SearchKey string `json:"search_key"`
		Grids     []struct {
			Name      string        `json:"name"`
			Table     string        `json:"table"`
			Columns   []grid.Column `json:"columns"`
			Placement string        `json:"placement"`
			Search    string        `json:"search"`
		} `json:"grids"`
	}
	require.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal("q", got.SearchKey)
	require.Len(got.Grids, 2)
	assert.Equal("ghosts", got.Grids[0].Name)
	assert.Equal("users", got.Grids[1].Name)
	assert.Equal("right", got.Grids[1].Placement)
	assert.Equal(grid.SearchModeDefault, got.Grids[1].Search)
	assert.Equal([]grid.Column{
		{Name: "id", Unsearchable: true},
		{Name: "name", Label: "Name"},
		{Name: "age", Label: "Age"},
	}, got.Grids[1].Columns)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/grids", nil))
	assert.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_notFound(t *testing.T) {
	t.Parallel()
	s := testServer(t)
	for _, p := range []string{"/", "/v1", "/v1/grids/users/rows", "/v2/grids"} {
		t.Run(p, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code)
			var apiErr ApiError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
			assert.Equal(t, "Not found", apiErr.Message)
		})
	}
}

func TestServer_metrics(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	reg := prometheus.NewRegistry()
	s := testServer(t, WithPrometheusRegistry(reg))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/grids/users", nil))
	require.Equal(http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(body, "gridsearch_build_info")
	// the api collectors are shared by every server in the process
	assert.Contains(body, `gridsearch_api_http_request_duration_seconds_count{code="200",method="get",path="/v1/grids/{name}"}`)
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	s := testServer(t)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, l)
	}()

	resp, err := http.Get("http://" + l.Addr().String() + "/v1/grids/users?q=" + url.QueryEscape("name:mary"))
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.True(strings.Contains(string(body), `"mary"`), string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(err)
	case <-time.After(10 * time.Second):
		t.Fatal("server didn't stop")
	}
	assert.NoError(s.Shutdown(), "shutdown is idempotent")

	err = s.Serve(context.Background(), nil)
	assert.True(errors.Match(errors.T(errors.InvalidParameter), err))
}
