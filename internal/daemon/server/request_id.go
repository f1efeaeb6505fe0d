// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package server

import (
	"context"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-uuid"
)

const requestIdHeader = "X-Request-Id"

type requestIdKey struct{}

// requestId returns the id assigned to the request ctx belongs to.
func requestId(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey{}).(string)
	return id
}

// withRequestId assigns every request an id, echoed in the response
// headers, and logs the request at debug level.
func withRequestId(logger hclog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.GenerateUUID()
		if err != nil {
			logger.Warn("unable to generate request id", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set(requestIdHeader, id)
		logger.Debug("request", "request_id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIdKey{}, id)))
	})
}
