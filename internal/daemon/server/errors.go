// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package server

import (
	"encoding/json"
	"net/http"

	"github.com/hashicorp/gridsearch/internal/errors"
)

// ApiError is the body of every non 2xx response.
type ApiError struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	RequestId string `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ApiError{
		Status:    status,
		Message:   msg,
		RequestId: w.Header().Get(requestIdHeader),
	})
}

// statusFromError maps the error's code to an http status.
func statusFromError(err error) int {
	switch {
	case errors.Match(errors.T(errors.InvalidParameter), err):
		return http.StatusBadRequest
	case errors.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJson(w http.ResponseWriter, v any) {
	j, err := json.Marshal(v)
	if err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(j)
}
