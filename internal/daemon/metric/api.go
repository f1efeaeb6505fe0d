// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package metric

import (
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiSubSystem = "api"

// The paths served by the daemon. A segment in braces matches any single
// path segment.
const (
	PathGrids   = "/v1/grids"
	PathGrid    = "/v1/grids/{name}"
	PathMetrics = "/metrics"
)

var (
	expectedPathsToMethods = map[string][]string{
		PathGrids:   {http.MethodGet},
		PathGrid:    {http.MethodGet},
		PathMetrics: {http.MethodGet},
	}
	pathRegex map[*regexp.Regexp]string
)

func init() {
	pathRegex = make(map[*regexp.Regexp]string, len(expectedPathsToMethods))
	for p := range expectedPathsToMethods {
		pathRegex[buildRegexFromPath(p)] = p
	}
}

var segmentTag = regexp.MustCompile(`\{[^\}]+\}`)

func buildRegexFromPath(p string) *regexp.Regexp {
	const segmentRegexp = "[^/]+"
	var seg []string
	for _, s := range segmentTag.Split(p, -1) {
		seg = append(seg, regexp.QuoteMeta(s))
	}
	return regexp.MustCompile(fmt.Sprintf("^%s$", strings.Join(seg, segmentRegexp)))
}

var (
	// 100 bytes, 1kb, 10kb, 100kb, 1mb, 10mb, 100mb, 1gb
	msgSizeBuckets = prometheus.ExponentialBuckets(100, 10, 8)

	// httpRequestLatency collects measurements of how long it takes the
	// daemon to reply to a request from the time it received it.
	httpRequestLatency prometheus.ObserverVec = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: apiSubSystem,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of latencies for HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		ListHttpLabels,
	)

	// httpResponseSize collects measurements of how large each response
	// from the daemon is.
	httpResponseSize prometheus.ObserverVec = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: apiSubSystem,
			Name:      "http_response_size_bytes",
			Help:      "Histogram of response sizes for HTTP responses.",
			Buckets:   msgSizeBuckets,
		},
		ListHttpLabels,
	)
)

var expectedStatusCodesPerMethod = map[string][]int{
	http.MethodGet: {
		http.StatusOK,
		http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusMethodNotAllowed,
		http.StatusInternalServerError,
	},
}

// pathLabel maps the requested path to the label value recorded for metrics
func pathLabel(incomingPath string) string {
	if incomingPath == "" || incomingPath[0] != '/' {
		incomingPath = fmt.Sprintf("/%s", incomingPath)
	}
	incomingPath = path.Clean(incomingPath)

	for r, ep := range pathRegex {
		if r.MatchString(incomingPath) {
			return ep
		}
	}
	return invalidPathValue
}

// InstrumentApiHandler provides a handler which measures the response size
// and the request latency of the api, with status code, method and path
// labels attached to each measurement.
func InstrumentApiHandler(wrapped http.Handler) http.Handler {
	return instrumentHandler(httpRequestLatency, httpResponseSize, wrapped)
}

func instrumentHandler(latency, size prometheus.ObserverVec, wrapped http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		l := prometheus.Labels{
			LabelHttpPath: pathLabel(req.URL.Path),
		}
		promhttp.InstrumentHandlerDuration(
			latency.MustCurryWith(l),
			promhttp.InstrumentHandlerResponseSize(
				size.MustCurryWith(l),
				wrapped,
			),
		).ServeHTTP(rw, req)
	})
}

// InitializeApiCollectors registers the api collectors with r and
// initializes them to 0 for all expected label combinations.
func InitializeApiCollectors(r prometheus.Registerer) {
	for _, v := range []prometheus.ObserverVec{httpRequestLatency, httpResponseSize} {
		InitializeHttpCollectors(r, v, expectedPathsToMethods, expectedStatusCodesPerMethod)
	}
}
