// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package metric

import (
	"runtime"

	"github.com/hashicorp/gridsearch/version"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelGoVersion   = "goversion"
	labelGitRevision = "revision"
	labelVersion     = "version"
)

// buildInfoVec is a gauge metric whose value is always equal to 1 and whose
// labels contain the current go version, git revision, and release version.
var buildInfoVec = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "build_info",
		Help:      "Gauge with labels describing go version, git revision hash, and release version.",
	},
	[]string{labelGoVersion, labelGitRevision, labelVersion},
)

func getBuildInfoLabels() map[string]string {
	verInfo := version.Get()

	return map[string]string{
		labelGoVersion:   runtime.Version(),
		labelGitRevision: verInfo.Revision,
		labelVersion:     verInfo.VersionNumber(),
	}
}

// InitializeBuildInfo registers the gridsearch_build_info metric with its
// correct labels and sets its value to 1.
func InitializeBuildInfo(r prometheus.Registerer) {
	if r == nil {
		return
	}

	r.MustRegister(buildInfoVec)
	l := prometheus.Labels(getBuildInfoLabels())
	buildInfoVec.With(l).Set(float64(1))
}
