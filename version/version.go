// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package version reports the version of the gridsearch binary, as set at
// build time with -ldflags.
package version

import (
	"fmt"
	"strings"
)

// Info is the version information of the running binary.
type Info struct {
	Revision          string `json:"revision,omitempty"`
	Version           string `json:"version"`
	VersionPrerelease string `json:"version_prerelease,omitempty"`
	VersionMetadata   string `json:"version_metadata,omitempty"`
}

// Get returns the version information. A GitDescribe set at build time
// replaces Version and clears the dev prerelease.
func Get() *Info {
	ver := Version
	rel := VersionPrerelease
	if GitDescribe != "" {
		ver = GitDescribe
		if rel == "dev" {
			rel = ""
		}
	}
	return &Info{
		Revision:          GitCommit,
		Version:           ver,
		VersionPrerelease: rel,
		VersionMetadata:   VersionMetadata,
	}
}

// VersionNumber renders the semantic version, e.g. 0.1.0-dev+ent.
func (c *Info) VersionNumber() string {
	if c.Version == "" {
		return "(version unknown)"
	}
	var sb strings.Builder
	sb.WriteString(c.Version)
	if c.VersionPrerelease != "" {
		sb.WriteString("-" + c.VersionPrerelease)
	}
	if c.VersionMetadata != "" {
		sb.WriteString("+" + c.VersionMetadata)
	}
	return sb.String()
}

// FullVersionNumber renders the product name and version, with the git
// revision when rev is set.
func (c *Info) FullVersionNumber(rev bool) string {
	if c.Version == "" {
		return "Gridsearch (version unknown)"
	}
	s := fmt.Sprintf("Gridsearch v%s", c.VersionNumber())
	if rev && c.Revision != "" {
		s = fmt.Sprintf("%s (%s)", s, c.Revision)
	}
	return s
}
