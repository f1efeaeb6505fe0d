// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

// DefaultKey is the request parameter holding the raw search string.
const DefaultKey = "__search__"

// Config holds the request parameter key a search reads. The zero value and
// a nil *Config both use DefaultKey. Set the key while configuring the host;
// a Config is read-only while searches are applied.
type Config struct {
	key string
}

// NewConfig returns a Config using key, or DefaultKey when key is empty.
func NewConfig(key string) *Config {
	return &Config{key: key}
}

// Key returns the request parameter key.
func (c *Config) Key() string {
	if c == nil || c.key == "" {
		return DefaultKey
	}
	return c.key
}

// SetKey overwrites the request parameter key. An empty key restores
// DefaultKey.
func (c *Config) SetKey(key string) {
	c.key = key
}

// Params is a request parameter store; url.Values satisfies it.
type Params interface {
	Get(key string) string
}
