// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search_test

import (
	"strings"
	"testing"

	"github.com/hashicorp/gridsearch/internal/search"
	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty",
			raw:  "",
			want: nil,
		},
		{
			name: "blank",
			raw:  " \t  ",
			want: nil,
		},
		{
			name: "single",
			raw:  "age:>=18",
			want: []string{"age:>=18"},
		},
		{
			name: "trimmed-and-collapsed",
			raw:  "  age:>=18    name:%john%  ",
			want: []string{"age:>=18", "name:%john%"},
		},
		{
			name: "tabs-and-newlines",
			raw:  "a:1\tb:2\nc:3",
			want: []string{"a:1", "b:2", "c:3"},
		},
		{
			name: "quoted-value-kept-whole",
			raw:  `name:"john smith" age:18`,
			want: []string{`name:"john smith"`, "age:18"},
		},
		{
			name: "two-quoted-values",
			raw:  `name:"john  smith" |name:"jane doe"`,
			want: []string{`name:"john  smith"`, `|name:"jane doe"`},
		},
		{
			name: "quoted-without-colon",
			raw:  `"john smith"`,
			want: []string{`"john smith"`},
		},
		{
			name: "vertical-tab-and-form-feed",
			raw:  "a:1\vb:2\fc:3\r",
			want: []string{"a:1", "b:2", "c:3"},
		},
		{
			name: "no-break-space-inside-token",
			raw:  "name:john\u00a0smith age:18",
			want: []string{"name:john\u00a0smith", "age:18"},
		},
		{
			name: "unicode-spaces-not-trimmed",
			raw:  "\u2003name:mary\u3000",
			want: []string{"\u2003name:mary\u3000"},
		},
		{
			name: "unbalanced-quote",
			raw:  `a:1 b:"x y`,
			want: []string{`a:1 b:"x`, "y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, search.Tokenize(tt.raw))
		})
	}
}

func TestTokenize_quotedNeverSplit(t *testing.T) {
	t.Parallel()
	quoted := []string{`"a b"`, `"  leading"`, `"x y z"`, `"tab	inside"`}
	for _, q := range quoted {
		raw := "col:" + q + " other:1 " + "|col:" + q
		tokens := search.Tokenize(raw)
		assert.Equal(t, []string{"col:" + q, "other:1", "|col:" + q}, tokens, raw)
		for _, tok := range tokens {
			assert.Equal(t, strings.Count(tok, `"`)%2, 0, tok)
		}
	}
}
