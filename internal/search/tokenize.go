// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

import (
	"strings"
)

// asciiSpace is the whitespace that separates tokens. Unicode spaces such as
// U+00A0 are part of a token.
const asciiSpace = " \t\n\v\f\r"

func isASCIISpace(r rune) bool {
	return r < 0x80 && strings.ContainsRune(asciiSpace, r)
}

func trimASCIISpace(s string) string {
	return strings.Trim(s, asciiSpace)
}

// Tokenize splits the raw search string on ASCII whitespace that lies outside a
// double quoted substring. Quotes are kept in the tokens. A whitespace
// character separates tokens only when an even number of quotes follow it,
// so an unbalanced quote protects nothing before it. Empty pieces are
// discarded and an empty or blank string has no tokens.
func Tokenize(raw string) []string {
	raw = trimASCIISpace(raw)
	if raw == "" {
		return nil
	}
	runes := []rune(raw)

	// quotesAfter[i] is the number of quotes in runes[i+1:]
	quotesAfter := make([]int, len(runes))
	n := 0
	for i := len(runes) - 1; i >= 0; i-- {
		quotesAfter[i] = n
		if runes[i] == '"' {
			n++
		}
	}

	var tokens []string
	start := 0
	for i, r := range runes {
		if !isASCIISpace(r) || quotesAfter[i]%2 != 0 {
			continue
		}
		if i > start {
			tokens = append(tokens, string(runes[start:i]))
		}
		start = i + 1
	}
	if start < len(runes) {
		tokens = append(tokens, string(runes[start:]))
	}
	return tokens
}
