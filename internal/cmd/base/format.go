// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package base

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"unicode"
	"unicode/utf8"

	"github.com/mitchellh/cli"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

// minTermWidth keeps wrapped output readable on very narrow terminals.
const minTermWidth = 40

// GridsearchUI is the cli.Ui handed to every command. Format is the value of
// the global -format flag.
type GridsearchUI struct {
	cli.Ui
	Format string
}

// TermWidth is the width output is wrapped to.
var TermWidth uint = 80

func init() {
	if width, _, err := term.GetSize(int(os.Stdin.Fd())); err == nil && width >= minTermWidth {
		TermWidth = uint(width)
	}
}

// This is adapted from the code in the strings package for TrimSpace
var asciiSpace = [256]uint8{'\t': 1, '\n': 1, '\v': 1, '\f': 1, '\r': 1, ' ': 1}

// MaxAttributesLength returns the length of the longest key in the given
// maps.
func MaxAttributesLength(maps ...map[string]any) int {
	var maxLength int
	for _, m := range maps {
		for k := range m {
			if len(k) > maxLength {
				maxLength = len(k)
			}
		}
	}
	return maxLength
}

func trimSpaceRight(in string) string {
	for stop := len(in); stop > 0; stop-- {
		c := in[stop-1]
		if c >= utf8.RuneSelf {
			return strings.TrimFunc(in[:stop], unicode.IsSpace)
		}
		if asciiSpace[c] == 0 {
			return in[0:stop]
		}
	}
	return ""
}

func WrapForHelpText(lines []string) string {
	var ret []string
	for _, line := range lines {
		line = trimSpaceRight(line)
		trimmed := strings.TrimSpace(line)
		diff := uint(len(line) - len(trimmed))
		wrapped := wordwrap.WrapString(trimmed, TermWidth-diff)
		splitWrapped := strings.Split(wrapped, "\n")
		for i := range splitWrapped {
			splitWrapped[i] = fmt.Sprintf("%s%s", strings.Repeat(" ", int(diff)), strings.TrimSpace(splitWrapped[i]))
		}
		ret = append(ret, strings.Join(splitWrapped, "\n"))
	}

	return strings.Join(ret, "\n")
}

func WrapSlice(prefixSpaces int, input []string) string {
	var ret []string
	for _, v := range input {
		ret = append(ret, fmt.Sprintf("%s%s",
			strings.Repeat(" ", prefixSpaces),
			v,
		))
	}

	return strings.Join(ret, "\n")
}

func WrapMap(prefixSpaces, maxLengthOverride int, input map[string]any) string {
	maxKeyLength := maxLengthOverride
	if maxKeyLength == 0 {
		for k := range input {
			if len(k) > maxKeyLength {
				maxKeyLength = len(k)
			}
		}
	}

	var sortedKeys []string
	for k := range input {
		sortedKeys = append(sortedKeys, k)
	}
	sort.Strings(sortedKeys)

	var ret []string
	for _, k := range sortedKeys {
		v := input[k]
		spaces := maxKeyLength - len(k)
		if spaces < 0 {
			spaces = 0
		}

		if sv, ok := v.([]string); ok {
			nv := make([]string, 0, len(sv))
			for _, si := range sv {
				nv = append(nv, fmt.Sprintf("%q", si))
			}
			v = nv
		}

		ret = append(ret, fmt.Sprintf("%s%s%s%v",
			strings.Repeat(" ", prefixSpaces),
			fmt.Sprintf("%s: ", k),
			strings.Repeat(" ", spaces),
			v,
		))
	}

	return strings.Join(ret, "\n")
}

// WrapTable renders rows under the given headers as aligned columns. A nil
// value is rendered as "null".
func WrapTable(prefixSpaces int, headers []string, rows [][]any) string {
	var b bytes.Buffer
	tw := tabwriter.NewWriter(&b, 0, 2, 2, ' ', 0)
	prefix := strings.Repeat(" ", prefixSpaces)
	fmt.Fprintf(tw, "%s%s\n", prefix, strings.Join(headers, "\t"))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			if v == nil {
				cells = append(cells, "null")
				continue
			}
			cells = append(cells, fmt.Sprintf("%v", v))
		}
		fmt.Fprintf(tw, "%s%s\n", prefix, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// PrintCliError prints the given CLI error to the UI in the appropriate format
func (c *Command) PrintCliError(err error) {
	switch Format(c.UI) {
	case "json":
		output := struct {
			Error string `json:"error"`
		}{
			Error: err.Error(),
		}
		b, _ := JsonFormatter{}.Format(output)
		c.UI.Error(string(b))
	default:
		c.UI.Error(err.Error())
	}
}

// PrintJson prints the given value to the UI in JSON format
func (c *Command) PrintJson(v any) bool {
	b, err := JsonFormatter{}.Format(v)
	if err != nil {
		c.PrintCliError(fmt.Errorf("Error formatting as JSON: %w", err))
		return false
	}
	c.UI.Output(string(b))
	return true
}

// An output formatter for json output of an object
type JsonFormatter struct{}

func (j JsonFormatter) Format(data any) ([]byte, error) {
	return json.Marshal(data)
}

// Format returns the output format of the ui. The -format flag is parsed
// before the command runs so it is already reflected here.
func Format(ui cli.Ui) string {
	switch t := ui.(type) {
	case *GridsearchUI:
		return t.Format
	}

	format := os.Getenv(EnvGridsearchCLIFormat)
	if format == "" {
		format = "table"
	}

	return format
}
