// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses multi-valued URL query parameters.
package query

import (
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Strings flattens repeated parameters (?tag=a&tag=b) and comma lists
// (?tags=a,b) into one slice, preserving order. Blank entries are dropped.
func Strings(vals ...[]string) []string {
	var res []string
	for _, group := range vals {
		for _, v := range group {
			res = append(res, StringSlice(v)...)
		}
	}
	return res
}
