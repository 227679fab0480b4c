// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-style URL query parameters.
package query

import (
	"strings"

	"github.com/taibuivan/ibis/pkg/slice"
)

// StringSlice parses a single comma-separated query string
// into a trimmed, de-duplicated slice of strings.
//
//	StringSlice("a, b,,a") // []string{"a", "b"}
func StringSlice(val string) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}

	var res []string
	for _, v := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(v); clean != "" {
			res = append(res, clean)
		}
	}
	return slice.Unique(res)
}
