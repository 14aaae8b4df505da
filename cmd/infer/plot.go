// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclements/go-moreinfer/stats"
)

const (
	plotRows  = 20
	plotWidth = 60
)

// FprintPDF prints the PDF of dist over its bounds as a horizontal bar
// chart with one row per evaluation point.
func FprintPDF(w io.Writer, dist stats.Dist) error {
	lo, hi := dist.Bounds()
	xs := make([]float64, plotRows)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(plotRows-1)
	}
	ys := dist.PDFEach(xs)
	var top float64
	for _, y := range ys {
		top = max(top, y)
	}
	for i, x := range xs {
		n := 0
		if top > 0 {
			n = int(ys[i] / top * plotWidth)
		}
		if _, err := fmt.Fprintf(w, "%12.6g %s\n", x, strings.Repeat("*", n)); err != nil {
			return err
		}
	}
	return nil
}
