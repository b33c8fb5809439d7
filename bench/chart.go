// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"
	"image"
	"slices"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
)

const (
	minChartWidth  = 24
	minChartHeight = 8

	// axisWidth is the number of columns the plot reserves for the y axis
	// and its labels.
	axisWidth = 5
)

// markers distinguish engine series in the rendered text.
var markers = []rune{'•', '*', '+', 'x', 'o', '#'}

var chartTitles = map[Op]string{
	Insert: "Insertion Time Comparison (s)",
	Search: "Search Time Comparison (s)",
	Delete: "Deletion Time Comparison (s)",
}

var chartNames = map[Op]string{
	Insert: "insertion_times.txt",
	Search: "search_times.txt",
	Delete: "deletion_times.txt",
}

// ChartName returns the file name used for the chart of op.
func ChartName(op Op) string {
	return chartNames[op]
}

// Chart renders the times recorded for op in results as a plain text chart of
// the given size, with one series per engine plotted against dataset size in
// the order the sizes first appear. A legend naming the series markers and
// sizes follows the chart.
func Chart(results []Result, op Op, width, height int) string {
	if len(results) == 0 {
		return ""
	}
	width = max(width, minChartWidth)
	height = max(height, minChartHeight)

	var (
		engines []string
		sizes   []int
		series  = make(map[string][]float64)
		maxVal  float64
	)
	for _, r := range results {
		if !slices.Contains(engines, r.Engine) {
			engines = append(engines, r.Engine)
		}
		if !slices.Contains(sizes, r.Size) {
			sizes = append(sizes, r.Size)
		}
		v := r.Time(op).Seconds()
		series[r.Engine] = append(series[r.Engine], v)
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Usable columns inside the border and right of the y axis.
	span := width - 2 - axisWidth
	scale := span - 1
	if len(sizes) > 1 {
		scale = max(1, (span-1)/(len(sizes)-1))
	}

	// The first series owns the frame and axes. Later series are drawn
	// without them over the first one's plotting area.
	buf := ui.NewBuffer(image.Rect(0, 0, width, height))
	for i, name := range engines {
		p := widgets.NewPlot()
		if i == 0 {
			p.SetRect(0, 0, width, height)
			p.Title = chartTitles[op]
		} else {
			p.SetRect(axisWidth, 0, width, height-2)
			p.Border = false
			p.ShowAxes = false
		}
		p.Data = [][]float64{series[name]}
		p.DataLabels = []string{name}
		p.MaxVal = maxVal
		p.Marker = widgets.MarkerDot
		p.DotMarkerRune = markers[i%len(markers)]
		p.HorizontalScale = scale
		p.Draw(buf)
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		var line strings.Builder
		for x := 0; x < width; x++ {
			r := buf.GetCell(image.Pt(x, y)).Rune
			if r == 0 {
				r = ' '
			}
			line.WriteRune(r)
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	for i, name := range engines {
		fmt.Fprintf(&b, "  %c %s", markers[i%len(markers)], name)
	}
	b.WriteByte('\n')
	b.WriteString("  n:")
	for i, n := range sizes {
		fmt.Fprintf(&b, " %d=%d", i+1, n)
	}
	b.WriteByte('\n')
	return b.String()
}
