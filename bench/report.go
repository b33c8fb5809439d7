// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// Table renders results as a bordered summary table with one row per engine
// and dataset size.
func Table(results []Result) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Size", "Engine", "Height", "Insert", "Search", "Found", "Delete", "Removed").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return cellStyle
			default:
				return numberStyle
			}
		})
	for _, r := range results {
		t.Row(
			strconv.Itoa(r.Size),
			r.Engine,
			strconv.Itoa(r.Height),
			seconds(r.Insert),
			seconds(r.Search),
			fmt.Sprintf("%d/%d", r.Found, r.Queries),
			seconds(r.Delete),
			fmt.Sprintf("%d/%d", r.Removed, r.Deletions),
		)
	}
	return t.String()
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.4fs", d.Seconds())
}
