package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LineChart renders a series as a text chart of roughly width x height
// cells, with a value axis on the left and series indices along the
// bottom. Long series are downsampled to fit the width.
func LineChart(values []float64, width, height int) string {
	if len(values) == 0 {
		return ""
	}

	// Reserve space: 9 chars for the value axis, 1 for the separator.
	cols := width - 10
	if cols < 10 {
		cols = 10
	}
	rows := height
	if rows < 5 {
		rows = 5
	}

	pts, srcIdx := samplePoints(values, cols)

	minV, maxV := pts[0], pts[0]
	for _, v := range pts {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	// Pad the value range so the line does not hug the frame.
	span := maxV - minV
	if span == 0 {
		span = 1
	}
	minV -= span * 0.1
	maxV += span * 0.1

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, len(pts))
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}

	prevY := 0
	for i, v := range pts {
		y := valueToRow(v, minV, maxV, rows)
		grid[y][i] = '•'
		if i > 0 {
			lo, hi := prevY, y
			if lo > hi {
				lo, hi = hi, lo
			}
			for r := lo + 1; r < hi; r++ {
				grid[r][i] = '·'
			}
		}
		prevY = y
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		label := decimal.NewFromFloat(rowToValue(r, minV, maxV, rows)).StringFixed(2)
		fmt.Fprintf(&b, "%8s │%s\n", label, string(grid[r]))
	}

	b.WriteString("─────────┴")
	b.WriteString(strings.Repeat("─", len(pts)))
	b.WriteString("\n")

	axis := make([]rune, len(pts))
	for i := range axis {
		axis[i] = ' '
	}
	lastEnd := -2
	for i := range pts {
		last := i == len(pts)-1
		if i%10 != 0 && !last {
			continue
		}
		label := []rune(strconv.Itoa(srcIdx[i]))
		start := i
		if last && start+len(label) > len(pts) {
			// Right-align the final index so it stays visible.
			start = len(pts) - len(label)
		}
		if start <= lastEnd+1 || start+len(label) > len(pts) {
			continue
		}
		copy(axis[start:], label)
		lastEnd = start + len(label) - 1
	}
	b.WriteString("          ")
	b.WriteString(string(axis))

	return b.String()
}

// samplePoints picks at most cols points, keeping the first and last
// entries, and reports which source index each point came from.
func samplePoints(values []float64, cols int) ([]float64, []int) {
	if len(values) <= cols {
		idx := make([]int, len(values))
		for i := range idx {
			idx[i] = i
		}
		return values, idx
	}
	pts := make([]float64, cols)
	idx := make([]int, cols)
	for i := 0; i < cols; i++ {
		src := i * (len(values) - 1) / (cols - 1)
		pts[i] = values[src]
		idx[i] = src
	}
	return pts, idx
}

func valueToRow(v, minV, maxV float64, rows int) int {
	if maxV == minV {
		return rows / 2
	}
	ratio := (maxV - v) / (maxV - minV)
	y := int(ratio * float64(rows-1))
	if y < 0 {
		y = 0
	}
	if y >= rows {
		y = rows - 1
	}
	return y
}

func rowToValue(y int, minV, maxV float64, rows int) float64 {
	if rows <= 1 {
		return minV
	}
	ratio := float64(y) / float64(rows-1)
	return maxV - ratio*(maxV-minV)
}
