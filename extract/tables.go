// Copyright 2026 Gray Iron Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package extract

import (
	"image"
	"regexp"
	"sort"
	"strings"
)

const (
	// inkBlockSize is the side length of the grid cells used to
	// down-sample a page image before region detection.
	inkBlockSize = 8

	// inkThreshold is the fraction of dark pixels that marks a grid
	// cell as carrying ink. Tuned for thin ruled table borders, which
	// cross an 8x8 cell with roughly one dark row out of eight.
	inkThreshold = 0.05

	// darkLuma is the 8-bit luma below which a pixel counts as ink.
	darkLuma = 128
)

// detectTableRegions locates rectangular regions of connected ink in a
// page image that are large enough to plausibly be ruled tables. Regions
// smaller than minArea square pixels are discarded, and at most
// maxRegions are returned, ordered top to bottom.
//
// This is a coarse heuristic, not layout analysis: it binarizes the
// image, down-samples it into a grid, and flood-fills connected dark
// cells into bounding boxes. Dense photographs pass the filter too; the
// downstream OCR pass decides whether a region yields tabular text.
func detectTableRegions(img image.Image, minArea, maxRegions int) []image.Rectangle {
	bounds := img.Bounds()
	gw := (bounds.Dx() + inkBlockSize - 1) / inkBlockSize
	gh := (bounds.Dy() + inkBlockSize - 1) / inkBlockSize
	if gw == 0 || gh == 0 {
		return nil
	}

	ink := make([]bool, gw*gh)
	for gy := 0; gy < gh; gy++ {
		for gx := 0; gx < gw; gx++ {
			ink[gy*gw+gx] = blockHasInk(img, bounds, gx, gy)
		}
	}

	var regions []image.Rectangle
	visited := make([]bool, gw*gh)
	for gy := 0; gy < gh; gy++ {
		for gx := 0; gx < gw; gx++ {
			idx := gy*gw + gx
			if visited[idx] || !ink[idx] {
				continue
			}
			r := floodFill(ink, visited, gw, gh, gx, gy)
			px := pixelRect(r, bounds)
			if px.Dx()*px.Dy() >= minArea {
				regions = append(regions, px)
			}
		}
	}

	sort.Slice(regions, func(i, j int) bool {
		if regions[i].Min.Y != regions[j].Min.Y {
			return regions[i].Min.Y < regions[j].Min.Y
		}
		return regions[i].Min.X < regions[j].Min.X
	})
	if len(regions) > maxRegions {
		regions = regions[:maxRegions]
	}
	return regions
}

// blockHasInk reports whether the fraction of dark pixels in one grid
// cell exceeds inkThreshold.
func blockHasInk(img image.Image, bounds image.Rectangle, gx, gy int) bool {
	x0 := bounds.Min.X + gx*inkBlockSize
	y0 := bounds.Min.Y + gy*inkBlockSize
	x1 := min(x0+inkBlockSize, bounds.Max.X)
	y1 := min(y0+inkBlockSize, bounds.Max.Y)

	total := (x1 - x0) * (y1 - y0)
	if total == 0 {
		return false
	}

	dark := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			luma := (299*r + 587*g + 114*b) / 1000 >> 8
			if luma < darkLuma {
				dark++
			}
		}
	}
	return float64(dark)/float64(total) > inkThreshold
}

// floodFill grows a 4-connected component of ink cells starting at
// (gx, gy) and returns its bounding box in grid coordinates.
func floodFill(ink, visited []bool, gw, gh, gx, gy int) image.Rectangle {
	box := image.Rect(gx, gy, gx+1, gy+1)
	stack := []image.Point{{X: gx, Y: gy}}
	visited[gy*gw+gx] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		box = box.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

		for _, d := range []image.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			nx, ny := p.X+d.X, p.Y+d.Y
			if nx < 0 || ny < 0 || nx >= gw || ny >= gh {
				continue
			}
			idx := ny*gw + nx
			if visited[idx] || !ink[idx] {
				continue
			}
			visited[idx] = true
			stack = append(stack, image.Point{X: nx, Y: ny})
		}
	}
	return box
}

// pixelRect converts a grid-coordinate box back to pixel coordinates,
// clipped to the image bounds.
func pixelRect(grid, bounds image.Rectangle) image.Rectangle {
	px := image.Rect(
		bounds.Min.X+grid.Min.X*inkBlockSize,
		bounds.Min.Y+grid.Min.Y*inkBlockSize,
		bounds.Min.X+grid.Max.X*inkBlockSize,
		bounds.Min.Y+grid.Max.Y*inkBlockSize,
	)
	return px.Intersect(bounds)
}

// cellSplitRe separates table cells on tabs or runs of two and more spaces.
var cellSplitRe = regexp.MustCompile(`\t|\s{2,}`)

// ParseGrid turns raw table OCR text into a best-effort row/column grid.
// Rows are lines, cells are separated by tabs or wide space runs.
// Lines with no cell content are dropped.
func ParseGrid(raw string) [][]string {
	var grid [][]string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var row []string
		for _, cell := range cellSplitRe.Split(line, -1) {
			cell = strings.TrimSpace(cell)
			if cell != "" {
				row = append(row, cell)
			}
		}
		if len(row) > 0 {
			grid = append(grid, row)
		}
	}
	return grid
}
