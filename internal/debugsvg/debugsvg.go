// Package debugsvg renders a solved board.Scene to SVG for visual
// inspection: cells colored by building kind and cell kind, with arrows
// for every connection. It is a diagnostic aid only — never part of the
// solver's objective.
package debugsvg

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
)

// Options configures SVG rendering.
type Options struct {
	CellSize   int    // Pixel size of one board cell (default: 16)
	Margin     int    // Canvas margin in pixels (default: 20)
	ShowGrid   bool   // Draw faint grid lines over empty cells
	ShowArrows bool   // Draw an arrow for every connection
	Title      string // Optional title drawn above the board
}

// DefaultOptions returns sensible default rendering options.
func DefaultOptions() Options {
	return Options{CellSize: 16, Margin: 20, ShowGrid: true, ShowArrows: true, Title: "Scene"}
}

var kindColor = map[board.Kind]string{
	board.KindDeposit:  "#d4af37",
	board.KindObstacle: "#555555",
	board.KindMine:     "#4a90d9",
	board.KindConveyor: "#4caf50",
	board.KindCombiner: "#e67e22",
	board.KindFactory:  "#9b59b6",
}

const (
	colorEmpty = "#1a1a2e"
	colorGrid  = "#2e2e46"
	colorArrow = "#ffffff"
)

// Render draws scene to SVG bytes.
func Render(scene *board.Scene, opts Options) ([]byte, error) {
	if opts.CellSize <= 0 {
		opts.CellSize = 16
	}
	if opts.Margin <= 0 {
		opts.Margin = 20
	}

	cs := opts.CellSize
	width := int(scene.Grid.Width)*cs + 2*opts.Margin
	height := int(scene.Grid.Height)*cs + 2*opts.Margin + headerHeight(opts)

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+colorEmpty)

	top := opts.Margin + headerHeight(opts)
	if opts.Title != "" {
		canvas.Text(opts.Margin, opts.Margin+14, opts.Title, "fill:#ffffff;font-size:16px;font-family:monospace")
	}

	drawCells(canvas, scene, opts, top)
	if opts.ShowArrows {
		drawConnections(canvas, scene, opts, top)
	}

	canvas.End()
	return buf.Bytes(), nil
}

func headerHeight(opts Options) int {
	if opts.Title == "" {
		return 0
	}
	return 24
}

func drawCells(canvas *svg.SVG, scene *board.Scene, opts Options, top int) {
	cs := opts.CellSize
	for y := int8(0); y < scene.Grid.Height; y++ {
		for x := int8(0); x < scene.Grid.Width; x++ {
			px, py := opts.Margin+int(x)*cs, top+int(y)*cs
			cell, _ := scene.Grid.At(geom.P(x, y))
			if cell == nil {
				if opts.ShowGrid {
					canvas.Rect(px, py, cs, cs, "fill:none;stroke:"+colorGrid+";stroke-width:0.5")
				}
				continue
			}
			b := scene.Buildings.Get(cell.Owner)
			fill := "#888888"
			if b != nil {
				if c, ok := kindColor[b.Kind]; ok {
					fill = c
				}
			}
			style := fmt.Sprintf("fill:%s;stroke:#000000;stroke-width:0.5", fill)
			switch cell.Kind {
			case geom.Output:
				style += ";stroke:#ffffff;stroke-width:1.5"
			case geom.Input:
				style += ";stroke:#000000;stroke-width:1.5"
			}
			canvas.Rect(px, py, cs, cs, style)
		}
	}
}

func drawConnections(canvas *svg.SVG, scene *board.Scene, opts Options, top int) {
	cs := opts.CellSize
	half := cs / 2
	for _, c := range scene.Connections {
		x1 := opts.Margin + int(c.OutputPos.X)*cs + half
		y1 := top + int(c.OutputPos.Y)*cs + half
		x2 := opts.Margin + int(c.InputPos.X)*cs + half
		y2 := top + int(c.InputPos.Y)*cs + half
		canvas.Line(x1, y1, x2, y2, "stroke:"+colorArrow+";stroke-width:1")
	}
}

// SaveToFile renders scene and writes it to path with 0644 permissions.
func SaveToFile(scene *board.Scene, path string, opts Options) error {
	data, err := Render(scene, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
