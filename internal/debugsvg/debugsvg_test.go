package debugsvg

import (
	"bytes"
	"testing"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
)

func TestRenderProducesWellFormedSVG(t *testing.T) {
	var products [geom.ProductTypes]geom.Product
	scene := board.NewScene(products, 10, 10, 50, 10)
	if _, err := board.Place(scene, board.Building{Kind: board.KindDeposit, Pos: geom.P(0, 0), Width: 2, Height: 2}); err != nil {
		t.Fatalf("Place deposit: %v", err)
	}

	data, err := Render(scene, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Fatal("rendered output does not contain an <svg> tag")
	}
	if !bytes.Contains(data, []byte("</svg>")) {
		t.Fatal("rendered output is not closed with </svg>")
	}
}
