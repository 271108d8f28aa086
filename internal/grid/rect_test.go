package grid

import "testing"

func TestNewRectDefaults(t *testing.T) {
	g, err := NewRect(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width() != 4 || g.Height() != 3 || g.CellCount() != 12 {
		t.Fatalf("got %dx%d (%d cells)", g.Width(), g.Height(), g.CellCount())
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			cell := g.At(r, c)
			if cell.Terrain != Field || cell.Height != DefaultHeight {
				t.Fatalf("cell (%d,%d) = %+v, want default", r, c, cell)
			}
		}
	}
}

func TestNewRectInvalid(t *testing.T) {
	if _, err := NewRect(0, 5); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := NewRect(5, -1); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestFillTotalityTerrain(t *testing.T) {
	g, _ := NewRect(6, 6)
	filled := g.Fill(ToolTerrain, Water, 0).(*RectGrid)
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			cell := filled.At(r, c)
			if cell.Terrain != Water {
				t.Fatalf("cell (%d,%d) terrain = %q, want water", r, c, cell.Terrain)
			}
			if cell.Height != BaseHeight(Water) {
				t.Fatalf("cell (%d,%d) height = %d, want %d", r, c, cell.Height, BaseHeight(Water))
			}
		}
	}
	// Input untouched.
	if g.At(0, 0).Terrain != Field {
		t.Error("fill mutated its input grid")
	}
}

func TestFillTotalityHeight(t *testing.T) {
	g, _ := NewRect(5, 5)
	painted := g.Fill(ToolTerrain, Forest, 0).(*RectGrid)
	filled := painted.Fill(ToolHeight, "", 7).(*RectGrid)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			cell := filled.At(r, c)
			if cell.Height != 7 {
				t.Fatalf("cell (%d,%d) height = %d, want 7", r, c, cell.Height)
			}
			if cell.Terrain != Forest {
				t.Fatalf("height fill changed terrain at (%d,%d)", r, c)
			}
		}
	}
}

func TestFillHeightClamped(t *testing.T) {
	g, _ := NewRect(2, 2)
	filled := g.Fill(ToolHeight, "", 99).(*RectGrid)
	if h := filled.At(0, 0).Height; h != MaxHeight {
		t.Errorf("height = %d, want clamped to %d", h, MaxHeight)
	}
}

func TestFillVeryLargeTemplatePath(t *testing.T) {
	// 210x200 = 42,000 cells, above the template-row threshold.
	g, _ := NewRect(210, 200)
	filled := g.Fill(ToolTerrain, Sand, 0).(*RectGrid)
	if filled.CellCount() <= VeryLargeCells {
		t.Fatalf("test grid too small to exercise the large-fill path")
	}
	for r := 0; r < filled.Height(); r++ {
		for c := 0; c < filled.Width(); c++ {
			if filled.At(r, c).Terrain != Sand {
				t.Fatalf("cell (%d,%d) missed by large fill", r, c)
			}
		}
	}
}

func TestResizeIdempotent(t *testing.T) {
	g, _ := NewRect(8, 6)
	edited := g.WithCells([]CellChange{{Row: 2, Col: 3, Cell: Cell{Terrain: Water, Height: 0}}})
	same, err := edited.Resize(8, 6)
	if err != nil {
		t.Fatal(err)
	}
	if !same.Equal(edited) {
		t.Error("resize to current dimensions is not an identity")
	}
}

func TestResizePreservesOverlap(t *testing.T) {
	g, _ := NewRect(4, 4)
	edited := g.WithCells([]CellChange{
		{Row: 0, Col: 0, Cell: Cell{Terrain: Mountains, Height: 9}},
		{Row: 3, Col: 3, Cell: Cell{Terrain: Water, Height: 0}},
	})

	grown, err := edited.Resize(6, 6)
	if err != nil {
		t.Fatal(err)
	}
	if cell := grown.At(0, 0); cell.Terrain != Mountains || cell.Height != 9 {
		t.Errorf("overlap cell lost: %+v", cell)
	}
	if cell := grown.At(5, 5); cell.Terrain != Field || cell.Height != DefaultHeight {
		t.Errorf("new cell not defaulted: %+v", cell)
	}

	shrunk, err := grown.Resize(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if cell := shrunk.At(0, 0); cell.Terrain != Mountains {
		t.Errorf("shrink lost overlap cell: %+v", cell)
	}
	if shrunk.CellCount() != 4 {
		t.Errorf("shrunk cell count = %d", shrunk.CellCount())
	}
}

func TestWithCellsDoesNotMutateParent(t *testing.T) {
	g, _ := NewRect(3, 3)
	edited := g.WithCells([]CellChange{{Row: 1, Col: 1, Cell: Cell{Terrain: Road, Height: 0}}})
	if g.At(1, 1).Terrain != Field {
		t.Error("WithCells wrote through to the parent grid")
	}
	if edited.At(1, 1).Terrain != Road {
		t.Error("WithCells change not applied")
	}
	// Out-of-bounds changes are skipped, not an error.
	same := edited.WithCells([]CellChange{{Row: 9, Col: 9, Cell: Cell{Terrain: Water}}})
	if !same.Equal(edited) {
		t.Error("out-of-bounds change altered the grid")
	}
}

func TestCloneIndependence(t *testing.T) {
	g, _ := NewRect(3, 3)
	clone := g.Clone().(*RectGrid)
	if !clone.Equal(g) {
		t.Fatal("clone not equal to source")
	}
	edited := clone.WithCells([]CellChange{{Row: 0, Col: 0, Cell: Cell{Terrain: Swamp, Height: 1}}})
	if g.At(0, 0).Terrain != Field {
		t.Error("editing a clone's descendant reached the source")
	}
	_ = edited
}

func TestResolveFallback(t *testing.T) {
	if Resolve("no-such-terrain").ID != Field {
		t.Error("unknown terrain did not fall back to field")
	}
	if Resolve(Water).ID != Water {
		t.Error("known terrain resolved incorrectly")
	}
}
