package mapio

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/talgya/mapforge/internal/grid"
)

func TestRectRoundTrip(t *testing.T) {
	g, _ := grid.NewRect(4, 3)
	edited := g.WithCells([]grid.CellChange{
		{Row: 0, Col: 0, Cell: grid.Cell{Terrain: grid.Mountains, Height: 8}},
		{Row: 2, Col: 3, Cell: grid.Cell{Terrain: grid.Water, Height: 0}},
	})

	data, err := Export(edited, Meta{Name: "roundtrip"})
	if err != nil {
		t.Fatal(err)
	}
	back, meta, err := Import(data)
	if err != nil {
		t.Fatal(err)
	}
	rect, ok := back.(*grid.RectGrid)
	if !ok {
		t.Fatalf("imported %T, want *grid.RectGrid", back)
	}
	if !rect.Equal(edited) {
		t.Error("imported grid differs from exported grid")
	}
	if meta.Name != "roundtrip" {
		t.Errorf("name = %q", meta.Name)
	}
	if meta.ID == "" {
		t.Error("export did not assign an ID")
	}
	if meta.CreatedAt.IsZero() {
		t.Error("export did not stamp CreatedAt")
	}
}

func TestHexRoundTripWithEmptyAndUnit(t *testing.T) {
	g, _ := grid.NewHex(1)
	edited := g.WithCells(map[grid.Axial]grid.Cell{
		{Q: 1, R: 0}:  grid.EmptyCell(),
		{Q: 0, R: 0}:  {Terrain: grid.Forest, Height: 3, Unit: &grid.UnitRef{ID: "u1", Kind: "scout"}},
		{Q: -1, R: 1}: {Terrain: grid.Water, Height: 0},
	})

	data, err := Export(edited, Meta{})
	if err != nil {
		t.Fatal(err)
	}
	back, _, err := Import(data)
	if err != nil {
		t.Fatal(err)
	}
	hex, ok := back.(*grid.HexGrid)
	if !ok {
		t.Fatalf("imported %T, want *grid.HexGrid", back)
	}
	if !hex.Equal(edited) {
		t.Error("hex grid did not survive the round trip")
	}
	if cell, _ := hex.At(grid.Axial{Q: 1, R: 0}); cell.Terrain != grid.Empty {
		t.Errorf("Empty sentinel lost: %+v", cell)
	}
	if cell, _ := hex.At(grid.Axial{Q: 0, R: 0}); cell.Unit == nil || cell.Unit.ID != "u1" {
		t.Errorf("unit reference lost: %+v", cell)
	}
}

func TestImportHexThreePartKeys(t *testing.T) {
	doc := `{
		"width": 3, "height": 3, "hexGrid": true, "mapRadius": 1, "version": 2,
		"data": {
			"0,0,0": {"terrainType": "field", "height": 2},
			"1,-1,0": {"terrainType": "water", "height": 0}
		}
	}`
	g, _, err := Import([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	hex := g.(*grid.HexGrid)
	if cell, _ := hex.At(grid.Axial{Q: 1, R: -1}); cell.Terrain != grid.Water {
		t.Errorf("three-part key cell = %+v", cell)
	}
	// Unlisted coordinates come back as Empty sentinels.
	if cell, _ := hex.At(grid.Axial{Q: 0, R: 1}); cell.Terrain != grid.Empty {
		t.Errorf("missing coordinate = %+v, want Empty", cell)
	}

	bad := strings.Replace(doc, `"1,-1,0"`, `"1,-1,5"`, 1)
	if _, _, err := Import([]byte(bad)); !errors.Is(err, ErrMalformed) {
		t.Errorf("cube-constraint violation accepted: %v", err)
	}
}

func TestImportLegacyArrayShape(t *testing.T) {
	// Version-1 documents stored hex data as the bounding rhombus,
	// rows r = -radius..radius, with nulls outside the radius.
	doc := `{
		"width": 3, "height": 3, "hexGrid": true, "mapRadius": 1, "version": 1,
		"data": [
			[null, {"terrainType": "water", "height": 0}, {"terrainType": "field", "height": 1}],
			[{"terrainType": "forest", "height": 2}, {"terrainType": "field", "height": 1}, {"terrainType": "field", "height": 1}],
			[{"terrainType": "field", "height": 1}, {"terrainType": "swamp", "height": 1}, null]
		]
	}`
	g, _, err := Import([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	hex := g.(*grid.HexGrid)
	if hex.CellCount() != 7 {
		t.Fatalf("cell count = %d, want 7", hex.CellCount())
	}
	if cell, _ := hex.At(grid.Axial{Q: 0, R: -1}); cell.Terrain != grid.Water {
		t.Errorf("legacy cell (0,-1) = %+v, want water", cell)
	}
	if cell, _ := hex.At(grid.Axial{Q: -1, R: 0}); cell.Terrain != grid.Forest {
		t.Errorf("legacy cell (-1,0) = %+v, want forest", cell)
	}

	// Converting to the current shape and back preserves the grid.
	out, err := Export(hex, Meta{})
	if err != nil {
		t.Fatal(err)
	}
	again, _, err := Import(out)
	if err != nil {
		t.Fatal(err)
	}
	if !again.(*grid.HexGrid).Equal(hex) {
		t.Error("legacy-imported grid changed across a modern round trip")
	}
}

func TestImportUnknownTerrainFallsBack(t *testing.T) {
	doc := `{
		"width": 1, "height": 1, "version": 2,
		"data": [[{"type": "lava", "height": 30}]]
	}`
	g, _, err := Import([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	cell := g.(*grid.RectGrid).At(0, 0)
	if cell.Terrain != grid.DefaultTerrain {
		t.Errorf("unknown terrain = %q, want fallback %q", cell.Terrain, grid.DefaultTerrain)
	}
	if cell.Height != grid.MaxHeight {
		t.Errorf("height = %d, want clamped to %d", cell.Height, grid.MaxHeight)
	}
}

func TestImportMalformed(t *testing.T) {
	cases := map[string]string{
		"bad json":       `{"width": 3`,
		"missing data":   `{"width": 3, "height": 3, "version": 2}`,
		"missing dims":   `{"version": 2, "data": [[{"type":"field","height":1}]]}`,
		"ragged rows":    `{"width": 2, "height": 1, "version": 2, "data": [[{"type":"field","height":1}]]}`,
		"row mismatch":   `{"width": 1, "height": 2, "version": 2, "data": [[{"type":"field","height":1}]]}`,
		"bad hex key":    `{"width": 3, "height": 3, "hexGrid": true, "mapRadius": 1, "version": 2, "data": {"a,b": {"terrainType":"field","height":1}}}`,
		"hex data shape": `{"width": 3, "height": 3, "hexGrid": true, "mapRadius": 1, "version": 2, "data": "nope"}`,
	}
	for name, doc := range cases {
		if _, _, err := Import([]byte(doc)); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: err = %v, want ErrMalformed", name, err)
		}
	}
}

func TestExportVersionAndShape(t *testing.T) {
	g, _ := grid.NewRect(2, 2)
	data, err := Export(g, Meta{})
	if err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Version != Version {
		t.Errorf("version = %d, want %d", doc.Version, Version)
	}
	if doc.Width != 2 || doc.Height != 2 || doc.HexGrid {
		t.Errorf("header = %+v", doc)
	}
}
