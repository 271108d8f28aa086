// Package mapio reads and writes the JSON map document exchanged with
// the host's file I/O layer. Export then import of any grid reproduces
// an equivalent grid, including hex Empty sentinel cells, and legacy
// array-shaped hex payloads are converted to the keyed-map shape on
// import.
package mapio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/mapforge/internal/grid"
)

// Version written by this exporter. Version 1 documents (legacy array
// data) remain importable.
const Version = 2

// ErrMalformed is wrapped by every import validation failure.
var ErrMalformed = errors.New("mapio: malformed map document")

// Meta is the descriptive header of a map document.
type Meta struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Document is the on-disk shape.
type Document struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitzero"`
	Version     int             `json:"version"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	HexGrid     bool            `json:"hexGrid,omitempty"`
	MapRadius   int             `json:"mapRadius,omitempty"`
	Data        json.RawMessage `json:"data"`
}

// rectCell is the wire shape of one rectangular cell.
type rectCell struct {
	Type   grid.TerrainID `json:"type"`
	Height int            `json:"height"`
}

// hexCell is the wire shape of one hex cell.
type hexCell struct {
	TerrainType grid.TerrainID `json:"terrainType"`
	Height      int            `json:"height"`
	Unit        *grid.UnitRef  `json:"unit,omitempty"`
}

// Export serializes a grid with the given metadata. A missing ID gets
// a fresh UUID and a zero CreatedAt becomes the current time.
func Export(g grid.Grid, meta Meta) ([]byte, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}
	doc := Document{
		ID:          meta.ID,
		Name:        meta.Name,
		Description: meta.Description,
		CreatedAt:   meta.CreatedAt,
		Version:     Version,
	}

	switch t := g.(type) {
	case *grid.RectGrid:
		doc.Width = t.Width()
		doc.Height = t.Height()
		rows := make([][]rectCell, t.Height())
		for r := 0; r < t.Height(); r++ {
			rows[r] = make([]rectCell, t.Width())
			for c := 0; c < t.Width(); c++ {
				cell := t.At(r, c)
				rows[r][c] = rectCell{Type: cell.Terrain, Height: cell.Height}
			}
		}
		data, err := json.Marshal(rows)
		if err != nil {
			return nil, fmt.Errorf("mapio: encode rect data: %w", err)
		}
		doc.Data = data
	case *grid.HexGrid:
		doc.HexGrid = true
		doc.MapRadius = t.Radius()
		side := 2*t.Radius() + 1
		doc.Width = side
		doc.Height = side
		cells := make(map[string]hexCell, t.CellCount())
		t.Coords(func(c grid.Axial, cell grid.Cell) {
			key := fmt.Sprintf("%d,%d", c.Q, c.R)
			cells[key] = hexCell{TerrainType: cell.Terrain, Height: cell.Height, Unit: cell.Unit}
		})
		data, err := json.Marshal(cells)
		if err != nil {
			return nil, fmt.Errorf("mapio: encode hex data: %w", err)
		}
		doc.Data = data
	default:
		return nil, fmt.Errorf("mapio: unsupported grid type %T", g)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Import parses a map document and reconstructs the grid. Nothing is
// committed on failure: the returned error wraps ErrMalformed for any
// structural problem.
func Import(data []byte) (grid.Grid, Meta, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, Meta{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	meta := Meta{ID: doc.ID, Name: doc.Name, Description: doc.Description, CreatedAt: doc.CreatedAt}

	if len(doc.Data) == 0 {
		return nil, Meta{}, fmt.Errorf("%w: missing data field", ErrMalformed)
	}

	if doc.HexGrid {
		g, err := importHex(doc)
		if err != nil {
			return nil, Meta{}, err
		}
		return g, meta, nil
	}

	g, err := importRect(doc)
	if err != nil {
		return nil, Meta{}, err
	}
	return g, meta, nil
}

func importRect(doc Document) (*grid.RectGrid, error) {
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("%w: missing or invalid width/height", ErrMalformed)
	}
	var data [][]rectCell
	if err := json.Unmarshal(doc.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: rect data: %v", ErrMalformed, err)
	}
	if len(data) != doc.Height {
		return nil, fmt.Errorf("%w: %d data rows, want %d", ErrMalformed, len(data), doc.Height)
	}
	rows := make([][]grid.Cell, doc.Height)
	for r, dataRow := range data {
		if len(dataRow) != doc.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformed, r, len(dataRow), doc.Width)
		}
		row := make([]grid.Cell, doc.Width)
		for c, wire := range dataRow {
			row[c] = grid.Cell{
				Terrain: normalizeTerrain(wire.Type),
				Height:  grid.ClampHeight(wire.Height),
			}
		}
		rows[r] = row
	}
	return grid.RectFromRows(rows)
}

func importHex(doc Document) (*grid.HexGrid, error) {
	radius := doc.MapRadius
	if radius < 0 {
		return nil, fmt.Errorf("%w: invalid mapRadius %d", ErrMalformed, radius)
	}

	// Current shape: keyed map "q,r" (or "q,r,s") → cell.
	var keyed map[string]hexCell
	if err := json.Unmarshal(doc.Data, &keyed); err == nil {
		cells := make(map[grid.Axial]grid.Cell, len(keyed))
		for key, wire := range keyed {
			coord, err := parseHexKey(key)
			if err != nil {
				return nil, err
			}
			cells[coord] = hexCellToCell(wire)
		}
		return grid.HexFromCells(radius, cells)
	}

	// Legacy shape: row-major array over the bounding rhombus, rows
	// r = -radius..radius, columns q = -radius..radius, with nulls at
	// out-of-radius positions. Converted to the keyed shape here.
	var legacy [][]*hexCell
	if err := json.Unmarshal(doc.Data, &legacy); err != nil {
		return nil, fmt.Errorf("%w: hex data is neither keyed map nor legacy array: %v", ErrMalformed, err)
	}
	if len(legacy) != 2*radius+1 {
		return nil, fmt.Errorf("%w: legacy hex data has %d rows, want %d", ErrMalformed, len(legacy), 2*radius+1)
	}
	cells := make(map[grid.Axial]grid.Cell)
	for i, row := range legacy {
		for j, wire := range row {
			if wire == nil {
				continue
			}
			coord := grid.Axial{Q: j - radius, R: i - radius}
			if grid.HexDistance(coord, grid.Axial{}) > radius {
				continue
			}
			cells[coord] = hexCellToCell(*wire)
		}
	}
	return grid.HexFromCells(radius, cells)
}

func hexCellToCell(wire hexCell) grid.Cell {
	return grid.Cell{
		Terrain: normalizeTerrain(wire.TerrainType),
		Height:  grid.ClampHeight(wire.Height),
		Unit:    wire.Unit,
	}
}

// normalizeTerrain maps unknown terrain ids to the default terrain;
// the Empty sentinel passes through untouched.
func normalizeTerrain(id grid.TerrainID) grid.TerrainID {
	if grid.Known(id) {
		return id
	}
	return grid.DefaultTerrain
}

// parseHexKey parses "q,r" or "q,r,s" coordinate keys. When s is
// present it must satisfy the cube constraint q+r+s = 0.
func parseHexKey(key string) (grid.Axial, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return grid.Axial{}, fmt.Errorf("%w: bad coordinate key %q", ErrMalformed, key)
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return grid.Axial{}, fmt.Errorf("%w: bad coordinate key %q", ErrMalformed, key)
		}
		nums[i] = n
	}
	if len(nums) == 3 && nums[0]+nums[1]+nums[2] != 0 {
		return grid.Axial{}, fmt.Errorf("%w: key %q violates q+r+s=0", ErrMalformed, key)
	}
	return grid.Axial{Q: nums[0], R: nums[1]}, nil
}
