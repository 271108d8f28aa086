package grid

// Tool selects which cell attribute a bulk or brush operation writes.
type Tool string

const (
	ToolTerrain Tool = "terrain"
	ToolHeight  Tool = "height"
)

// Size thresholds for the size-adaptive strategies. Above LargeCells
// long operations yield once to the scheduler before running; above
// VeryLargeCells fills switch to the template-row strategy and history
// switches from row-copy snapshots to plain references.
const (
	LargeCells     = 10_000
	VeryLargeCells = 40_000
)

// Grid is the surface shared by rectangular and hex grids. Both
// implementations follow the new-on-write contract: Fill, Resize and
// the brush engine return fresh grid values and never mutate the
// receiver.
type Grid interface {
	// CellCount returns the total number of cells, including hex Empty
	// sentinel cells.
	CellCount() int

	// Fill sets every cell's terrain or height to a single value and
	// returns the resulting grid. Terrain fills also reset each cell's
	// height to the terrain's base height.
	Fill(tool Tool, terrain TerrainID, height int) Grid

	// Clone returns a deep copy that shares no mutable storage with the
	// receiver.
	Clone() Grid
}
