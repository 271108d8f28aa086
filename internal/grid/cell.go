package grid

// Height bounds for every cell. Heights are clamped, never rejected.
const (
	MinHeight = 0
	MaxHeight = 10
)

// DefaultHeight is the height of a freshly created cell.
const DefaultHeight = 1

// Cell is a single map tile. Hex cells may additionally carry a unit
// reference; rectangular grids leave it nil.
type Cell struct {
	Terrain TerrainID
	Height  int
	Unit    *UnitRef
}

// UnitRef is an opaque reference to a unit placed on a hex cell. The
// editor core carries it through edits and serialization untouched.
type UnitRef struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// DefaultCell returns the cell every new grid position starts with.
func DefaultCell() Cell {
	return Cell{Terrain: DefaultTerrain, Height: DefaultHeight}
}

// EmptyCell returns the hex sentinel cell for "no tile".
func EmptyCell() Cell {
	return Cell{Terrain: Empty, Height: MinHeight}
}

// Equal compares two cells by value, including the unit reference.
func (c Cell) Equal(o Cell) bool {
	if c.Terrain != o.Terrain || c.Height != o.Height {
		return false
	}
	if (c.Unit == nil) != (o.Unit == nil) {
		return false
	}
	return c.Unit == nil || *c.Unit == *o.Unit
}

// ClampHeight clamps h into [MinHeight, MaxHeight].
func ClampHeight(h int) int {
	if h < MinHeight {
		return MinHeight
	}
	if h > MaxHeight {
		return MaxHeight
	}
	return h
}
