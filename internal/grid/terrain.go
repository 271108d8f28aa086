// Package grid provides the map data structures: cells, the terrain
// reference table, and the rectangular and hex grid stores.
// Grids are immutable by contract: every mutating operation returns a
// new grid value and never writes through a previously returned one.
// The undo history depends on this.
package grid

// TerrainID identifies a terrain type. Unknown ids resolve to Field.
type TerrainID string

const (
	// Empty is the hex-only sentinel for "no tile here". Hex grids keep
	// Empty cells for every in-radius coordinate rather than dropping
	// entries, so resize and serialization stay total.
	Empty     TerrainID = "empty"
	Field     TerrainID = "field"
	Forest    TerrainID = "forest"
	Hills     TerrainID = "hills"
	Mountains TerrainID = "mountains"
	Water     TerrainID = "water"
	Swamp     TerrainID = "swamp"
	Sand      TerrainID = "sand"
	Road      TerrainID = "road"
	Buildings TerrainID = "buildings"
	Snow      TerrainID = "snow"
)

// DefaultTerrain is the fallback for unresolvable terrain ids.
const DefaultTerrain = Field

// TerrainInfo is static reference data for one terrain type. The table
// is never mutated at runtime.
type TerrainInfo struct {
	ID               TerrainID
	DisplayName      string
	Color            string
	BaseHeightFactor float64
	TextureRef       string
}

// Terrains is the terrain reference table.
var Terrains = map[TerrainID]TerrainInfo{
	Empty:     {Empty, "Empty", "#00000000", 0.0, ""},
	Field:     {Field, "Field", "#7cb342", 1.0, "field.svg"},
	Forest:    {Forest, "Forest", "#33691e", 1.2, "forest.svg"},
	Hills:     {Hills, "Hills", "#8d6e63", 2.0, "hills.svg"},
	Mountains: {Mountains, "Mountains", "#6d4c41", 3.5, "mountains.svg"},
	Water:     {Water, "Water", "#1976d2", 0.0, "water.svg"},
	Swamp:     {Swamp, "Swamp", "#558b2f", 0.5, "swamp.svg"},
	Sand:      {Sand, "Sand", "#fdd835", 0.8, "sand.svg"},
	Road:      {Road, "Road", "#9e9e9e", 0.9, "road.svg"},
	Buildings: {Buildings, "Buildings", "#78909c", 1.5, "buildings.svg"},
	Snow:      {Snow, "Snow", "#eceff1", 3.0, "snow.svg"},
}

// Resolve returns the TerrainInfo for id, falling back to the default
// terrain when the id is unknown.
func Resolve(id TerrainID) TerrainInfo {
	if info, ok := Terrains[id]; ok {
		return info
	}
	return Terrains[DefaultTerrain]
}

// Known reports whether id is a registered terrain type.
func Known(id TerrainID) bool {
	_, ok := Terrains[id]
	return ok
}

// BaseHeight returns the default painted height for a terrain type,
// derived from its base height factor and clamped to the height range.
func BaseHeight(id TerrainID) int {
	info := Resolve(id)
	h := int(info.BaseHeightFactor)
	if h < MinHeight {
		h = MinHeight
	}
	return ClampHeight(h)
}
