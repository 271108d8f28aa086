// Command mapgen generates a terrain map from the command line and
// writes it as a map document: the same entry points a UI host drives
// interactively.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/mapforge/internal/gen"
	"github.com/talgya/mapforge/internal/grid"
	"github.com/talgya/mapforge/internal/mapio"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		width     = flag.Int("width", 40, "grid width (rectangular maps)")
		height    = flag.Int("height", 30, "grid height (rectangular maps)")
		hexRadius = flag.Int("radius", 0, "hex radius; > 0 generates a hex map instead")
		modeFlag  = flag.String("mode", string(gen.ModeProcedural), "generator mode: procedural, island, biomes, random")
		seed      = flag.String("seed", "", "generation seed; empty picks a random one")
		scale     = flag.Float64("scale", 1.0, "terrain feature scale")
		water     = flag.Float64("water", 0.3, "water level threshold [0,1]")
		mountains = flag.Float64("mountains", 0.75, "mountains level threshold [0,1]")
		forest    = flag.Float64("forest", 0.5, "forest density [0,1]")
		swamp     = flag.Float64("swamp", 0.3, "swamp density [0,1]")
		buildings = flag.Float64("buildings", 0.1, "buildings density [0,1]")
		hills     = flag.Float64("hills", 0.4, "hills density [0,1]")
		name      = flag.String("name", "", "map name stored in the document")
		out       = flag.String("out", "map.json", "output file path")
	)
	flag.Parse()

	mode, err := gen.ParseMode(*modeFlag)
	if err != nil {
		slog.Error("invalid mode", "error", err)
		os.Exit(1)
	}

	params := gen.Params{
		Seed:             *seed,
		TerrainScale:     *scale,
		WaterLevel:       *water,
		MountainsLevel:   *mountains,
		ForestDensity:    *forest,
		SwampDensity:     *swamp,
		BuildingsDensity: *buildings,
		HillsDensity:     *hills,
	}
	if params.Seed == "" {
		params.Seed = fmt.Sprintf("%d", rand.New(rand.NewSource(time.Now().UnixNano())).Int63())
	}

	start := time.Now()
	var g grid.Grid
	if *hexRadius > 0 {
		g, err = gen.GenerateHex(*hexRadius, params, mode)
	} else {
		g, err = gen.GenerateRect(*width, *height, params, mode)
	}
	if err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}

	slog.Info("map generated",
		"mode", mode,
		"seed", params.Seed,
		"cells", humanize.Comma(int64(g.CellCount())),
		"duration", time.Since(start),
	)
	for _, tc := range terrainCounts(g) {
		slog.Info("terrain", "type", grid.Resolve(tc.id).DisplayName, "count", tc.n)
	}

	doc, err := mapio.Export(g, mapio.Meta{Name: *name})
	if err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, doc, 0644); err != nil {
		slog.Error("write failed", "error", err, "path", *out)
		os.Exit(1)
	}
	slog.Info("map written", "path", *out, "bytes", humanize.Bytes(uint64(len(doc))))
}

type terrainCount struct {
	id grid.TerrainID
	n  int
}

// terrainCounts summarizes the terrain distribution, most common
// first.
func terrainCounts(g grid.Grid) []terrainCount {
	counts := make(map[grid.TerrainID]int)
	switch t := g.(type) {
	case *grid.RectGrid:
		for r := 0; r < t.Height(); r++ {
			for c := 0; c < t.Width(); c++ {
				counts[t.At(r, c).Terrain]++
			}
		}
	case *grid.HexGrid:
		t.Coords(func(_ grid.Axial, cell grid.Cell) {
			counts[cell.Terrain]++
		})
	}
	out := make([]terrainCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, terrainCount{id: id, n: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].id < out[j].id
	})
	return out
}
