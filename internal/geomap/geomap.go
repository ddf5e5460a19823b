package geomap

import (
	"math"

	"github.com/joncalder/dialmap/internal/catalog"
)

// Grid projects catalog coordinates onto a terminal cell grid using a
// plain equirectangular projection over the catalog's bounding box.
type Grid struct {
	minLat, maxLat float64
	minLon, maxLon float64
}

// padFraction widens the bounding box so edge markers don't sit on the frame.
const padFraction = 0.05

// NewGrid computes the bounding box of the entries.
func NewGrid(entries []catalog.Entry) *Grid {
	g := &Grid{
		minLat: math.Inf(1), maxLat: math.Inf(-1),
		minLon: math.Inf(1), maxLon: math.Inf(-1),
	}
	for _, e := range entries {
		g.minLat = math.Min(g.minLat, e.Lat)
		g.maxLat = math.Max(g.maxLat, e.Lat)
		g.minLon = math.Min(g.minLon, e.Lon)
		g.maxLon = math.Max(g.maxLon, e.Lon)
	}

	latPad := (g.maxLat - g.minLat) * padFraction
	lonPad := (g.maxLon - g.minLon) * padFraction
	if latPad == 0 {
		latPad = 0.5
	}
	if lonPad == 0 {
		lonPad = 0.5
	}
	g.minLat -= latPad
	g.maxLat += latPad
	g.minLon -= lonPad
	g.maxLon += lonPad

	return g
}

// Cell maps a coordinate to a grid cell. North is up: higher latitude
// means a smaller row index.
func (g *Grid) Cell(lat, lon float64, width, height int) (x, y int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	x = int((lon - g.minLon) / (g.maxLon - g.minLon) * float64(width-1))
	y = int((g.maxLat - lat) / (g.maxLat - g.minLat) * float64(height-1))
	return clamp(x, 0, width-1), clamp(y, 0, height-1)
}

// Positions places every entry on a width×height grid, keyed by code.
// Nearby entries may share a cell; the caller decides which to draw on top.
func (g *Grid) Positions(entries []catalog.Entry, width, height int) map[string][2]int {
	out := make(map[string][2]int, len(entries))
	for _, e := range entries {
		x, y := g.Cell(e.Lat, e.Lon, width, height)
		out[e.Code] = [2]int{x, y}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
