package geomap

import (
	"testing"

	"github.com/joncalder/dialmap/internal/catalog"
)

var testEntries = []catalog.Entry{
	{Code: "0131", Place: "Edinburgh", Lat: 55.9533, Lon: -3.1883},
	{Code: "020", Place: "London", Lat: 51.5074, Lon: -0.1278},
	{Code: "029", Place: "Cardiff", Lat: 51.4816, Lon: -3.1791},
	{Code: "01603", Place: "Norwich", Lat: 52.6309, Lon: 1.2974},
}

func TestCellOrientation(t *testing.T) {
	g := NewGrid(testEntries)
	const w, h = 60, 30

	pos := g.Positions(testEntries, w, h)

	// Edinburgh is north of London: smaller row index.
	if pos["0131"][1] >= pos["020"][1] {
		t.Errorf("Edinburgh row %d not above London row %d", pos["0131"][1], pos["020"][1])
	}
	// Norwich is east of Cardiff: larger column index.
	if pos["01603"][0] <= pos["029"][0] {
		t.Errorf("Norwich col %d not east of Cardiff col %d", pos["01603"][0], pos["029"][0])
	}
}

func TestCellBounds(t *testing.T) {
	g := NewGrid(testEntries)
	const w, h = 40, 20

	for _, e := range testEntries {
		x, y := g.Cell(e.Lat, e.Lon, w, h)
		if x < 0 || x >= w || y < 0 || y >= h {
			t.Errorf("%s at (%d,%d) outside %dx%d grid", e.Place, x, y, w, h)
		}
	}
}

func TestDegenerateBox(t *testing.T) {
	single := []catalog.Entry{{Code: "020", Lat: 51.5, Lon: -0.1}}
	g := NewGrid(single)
	x, y := g.Cell(51.5, -0.1, 10, 10)
	if x < 0 || x >= 10 || y < 0 || y >= 10 {
		t.Errorf("single-entry grid cell (%d,%d) out of range", x, y)
	}
}

func TestZeroSizeGrid(t *testing.T) {
	g := NewGrid(testEntries)
	if x, y := g.Cell(51.5, -0.1, 0, 0); x != 0 || y != 0 {
		t.Errorf("zero grid = (%d,%d), want (0,0)", x, y)
	}
}
