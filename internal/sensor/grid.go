package sensor

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/colormap"
	"github.com/san-kum/chargefield/internal/field"
	"github.com/san-kum/chargefield/internal/geom"
)

const (
	DefaultFieldColumns     = 4
	DefaultPotentialColumns = 8
)

// Grid is a lattice of probes covering a width x height area centred on the
// origin. Spacing is width/(columns+1) in both directions and cells are
// sampled at their centres.
type Grid struct {
	Columns int
	Rows    int
	Spacing float64
	probes  []*Probe // column-major
}

func NewGrid(reg *charge.Registry, width, height float64, columns int) (*Grid, error) {
	if columns < 0 || !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("sensor: invalid grid %gx%g with %d columns", width, height, columns)
	}
	spacing := width / float64(columns+1)
	rows := int(math.Floor(height/spacing)) - 1
	if rows < 0 {
		return nil, fmt.Errorf("sensor: grid spacing %g too coarse for height %g", spacing, height)
	}

	g := &Grid{Columns: columns + 1, Rows: rows + 1, Spacing: spacing}
	for i := 0; i <= columns; i++ {
		for j := 0; j <= rows; j++ {
			pos := geom.Pt(
				-width/2+spacing*(float64(i)+0.5),
				height/2-spacing*(float64(j)+0.5),
			)
			g.probes = append(g.probes, New(reg, pos))
		}
	}
	return g, nil
}

func (g *Grid) Len() int {
	return len(g.probes)
}

// At returns the probe in column i, row j (row 0 at the top).
func (g *Grid) At(i, j int) *Probe {
	return g.probes[i*g.Rows+j]
}

func (g *Grid) Samples() []field.Sample {
	out := make([]field.Sample, len(g.probes))
	for i, p := range g.probes {
		out[i] = p.Sample()
	}
	return out
}

// PotentialColors returns one colour per cell, indexed [row][column].
func (g *Grid) PotentialColors(m *colormap.Mapper) [][]color.RGBA {
	return g.colors(func(s field.Sample) color.RGBA { return m.Potential(s.Potential) })
}

// FieldColors is PotentialColors for field magnitude.
func (g *Grid) FieldColors(m *colormap.Mapper) [][]color.RGBA {
	return g.colors(func(s field.Sample) color.RGBA { return m.FieldMagnitude(s.Magnitude()) })
}

func (g *Grid) colors(fn func(field.Sample) color.RGBA) [][]color.RGBA {
	rows := make([][]color.RGBA, g.Rows)
	for j := range rows {
		rows[j] = make([]color.RGBA, g.Columns)
		for i := range rows[j] {
			rows[j][i] = fn(g.At(i, j).Sample())
		}
	}
	return rows
}

func (g *Grid) Refresh() {
	for _, p := range g.probes {
		p.Refresh()
	}
}

func (g *Grid) Close() {
	for _, p := range g.probes {
		p.Close()
	}
}
