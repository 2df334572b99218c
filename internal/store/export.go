package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/geom"
	"github.com/san-kum/chargefield/internal/trace"
)

type ExportData struct {
	Charges []ChargeData `json:"charges"`
	Curves  []CurveData  `json:"curves"`
}

type ChargeData struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Sign int     `json:"sign"`
}

type CurveData struct {
	Kind      string       `json:"kind"`
	Seed      [2]float64   `json:"seed"`
	Potential *float64     `json:"potential,omitempty"` // equipotentials only
	Start     string       `json:"start"`
	End       string       `json:"end"`
	Closed    bool         `json:"closed,omitempty"`
	Points    [][2]float64 `json:"points"`
}

// NewExport converts curves for JSON output. An equipotential seeded on a
// charge has an infinite potential that JSON cannot carry, so its potential
// is left out.
func NewExport(set charge.Set, curves []trace.Curve) ExportData {
	data := ExportData{
		Charges: make([]ChargeData, len(set)),
		Curves:  make([]CurveData, len(curves)),
	}
	for i, c := range set {
		data.Charges[i] = ChargeData{X: c.Position.X, Y: c.Position.Y, Sign: int(c.Sign)}
	}
	for i, c := range curves {
		cd := CurveData{
			Kind:   c.Kind.String(),
			Seed:   [2]float64{c.Seed.X, c.Seed.Y},
			Start:  c.Start.String(),
			End:    c.End.String(),
			Closed: c.Closed(),
			Points: make([][2]float64, c.Len()),
		}
		if v := c.Potential; c.Kind == trace.Equipotential && !math.IsInf(v, 0) && !math.IsNaN(v) {
			cd.Potential = &v
		}
		for j, p := range c.Points() {
			cd.Points[j] = [2]float64{p.X, p.Y}
		}
		data.Curves[i] = cd
	}
	return data
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

var csvHeader = []string{"curve", "kind", "index", "x", "y"}

// WriteCSV writes one row per curve point, curves numbered from 0.
func WriteCSV(w io.Writer, curves []trace.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, c := range curves {
		curve := strconv.Itoa(i)
		kind := c.Kind.String()
		for j, p := range c.Points() {
			row := []string{
				curve,
				kind,
				strconv.Itoa(j),
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, curves []trace.Curve) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, curves)
}

// ReadCSV loads the point sequences written by WriteCSV, indexed by curve.
func ReadCSV(r io.Reader) ([][]geom.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]geom.Point{}, nil
	}

	var curves [][]geom.Point
	for line, record := range records[1:] {
		idx, err := strconv.Atoi(record[0])
		if err != nil || idx < 0 || idx > len(curves) {
			return nil, fmt.Errorf("store: line %d: bad curve index %q", line+2, record[0])
		}
		x, errX := strconv.ParseFloat(record[3], 64)
		y, errY := strconv.ParseFloat(record[4], 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("store: line %d: bad point %q,%q", line+2, record[3], record[4])
		}
		if idx == len(curves) {
			curves = append(curves, nil)
		}
		curves[idx] = append(curves[idx], geom.Pt(x, y))
	}
	return curves, nil
}
