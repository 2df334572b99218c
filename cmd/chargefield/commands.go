package main

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/config"
	"github.com/san-kum/chargefield/internal/field"
	"github.com/san-kum/chargefield/internal/geom"
	"github.com/san-kum/chargefield/internal/metrics"
	"github.com/san-kum/chargefield/internal/store"
	"github.com/san-kum/chargefield/internal/trace"
	"github.com/san-kum/chargefield/internal/viz"
	"github.com/spf13/cobra"
)

func runSample(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	e, err := newEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.SampleField(geom.Pt(x, y))
	st := styles()

	fmt.Fprintln(out, st.Title.Render("sample"))
	fmt.Fprintln(out, st.KeyValue("position", s.Position))
	fmt.Fprintln(out, st.KeyValue("charges", len(e.Charges())))
	if !s.IsFinite() {
		fmt.Fprintln(out, st.Warning.Render("point coincides with a charge: field and potential are undefined"))
		return nil
	}
	fmt.Fprintln(out, st.KeyValue("potential", fmt.Sprintf("%.4f V", s.Potential)))
	fmt.Fprintln(out, st.KeyValue("field", fmt.Sprintf("%v V/m", s.Field)))
	fmt.Fprintln(out, st.KeyValue("|E|", fmt.Sprintf("%.4f V/m", s.Magnitude())))

	pot, mag := e.ColorAt(s.Position)
	fmt.Fprintln(out, st.KeyValue("V colour", viz.Swatch(pot, "    ")+" "+viz.Hex(pot)))
	fmt.Fprintln(out, st.KeyValue("|E| colour", viz.Swatch(mag, "    ")+" "+viz.Hex(mag)))
	return nil
}

func traceKinds(name string) ([]trace.Kind, error) {
	if name == "both" {
		return []trace.Kind{trace.FieldLine, trace.Equipotential}, nil
	}
	k, err := trace.ParseKind(name)
	if err != nil {
		return nil, err
	}
	return []trace.Kind{k}, nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	kinds, err := traceKinds(kindName)
	if err != nil {
		return err
	}

	e, err := newEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.Config()
	points := cfg.SeedPoints()
	for _, s := range seeds {
		p, err := parsePoint(s)
		if err != nil {
			return err
		}
		points = append(points, p)
	}
	rng := rand.New(rand.NewSource(rngSeed))
	for i := 0; i < random; i++ {
		points = append(points, e.RandomSeed(rng))
	}
	if len(points) == 0 {
		points = append(points, e.Probe().Position())
	}

	reqs := make([]trace.Request, 0, len(points)*len(kinds))
	for _, p := range points {
		for _, k := range kinds {
			reqs = append(reqs, trace.Request{Kind: k, Seed: p})
		}
	}

	results, err := trace.Batch(cmd.Context(), e.Tracer(), e.Charges(), reqs)
	if err != nil {
		return err
	}

	var curves []trace.Curve
	for _, r := range results {
		if r.OK {
			curves = append(curves, r.Curve)
		}
	}
	if len(curves) == 0 {
		fmt.Fprintln(out, styles().Warning.Render("no curves: place at least one charge"))
		return nil
	}

	switch {
	case asJSON:
		return writeOutput(out, func(w io.Writer) error {
			return store.WriteJSON(w, store.NewExport(e.Charges(), curves))
		})
	case asCSV:
		return writeOutput(out, func(w io.Writer) error {
			return store.WriteCSV(w, curves)
		})
	}
	return printCurves(out, curves, e.Charges())
}

func writeOutput(out io.Writer, fn func(io.Writer) error) error {
	if outPath == "" {
		return fn(out)
	}
	file, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer file.Close()
	return fn(file)
}

func printCurves(out io.Writer, curves []trace.Curve, set charge.Set) error {
	st := styles()
	fmt.Fprintln(out, st.Title.Render(fmt.Sprintf("%d curves, %d charges", len(curves), len(set))))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tSEED\tPOINTS\tLENGTH\tSTART\tEND\tPOTENTIAL\t|E|")
	for _, c := range curves {
		mags := make([]float64, c.Len())
		for i, p := range c.Points() {
			mags[i] = math.Log10(field.Field(p, set).Magnitude())
		}
		fmt.Fprintf(w, "%s\t%v\t%d\t%.3f\t%s\t%s\t%.4f\t%s\n",
			c.Kind,
			c.Seed,
			c.Len(),
			c.Length(),
			c.Start,
			c.End,
			c.Potential,
			viz.Sparkline(mags, 24),
		)
	}
	return w.Flush()
}

func runProfile(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	e, err := newEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	seed := e.Probe().Position()
	if profileSeed != "" {
		if seed, err = parsePoint(profileSeed); err != nil {
			return err
		}
	}

	equip, ok := e.TraceEquipotential(seed)
	if !ok {
		fmt.Fprintln(out, styles().Warning.Render("no curves: place at least one charge"))
		return nil
	}
	fieldLine, _ := e.TraceFieldLine(seed)
	set := e.Charges()

	drift := make([]float64, equip.Len())
	for i, p := range equip.Points() {
		drift[i] = field.Potential(p, set) - equip.Potential
	}
	fmt.Fprintln(out, asciigraph.Plot(drift,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("potential drift along equipotential (V0 = %.4f V, %s)", equip.Potential, equip.End)),
	))
	fmt.Fprintln(out)

	mags := make([]float64, fieldLine.Len())
	for i, p := range fieldLine.Points() {
		mags[i] = math.Log10(field.Field(p, set).Magnitude())
	}
	fmt.Fprintln(out, asciigraph.Plot(mags,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("log10 |E| along field line (%s to %s)", fieldLine.Start, fieldLine.End)),
	))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CURVE\tMETRIC\tVALUE")
	for _, c := range []trace.Curve{equip, fieldLine} {
		values := metrics.Evaluate(c, set, metrics.ForKind(c.Kind)...)
		for _, m := range metrics.ForKind(c.Kind) {
			fmt.Fprintf(w, "%s\t%s\t%.6g\n", c.Kind, m.Name(), values[m.Name()])
		}
	}
	return w.Flush()
}

func runGrid(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	e, err := newEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	st := styles()
	m := e.Mapper()

	pg := e.PotentialGrid()
	fmt.Fprintln(out, st.Title.Render(fmt.Sprintf("potential (%dx%d)", pg.Columns, pg.Rows)))
	fmt.Fprintln(out, st.Panel.Render(viz.HeatMap(pg.PotentialColors(m), cellWidth)))

	fg := e.FieldGrid()
	fmt.Fprintln(out, st.Title.Render(fmt.Sprintf("field strength (%dx%d)", fg.Columns, fg.Rows)))
	fmt.Fprintln(out, st.Panel.Render(viz.HeatMap(fg.FieldColors(m), cellWidth*2)))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COL\tROW\tX\tY\tEX\tEY\t|E|\tV")
	for i := 0; i < fg.Columns; i++ {
		for j := 0; j < fg.Rows; j++ {
			s := fg.At(i, j).Sample()
			fmt.Fprintf(w, "%d\t%d\t%.3f\t%.3f\t%.4f\t%.4f\t%.4f\t%.4f\n",
				i, j,
				s.Position.X, s.Position.Y,
				s.Field.X, s.Field.Y,
				s.Magnitude(),
				s.Potential,
			)
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCHARGES\tNET")
	for _, name := range config.ListPresets() {
		set, err := config.GetPreset(name).ChargeSet()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%+d\n", name, len(set), set.NetCharge())
	}
	return w.Flush()
}
