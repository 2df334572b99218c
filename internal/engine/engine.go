// Package engine ties the charge registry, evaluator, tracer, colour mapper
// and sensors into the single object consumed by front ends.
package engine

import (
	"image/color"
	"io"
	"log/slog"
	"math/rand"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/colormap"
	"github.com/san-kum/chargefield/internal/config"
	"github.com/san-kum/chargefield/internal/field"
	"github.com/san-kum/chargefield/internal/geom"
	"github.com/san-kum/chargefield/internal/sensor"
	"github.com/san-kum/chargefield/internal/trace"
)

type Option func(*Engine)

// WithLogger routes engine diagnostics to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine is not safe for concurrent use. Traced lines are snapshots: charge
// changes only mark them stale, RetraceLines regenerates them.
type Engine struct {
	cfg    config.Config
	log    *slog.Logger
	reg    *charge.Registry
	tracer *trace.Tracer
	mapper *colormap.Mapper

	probe         *sensor.Probe
	fieldGrid     *sensor.Grid
	potentialGrid *sensor.Grid

	revision       uint64 // bumped by every registry event
	unsubscribe    func()
	equipotentials []line
	fieldLines     []line
}

func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg.TracerConfig())
	if err != nil {
		return nil, err
	}
	cal, err := cfg.Calibration()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		reg:    charge.NewRegistry(),
		tracer: tracer,
		mapper: colormap.New(cal),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.placeConfiguredCharges(); err != nil {
		return nil, err
	}

	e.fieldGrid, err = sensor.NewGrid(e.reg, cfg.Area.Width, cfg.Area.Height, cfg.Grid.FieldColumns)
	if err != nil {
		return nil, err
	}
	e.potentialGrid, err = sensor.NewGrid(e.reg, cfg.Area.Width, cfg.Area.Height, cfg.Grid.PotentialColumns)
	if err != nil {
		e.fieldGrid.Close()
		return nil, err
	}
	e.probe = sensor.New(e.reg, cfg.Probe.Point())
	e.unsubscribe = e.reg.Subscribe(e.markStale)

	e.log.Debug("engine ready",
		"charges", e.reg.Len(),
		"field_grid", e.fieldGrid.Len(),
		"potential_grid", e.potentialGrid.Len())
	return e, nil
}

func (e *Engine) placeConfiguredCharges() error {
	set, err := e.cfg.ChargeSet()
	if err != nil {
		return err
	}
	for _, c := range set {
		e.reg.Add(c.Position, c.Sign)
	}
	return nil
}

func (e *Engine) markStale(ev charge.Event) {
	e.revision++
	e.log.Debug("registry changed", "event", ev.Kind, "id", ev.ID, "revision", e.revision)
}

func (e *Engine) Config() config.Config {
	return e.cfg
}

func (e *Engine) Tracer() *trace.Tracer {
	return e.tracer
}

func (e *Engine) Mapper() *colormap.Mapper {
	return e.mapper
}

// Registry exposes the charge registry for front ends that subscribe to it.
func (e *Engine) Registry() *charge.Registry {
	return e.reg
}

// Charges returns a snapshot of the active charges.
func (e *Engine) Charges() charge.Set {
	return e.reg.Snapshot()
}

func (e *Engine) AddCharge(pos geom.Point, sign charge.Sign) charge.ID {
	id := e.reg.Add(pos, sign)
	e.log.Debug("charge added", "id", id, "position", pos, "sign", sign)
	return id
}

func (e *Engine) RemoveCharge(id charge.ID) error {
	if err := e.reg.Remove(id); err != nil {
		return err
	}
	e.log.Debug("charge removed", "id", id)
	return nil
}

func (e *Engine) MoveCharge(id charge.ID, pos geom.Point) error {
	if err := e.reg.Move(id, pos); err != nil {
		return err
	}
	e.log.Debug("charge moved", "id", id, "position", pos)
	return nil
}

// ReturnChargeToOrigin puts a charge back in its holder, removing it.
func (e *Engine) ReturnChargeToOrigin(id charge.ID) error {
	if err := e.reg.ReturnToOrigin(id); err != nil {
		return err
	}
	e.log.Debug("charge returned", "id", id)
	return nil
}

func (e *Engine) SampleField(p geom.Point) field.Sample {
	return field.Evaluate(p, e.reg.Snapshot())
}

// SampleFieldDelta updates s for a single charge of the given sign moving
// from oldPos to newPos, without resumming the other charges.
func (e *Engine) SampleFieldDelta(s field.Sample, oldPos, newPos geom.Point, sign charge.Sign) field.Sample {
	return s.Moved(oldPos, newPos, sign)
}

func (e *Engine) TraceFieldLine(seed geom.Point) (trace.Curve, bool) {
	c, ok := e.tracer.FieldLine(seed, e.reg.Snapshot())
	e.logCurve(c, ok)
	return c, ok
}

func (e *Engine) TraceEquipotential(seed geom.Point) (trace.Curve, bool) {
	c, ok := e.tracer.Equipotential(seed, e.reg.Snapshot())
	e.logCurve(c, ok)
	return c, ok
}

func (e *Engine) logCurve(c trace.Curve, ok bool) {
	if !ok {
		e.log.Debug("no curve", "charges", e.reg.Len())
		return
	}
	e.log.Debug("traced",
		"kind", c.Kind,
		"seed", c.Seed,
		"points", c.Len(),
		"start", c.Start,
		"end", c.End)
}

func (e *Engine) ColorForPotential(v float64) color.RGBA {
	return e.mapper.Potential(v)
}

func (e *Engine) ColorForFieldMagnitude(mag float64) color.RGBA {
	return e.mapper.FieldMagnitude(mag)
}

// ColorAt returns both heat-map colours for the point p.
func (e *Engine) ColorAt(p geom.Point) (potential, magnitude color.RGBA) {
	s := e.SampleField(p)
	return e.mapper.Potential(s.Potential), e.mapper.FieldMagnitude(s.Magnitude())
}

func (e *Engine) Probe() *sensor.Probe {
	return e.probe
}

// MoveProbe relocates the potential probe that AddEquipotentialLine and
// AddFieldLine trace from.
func (e *Engine) MoveProbe(pos geom.Point) {
	e.probe.MoveTo(pos)
}

func (e *Engine) FieldGrid() *sensor.Grid {
	return e.fieldGrid
}

func (e *Engine) PotentialGrid() *sensor.Grid {
	return e.potentialGrid
}

// Reset restores the configured scene: lines are cleared, the charges are
// replaced by the configured ones and the probe goes back to its start.
func (e *Engine) Reset() error {
	e.ClearEquipotentialLines()
	e.ClearFieldLines()
	e.reg.Clear()
	if err := e.placeConfiguredCharges(); err != nil {
		return err
	}
	e.probe.MoveTo(e.cfg.Probe.Point())
	e.fieldGrid.Refresh()
	e.potentialGrid.Refresh()
	e.probe.Refresh()
	e.log.Debug("engine reset", "charges", e.reg.Len())
	return nil
}

// Close detaches every sensor from the registry.
func (e *Engine) Close() {
	e.unsubscribe()
	e.probe.Close()
	e.fieldGrid.Close()
	e.potentialGrid.Close()
}

// RandomSeed draws a point uniformly from the play area.
func (e *Engine) RandomSeed(rng *rand.Rand) geom.Point {
	w, h := e.cfg.Area.Width, e.cfg.Area.Height
	return geom.Pt(w*rng.Float64()-w/2, h*rng.Float64()-h/2)
}
