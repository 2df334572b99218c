package sensor

import (
	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/field"
	"github.com/san-kum/chargefield/internal/geom"
)

// Probe is a passive sensor bound to a registry. It reacts to registry
// events by folding the single changed charge into its cached sample, and
// resamples from scratch when it is itself moved or when a charge sitting
// on it has left the cached sample non-finite.
type Probe struct {
	reg         *charge.Registry
	sample      field.Sample
	version     uint64
	unsubscribe func()
}

func New(reg *charge.Registry, pos geom.Point) *Probe {
	p := &Probe{reg: reg}
	p.sample = field.Evaluate(pos, reg.Snapshot())
	p.unsubscribe = reg.Subscribe(p.onEvent)
	return p
}

func (p *Probe) onEvent(ev charge.Event) {
	next := p.sample.Apply(ev)
	// Inf minus Inf never recovers, so deltas only apply to finite samples.
	if !p.sample.IsFinite() || !next.IsFinite() {
		next = field.Evaluate(p.sample.Position, p.reg.Snapshot())
	}
	p.sample = next
	p.version++
}

func (p *Probe) Position() geom.Point {
	return p.sample.Position
}

func (p *Probe) Sample() field.Sample {
	return p.sample
}

func (p *Probe) Field() geom.Point {
	return p.sample.Field
}

func (p *Probe) Potential() float64 {
	return p.sample.Potential
}

// Version increases on every change to the sample so that views can poll
// for staleness.
func (p *Probe) Version() uint64 {
	return p.version
}

// MoveTo relocates the probe and resamples over the whole charge set.
func (p *Probe) MoveTo(pos geom.Point) {
	if pos == p.sample.Position {
		return
	}
	p.sample = field.Evaluate(pos, p.reg.Snapshot())
	p.version++
}

// Refresh discards accumulated incremental updates and resamples.
func (p *Probe) Refresh() {
	p.sample = field.Evaluate(p.sample.Position, p.reg.Snapshot())
	p.version++
}

// Close stops the probe from receiving events. Its last sample stays readable.
func (p *Probe) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

var _ charge.Positionable = (*Probe)(nil)
