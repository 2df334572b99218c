package trace

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/field"
	"github.com/san-kum/chargefield/internal/geom"
)

var _ = Describe("Tracer", func() {
	var (
		tracer *Tracer
		step   float64
	)

	single := charge.Set{charge.New(geom.Pt(0, 0), charge.Positive)}
	dipole := charge.Set{
		charge.New(geom.Pt(-1, 0), charge.Positive),
		charge.New(geom.Pt(1, 0), charge.Negative),
	}

	BeforeEach(func() {
		tracer = NewDefault()
		step = tracer.Config().StepLength
	})

	Context("with no charges", func() {
		It("returns no field line", func() {
			_, ok := tracer.FieldLine(geom.Pt(1, 1), nil)
			Expect(ok).To(BeFalse())
		})

		It("returns no equipotential", func() {
			_, ok := tracer.Equipotential(geom.Pt(1, 1), charge.Set{})
			Expect(ok).To(BeFalse())
		})
	})

	Describe("FieldLine", func() {
		It("moves monotonically away from an isolated positive charge", func() {
			c, ok := tracer.FieldLine(geom.Pt(0.3, 0.4), single)
			Expect(ok).To(BeTrue())

			forward := c.Forward()
			Expect(forward).NotTo(BeEmpty())
			prev := c.Seed.Magnitude()
			for _, p := range forward {
				Expect(p.Magnitude()).To(BeNumerically(">", prev))
				prev = p.Magnitude()
			}
			Expect(c.End).To(Equal(LeftArea))
			Expect(c.Last().Magnitude()).To(BeNumerically(">=", tracer.Config().MaxDistance))
		})

		It("walks backward into the charge and stops at the closest approach", func() {
			c, _ := tracer.FieldLine(geom.Pt(0.3, 0.4), single)

			Expect(c.Start).To(Equal(FieldClamp))
			Expect(c.First().Magnitude()).To(BeNumerically("<=", tracer.Config().ClosestApproach+step))
		})

		It("orders points from the positive charge to the negative one", func() {
			c, ok := tracer.FieldLine(geom.Pt(0, 0.5), dipole)
			Expect(ok).To(BeTrue())

			Expect(c.First().Distance(geom.Pt(-1, 0))).To(BeNumerically("<", 2*step))
			Expect(c.Last().Distance(geom.Pt(1, 0))).To(BeNumerically("<", 2*step))
			Expect(c.At(c.SeedIndex())).To(Equal(geom.Pt(0, 0.5)))
		})

		It("keeps consecutive points one step apart", func() {
			c, _ := tracer.FieldLine(geom.Pt(0, 0.5), dipole)
			for i := 1; i < c.Len(); i++ {
				Expect(c.At(i).Distance(c.At(i - 1))).To(BeNumerically("~", step, 1e-3))
			}
		})

		It("follows the field direction", func() {
			c, _ := tracer.FieldLine(geom.Pt(0.2, -0.7), dipole)
			for i := 1; i < c.Len()-1; i++ {
				e := field.Field(c.At(i), dipole).Normalized()
				d := c.At(i + 1).Sub(c.At(i)).Normalized()
				Expect(e.Dot(d)).To(BeNumerically(">", 0.95))
			}
		})
	})

	Describe("Equipotential", func() {
		It("stays on the seed potential", func() {
			for _, seed := range []geom.Point{geom.Pt(-0.5, 0.5), geom.Pt(0.3, -1.2), geom.Pt(-2, 1)} {
				c, ok := tracer.Equipotential(seed, dipole)
				Expect(ok).To(BeTrue())

				v0 := field.Potential(seed, dipole)
				Expect(c.Potential).To(Equal(v0))
				for _, p := range c.Points() {
					v := field.Potential(p, dipole)
					Expect(math.Abs(v-v0) / math.Abs(v0)).To(BeNumerically("<", 0.01))
				}
			}
		})

		It("closes around an isolated charge before the step budget", func() {
			c, ok := tracer.Equipotential(geom.Pt(0.5, 0), single)
			Expect(ok).To(BeTrue())

			Expect(c.Closed()).To(BeTrue())
			Expect(c.Truncated()).To(BeFalse())
			Expect(c.Len()).To(BeNumerically("<", 2*tracer.Config().StepMax+1))
			// The walks stop one step after meeting within half a step, so the
			// ends finish about 0.018 apart here. One step is not reachable.
			Expect(c.First().Distance(c.Last())).To(BeNumerically("<", 2*step))
		})

		It("places the seed between two equal walks", func() {
			c, _ := tracer.Equipotential(geom.Pt(0.5, 0), single)

			Expect(c.SeedIndex()).To(Equal((c.Len() - 1) / 2))
			Expect(c.At(c.SeedIndex())).To(Equal(geom.Pt(0.5, 0)))
		})

		It("puts the positive-step walk before the seed", func() {
			c, _ := tracer.Equipotential(geom.Pt(0.5, 0), single)

			before := c.At(c.SeedIndex() - 1)
			after := c.At(c.SeedIndex() + 1)
			Expect(before.Y).To(BeNumerically(">", 0))
			Expect(after.Y).To(BeNumerically("<", 0))
		})
	})

	Describe("termination", func() {
		It("stops both ends on the step budget", func() {
			cfg := DefaultConfig()
			cfg.StepMax = 10
			short, err := New(cfg)
			Expect(err).NotTo(HaveOccurred())

			c, _ := short.FieldLine(geom.Pt(3, 0), single)
			Expect(c.Len()).To(Equal(21))
			Expect(c.Start).To(Equal(StepBudget))
			Expect(c.End).To(Equal(StepBudget))
			Expect(c.Truncated()).To(BeTrue())
		})

		It("stops immediately outside the area of interest", func() {
			c, ok := tracer.FieldLine(geom.Pt(7, 0), single)
			Expect(ok).To(BeTrue())
			Expect(c.Len()).To(Equal(1))
			Expect(c.Start).To(Equal(LeftArea))
			Expect(c.End).To(Equal(LeftArea))

			e, _ := tracer.Equipotential(geom.Pt(0, -7), single)
			Expect(e.Len()).To(Equal(1))
			Expect(e.End).To(Equal(LeftArea))
		})

		It("stops at a zero-field point instead of emitting NaN", func() {
			pair := charge.Set{
				charge.New(geom.Pt(-1, 0), charge.Positive),
				charge.New(geom.Pt(1, 0), charge.Positive),
			}

			c, ok := tracer.FieldLine(geom.Pt(0, 0), pair)
			Expect(ok).To(BeTrue())
			Expect(c.Len()).To(Equal(1))
			Expect(c.Start).To(Equal(NonFinite))

			e, _ := tracer.Equipotential(geom.Pt(0, 0), pair)
			Expect(e.Len()).To(Equal(1))
			Expect(e.End).To(Equal(NonFinite))
		})
	})

	Describe("Config", func() {
		DescribeTable("rejects bounds that cannot terminate",
			func(mutate func(*Config)) {
				cfg := DefaultConfig()
				mutate(&cfg)
				_, err := New(cfg)
				Expect(err).To(MatchError(ErrInvalidConfig))
			},
			Entry("zero steps", func(c *Config) { c.StepMax = 0 }),
			Entry("negative step length", func(c *Config) { c.StepLength = -0.01 }),
			Entry("NaN distance", func(c *Config) { c.MaxDistance = math.NaN() }),
			Entry("zero closest approach", func(c *Config) { c.ClosestApproach = 0 }),
		)

		It("clamps the field at K over the closest approach squared", func() {
			Expect(DefaultConfig().MaxFieldMagnitude()).To(BeNumerically("~", 90000, 1e-6))
		})
	})
})
