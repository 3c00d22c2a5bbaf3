package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glucosim/internal/catalog"
	"github.com/san-kum/glucosim/internal/chart"
	"github.com/san-kum/glucosim/internal/config"
	"github.com/san-kum/glucosim/internal/curve"
	"github.com/san-kum/glucosim/internal/engine"
	"github.com/san-kum/glucosim/internal/segment"
)

func food(id string, mag float64, desc string) catalog.Item {
	return catalog.Item{ID: id, Name: id, Magnitude: catalog.Float(mag), PeakTime: 1, Duration: 3, Description: desc}
}

var _ = Describe("Session", func() {
	var (
		cfg     config.Config
		s       *engine.Session
		soda    catalog.Item
		run     catalog.Item
		rice    catalog.Item
		chicken catalog.Item
	)

	BeforeEach(func() {
		cfg = *config.DefaultConfig()
		s = engine.New(cfg)
		soda = food("soda", 35, "Sugary drinks spike fast.")
		run = food("run", -25, "")
		rice = food("rice", 40, "White rice digests quickly.")
		chicken = food("chicken", 5, "Lean protein.")
	})

	Describe("Select", func() {
		It("places items at staggered default positions", func() {
			s.Select(soda)
			s.Select(run)
			s.Select(rice)

			Expect(s.Timings()).To(Equal(map[string]float64{"soda": 0.1, "run": 0.35, "rice": 0.6}))
			Expect(s.Full()).To(BeTrue())
		})

		It("caps placement at the configured maximum", func() {
			cfg.MaxSelected = 5
			cfg.Placement.Spacing = 0.5
			s = engine.New(cfg)
			s.Select(soda)
			s.Select(run)
			s.Select(rice)

			p, ok := s.Position("rice")
			Expect(ok).To(BeTrue())
			Expect(p).To(Equal(0.9))
		})

		It("ignores a selection beyond capacity", func() {
			s.Select(soda)
			s.Select(run)
			s.Select(rice)
			before := s.Timings()

			s.Select(chicken)

			Expect(s.Selection()).To(HaveLen(3))
			Expect(s.IsSelected("chicken")).To(BeFalse())
			Expect(s.Timings()).To(Equal(before))
		})

		It("toggles an already selected item off", func() {
			s.Select(soda)
			s.Select(soda)

			Expect(s.IsSelected("soda")).To(BeFalse())
			_, ok := s.Position("soda")
			Expect(ok).To(BeFalse())
		})

		It("normalizes items on entry", func() {
			s.Select(catalog.Item{ID: "mystery"})

			sel := s.Selection()
			Expect(sel).To(HaveLen(1))
			Expect(sel[0].Effect()).To(Equal(0.0))
			Expect(sel[0].PeakTime).To(Equal(catalog.DefaultPeakTime))
			Expect(sel[0].Duration).To(BeNumerically(">", sel[0].PeakTime))
		})
	})

	Describe("Deselect", func() {
		It("removes the timing entry and matches the single item curve", func() {
			s.Select(soda)
			s.Select(rice)
			s.Deselect("rice")

			_, ok := s.Position("rice")
			Expect(ok).To(BeFalse())

			single := engine.New(cfg)
			single.Select(soda)
			Expect(s.Curve()).To(Equal(single.Curve()))
		})

		It("falls back to the last remaining item", func() {
			s.Select(soda)
			s.Select(run)
			s.Select(rice)
			s.Deselect("rice")

			last, ok := s.LastSelected()
			Expect(ok).To(BeTrue())
			Expect(last.ID).To(Equal("run"))

			s.Deselect("soda")
			s.Deselect("run")
			_, ok = s.LastSelected()
			Expect(ok).To(BeFalse())
		})

		It("clears the inspected item it removes", func() {
			s.Select(soda)
			s.ToggleInspect("soda")
			s.Deselect("soda")

			_, ok := s.Inspected()
			Expect(ok).To(BeFalse())
		})

		It("ignores unknown ids", func() {
			s.Select(soda)
			s.Deselect("ghost")
			Expect(s.Len()).To(Equal(1))
		})
	})

	Describe("Retime", func() {
		BeforeEach(func() {
			s.Select(soda)
		})

		DescribeTable("clamps positions",
			func(in, want float64) {
				s.Retime("soda", in)
				p, _ := s.Position("soda")
				Expect(p).To(Equal(want))
			},
			Entry("above range", 1.5, 1.0),
			Entry("below range", -0.3, 0.0),
			Entry("inside range", 0.42, 0.42),
		)

		It("ignores unselected items", func() {
			s.Retime("rice", 0.5)
			_, ok := s.Position("rice")
			Expect(ok).To(BeFalse())
		})

		It("does not touch the selection order", func() {
			s.Select(rice)
			s.Retime("soda", 0.95)
			Expect(s.Selection()[0].ID).To(Equal("soda"))
		})
	})

	Describe("Reset", func() {
		It("clears everything", func() {
			s.Select(soda)
			s.ToggleInspect("soda")
			s.Reset()

			Expect(s.Selection()).To(BeEmpty())
			Expect(s.Timings()).To(BeEmpty())
			_, ok := s.LastSelected()
			Expect(ok).To(BeFalse())
			_, ok = s.Inspected()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Curve", func() {
		It("is flat at the baseline with nothing selected", func() {
			samples := s.Curve()
			Expect(samples).To(HaveLen(21))
			for _, smp := range samples {
				Expect(smp.Value).To(Equal(cfg.Baseline))
			}
		})

		It("does not depend on selection order", func() {
			s.Select(soda)
			s.Select(run)
			s.Retime("soda", 0.3)
			s.Retime("run", 0.1)

			other := engine.New(cfg)
			other.Select(run)
			other.Select(soda)
			other.Retime("soda", 0.3)
			other.Retime("run", 0.1)

			a, b := s.Curve(), other.Curve()
			for i := range a {
				Expect(a[i].Value).To(BeNumerically("~", b[i].Value, 1e-9))
			}
		})

		It("never drops below the floor", func() {
			s.Select(food("crash", -1000, ""))
			for _, smp := range s.Curve() {
				Expect(smp.Value).To(BeNumerically(">=", cfg.Floor))
			}
		})

		It("reproduces the reference scenario", func() {
			s = engine.New(cfg.WithBaseline(100))
			s.Select(catalog.Item{ID: "a", Magnitude: catalog.Float(40), PeakTime: 1, Duration: 3})
			s.Retime("a", 0)

			samples := s.Curve()
			Expect(samples).To(HaveLen(21))
			Expect(samples[0].Value).To(BeNumerically("~", 100, 1e-9))
			Expect(samples[4].Value).To(BeNumerically("~", 140, 1e-9))
			Expect(samples[12].Value).To(BeNumerically("~", 100, 1e-9))
			Expect(samples[16].Value).To(BeNumerically("~", 100, 1e-9))
		})
	})

	Describe("Segments", func() {
		It("covers every sample once when flattened", func() {
			s.Select(rice)
			s.Select(food("cake", 90, ""))
			frame := cfg.Frame()

			segs := s.Segments(frame)
			Expect(len(segs)).To(BeNumerically(">", 1))
			Expect(segment.Flatten(segs)).To(HaveLen(len(s.Curve())))
		})

		It("draws a flat curve as one segment", func() {
			segs := s.Segments(chart.Frame{Width: 10, Height: 10, YMin: 0, YMax: 1})
			Expect(segs).To(HaveLen(1))
		})
	})

	Describe("display hints", func() {
		It("prompts to add items when empty", func() {
			Expect(s.Narrative()).To(Equal(engine.EmptyNarrative))
		})

		It("explains the last selected item", func() {
			s.Select(soda)
			s.Select(rice)
			Expect(s.Narrative()).To(Equal("White rice digests quickly."))
		})

		It("falls back to the drag hint for undescribed items", func() {
			s.Select(run)
			Expect(s.Narrative()).To(Equal(engine.DragNarrative))
		})

		It("prefers the inspected item", func() {
			s.Select(soda)
			s.Select(rice)
			s.ToggleInspect("soda")
			Expect(s.Narrative()).To(Equal("Sugary drinks spike fast."))

			s.ToggleInspect("soda")
			Expect(s.Narrative()).To(Equal("White rice digests quickly."))
		})

		It("never changes the curve", func() {
			s.Select(soda)
			before := s.Curve()
			s.ToggleInspect("soda")
			Expect(s.Curve()).To(Equal(before))
		})
	})

	Describe("MarkerValue", func() {
		It("reads the curve under the marker", func() {
			s.Select(soda)
			v, ok := s.MarkerValue("soda")
			Expect(ok).To(BeTrue())
			p, _ := s.Position("soda")
			Expect(v).To(Equal(curve.ValueAt(s.Curve(), p)))

			_, ok = s.MarkerValue("ghost")
			Expect(ok).To(BeFalse())
		})

		It("lists markers in selection order", func() {
			s.Select(soda)
			s.Select(rice)
			markers := s.Markers()
			Expect(markers).To(HaveLen(2))
			Expect(markers[1].Item.ID).To(Equal("rice"))
			Expect(markers[1].Position).To(Equal(0.35))
		})
	})

	Describe("Rebase", func() {
		It("keeps selection and timings under a new baseline", func() {
			s.Select(soda)
			s.Retime("soda", 0.7)

			next := s.Rebase(cfg.WithBaseline(90))
			Expect(next.IsSelected("soda")).To(BeTrue())
			p, _ := next.Position("soda")
			Expect(p).To(Equal(0.7))
			Expect(next.Config().Baseline).To(Equal(90.0))
			Expect(s.Config().Baseline).To(Equal(cfg.Baseline))
		})

		It("renormalizes peak values against the new baseline", func() {
			s.Select(catalog.Item{ID: "apple", PeakValue: catalog.Float(145)})
			next := s.Rebase(cfg.WithBaseline(100))
			Expect(next.Selection()[0].Effect()).To(Equal(45.0))
		})

		It("drops items beyond a smaller capacity", func() {
			s.Select(soda)
			s.Select(rice)
			small := cfg
			small.MaxSelected = 1

			next := s.Rebase(small)
			Expect(next.Selection()).To(HaveLen(1))
			Expect(next.IsSelected("rice")).To(BeFalse())
		})
	})
})
