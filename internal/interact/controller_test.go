package interact_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glucosim/internal/catalog"
	"github.com/san-kum/glucosim/internal/chart"
	"github.com/san-kum/glucosim/internal/config"
	"github.com/san-kum/glucosim/internal/engine"
	"github.com/san-kum/glucosim/internal/interact"
)

var _ = Describe("Controller", func() {
	var (
		s     *engine.Session
		c     *interact.Controller
		frame chart.Frame
	)

	press := func(x float64, target string) interact.Result {
		return c.Handle(interact.Event{Kind: interact.Press, X: x, Target: target})
	}
	move := func(x float64) interact.Result {
		return c.Handle(interact.Event{Kind: interact.Move, X: x})
	}
	release := func() interact.Result {
		return c.Handle(interact.Event{Kind: interact.Release})
	}
	inspected := func() string {
		it, _ := s.Inspected()
		return it.ID
	}
	position := func(id string) float64 {
		p, _ := s.Position(id)
		return p
	}

	BeforeEach(func() {
		s = engine.New(*config.DefaultConfig())
		s.Select(catalog.Item{ID: "soda", Magnitude: catalog.Float(35)})
		frame = chart.Frame{OriginX: 10, Width: 100, Height: 40}
		c = interact.NewController(s, frame)
	})

	It("starts idle", func() {
		Expect(c.State()).To(Equal(interact.Idle))
		_, ok := c.Armed()
		Expect(ok).To(BeFalse())
	})

	It("ignores presses on empty lane", func() {
		press(50, "")
		Expect(c.State()).To(Equal(interact.Idle))
	})

	Describe("tap", func() {
		It("inspects the tapped marker", func() {
			press(20, "soda")
			Expect(c.State()).To(Equal(interact.Armed))

			res := release()
			Expect(res.Inspected).To(BeTrue())
			Expect(inspected()).To(Equal("soda"))
			Expect(c.State()).To(Equal(interact.Idle))
		})

		It("clears inspection when the marker was already inspected", func() {
			press(20, "soda")
			release()
			press(20, "soda")
			release()
			Expect(inspected()).To(BeEmpty())
		})

		It("tolerates jitter below the threshold", func() {
			press(20, "soda")
			res := move(20.4)
			Expect(res.Retimed).To(BeFalse())
			Expect(c.State()).To(Equal(interact.Armed))
			release()
			Expect(inspected()).To(Equal("soda"))
			Expect(position("soda")).To(Equal(0.1))
		})
	})

	Describe("drag", func() {
		It("retimes on every move once past the threshold", func() {
			press(20, "soda")
			res := move(60)
			Expect(res.Retimed).To(BeTrue())
			Expect(c.State()).To(Equal(interact.Dragging))
			Expect(position("soda")).To(Equal(0.5))

			move(85)
			Expect(position("soda")).To(Equal(0.75))
		})

		It("clamps pointers outside the frame", func() {
			press(20, "soda")
			move(500)
			Expect(position("soda")).To(Equal(1.0))
			move(-40)
			Expect(position("soda")).To(Equal(0.0))
		})

		It("does not inspect on release", func() {
			press(20, "soda")
			move(60)
			res := release()
			Expect(res.Inspected).To(BeFalse())
			Expect(inspected()).To(BeEmpty())
		})

		It("clears any previous inspection on press", func() {
			s.ToggleInspect("soda")
			press(20, "soda")
			Expect(inspected()).To(BeEmpty())
		})

		It("stops retiming after release", func() {
			press(20, "soda")
			move(60)
			release()
			res := move(90)
			Expect(res.Retimed).To(BeFalse())
			Expect(position("soda")).To(Equal(0.5))
		})

		It("maps to zero on a collapsed frame", func() {
			c.SetFrame(chart.Frame{OriginX: 10})
			press(20, "soda")
			move(60)
			Expect(position("soda")).To(Equal(0.0))
		})
	})

	Describe("touch", func() {
		touchMove := func(x float64) interact.Result {
			return c.Handle(interact.Event{Kind: interact.Move, Source: interact.Touch, X: x})
		}

		It("prevents default while armed or dragging", func() {
			press(20, "soda")
			Expect(touchMove(20.1).PreventDefault).To(BeTrue())
			Expect(touchMove(70).PreventDefault).To(BeTrue())
		})

		It("lets the page scroll when idle", func() {
			Expect(touchMove(70).PreventDefault).To(BeFalse())
		})

		It("never prevents default for mouse moves", func() {
			press(20, "soda")
			Expect(move(70).PreventDefault).To(BeFalse())
		})
	})

	Describe("HitTest", func() {
		hits := []interact.Hit{{ID: "a", X: 10}, {ID: "b", X: 30}}

		DescribeTable("finds the nearest marker in range",
			func(x float64, want string, found bool) {
				id, ok := c.HitTest(x, hits)
				Expect(ok).To(Equal(found))
				Expect(id).To(Equal(want))
			},
			Entry("on a", 10.0, "a", true),
			Entry("near b", 27.0, "b", true),
			Entry("between, closer to a", 13.0, "a", true),
			Entry("out of range", 20.0, "", false),
		)
	})

	It("drops an active gesture when the session is swapped", func() {
		press(20, "soda")
		c.SetSession(s.Rebase(s.Config()))
		Expect(c.State()).To(Equal(interact.Idle))
	})
})
