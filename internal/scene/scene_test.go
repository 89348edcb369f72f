package scene_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bezspring/internal/config"
	"github.com/san-kum/bezspring/internal/geom"
	"github.com/san-kum/bezspring/internal/scene"
)

func settle(s *scene.Scene, steps int) {
	for i := 0; i < steps; i++ {
		s.Step()
	}
}

var _ = Describe("Scene", func() {
	var s *scene.Scene

	BeforeEach(func() {
		s = scene.New(1000, 600, config.DefaultLayout(), 0.05, 0.6)
	})

	It("anchors the endpoints at the margins, vertically centred", func() {
		f := s.Frame()
		Expect(f.P0).To(Equal(geom.Pt(50, 300)))
		Expect(f.P3).To(Equal(geom.Pt(950, 300)))
	})

	It("starts the springs at rest", func() {
		f := s.Frame()
		Expect(f.P1.X).To(BeNumerically("~", 330, 1e-9))
		Expect(f.P2.X).To(BeNumerically("~", 660, 1e-9))
		Expect(f.P1).To(Equal(f.T1))
		Expect(f.P2).To(Equal(f.T2))
	})

	It("does not move when idle", func() {
		before := s.Frame()
		settle(s, 50)
		after := s.Frame()
		Expect(after.P1).To(Equal(before.P1))
		Expect(after.P2).To(Equal(before.P2))
		Expect(after.Index).To(Equal(before.Index + 50))
	})

	Context("when the pointer moves", func() {
		BeforeEach(func() {
			s.PointerMove(500, 100)
		})

		It("targets the springs either side of the pointer", func() {
			f := s.Frame()
			Expect(f.T1).To(Equal(geom.Pt(380, 100)))
			Expect(f.T2).To(Equal(geom.Pt(620, 100)))
		})

		It("leaves positions unchanged until a step", func() {
			Expect(s.Frame().P1.Y).To(BeNumerically("==", 300))
		})

		It("drives the springs to their targets", func() {
			settle(s, 500)
			f := s.Frame()
			Expect(f.P1.Distance(f.T1)).To(BeNumerically("<", 0.01))
			Expect(f.P2.Distance(f.T2)).To(BeNumerically("<", 0.01))
		})

		It("keeps the endpoints on the curve", func() {
			settle(s, 20)
			c := s.Frame().Curve()
			Expect(c.Eval(0)).To(Equal(s.Frame().P0))
			Expect(c.Eval(1).Distance(s.Frame().P3)).To(BeNumerically("<", 1e-9))
		})

		It("returns to rest when the pointer leaves", func() {
			settle(s, 30)
			s.PointerLeave()
			settle(s, 500)
			f := s.Frame()
			r1, r2 := s.RestTargets()
			Expect(f.P1.Distance(r1)).To(BeNumerically("<", 0.01))
			Expect(f.P2.Distance(r2)).To(BeNumerically("<", 0.01))
		})
	})

	Context("when the viewport is resized", func() {
		BeforeEach(func() {
			s.PointerMove(200, 200)
			settle(s, 10)
			s.Resize(400, 800)
		})

		It("moves the anchors immediately", func() {
			f := s.Frame()
			Expect(f.P0).To(Equal(geom.Pt(50, 400)))
			Expect(f.P3).To(Equal(geom.Pt(350, 400)))
		})

		It("retargets the springs to the new rest positions", func() {
			f := s.Frame()
			Expect(f.T1.X).To(BeNumerically("~", 132, 1e-9))
			Expect(f.T1.Y).To(BeNumerically("==", 400))
			Expect(f.T2.X).To(BeNumerically("~", 264, 1e-9))
		})

		It("reports the new size", func() {
			w, h := s.Size()
			Expect(w).To(BeNumerically("==", 400))
			Expect(h).To(BeNumerically("==", 800))
		})
	})

	Context("with the split layout", func() {
		BeforeEach(func() {
			cfg := config.GetPreset("split")
			cfg.Viewport.Width, cfg.Viewport.Height = 1000, 600
			s = scene.FromConfig(cfg)
		})

		It("puts P1 above and P2 below the pointer", func() {
			s.PointerMove(500, 300)
			f := s.Frame()
			Expect(f.T1.Y).To(BeNumerically("<", 300))
			Expect(f.T2.Y).To(BeNumerically(">", 300))
		})

		It("applies the preset tuning", func() {
			k, d := s.Tuning()
			Expect(k).To(BeNumerically("==", 0.08))
			Expect(d).To(BeNumerically("==", 0.5))
		})
	})

	It("applies a reloaded config without touching the viewport", func() {
		cfg := config.DefaultConfig()
		cfg.Spring.Stiffness = 0.1
		cfg.Layout.Margin = 10
		cfg.Viewport.Width = 1
		s.Apply(cfg)

		k, _ := s.Tuning()
		Expect(k).To(BeNumerically("==", 0.1))
		Expect(s.Frame().P0.X).To(BeNumerically("==", 10))
		w, _ := s.Size()
		Expect(w).To(BeNumerically("==", 1000))
	})

	It("loses energy while settling", func() {
		s.PointerMove(500, 0)
		settle(s, 5)
		early := s.Energy()
		settle(s, 200)
		Expect(s.Energy()).To(BeNumerically("<", early))
	})
})
