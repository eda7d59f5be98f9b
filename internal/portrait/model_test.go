package portrait_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/phaseplot/internal/dynamo"
	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/portrait"
	"github.com/san-kum/phaseplot/internal/trajectory"
	"go.uber.org/zap"
)

func harmonic() field.Field {
	return field.New(
		func(x, y float64) float64 { return y },
		func(x, y float64) float64 { return -x },
	)
}

var square = field.Viewport{XStart: -10, XEnd: 10, YStart: -10, YEnd: 10}

var _ = Describe("Model", func() {
	var m *portrait.Model

	BeforeEach(func() {
		var err error
		m, err = portrait.New(harmonic(), square, field.TimeDomain{Start: -10, End: 10},
			portrait.WithLogger(zap.NewNop()),
			portrait.WithWorkers(4),
		)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects an inverted viewport", func() {
			_, err := portrait.New(harmonic(), field.Viewport{XStart: 1, XEnd: -1, YStart: 0, YEnd: 1}, field.TimeDomain{})
			Expect(err).To(MatchError(field.ErrInvalidGeometry))
		})

		It("rejects a time domain that excludes zero", func() {
			_, err := portrait.New(harmonic(), square, field.TimeDomain{Start: 1, End: 2})
			Expect(err).To(MatchError(field.ErrInvalidGeometry))
		})

		It("rejects an empty field", func() {
			_, err := portrait.New(field.Field{}, square, field.TimeDomain{})
			Expect(err).To(MatchError(portrait.ErrNilField))
		})
	})

	Describe("annotations", func() {
		It("appends in insertion order", func() {
			Expect(m.AddPoint(portrait.PointAnnotation{X: 0, Y: 0, Label: "origin"})).To(Succeed())
			Expect(m.AddPoint(portrait.PointAnnotation{X: 1, Y: 2})).To(Succeed())
			Expect(m.AddCircle(portrait.CircleAnnotation{Radius: 2, LineStyle: portrait.LineDashed})).To(Succeed())

			pts := m.Points()
			Expect(pts).To(HaveLen(2))
			Expect(pts[0].Label).To(Equal("origin"))
			Expect(pts[1].X).To(Equal(1.0))
			Expect(m.Circles()).To(HaveLen(1))
		})

		It("rejects a negative radius before anything is drawn", func() {
			err := m.AddCircle(portrait.CircleAnnotation{X: 0, Y: 0, Radius: -1})
			Expect(err).To(MatchError(field.ErrInvalidGeometry))
			Expect(m.Circles()).To(BeEmpty())
		})

		DescribeTable("rejects malformed circles",
			func(c portrait.CircleAnnotation, want error) {
				Expect(m.AddCircle(c)).To(MatchError(want))
			},
			Entry("zero radius", portrait.CircleAnnotation{Radius: 0}, field.ErrInvalidGeometry),
			Entry("infinite radius", portrait.CircleAnnotation{Radius: math.Inf(1)}, field.ErrInvalidGeometry),
			Entry("nan radius", portrait.CircleAnnotation{Radius: math.NaN()}, field.ErrInvalidGeometry),
			Entry("nan center", portrait.CircleAnnotation{X: math.NaN(), Radius: 1}, field.ErrInvalidGeometry),
			Entry("bad line style", portrait.CircleAnnotation{Radius: 1, LineStyle: "wavy"}, portrait.ErrUnknownLineStyle),
		)

		It("rejects non-finite points and initial conditions", func() {
			Expect(m.AddPoint(portrait.PointAnnotation{X: math.Inf(-1)})).To(MatchError(field.ErrInvalidGeometry))
			Expect(m.AddInitialCondition(portrait.InitialCondition{Y: math.NaN()})).To(MatchError(field.ErrInvalidGeometry))
			bad := field.TimeDomain{Start: 2, End: 3}
			Expect(m.AddInitialCondition(portrait.InitialCondition{Domain: &bad})).To(MatchError(field.ErrInvalidGeometry))
			Expect(m.InitialConditions()).To(BeEmpty())
		})

		It("hands out copies", func() {
			dom := field.TimeDomain{Start: -1, End: 1}
			Expect(m.AddInitialCondition(portrait.InitialCondition{X: 1, Domain: &dom})).To(Succeed())
			dom.End = 5

			ics := m.InitialConditions()
			Expect(ics[0].Domain.End).To(Equal(1.0))
			ics[0].X = 99
			ics[0].Domain.Start = -7
			Expect(m.InitialConditions()[0].X).To(Equal(1.0))
			Expect(m.InitialConditions()[0].Domain.Start).To(Equal(-1.0))
		})
	})

	Describe("DirectionField", func() {
		It("samples the whole viewport", func() {
			g, err := m.DirectionField(30, 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Samples).To(HaveLen(900))
			for _, s := range g.Samples {
				Expect(square.Contains(field.Point{X: s.X, Y: s.Y})).To(BeTrue())
			}
		})

		It("propagates resolution errors", func() {
			_, err := m.DirectionField(1, 30)
			Expect(err).To(MatchError(field.ErrInvalidResolution))
		})
	})

	Describe("ComputeTrajectories", func() {
		BeforeEach(func() {
			Expect(m.AddInitialCondition(portrait.InitialCondition{X: 2, Y: 0, Label: "r=2"})).To(Succeed())
			Expect(m.AddInitialCondition(portrait.InitialCondition{X: 0, Y: 5, Label: "r=5"})).To(Succeed())
		})

		It("traces circles for the harmonic oscillator", func(ctx SpecContext) {
			results, err := m.ComputeTrajectories(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))

			for i, r := range results {
				Expect(r.Err).NotTo(HaveOccurred())
				radius := []float64{2, 5}[i]
				Expect(r.Trajectory.Positive.Points[0]).To(Equal(r.Condition.Point()))
				_, path := r.Trajectory.Chronological()
				for _, p := range path {
					Expect(math.Hypot(p.X, p.Y)).To(BeNumerically("~", radius, 1e-5))
				}
			}
		})

		It("uses the custom domain of a condition", func(ctx SpecContext) {
			short := field.TimeDomain{Start: 0, End: 1}
			Expect(m.AddInitialCondition(portrait.InitialCondition{X: 1, Domain: &short})).To(Succeed())

			results, err := m.ComputeTrajectories(ctx)
			Expect(err).NotTo(HaveOccurred())
			tr := results[2].Trajectory
			Expect(tr.Negative.Len()).To(BeZero())
			Expect(tr.Positive.Times[tr.Positive.Len()-1]).To(Equal(1.0))
		})

		It("returns two empty branches for a degenerate domain", func(ctx SpecContext) {
			flat, err := portrait.New(harmonic(), square, field.TimeDomain{})
			Expect(err).NotTo(HaveOccurred())
			Expect(flat.AddInitialCondition(portrait.InitialCondition{X: 1})).To(Succeed())
			Expect(flat.AddInitialCondition(portrait.InitialCondition{X: 3, Y: -1})).To(Succeed())

			results, err := flat.ComputeTrajectories(ctx)
			Expect(err).NotTo(HaveOccurred())
			for _, r := range results {
				Expect(r.Err).NotTo(HaveOccurred())
				Expect(r.Trajectory.Negative.Points).To(BeEmpty())
				Expect(r.Trajectory.Positive.Points).To(BeEmpty())
			}
		})

		It("keeps a failing condition local", func(ctx SpecContext) {
			drain := field.New(
				func(x, y float64) float64 { return -1 / math.Sqrt(x) },
				func(x, y float64) float64 { return 0 },
			)
			dm, err := portrait.New(drain, square, field.TimeDomain{Start: -1, End: 1},
				portrait.WithTrajectoryOptions(trajectory.Options{Samples: 21}))
			Expect(err).NotTo(HaveOccurred())
			Expect(dm.AddInitialCondition(portrait.InitialCondition{X: 1})).To(Succeed())
			Expect(dm.AddInitialCondition(portrait.InitialCondition{X: 4})).To(Succeed())

			results, err := dm.ComputeTrajectories(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))

			Expect(errors.Is(results[0].Err, dynamo.ErrIntegrationFailure)).To(BeTrue())
			Expect(results[0].Trajectory.Negative.Points).To(HaveLen(10))
			// x^{3/2} = 8 - 1.5t stays positive on [0, 1].
			Expect(results[1].Err).NotTo(HaveOccurred())
		})

		It("stops between conditions when cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			results, err := m.ComputeTrajectories(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(results).To(BeEmpty())
			Expect(m.InitialConditions()).To(HaveLen(2))
		})

		It("matches the sequential results when fanned out", func(ctx SpecContext) {
			for k := 0; k < 8; k++ {
				Expect(m.AddInitialCondition(portrait.InitialCondition{X: float64(k), Y: 1})).To(Succeed())
			}
			seq, err := m.ComputeTrajectories(ctx)
			Expect(err).NotTo(HaveOccurred())
			par, err := m.ComputeTrajectoriesParallel(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(par).To(Equal(seq))
		})
	})

	Describe("clipping", func() {
		It("drops positive samples outside the viewport in order", func() {
			pts := []field.Point{{X: 0, Y: 0}, {X: 11, Y: 0}, {X: -3, Y: 9}, {X: 0, Y: -10.5}, {X: 10, Y: 10}}
			Expect(m.ClipToViewport(pts)).To(Equal([]field.Point{{X: 0, Y: 0}, {X: -3, Y: 9}, {X: 10, Y: 10}}))
		})

		It("clips an escaping trajectory", func(ctx SpecContext) {
			growth := field.New(
				func(x, y float64) float64 { return x },
				func(x, y float64) float64 { return y },
			)
			gm, err := portrait.New(growth, square, field.TimeDomain{Start: 0, End: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(gm.AddInitialCondition(portrait.InitialCondition{X: 1, Y: 1})).To(Succeed())

			results, err := gm.ComputeTrajectories(ctx)
			Expect(err).NotTo(HaveOccurred())
			clipped := results[0].ClippedPositive(square)
			Expect(len(clipped)).To(BeNumerically("<", results[0].Trajectory.Positive.Len()))
			for _, p := range clipped {
				Expect(square.Contains(p)).To(BeTrue())
			}
			Expect(clipped[0]).To(Equal(field.Point{X: 1, Y: 1}))
		})
	})

	Describe("Compute", func() {
		It("assembles every artifact", func(ctx SpecContext) {
			Expect(m.AddPoint(portrait.PointAnnotation{})).To(Succeed())
			Expect(m.AddCircle(portrait.CircleAnnotation{Radius: 2})).To(Succeed())
			Expect(m.AddInitialCondition(portrait.InitialCondition{X: 2})).To(Succeed())

			art, err := m.Compute(ctx, 15, 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(art.Viewport).To(Equal(square))
			Expect(art.TimeDomain).To(Equal(field.TimeDomain{Start: -10, End: 10}))
			Expect(art.Field.Samples).To(HaveLen(225))
			Expect(art.Trajectories).To(HaveLen(1))
			Expect(art.Points).To(HaveLen(1))
			Expect(art.Circles).To(HaveLen(1))
		})
	})
})
