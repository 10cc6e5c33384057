package trace

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/repulse/internal/metrics"
	"github.com/san-kum/repulse/internal/repulse"
	"github.com/san-kum/repulse/internal/scene"
)

var _ = Describe("Runner", func() {
	var (
		page   *scene.Page
		runner *Runner
		title  *repulse.Element
	)

	BeforeEach(func() {
		var err error
		page, err = scene.New(scene.Default(960, 640))
		Expect(err).NotTo(HaveOccurred())
		runner = NewRunner(page, repulse.DefaultProfiles())
		title = page.QuerySelectorAll("h1")[0]
	})

	It("registers the page before replaying", func() {
		_, err := runner.Run(context.Background(), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(runner.Animator().Registry().Len()).To(Equal(7 + 39))
	})

	It("records one frame per move", func() {
		c := title.BoundingClientRect().Center()
		result, err := runner.Run(context.Background(), Hold(c, 5, 0, DefaultDt))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Events).To(Equal(5))
		Expect(result.Frames).To(HaveLen(5))
		Expect(result.Frames[0].Synthetic).To(BeFalse())
		Expect(result.Frames[0].Energy).To(BeNumerically(">", 0))
		Expect(title.Transform()).NotTo(Equal("translate(0px, 0px)"))
	})

	It("turns scroll events into synthetic frames", func() {
		events := ScrollRamp(0, 100, 4, 0, DefaultDt)
		result, err := runner.Run(context.Background(), events)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Frames).To(HaveLen(5))
		for _, f := range result.Frames {
			Expect(f.Synthetic).To(BeTrue())
		}
		Expect(page.Scroll().Y).To(Equal(100.0))
		Expect(result.Frames[4].Cursor).To(Equal(repulse.Vec2{X: 0, Y: 100}))
	})

	It("collects metrics", func() {
		runner.AddMetric(metrics.NewMaxDisplacement())
		runner.AddMetric(metrics.NewSettle(metrics.DefaultEpsilon))

		result, err := runner.Run(context.Background(), Demo(page.Viewport()))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Metrics).To(HaveKey("max_displacement"))
		Expect(result.Metrics["max_displacement"]).To(BeNumerically(">", 0))
		Expect(result.Metrics["settle_ticks"]).To(BeNumerically(">", 0))
	})

	It("is deterministic", func() {
		events := Demo(page.Viewport())
		first, err := runner.Run(context.Background(), events)
		Expect(err).NotTo(HaveOccurred())

		other, _ := scene.New(scene.Default(960, 640))
		second, err := NewRunner(other, repulse.DefaultProfiles()).Run(context.Background(), events)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Energies()).To(Equal(first.Energies()))
	})

	It("stops on a bad event", func() {
		events := []Event{
			{Time: 0, Kind: Move, X: 1, Y: 1},
			{Time: 1, Kind: "click"},
			{Time: 2, Kind: Move},
		}
		result, err := runner.Run(context.Background(), events)
		Expect(err).To(MatchError(ErrBadEvent))
		Expect(result.Events).To(Equal(1))
	})

	It("honors cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result, err := runner.Run(ctx, Demo(page.Viewport()))
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Events).To(BeZero())
	})
})
