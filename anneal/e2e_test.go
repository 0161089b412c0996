package anneal

import (
	"context"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	gomega "github.com/onsi/gomega"

	"github.com/rw1nkler/vtr-verilog-to-routing/costmodel"
	"github.com/rw1nkler/vtr-verilog-to-routing/delaymodel"
	"github.com/rw1nkler/vtr-verilog-to-routing/demo"
	"github.com/rw1nkler/vtr-verilog-to-routing/move"
	"github.com/rw1nkler/vtr-verilog-to-routing/timinggraph"
)

// newBBScenario builds a small bounding-box-only State over a randomly
// generated demo netlist/grid, with no timing collaborators wired (the
// bbox-only trial path never touches them).
func newBBScenario(seed int64) (*State, *demo.Scenario) {
	scenario := demo.Generate(demo.Options{
		NumBlocks: 30, NumNets: 40, MaxFanout: 4,
		GridWidth: 8, GridHeight: 8, ChanWidth: 4, Seed: seed,
	})
	factors, _ := costmodel.NewChannelFactors(scenario.Grid, 1.0)
	rng := rand.New(rand.NewSource(seed))
	moveGen := move.NewUniformMoveGenerator(scenario.Netlist, scenario.Placement, rng)

	s := NewState(
		scenario.Netlist, scenario.Placement, factors,
		nil, nil, nil, nil, moveGen,
		BoundingBoxPlace, 0, 0.01, rng,
	)
	return s, scenario
}

// newTimingDrivenScenario builds a timing-driven State wired to the
// reference linear delay model and slack-based timing engine.
func newTimingDrivenScenario(seed int64) (*State, *demo.Scenario) {
	scenario := demo.Generate(demo.Options{
		NumBlocks: 24, NumNets: 30, MaxFanout: 3,
		GridWidth: 8, GridHeight: 8, ChanWidth: 4, Seed: seed,
	})
	factors, _ := costmodel.NewChannelFactors(scenario.Grid, 1.0)
	dm, err := delaymodel.NewLinearDelta(1e-10, 1e-10, 1e-10, 1e-11)
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	engine := timinggraph.NewEngine(scenario.Netlist, scenario.Placement, dm)
	rng := rand.New(rand.NewSource(seed))
	moveGen := move.NewUniformMoveGenerator(scenario.Netlist, scenario.Placement, rng)

	s := NewState(
		scenario.Netlist, scenario.Placement, factors,
		dm, engine, engine, engine, moveGen,
		PathTimingDrivenPlace, 0.5, 0.01, rng,
	)
	gomega.Expect(s.RefreshCriticalities(1.0)).To(gomega.Succeed())
	s.InvBB = 1 / s.BBCost
	s.InvTiming = math.Min(1/s.TimingCost, maxInvTimingCost)
	return s, scenario
}

var _ = Describe("TrySwap at zero temperature", func() {
	It("never increases cost over a long quench", func() {
		s, _ := newBBScenario(7)
		var ba move.BlocksAffected

		prev := s.BBCost
		for i := 0; i < 2000; i++ {
			outcome, _, err := s.TrySwap(0, &ba)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			if outcome == move.Accepted {
				gomega.Expect(s.BBCost).To(gomega.BeNumerically("<=", prev+1e-9))
			}
			prev = s.BBCost
		}
	})
})

var _ = Describe("scratch arrays between trials", func() {
	It("are quiesced to their sentinels after every accepted or rejected trial", func() {
		s, _ := newBBScenario(11)
		var ba move.BlocksAffected

		for i := 0; i < 500; i++ {
			_, _, err := s.TrySwap(1.0, &ba)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(s.QuiescedMarkers()).To(gomega.BeTrue())
		}
	})
})

var _ = Describe("bb_cost incremental/from-scratch agreement", func() {
	It("stays within tolerance of an independent from-scratch recompute", func() {
		s, _ := newBBScenario(23)
		c := NewController(Default())
		var ba move.BlocksAffected

		for i := 0; i < 800; i++ {
			_, _, err := s.TrySwap(2.0, &ba)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		}

		gomega.Expect(c.RecomputeCostsFromScratch(s)).To(gomega.Succeed())
	})
})

var _ = Describe("starting temperature estimation", func() {
	It("returns a non-negative starting temperature", func() {
		s, scenario := newBBScenario(5)
		opts := Default()
		c := NewController(opts)

		numBlocks := len(scenario.Netlist.Blocks())
		t0, err := c.startingTemperature(s, numBlocks, float64(scenario.Grid.Width()-1))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(t0).To(gomega.BeNumerically(">=", 0))
	})
})

var _ = Describe("timing cost after a criticality refresh", func() {
	It("matches an independent from-scratch computation of timing_cost", func() {
		s, _ := newTimingDrivenScenario(9)
		var ba move.BlocksAffected

		for i := 0; i < 200; i++ {
			_, _, err := s.TrySwap(1.0, &ba)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		}
		gomega.Expect(s.RefreshCriticalities(2.0)).To(gomega.Succeed())

		scratch := costmodel.CompTDCosts(s.NL, s.Placement, s.DelayModel, s.Crit, costmodel.NewTimingCosts(s.NL))
		gomega.Expect(s.TimingCost).To(gomega.BeNumerically("~", scratch, ErrorTol*math.Max(1, scratch)))
	})
})

var _ = Describe("the full annealing controller", func() {
	It("runs a bounding-box anneal on a small scenario to a legal, cost-consistent final placement", func() {
		s, scenario := newBBScenario(3)
		opts := Default()
		opts.Schedule.Type = User
		opts.Schedule.InitT = 5
		opts.Schedule.AlphaT = 0.5
		opts.Schedule.ExitT = 1
		gomega.Expect(opts.Validate()).To(gomega.Succeed())

		c := NewController(opts)
		err := c.Run(context.Background(), s, len(scenario.Netlist.Blocks()),
			scenario.Grid.Width(), scenario.Grid.Height(), nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})
})
