package flock_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/flock"
)

var _ = Describe("Frame pipeline", func() {
	var (
		params flock.Params
		f      *flock.Flock
		pop    *flock.Population
	)

	BeforeEach(func() {
		params = flock.DefaultParams()
		f = flock.New(dynamo.DefaultBounds)
		pop = flock.NewPopulation(1234)
	})

	Describe("neighbour accumulation", func() {
		It("adds exactly negated separation to each side of a pair", func() {
			f.Spawn(flock.Agent{Position: dynamo.Vec2{X: 3, Y: -2}})
			f.Spawn(flock.Agent{Position: dynamo.Vec2{X: -4, Y: 9}})

			flock.Accumulate(f.Agents(), params)

			a, b := f.Agent(0).Accum, f.Agent(1).Accum
			Expect(a.SepCount).To(Equal(1))
			Expect(b.SepCount).To(Equal(1))
			Expect(a.Sep).To(Equal(b.Sep.Neg()))
			Expect(a.Sep.Len()).To(BeNumerically("~", 1, 1e-12))
		})

		It("leaves coincident agents untouched", func() {
			p := dynamo.Vec2{X: 50, Y: 50}
			f.Spawn(flock.Agent{Position: p, Velocity: dynamo.Vec2{X: 1}})
			f.Spawn(flock.Agent{Position: p, Velocity: dynamo.Vec2{Y: 1}})

			flock.Accumulate(f.Agents(), params)
			flock.AvoidObstacles(f.Agents(), []flock.Obstacle{{Position: p}})

			Expect(f.Agent(0).Accum.IsZero()).To(BeTrue())
			Expect(f.Agent(1).Accum.IsZero()).To(BeTrue())
		})

		It("matches the two-fish scenario", func() {
			f.Spawn(flock.Agent{Position: dynamo.Vec2{X: 0, Y: 0}})
			f.Spawn(flock.Agent{Position: dynamo.Vec2{X: 10, Y: 0}})

			flock.Accumulate(f.Agents(), params)

			Expect(f.Agent(0).Accum.Sep).To(Equal(dynamo.Vec2{X: -1, Y: 0}))
			Expect(f.Agent(1).Accum.Sep).To(Equal(dynamo.Vec2{X: 1, Y: 0}))
		})
	})

	Describe("steering", func() {
		BeforeEach(func() {
			pop.Resize(f, 300)
			f.AddObstacle(dynamo.Vec2{X: 0, Y: 0})
			flock.Accumulate(f.Agents(), params)
			flock.AvoidObstacles(f.Agents(), f.Obstacles())
			flock.Steer(f.Agents(), params)
		})

		It("resets every accumulator", func() {
			for _, a := range f.Agents() {
				Expect(a.Accum.IsZero()).To(BeTrue())
			}
		})

		It("caps every non-zero force at max_force", func() {
			for _, a := range f.Agents() {
				if l := a.Acceleration.Len(); l > 0 {
					Expect(l).To(BeNumerically("~", params.MaxForce, 1e-12))
				}
			}
		})
	})

	Describe("integration", func() {
		It("forces speed to velocity_mag and keeps agents inside the world", func() {
			pop.Resize(f, 250)
			pl := flock.NewPipeline(2)

			for i := 0; i < 20; i++ {
				pl.Step(f, params, 1.0/60)
			}

			b := f.Bounds()
			for _, a := range f.Agents() {
				Expect(a.Velocity.Len()).To(BeNumerically("~", params.VelocityMag, 1e-9))
				Expect(a.Position.X).To(BeNumerically(">=", b.A.X))
				Expect(a.Position.X).To(BeNumerically("<=", b.B.X))
				Expect(a.Position.Y).To(BeNumerically(">=", b.A.Y))
				Expect(a.Position.Y).To(BeNumerically("<=", b.B.Y))
				Expect(a.Orientation).To(BeNumerically("~", math.Atan2(a.Velocity.Y, a.Velocity.X), 1e-12))
			}
		})

		It("teleports an x-crossing without touching y", func() {
			f.Spawn(flock.Agent{Position: dynamo.Vec2{X: 499.9, Y: 123}, Velocity: dynamo.Vec2{X: 1}})

			flock.Integrate(f.Agents(), params, f.Bounds(), 1.0/60)

			Expect(f.Agent(0).Position.X).To(Equal(-500.0))
			Expect(f.Agent(0).Position.Y).To(Equal(123.0))
		})
	})

	Describe("population control", func() {
		It("grows and shrinks by exactly the difference", func() {
			pop.Resize(f, 200)

			added, _ := pop.Resize(f, 250)
			Expect(added).To(Equal(50))
			Expect(f.Len()).To(Equal(250))

			_, removed := pop.Resize(f, 200)
			Expect(removed).To(Equal(50))
			Expect(f.Len()).To(Equal(200))
		})
	})
})
