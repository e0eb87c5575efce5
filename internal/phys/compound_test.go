package phys

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/planarphys/planar/internal/geom"
)

func shapedBody(mass, x, y float64) *Body {
	b := NewBody(Dynamic, geom.V(x, y))
	b.AddShape(Circle{Radius: 1})
	_ = b.SetMass(mass)
	return b
}

// deepCount tallies everything visible from the space: direct roots
// plus every entity inside root compounds.
func deepCount(s *Space) (bodies, constraints, compounds int) {
	bodies = len(s.Bodies())
	constraints = len(s.Constraints())
	compounds = len(s.Compounds())
	for _, c := range s.Compounds() {
		_ = c.VisitBodies(func(*Body) { bodies++ })
		_ = c.VisitConstraints(func(Constraint) { constraints++ })
		_ = c.VisitCompounds(func(*Compound) { compounds++ })
		compounds-- // VisitCompounds includes the root itself
	}
	return
}

var _ = Describe("Compound", func() {
	Describe("ownership tree", func() {
		It("links children to their parent both ways", func() {
			parent := NewCompound()
			child := NewCompound()

			Expect(parent.Children().Add(child)).To(Succeed())
			Expect(child.Compound()).To(Equal(parent))
			Expect(parent.Children().Has(child)).To(BeTrue())
		})

		It("reparents with remove-then-add, never dual membership", func() {
			a := NewCompound()
			b := NewCompound()
			child := NewCompound()

			Expect(a.Children().Add(child)).To(Succeed())
			Expect(child.SetCompound(b)).To(Succeed())

			Expect(a.Children().Has(child)).To(BeFalse())
			Expect(b.Children().Has(child)).To(BeTrue())
			Expect(child.Compound()).To(Equal(b))
		})

		It("rejects duplicate and nil entries", func() {
			c := NewCompound()
			b := NewBody(Dynamic, geom.V(0, 0))

			Expect(c.Bodies().Add(b)).To(Succeed())
			Expect(c.Bodies().Add(b)).To(MatchError(ErrDuplicate))
			Expect(c.Bodies().Add(nil)).To(MatchError(ErrNilEntity))
			Expect(c.Children().Add(nil)).To(MatchError(ErrNilEntity))
		})

		It("rejects ownership cycles", func() {
			outer := NewCompound()
			inner := NewCompound()
			Expect(outer.Children().Add(inner)).To(Succeed())
			Expect(inner.Children().Add(outer)).NotTo(Succeed())
		})

		It("moves a body between compounds through Add", func() {
			a := NewCompound()
			b := NewCompound()
			body := NewBody(Dynamic, geom.V(0, 0))

			Expect(a.Bodies().Add(body)).To(Succeed())
			Expect(b.Bodies().Add(body)).To(Succeed())

			Expect(a.Bodies().Has(body)).To(BeFalse())
			Expect(b.Bodies().Has(body)).To(BeTrue())
			Expect(body.Compound()).To(Equal(b))
		})

		It("only allows space assignment on roots", func() {
			s := NewSpace(geom.V(0, 0))
			parent := NewCompound()
			child := NewCompound()
			Expect(parent.Children().Add(child)).To(Succeed())

			Expect(child.SetSpace(s)).To(MatchError(ErrNotRoot))
			Expect(parent.SetSpace(s)).To(Succeed())
			Expect(child.Space()).To(Equal(s))
		})

		It("rejects structural mutation midstep", func() {
			s := NewSpace(geom.V(0, 0))
			c := NewCompound()
			Expect(c.SetSpace(s)).To(Succeed())

			s.midstep = true
			Expect(c.Bodies().Add(NewBody(Dynamic, geom.V(0, 0)))).To(MatchError(ErrMidstep))
			Expect(c.Children().Add(NewCompound())).To(MatchError(ErrMidstep))
			Expect(c.BreakApart()).To(MatchError(ErrMidstep))
			Expect(c.SetSpace(nil)).To(MatchError(ErrMidstep))
		})
	})

	Describe("traversal", func() {
		var (
			root, childA, childB *Compound
			bodies               []*Body
		)

		BeforeEach(func() {
			root = NewCompound()
			childA = NewCompound()
			childB = NewCompound()
			bodies = nil
			for i := 0; i < 5; i++ {
				bodies = append(bodies, NewBody(Dynamic, geom.V(float64(i), 0)))
			}
			Expect(root.Bodies().Add(bodies[0])).To(Succeed())
			Expect(root.Children().Add(childA)).To(Succeed())
			Expect(root.Children().Add(childB)).To(Succeed())
			Expect(childA.Bodies().Add(bodies[1])).To(Succeed())
			Expect(childA.Bodies().Add(bodies[2])).To(Succeed())
			Expect(childB.Bodies().Add(bodies[3])).To(Succeed())
			Expect(childB.Bodies().Add(bodies[4])).To(Succeed())
		})

		It("visits every body exactly once, direct first then children in order", func() {
			var got []*Body
			Expect(root.VisitBodies(func(b *Body) { got = append(got, b) })).To(Succeed())
			Expect(got).To(Equal(bodies))
		})

		It("is stable across repeated calls", func() {
			var first, second []int
			Expect(root.VisitBodies(func(b *Body) { first = append(first, b.ID()) })).To(Succeed())
			Expect(root.VisitBodies(func(b *Body) { second = append(second, b.ID()) })).To(Succeed())
			Expect(second).To(Equal(first))
		})

		It("visits compounds parents before children", func() {
			var got []*Compound
			Expect(root.VisitCompounds(func(c *Compound) { got = append(got, c) })).To(Succeed())
			Expect(got).To(Equal([]*Compound{root, childA, childB}))
		})

		It("fails on a nil visitor before visiting anything", func() {
			Expect(root.VisitBodies(nil)).To(MatchError(ErrNilVisitor))
			Expect(root.VisitConstraints(nil)).To(MatchError(ErrNilVisitor))
			Expect(root.VisitCompounds(nil)).To(MatchError(ErrNilVisitor))
		})
	})

	Describe("copy", func() {
		It("copies an empty compound to an empty compound with a fresh id", func() {
			c := NewCompound()
			cp := c.Copy()
			Expect(cp.ID()).NotTo(Equal(c.ID()))
			Expect(cp.Bodies().Len()).To(BeZero())
			Expect(cp.Children().Len()).To(BeZero())
			Expect(cp.Compound()).To(BeNil())
			Expect(cp.Space()).To(BeNil())
		})

		It("produces an isomorphic tree of fresh clones", func() {
			root := NewCompound()
			child := NewCompound()
			b1 := shapedBody(1, 0, 0)
			b2 := shapedBody(2, 1, 0)
			Expect(root.Bodies().Add(b1)).To(Succeed())
			Expect(root.Children().Add(child)).To(Succeed())
			Expect(child.Bodies().Add(b2)).To(Succeed())
			Expect(child.Constraints().Add(NewDistanceJoint(b1, b2, 1))).To(Succeed())

			cp := root.Copy()

			Expect(cp.Bodies().Len()).To(Equal(1))
			Expect(cp.Children().Len()).To(Equal(1))
			Expect(cp.Children().At(0).Bodies().Len()).To(Equal(1))
			Expect(cp.Children().At(0).Constraints().Len()).To(Equal(1))

			Expect(cp.Bodies().At(0)).NotTo(BeIdenticalTo(b1))
			Expect(cp.Bodies().At(0).Mass()).To(Equal(b1.Mass()))
		})

		It("remaps constraint slots across sibling branches", func() {
			root := NewCompound()
			left := NewCompound()
			right := NewCompound()
			bl := shapedBody(1, 0, 0)
			br := shapedBody(1, 2, 0)
			Expect(root.Children().Add(left)).To(Succeed())
			Expect(root.Children().Add(right)).To(Succeed())
			Expect(left.Bodies().Add(bl)).To(Succeed())
			Expect(right.Bodies().Add(br)).To(Succeed())
			Expect(root.Constraints().Add(NewDistanceJoint(bl, br, 2))).To(Succeed())

			cp := root.Copy()
			j := cp.Constraints().At(0).(*DistanceJoint)

			Expect(j.A).To(BeIdenticalTo(cp.Children().At(0).Bodies().At(0)))
			Expect(j.B).To(BeIdenticalTo(cp.Children().At(1).Bodies().At(0)))
		})

		It("nulls slots referencing bodies outside the copied subtree", func() {
			outer := NewCompound()
			inner := NewCompound()
			external := shapedBody(1, 0, 0)
			internal := shapedBody(1, 1, 0)
			Expect(outer.Bodies().Add(external)).To(Succeed())
			Expect(outer.Children().Add(inner)).To(Succeed())
			Expect(inner.Bodies().Add(internal)).To(Succeed())
			Expect(inner.Constraints().Add(NewDistanceJoint(internal, external, 1))).To(Succeed())

			cp := inner.Copy()
			j := cp.Constraints().At(0).(*DistanceJoint)

			Expect(j.A).To(BeIdenticalTo(cp.Bodies().At(0)))
			Expect(j.B).To(BeNil())
		})
	})

	Describe("breakApart", func() {
		It("promotes a nested compound's contents to its parent", func() {
			parent := NewCompound()
			c := NewCompound()
			grandchild := NewCompound()
			b := NewBody(Dynamic, geom.V(0, 0))
			gb := NewBody(Dynamic, geom.V(1, 0))

			Expect(parent.Children().Add(c)).To(Succeed())
			Expect(c.Bodies().Add(b)).To(Succeed())
			Expect(c.Children().Add(grandchild)).To(Succeed())
			Expect(grandchild.Bodies().Add(gb)).To(Succeed())

			Expect(c.BreakApart()).To(Succeed())

			Expect(parent.Bodies().Has(b)).To(BeTrue())
			Expect(parent.Children().Has(grandchild)).To(BeTrue())
			Expect(parent.Children().Has(c)).To(BeFalse())
			// grandchild keeps its own grouping
			Expect(grandchild.Bodies().Has(gb)).To(BeTrue())
			Expect(c.Bodies().Len()).To(BeZero())
			Expect(c.Compound()).To(BeNil())
		})

		It("promotes a root compound's contents to the space", func() {
			s := NewSpace(geom.V(0, 0))
			c := NewCompound()
			child := NewCompound()
			b := NewBody(Dynamic, geom.V(0, 0))
			cb := NewBody(Dynamic, geom.V(1, 0))
			j := NewDistanceJoint(b, cb, 1)

			Expect(c.Bodies().Add(b)).To(Succeed())
			Expect(c.Constraints().Add(j)).To(Succeed())
			Expect(c.Children().Add(child)).To(Succeed())
			Expect(child.Bodies().Add(cb)).To(Succeed())
			Expect(c.SetSpace(s)).To(Succeed())

			preB, preC, preK := deepCount(s)
			s.Drain()

			Expect(c.BreakApart()).To(Succeed())

			postB, postC, postK := deepCount(s)
			Expect(postB).To(Equal(preB))
			Expect(postC).To(Equal(preC))
			Expect(postK).To(Equal(preK - 1)) // only c's grouping dissolved

			Expect(s.Bodies()).To(ContainElement(b))
			Expect(s.Constraints()).To(ContainElement(Constraint(j)))
			Expect(s.Compounds()).To(ContainElement(child))
			Expect(b.Space()).To(Equal(s))
			Expect(cb.Space()).To(Equal(s))
		})

		It("leaves callback bookkeeping untouched", func() {
			s := NewSpace(geom.V(0, 0))
			c := NewCompound()
			b1 := NewBody(Dynamic, geom.V(0, 0))
			b2 := NewBody(Dynamic, geom.V(1, 0))
			Expect(c.Bodies().Add(b1)).To(Succeed())
			Expect(c.Bodies().Add(b2)).To(Succeed())
			Expect(c.SetSpace(s)).To(Succeed())

			s.IgnorePair(b1, b2)
			pending := s.Pending()

			Expect(c.BreakApart()).To(Succeed())

			Expect(s.Ignoring(b1, b2)).To(BeTrue())
			Expect(s.Pending()).To(Equal(pending))
		})

		It("detaches an unowned compound's contents in place", func() {
			c := NewCompound()
			b := NewBody(Dynamic, geom.V(0, 0))
			Expect(c.Bodies().Add(b)).To(Succeed())

			Expect(c.BreakApart()).To(Succeed())
			Expect(b.Compound()).To(BeNil())
			Expect(c.Bodies().Len()).To(BeZero())
		})
	})

	Describe("geometric aggregation", func() {
		It("computes the mass-weighted centre of mass", func() {
			c := NewCompound()
			Expect(c.Bodies().Add(shapedBody(2, 0, 0))).To(Succeed())
			Expect(c.Bodies().Add(shapedBody(4, 3, 0))).To(Succeed())

			com, err := c.COM(false)
			Expect(err).NotTo(HaveOccurred())
			defer com.Dispose()
			Expect(com.X).To(BeNumerically("~", 2, 1e-12))
			Expect(com.Y).To(BeNumerically("~", 0, 1e-12))
		})

		It("excludes shapeless bodies and fails when none bear mass", func() {
			c := NewCompound()
			Expect(c.Bodies().Add(NewBody(Dynamic, geom.V(9, 9)))).To(Succeed())

			_, err := c.COM(false)
			Expect(err).To(MatchError(ErrNoMass))

			Expect(c.Bodies().Add(shapedBody(1, 1, 1))).To(Succeed())
			com, err := c.COM(false)
			Expect(err).NotTo(HaveOccurred())
			defer com.Dispose()
			Expect(com.X).To(BeNumerically("~", 1, 1e-12))
		})

		It("translates every body and consumes a weak argument once", func() {
			c := NewCompound()
			child := NewCompound()
			b1 := NewBody(Dynamic, geom.V(0, 0))
			b2 := NewBody(Dynamic, geom.V(1, 1))
			Expect(c.Bodies().Add(b1)).To(Succeed())
			Expect(c.Children().Add(child)).To(Succeed())
			Expect(child.Bodies().Add(b2)).To(Succeed())

			delta := geom.WeakVec(2, 3)
			Expect(c.Translate(delta)).To(Succeed())

			Expect(b1.Position()).To(Equal(geom.V(2, 3)))
			Expect(b2.Position()).To(Equal(geom.V(3, 4)))
			Expect(delta.Disposed()).To(BeTrue())
		})

		It("rejects nil, disposed and non-finite arguments up front", func() {
			c := NewCompound()
			b := NewBody(Dynamic, geom.V(0, 0))
			Expect(c.Bodies().Add(b)).To(Succeed())

			Expect(c.Translate(nil)).NotTo(Succeed())

			dead := geom.NewVec(1, 1)
			dead.Dispose()
			Expect(c.Translate(dead)).To(MatchError(geom.ErrDisposed))

			centre := geom.NewVec(0, 0)
			defer centre.Dispose()
			Expect(c.Rotate(centre, math.NaN())).To(MatchError(ErrBadAngle))
			Expect(b.Position()).To(Equal(geom.V(0, 0)))
		})

		It("surfaces a static-body failure without rolling back earlier moves", func() {
			s := NewSpace(geom.V(0, 0))
			c := NewCompound()
			mover := NewBody(Dynamic, geom.V(0, 0))
			wall := NewBody(Static, geom.V(5, 0))
			after := NewBody(Dynamic, geom.V(9, 0))
			Expect(c.Bodies().Add(mover)).To(Succeed())
			Expect(c.Bodies().Add(wall)).To(Succeed())
			Expect(c.Bodies().Add(after)).To(Succeed())
			Expect(c.SetSpace(s)).To(Succeed())

			delta := geom.NewVec(1, 0)
			defer delta.Dispose()
			Expect(c.Translate(delta)).To(MatchError(ErrStaticBody))

			Expect(mover.Position()).To(Equal(geom.V(1, 0)))
			Expect(wall.Position()).To(Equal(geom.V(5, 0)))
			Expect(after.Position()).To(Equal(geom.V(9, 0)))
		})

		It("rotates bodies about a centre point", func() {
			c := NewCompound()
			b := NewBody(Dynamic, geom.V(1, 0))
			Expect(c.Bodies().Add(b)).To(Succeed())

			centre := geom.WeakVec(0, 0)
			Expect(c.Rotate(centre, math.Pi/2)).To(Succeed())

			Expect(b.Position().X).To(BeNumerically("~", 0, 1e-12))
			Expect(b.Position().Y).To(BeNumerically("~", 1, 1e-12))
			Expect(centre.Disposed()).To(BeTrue())
		})
	})

	Describe("space linkage", func() {
		It("removes and re-adds a whole tree as a unit", func() {
			s := NewSpace(geom.V(0, 0))
			c := NewCompound()
			child := NewCompound()
			b := NewBody(Dynamic, geom.V(0, 0))
			cb := NewBody(Dynamic, geom.V(1, 0))
			Expect(c.Bodies().Add(b)).To(Succeed())
			Expect(c.Children().Add(child)).To(Succeed())
			Expect(child.Bodies().Add(cb)).To(Succeed())

			Expect(c.SetSpace(s)).To(Succeed())
			Expect(b.Space()).To(Equal(s))
			Expect(cb.Space()).To(Equal(s))

			Expect(c.SetSpace(nil)).To(Succeed())
			Expect(b.Space()).To(BeNil())
			Expect(cb.Space()).To(BeNil())
			Expect(s.Compounds()).To(BeEmpty())

			Expect(c.SetSpace(s)).To(Succeed())
			Expect(cb.Space()).To(Equal(s))
		})
	})
})
