package orbit_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbsim/internal/orbit"
)

type tagged struct{ N int }

func (t *tagged) Tag() orbit.Tag { return "tagged" }
func (t *tagged) ClonePayload() orbit.Payload {
	c := *t
	return &c
}

func mustAdd(r *orbit.Registry, name string, angle float64, radii ...float64) orbit.ID {
	e, err := orbit.NewEntity(name, angle, nil, radii...)
	Expect(err).NotTo(HaveOccurred())
	id, err := r.AddObject(e)
	Expect(err).NotTo(HaveOccurred())
	return id
}

var _ = Describe("Registry", func() {
	var r *orbit.Registry

	BeforeEach(func() {
		r = orbit.NewRegistry()
	})

	AfterEach(func() {
		Expect(r.CheckRepresentation).NotTo(Panic())
	})

	Describe("tracks", func() {
		It("reports whether a track was new", func() {
			added, err := r.AddTrack(3)
			Expect(err).NotTo(HaveOccurred())
			Expect(added).To(BeTrue())
			added, err = r.AddTrack(3)
			Expect(err).NotTo(HaveOccurred())
			Expect(added).To(BeFalse())
		})

		It("rejects negative radii other than the sentinel", func() {
			_, err := r.AddTrack(-2)
			Expect(err).To(MatchError(orbit.ErrInvalidTrack))
			Expect(r.Tracks()).To(BeEmpty())

			added, err := r.AddTrack(-1)
			Expect(err).NotTo(HaveOccurred())
			Expect(added).To(BeTrue())
		})

		It("cascades track removal to entities and relations", func() {
			a := mustAdd(r, "a", 0, 1)
			b := mustAdd(r, "b", 0, 2)
			Expect(r.SetRelation(a, b, 1)).To(Succeed())

			existed, err := r.RemoveTrack(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(existed).To(BeTrue())
			Expect(r.Contains(a)).To(BeFalse())
			Expect(r.Graph().HasVertex(a)).To(BeFalse())
			Expect(r.Tracks()).To(Equal([]orbit.Track{orbit.MustTrack(2)}))
		})

		It("keeps empty tracks until compaction", func() {
			a := mustAdd(r, "a", 0, 1)
			Expect(r.MoveObject(a, orbit.MustTrack(2))).To(Succeed())
			Expect(r.Tracks()).To(HaveLen(2))
			Expect(r.CompactTracks()).To(Equal(1))
			Expect(r.Tracks()).To(Equal([]orbit.Track{orbit.MustTrack(2)}))
		})
	})

	Describe("objects", func() {
		It("rejects duplicate identities without mutating", func() {
			mustAdd(r, "e", 0, 1)
			e, _ := orbit.NewEntity("e", 0, nil, 1)
			_, err := r.AddObject(e)
			Expect(errors.Is(err, orbit.ErrDuplicateIdentity)).To(BeTrue())
			Expect(r.Len()).To(Equal(1))
		})

		It("identifies by initial state, not by current state", func() {
			a := mustAdd(r, "e", 0, 1)
			Expect(r.MoveObject(a, orbit.MustTrack(4))).To(Succeed())
			Expect(r.SetAngle(a, 90)).To(Succeed())

			e, _ := orbit.NewEntity("e", 0, nil, 1)
			_, err := r.AddObject(e)
			Expect(err).To(MatchError(orbit.ErrDuplicateIdentity))
			id, ok := r.IDOf(e)
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(a))
		})

		It("moves objects and registers the destination", func() {
			a := mustAdd(r, "a", 0, 1)
			Expect(r.MoveObject(a, orbit.MustTrack(7, 3))).To(Succeed())
			Expect(r.ObjectsOnTrack(orbit.MustTrack(7, 3))).To(Equal([]orbit.ID{a}))
			Expect(r.ObjectsOnTrack(orbit.MustTrack(1))).To(BeEmpty())
			Expect(r.HasTrack(orbit.MustTrack(1))).To(BeTrue())
		})

		It("canonicalises raw destination tracks", func() {
			a := mustAdd(r, "a", 0, 1)
			Expect(r.MoveObject(a, orbit.Track{Major: 2, Minor: 5})).To(Succeed())
			Expect(r.Tracks()).To(Equal([]orbit.Track{orbit.MustTrack(1), orbit.MustTrack(5, 2)}))
			e, _ := r.Entity(a)
			Expect(e.Track()).To(Equal(orbit.MustTrack(5, 2)))
			Expect(r.MoveObject(a, orbit.Track{Major: -3, Minor: 1})).To(MatchError(orbit.ErrInvalidTrack))
			Expect(r.ObjectsOnTrack(orbit.MustTrack(5, 2))).To(Equal([]orbit.ID{a}))
		})

		It("canonicalises the tracks of added entities", func() {
			raw := orbit.Track{Major: 3, Minor: 8}
			a, err := r.AddObject(orbit.NewEntityOn("a", raw, 0, nil))
			Expect(err).NotTo(HaveOccurred())
			e, _ := r.Entity(a)
			Expect(e.Track()).To(Equal(orbit.MustTrack(8, 3)))
			Expect(e.InitialTrack()).To(Equal(orbit.MustTrack(8, 3)))
			Expect(r.Tracks()).To(Equal([]orbit.Track{orbit.MustTrack(8, 3)}))

			_, err = r.AddObject(orbit.NewEntityOn("b", orbit.Track{Major: -2, Minor: -2}, 0, nil))
			Expect(err).To(MatchError(orbit.ErrInvalidTrack))
			Expect(r.Len()).To(Equal(1))
		})

		It("fails on unknown ids", func() {
			Expect(r.MoveObject(42, orbit.MustTrack(1))).To(MatchError(orbit.ErrUnknownEntity))
			Expect(r.SetAngle(42, 1)).To(MatchError(orbit.ErrUnknownEntity))
			Expect(r.RemoveObject(42)).To(BeFalse())
		})

		It("orders entities by initial track, angle and name", func() {
			c := mustAdd(r, "c", 10, 2)
			b := mustAdd(r, "b", 0, 2)
			a := mustAdd(r, "a", 0, 2)
			d := mustAdd(r, "d", 90, 1)
			Expect(r.Entities()).To(Equal([]orbit.ID{d, a, b, c}))
		})

		It("returns copies", func() {
			a := mustAdd(r, "a", 0, 1)
			e, ok := r.Entity(a)
			Expect(ok).To(BeTrue())
			e.SetAngle(45)
			got, _ := r.Entity(a)
			Expect(got.Angle()).To(Equal(0.0))
		})

		It("deep-copies payloads", func() {
			e, _ := orbit.NewEntity("p", 0, &tagged{N: 1}, 1)
			id, err := r.AddObject(e)
			Expect(err).NotTo(HaveOccurred())
			cp, _ := r.Entity(id)
			cp.Payload().(*tagged).N = 9
			again, _ := r.Entity(id)
			Expect(again.Payload().(*tagged).N).To(Equal(1))
		})
	})

	Describe("center", func() {
		It("returns the previous center", func() {
			sun := orbit.NewEntityOn("sun", orbit.MustTrack(0), 0, nil)
			Expect(r.ChangeCenter(sun)).To(BeNil())
			prev := r.ChangeCenter(orbit.NewEntityOn("sun2", orbit.MustTrack(0), 0, nil))
			Expect(prev.Name()).To(Equal("sun"))
		})

		It("is a no-op for the same identity", func() {
			r.ChangeCenter(orbit.NewEntityOn("sun", orbit.MustTrack(0), 0, nil))
			_, id := r.Center()
			prev := r.ChangeCenter(orbit.NewEntityOn("sun", orbit.MustTrack(0), 0, nil))
			Expect(prev.Name()).To(Equal("sun"))
			_, again := r.Center()
			Expect(again).To(Equal(id))
		})

		It("drops the old center's relations", func() {
			r.ChangeCenter(orbit.NewEntityOn("me", orbit.MustTrack(0), 0, nil))
			_, c := r.Center()
			a := mustAdd(r, "a", 0, 1)
			Expect(r.SetRelation(c, a, 1)).To(Succeed())
			r.ChangeCenter(orbit.NewEntityOn("you", orbit.MustTrack(0), 0, nil))
			Expect(r.Graph().HasVertex(c)).To(BeFalse())
			Expect(r.Graph().Vertices()).To(Equal([]orbit.ID{a}))
		})
	})

	Describe("relations", func() {
		It("rejects self loops and strangers", func() {
			a := mustAdd(r, "a", 0, 1)
			Expect(r.SetRelation(a, a, 1)).To(MatchError(orbit.ErrSelfLoop))
			Expect(r.SetRelation(a, 99, 1)).To(MatchError(orbit.ErrUnknownEntity))
			Expect(r.Graph().Order()).To(Equal(0))
		})

		It("removes relations with the entity", func() {
			a := mustAdd(r, "a", 0, 1)
			b := mustAdd(r, "b", 0, 1)
			Expect(r.SetRelation(a, b, 0.5)).To(Succeed())
			Expect(r.RemoveObject(b)).To(BeTrue())
			Expect(r.Graph().Targets(a)).To(BeEmpty())
		})
	})

	Describe("query", func() {
		It("checks the center first and trims input", func() {
			r.ChangeCenter(orbit.NewEntityOn("earth", orbit.MustTrack(0), 0, nil))
			mustAdd(r, "earth", 0, 3)
			id, ok := r.Query("  earth ")
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(r.CenterID()))
		})

		It("suggests close names", func() {
			mustAdd(r, "mars", 0, 1)
			mustAdd(r, "venus", 0, 2)
			mustAdd(r, "jupiter", 0, 3)
			_, ok := r.Query("marz")
			Expect(ok).To(BeFalse())
			Expect(r.Suggest("marz", 1)).To(Equal([]string{"mars"}))
			Expect(r.Suggest("x", 10)).To(HaveLen(3))
		})
	})

	Describe("snapshots", func() {
		It("restores tracks verbatim", func() {
			a := mustAdd(r, "a", 0, 1)
			b := mustAdd(r, "b", 0, 2)
			Expect(r.SetRelation(a, b, 1)).To(Succeed())
			from, to := orbit.MustTrack(1), orbit.MustTrack(2)
			snap := r.SnapshotTracks(from, to)

			Expect(r.MoveObject(a, to)).To(Succeed())
			Expect(r.RemoveObject(b)).To(BeTrue())
			r.Restore(snap)

			Expect(r.ObjectsOnTrack(from)).To(Equal([]orbit.ID{a}))
			Expect(r.ObjectsOnTrack(to)).To(Equal([]orbit.ID{b}))
			Expect(r.Graph().Weight(a, b)).To(Equal(float32(1)))
		})

		It("clones independently", func() {
			a := mustAdd(r, "a", 0, 1)
			c := r.Clone()
			Expect(c.MoveObject(a, orbit.MustTrack(5))).To(Succeed())
			e, _ := r.Entity(a)
			Expect(e.Track()).To(Equal(orbit.MustTrack(1)))
		})
	})

	Describe("representation checks", func() {
		It("panics with the domain rule", func() {
			r = orbit.NewRegistry(orbit.WithChecker(orbit.CheckFunc(func(*orbit.Registry) error {
				return errors.New("always broken")
			})))
			Expect(r.CheckRepresentation).To(PanicWith(BeAssignableToTypeOf(&orbit.RepresentationViolation{})))
			r = orbit.NewRegistry()
		})
	})
})
