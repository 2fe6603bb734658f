package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	cache "github.com/nonianfoix/sweet-sixteen/internal/adapters/cache"
	"github.com/nonianfoix/sweet-sixteen/internal/domain/model"
	"github.com/nonianfoix/sweet-sixteen/internal/domain/shortlist"
	. "github.com/smartystreets/goconvey/convey"
)

func resultFor(leader string, share float64) shortlist.Result {
	return shortlist.Result{
		Shortlist: []model.RankedOffer{
			{
				OfferCandidate: model.OfferCandidate{Name: leader, Score: share},
				Share:          share,
				Tier:           model.TierLeader,
			},
		},
		Shares: map[string]float64{leader: share},
		Tiers:  map[string]model.Tier{leader: model.TierLeader},
	}
}

func TestInMemoryMemo(t *testing.T) {
	Convey("Given a new in-memory memo cache", t, func() {
		ctx := context.Background()

		Convey("When creating a cache with default options", func() {
			m := cache.NewInMemoryMemo()

			Convey("Then it should start empty", func() {
				So(m, ShouldNotBeNil)
				So(m.Size(), ShouldEqual, 0)
			})
		})

		Convey("When storing and retrieving results", func() {
			m := cache.NewInMemoryMemo()
			want := resultFor("Alpha U", 62.5)

			m.Put(ctx, "r-1|sig|4", want)

			Convey("Then the stored result is returned on a hit", func() {
				got, ok := m.Get(ctx, "r-1|sig|4")
				So(ok, ShouldBeTrue)
				So(got, ShouldResemble, want)
				So(m.Size(), ShouldEqual, 1)
			})

			Convey("Then a different key misses", func() {
				_, ok := m.Get(ctx, "r-2|sig|4")
				So(ok, ShouldBeFalse)
			})

			Convey("And putting the same key again overwrites in place", func() {
				next := resultFor("Beta State", 71.0)
				m.Put(ctx, "r-1|sig|4", next)

				got, ok := m.Get(ctx, "r-1|sig|4")
				So(ok, ShouldBeTrue)
				So(got, ShouldResemble, next)
				So(m.Size(), ShouldEqual, 1)
			})
		})

		Convey("When invalidating entries", func() {
			m := cache.NewInMemoryMemo()
			m.Put(ctx, "r-1|sig|4", resultFor("Alpha U", 62.5))
			So(m.Size(), ShouldEqual, 1)

			Convey("And the key exists", func() {
				m.Invalidate(ctx, "r-1|sig|4")

				Convey("Then it is removed", func() {
					So(m.Size(), ShouldEqual, 0)
					_, ok := m.Get(ctx, "r-1|sig|4")
					So(ok, ShouldBeFalse)
				})
			})

			Convey("And the key does not exist", func() {
				m.Invalidate(ctx, "nonexistent")

				Convey("Then the size is unchanged", func() {
					So(m.Size(), ShouldEqual, 1)
				})
			})
		})

		Convey("When the cache is bounded", func() {
			m := cache.NewInMemoryMemo(cache.WithMaxSize(3))

			for i := 1; i <= 3; i++ {
				m.Put(ctx, fmt.Sprintf("key-%d", i), resultFor("Alpha U", float64(i)))
			}
			So(m.Size(), ShouldEqual, 3)

			Convey("And a fourth entry arrives", func() {
				m.Put(ctx, "key-4", resultFor("Alpha U", 4))

				Convey("Then the oldest entry is evicted", func() {
					So(m.Size(), ShouldEqual, 3)

					_, ok := m.Get(ctx, "key-1")
					So(ok, ShouldBeFalse)

					for _, key := range []string{"key-2", "key-3", "key-4"} {
						_, ok := m.Get(ctx, key)
						So(ok, ShouldBeTrue)
					}
				})
			})
		})

		Convey("When the cache is unbounded", func() {
			m := cache.NewInMemoryMemo(cache.WithMaxSize(0))

			for i := 0; i < 500; i++ {
				m.Put(ctx, fmt.Sprintf("key-%d", i), resultFor("Alpha U", float64(i)))
			}

			Convey("Then nothing is evicted", func() {
				So(m.Size(), ShouldEqual, 500)
				_, ok := m.Get(ctx, "key-0")
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When accessed concurrently", func() {
			m := cache.NewInMemoryMemo(cache.WithMaxSize(100))

			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func(worker int) {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						key := fmt.Sprintf("w%d-key-%d", worker, j)
						m.Put(ctx, key, resultFor("Alpha U", float64(j)))
						m.Get(ctx, key)
						if j%5 == 0 {
							m.Invalidate(ctx, key)
						}
					}
				}(i)
			}
			wg.Wait()

			Convey("Then the cache stays within its bound", func() {
				So(m.Size(), ShouldBeLessThanOrEqualTo, 100)
			})
		})
	})
}
