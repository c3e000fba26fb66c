package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	worker "github.com/okian/rollcall/internal/adapters/worker"
	logging "github.com/okian/rollcall/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestPool(t *testing.T) {
	convey.Convey("Given a pool of workers", t, func() {
		ctx := context.Background()

		convey.Convey("When no logger is configured anywhere", func() {
			var pool *worker.Pool[int, int]
			convey.So(func() {
				pool = worker.NewPool(2, func(_ context.Context, n int) (int, error) { return n + 1, nil })
			}, convey.ShouldNotPanic)

			results, err := pool.Run(ctx, []int{1, 2})

			convey.Convey("Then the pool still runs", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(results[1].Value, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When jobs finish out of order", func() {
			pool := worker.NewPool(4, func(_ context.Context, n int) (int, error) {
				time.Sleep(time.Duration(10-n) * time.Millisecond)
				return n * n, nil
			}, worker.WithLogger(logging.Nop()))

			results, err := pool.Run(ctx, []int{1, 2, 3, 4, 5, 6, 7, 8, 9})

			convey.Convey("Then results keep submission order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(results), convey.ShouldEqual, 9)
				for i, r := range results {
					convey.So(r.Index, convey.ShouldEqual, i)
					convey.So(r.Value, convey.ShouldEqual, (i+1)*(i+1))
					convey.So(r.Err, convey.ShouldBeNil)
				}
			})
		})

		convey.Convey("When one job fails", func() {
			boom := errors.New("boom")
			pool := worker.NewPool(2, func(_ context.Context, s string) (string, error) {
				if s == "bad" {
					return "", boom
				}
				return s + "!", nil
			}, worker.WithName("strings"))

			results, err := pool.Run(ctx, []string{"a", "bad", "c"})

			convey.Convey("Then only that result carries the error", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(results[0].Value, convey.ShouldEqual, "a!")
				convey.So(errors.Is(results[1].Err, boom), convey.ShouldBeTrue)
				convey.So(results[2].Value, convey.ShouldEqual, "c!")
			})
		})

		convey.Convey("When running many jobs", func() {
			var running, peak atomic.Int64
			pool := worker.NewPool(3, func(_ context.Context, _ int) (struct{}, error) {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				running.Add(-1)
				return struct{}{}, nil
			}, worker.WithQueueSize(1))

			_, err := pool.Run(ctx, make([]int, 30))

			convey.Convey("Then no more than the pool size run at once", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(peak.Load(), convey.ShouldBeLessThanOrEqualTo, 3)
				convey.So(pool.Size(), convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When given no items", func() {
			results, err := worker.NewPool(0, func(context.Context, int) (int, error) { return 0, nil }).Run(ctx, nil)
			convey.So(err, convey.ShouldBeNil)
			convey.So(results, convey.ShouldBeEmpty)
		})

		convey.Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			pool := worker.NewPool(2, func(context.Context, int) (int, error) { return 1, nil })

			results, err := pool.Run(cctx, []int{1, 2, 3})

			convey.Convey("Then the run stops and skipped jobs report the cause", func() {
				convey.So(errors.Is(err, worker.ErrStopped), convey.ShouldBeTrue)
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
				convey.So(len(results), convey.ShouldEqual, 3)
			})
		})
	})
}

func TestQueue(t *testing.T) {
	convey.Convey("Given a bounded queue", t, func() {
		q := worker.NewQueue[int](2)
		ctx := context.Background()

		convey.So(q.Enqueue(ctx, 1), convey.ShouldBeNil)
		convey.So(q.Enqueue(ctx, 2), convey.ShouldBeNil)
		convey.So(q.Len(), convey.ShouldEqual, 2)

		convey.Convey("When full, enqueue waits for the context", func() {
			tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
			defer cancel()
			err := q.Enqueue(tctx, 3)
			convey.So(errors.Is(err, context.DeadlineExceeded), convey.ShouldBeTrue)
		})

		convey.Convey("When closed, items drain and enqueue fails", func() {
			q.Close()
			q.Close()
			convey.So(q.IsClosed(), convey.ShouldBeTrue)
			convey.So(errors.Is(q.Enqueue(ctx, 4), worker.ErrClosed), convey.ShouldBeTrue)

			var got []int
			for v := range q.Dequeue() {
				got = append(got, v)
			}
			convey.So(got, convey.ShouldResemble, []int{1, 2})
		})
	})
}
