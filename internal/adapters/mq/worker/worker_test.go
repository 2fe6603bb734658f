package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	queue "github.com/nonianfoix/sweet-sixteen/internal/adapters/mq/queue"
	worker "github.com/nonianfoix/sweet-sixteen/internal/adapters/mq/worker"
	logging "github.com/nonianfoix/sweet-sixteen/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockQueue struct {
	jobChan    chan queue.Job
	closeError error
	closeOnce  sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		jobChan: make(chan queue.Job, 10),
	}
}

func (mq *mockQueue) Dequeue(ctx context.Context) <-chan queue.Job {
	return mq.jobChan
}

func (mq *mockQueue) Close() error {
	mq.closeOnce.Do(func() { close(mq.jobChan) })
	return mq.closeError
}

func (mq *mockQueue) addJob(job queue.Job) {
	mq.jobChan <- job
}

type mockRecomputer struct {
	recomputes map[string]int
	errors     map[string]error
	mu         sync.RWMutex
}

func newMockRecomputer() *mockRecomputer {
	return &mockRecomputer{
		recomputes: make(map[string]int),
		errors:     make(map[string]error),
	}
}

func (mr *mockRecomputer) Recompute(ctx context.Context, recruitID string, week int) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	if err, exists := mr.errors[recruitID]; exists {
		return err
	}
	mr.recomputes[recruitID] = week
	return nil
}

func (mr *mockRecomputer) setError(recruitID string, err error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.errors[recruitID] = err
}

func (mr *mockRecomputer) getRecompute(recruitID string) (int, bool) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	week, exists := mr.recomputes[recruitID]
	return week, exists
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new InMemoryWorker", t, func() {
		// Initialize logging for tests
		_ = logging.Init()

		q := newMockQueue()
		recomputer := newMockRecomputer()

		convey.Convey("When creating a worker with default options", func() {
			w := worker.NewInMemoryWorker(q, recomputer)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When creating a worker with custom options", func() {
			w := worker.NewInMemoryWorker(
				q, recomputer,
				worker.WithName("test-worker"),
			)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a worker", func() {
			w := worker.NewInMemoryWorker(q, recomputer)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go w.Run(ctx)

			// Give worker time to start
			time.Sleep(10 * time.Millisecond)

			convey.Convey("And when processing jobs", func() {
				q.addJob(queue.Job{RecruitID: "recruit-1", Week: 7})

				// Give worker time to process
				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then it should recompute the recruit", func() {
					week, recomputed := recomputer.getRecompute("recruit-1")
					convey.So(recomputed, convey.ShouldBeTrue)
					convey.So(week, convey.ShouldEqual, 7)
				})
			})

			convey.Convey("And when the recompute fails", func() {
				recomputer.setError("recruit-2", errors.New("recompute error"))

				q.addJob(queue.Job{RecruitID: "recruit-2", Week: 3})

				// Give worker time to process
				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then the recruit is not recorded as recomputed", func() {
					_, recomputed := recomputer.getRecompute("recruit-2")
					convey.So(recomputed, convey.ShouldBeFalse)
				})
			})

			convey.Convey("And when shutting down", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer shutdownCancel()

				err := w.Shutdown(shutdownCtx)

				convey.Convey("Then it should shutdown gracefully", func() {
					convey.So(err, convey.ShouldBeNil)
				})
			})
		})

		convey.Convey("When the queue channel is closed", func() {
			w := worker.NewInMemoryWorker(q, recomputer)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go w.Run(ctx)
			time.Sleep(10 * time.Millisecond)

			_ = q.Close()

			convey.Convey("Then the worker stops and shutdown returns promptly", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer shutdownCancel()
				convey.So(w.Shutdown(shutdownCtx), convey.ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a worker pool", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		recomputer := newMockRecomputer()

		convey.Convey("When creating a pool with an explicit size", func() {
			pool := worker.NewPool(3, q, recomputer)

			convey.Convey("Then it has that many workers", func() {
				convey.So(pool.Size(), convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When creating a pool with a non-positive size", func() {
			pool := worker.NewPool(0, q, recomputer)

			convey.Convey("Then it falls back to a CPU-derived size", func() {
				convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When the pool processes jobs", func() {
			pool := worker.NewPool(4, q, recomputer)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pool.Start(ctx)
			time.Sleep(10 * time.Millisecond)

			for _, id := range []string{"recruit-a", "recruit-b", "recruit-c"} {
				convey.So(q.Enqueue(ctx, queue.Job{RecruitID: id, Week: 5}), convey.ShouldBeTrue)
			}

			time.Sleep(100 * time.Millisecond)

			convey.Convey("Then every recruit is recomputed", func() {
				for _, id := range []string{"recruit-a", "recruit-b", "recruit-c"} {
					week, recomputed := recomputer.getRecompute(id)
					convey.So(recomputed, convey.ShouldBeTrue)
					convey.So(week, convey.ShouldEqual, 5)
				}
			})

			convey.Convey("And shutdown closes the queue and drains the workers", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer shutdownCancel()

				convey.So(pool.Shutdown(shutdownCtx), convey.ShouldBeNil)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
			})
		})
	})
}
