package pawdialog

import (
	"context"
	"sync"
)

// TaskHandle refers to a deferred task
type TaskHandle interface {
	// Cancel prevents the task from running if it has not run yet
	Cancel()
	// Detach releases the handle; the task still runs (fire-and-forget)
	Detach()
}

// Scheduler is a single-threaded cooperative task queue. Defer never runs fn
// inline: fn runs on a later turn of the same loop.
type Scheduler interface {
	Defer(fn func()) TaskHandle
}

type loopTask struct {
	id        int
	fn        func()
	cancelled bool
	loop      *RunLoop
}

func (t *loopTask) Cancel() {
	t.loop.mu.Lock()
	defer t.loop.mu.Unlock()
	t.cancelled = true
}

func (t *loopTask) Detach() {}

// RunLoop is a portable Scheduler. Turns are driven by Turn or Run; Defer may
// be called from any goroutine.
type RunLoop struct {
	mu     sync.Mutex
	queue  []*loopTask
	nextID int
	wake   chan struct{}
	logger *Logger
}

// NewRunLoop creates an idle run loop
func NewRunLoop(logger *Logger) *RunLoop {
	return &RunLoop{
		wake:   make(chan struct{}, 1),
		logger: logger,
	}
}

// Defer queues fn for a later turn
func (l *RunLoop) Defer(fn func()) TaskHandle {
	l.mu.Lock()
	l.nextID++
	task := &loopTask{id: l.nextID, fn: fn, loop: l}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	l.logger.TraceCat(CatLoop, "Deferred task %d", task.id)

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return task
}

// Pending returns the number of queued tasks, including cancelled ones
func (l *RunLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Turn runs the tasks that were queued when the turn began. Tasks deferred
// while the turn runs wait for the next turn. Returns the number of tasks run.
func (l *RunLoop) Turn() int {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	ran := 0
	for _, task := range batch {
		l.mu.Lock()
		cancelled := task.cancelled
		l.mu.Unlock()
		if cancelled {
			l.logger.TraceCat(CatLoop, "Skipping cancelled task %d", task.id)
			continue
		}
		task.fn()
		ran++
	}
	return ran
}

// Drain runs turns until the queue is empty, up to maxTurns turns
func (l *RunLoop) Drain(maxTurns int) int {
	total := 0
	for i := 0; i < maxTurns && l.Pending() > 0; i++ {
		total += l.Turn()
	}
	return total
}

// Run pumps turns on the calling goroutine until ctx is done
func (l *RunLoop) Run(ctx context.Context) error {
	l.logger.DebugCat(CatLoop, "Run loop started")
	defer l.logger.DebugCat(CatLoop, "Run loop stopped")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.Pending() > 0 {
			l.Turn()
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
