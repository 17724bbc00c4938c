package pairs

import "time"

// Handle refers to a scheduled task. The zero Handle refers to nothing.
type Handle struct {
	id uint64
}

// Valid reports whether the handle was returned by a scheduler.
func (h Handle) Valid() bool {
	return h.id != 0
}

type task struct {
	id    uint64
	due   time.Duration
	every time.Duration // 0 for one-shot tasks
	fn    func()
}

// Scheduler runs callbacks against a virtual clock moved forward by Advance.
// Nothing fires between calls to Advance, so game state only changes on the
// caller's goroutine. A cancelled task never fires.
type Scheduler struct {
	now    time.Duration
	nextID uint64
	tasks  map[uint64]*task
}

// NewScheduler creates an empty scheduler at virtual time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[uint64]*task)}
}

// Now returns the virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of live tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// After schedules fn to run once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	return s.add(max(d, 0), 0, fn)
}

// Every schedules fn to run every d, first at now+d.
// A non-positive interval schedules nothing.
func (s *Scheduler) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		return Handle{}
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(delay, every time.Duration, fn func()) Handle {
	s.nextID++
	s.tasks[s.nextID] = &task{
		id:    s.nextID,
		due:   s.now + delay,
		every: every,
		fn:    fn,
	}
	return Handle{id: s.nextID}
}

// Cancel stops a task. Returns false if it already ran or was cancelled.
func (s *Scheduler) Cancel(h Handle) bool {
	if _, ok := s.tasks[h.id]; !ok {
		return false
	}
	delete(s.tasks, h.id)
	return true
}

// Active reports whether the task is still scheduled.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.tasks[h.id]
	return ok
}

// CancelAll stops every task.
func (s *Scheduler) CancelAll() {
	clear(s.tasks)
}

// Advance moves the clock forward by dt, running due tasks in time order.
// Ties run in scheduling order. Tasks may schedule or cancel other tasks.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now + max(dt, 0)
	for {
		next := s.earliest(target)
		if next == nil {
			break
		}
		s.now = next.due
		if next.every > 0 {
			next.due += next.every
		} else {
			delete(s.tasks, next.id)
		}
		next.fn()
	}
	s.now = target
}

func (s *Scheduler) earliest(limit time.Duration) *task {
	var best *task
	for _, t := range s.tasks {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}
