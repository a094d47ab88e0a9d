package slides3d

import "sort"

// TaskID identifies a task queued on a Scheduler.
type TaskID uint64

type scheduledTask struct {
	id TaskID
	at float64
	fn func()
}

// Scheduler runs one-shot deferred tasks against the frame clock, so they fire on the frame thread, in between updates.
// Tasks can be cancelled until they've run.
type Scheduler struct {
	now    float64
	nextID TaskID
	tasks  []scheduledTask
}

// NewScheduler returns a new, empty Scheduler with its clock at 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the time of the last Update.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After queues fn to run on the first Update at least delay seconds from now.
func (s *Scheduler) After(delay float64, fn func()) TaskID {
	s.nextID++
	s.tasks = append(s.tasks, scheduledTask{id: s.nextID, at: s.now + delay, fn: fn})
	return s.nextID
}

// Cancel removes a queued task, returning false if it already ran or was never queued.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns if the task is still queued.
func (s *Scheduler) Pending(id TaskID) bool {
	for _, t := range s.tasks {
		if t.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of queued tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Update advances the clock to elapsed and runs the tasks that are due, earliest first. Tasks queued while running are left for
// later Updates.
func (s *Scheduler) Update(elapsed float64) {

	s.now = elapsed

	due := []scheduledTask{}
	remaining := s.tasks[:0]

	for _, t := range s.tasks {
		if t.at <= elapsed {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}

	s.tasks = remaining

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })

	for _, t := range due {
		t.fn()
	}

}
