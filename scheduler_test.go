package slides3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsDueTasksInOrder(t *testing.T) {

	s := NewScheduler()

	order := []string{}
	s.After(0.5, func() { order = append(order, "b") })
	s.After(0.2, func() { order = append(order, "a") })
	s.After(2, func() { order = append(order, "c") })

	s.Update(0.1)
	assert.Empty(t, order)

	s.Update(1)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, s.Len())

	s.Update(2)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, s.Len())

}

func TestSchedulerDelayIsRelativeToNow(t *testing.T) {

	s := NewScheduler()
	s.Update(10)

	ran := false
	s.After(0.8, func() { ran = true })

	s.Update(10.5)
	assert.False(t, ran)

	s.Update(10.81)
	assert.True(t, ran)

}

func TestSchedulerCancel(t *testing.T) {

	s := NewScheduler()

	ran := false
	id := s.After(1, func() { ran = true })

	assert.True(t, s.Pending(id))
	assert.True(t, s.Cancel(id))
	assert.False(t, s.Pending(id))
	assert.False(t, s.Cancel(id))

	s.Update(5)
	assert.False(t, ran)

}

func TestSchedulerTasksQueuedWhileRunning(t *testing.T) {

	s := NewScheduler()

	count := 0
	s.After(0, func() {
		count++
		s.After(0, func() { count++ })
	})

	s.Update(1)
	assert.Equal(t, 1, count)

	s.Update(1)
	assert.Equal(t, 2, count)

}
