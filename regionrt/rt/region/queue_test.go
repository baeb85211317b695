package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskQueue_FIFO(t *testing.T) {
	var q taskQueue
	var log []string
	for _, name := range []string{"a", "b", "c"} {
		q.Push(recordTask{name: name, log: &log})
	}
	assert.Equal(t, 3, q.Len())

	for q.Len() > 0 {
		task, ok := q.Pop()
		assert.True(t, ok)
		assert.NoError(t, task.Run())
	}
	assert.Equal(t, []string{"a", "b", "c"}, log)

	_, ok := q.Pop()
	assert.False(t, ok)

	q.Push(recordTask{name: "d", log: &log})
	q.Clear()
	assert.Zero(t, q.Len())
}
