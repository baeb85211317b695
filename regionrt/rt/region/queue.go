package region

// Task is a unit of deferred work drained by Pipeline.RunPendingTasks.
type Task interface {
	Run() error
}

// taskQueue is a FIFO of tasks.
type taskQueue struct {
	items []Task
	head  int
}

func (q *taskQueue) Push(t Task) {
	q.items = append(q.items, t)
}

func (q *taskQueue) Pop() (Task, bool) {
	if q.head >= len(q.items) {
		return nil, false
	}
	t := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return t, true
}

func (q *taskQueue) Len() int {
	return len(q.items) - q.head
}

func (q *taskQueue) Clear() {
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
}
