package region

import (
	"context"

	"github.com/google/uuid"
)

// RebuildTask recompiles the geometry of one cell. It is single use and is
// cancelled cooperatively: the running rebuild checks its context before each
// object and abandons all partial work once cancelled.
type RebuildTask struct {
	Id     uuid.UUID
	cell   *Cell
	ctx    context.Context
	cancel context.CancelFunc

	ran       bool
	completed bool
}

func newRebuildTask(cell *Cell) *RebuildTask {
	ctx, cancel := context.WithCancel(context.Background())
	return &RebuildTask{
		Id:     uuid.New(),
		cell:   cell,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (t *RebuildTask) Cancel() {
	t.cancel()
}

// Cancelled reports whether the task was superseded before it completed.
func (t *RebuildTask) Cancelled() bool {
	return !t.completed && t.ctx.Err() != nil
}

// Completed reports whether the task ran to the end and committed its results.
func (t *RebuildTask) Completed() bool {
	return t.completed
}

func (t *RebuildTask) Run() error {
	if t.ran {
		return nil
	}
	t.ran = true
	t.completed = t.cell.rebuild(t.ctx, t)
	t.cancel()
	return nil
}
