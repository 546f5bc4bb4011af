package compact

import (
	"context"

	"compactor/internal/service"
)

// Execute submits one scheduling request per task, in order. Submission is
// fail-fast: the first failure aborts the remainder of the batch and
// nothing already submitted is rolled back. The returned total counts the
// slots saved by tasks actually submitted, including any submitted before
// a mid-batch failure.
func Execute(ctx context.Context, inv service.Inventory, tasks []Task) (int, error) {
	saved := 0
	for _, t := range tasks {
		if err := inv.ScheduleTask(ctx, t.Info, t.Quantity); err != nil {
			return saved, &service.ScheduleError{Info: t.Info, Quantity: t.Quantity, Err: err}
		}
		saved += t.SlotsSaved
	}
	return saved, nil
}
