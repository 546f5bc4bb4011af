package compact

import (
	"context"
	"fmt"

	"compactor/internal/item"
	"compactor/internal/recipe"
	"compactor/internal/service"
)

// Task is a planned scheduling request: execute the pattern Quantity
// times, reclaiming SlotsSaved storage slots.
type Task struct {
	Info       recipe.PatternInfo
	Quantity   int
	SlotsSaved int
}

// Plan computes how many times each pattern can currently be crafted from
// on-hand stock. Patterns with nothing affordable are dropped.
//
// Stock is summed across every distinct item type in the representative
// slot. In practice that slot holds a single repeated item, but the
// summation tolerates multi-stack representations of the same slot. An
// item the service cannot resolve counts as zero stock, never an error.
//
// The resulting quantities are best-effort estimates, not reservations:
// nothing locks the inventory between planning and scheduling.
func Plan(ctx context.Context, inv service.Inventory, patterns []Pattern) ([]Task, error) {
	var tasks []Task
	for _, p := range patterns {
		total := 0
		seen := make(map[item.Ref]bool, len(p.Inputs))
		for _, s := range p.Inputs {
			ref := s.Ref()
			if seen[ref] {
				continue
			}
			seen[ref] = true

			stock, ok, err := inv.GetItem(ctx, ref)
			if err != nil {
				return nil, fmt.Errorf("failed to query stock for %s: %w", ref, err)
			}
			if !ok {
				continue
			}
			total += stock.Size
		}

		canCraft := total / p.InputsPerOutput
		if canCraft <= 0 {
			continue
		}
		tasks = append(tasks, Task{
			Info:       p.Info,
			Quantity:   canCraft,
			SlotsSaved: canCraft * (p.InputsPerOutput - 1),
		})
	}
	return tasks, nil
}
