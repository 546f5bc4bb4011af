// Package service defines the boundary to the remote crafting/inventory
// service: the capability set the compaction pipeline needs, probing for a
// handle that provides it, and the HTTP bridge adapter.
package service

import (
	"context"

	"compactor/internal/item"
	"compactor/internal/recipe"
)

// Inventory is the full capability set the pipeline requires from a remote
// handle. Every call blocks until the service answers; nothing is cached
// between calls. Absent results ("this recipe/item does not exist") come
// back through the explicit bool, never as a sentinel value.
type Inventory interface {
	// ListPatterns returns every recipe identifier the service knows.
	ListPatterns(ctx context.Context) ([]recipe.PatternInfo, error)

	// GetPattern resolves an identifier to its full definition. The bool
	// is false when the service no longer knows the recipe.
	GetPattern(ctx context.Context, info recipe.PatternInfo) (recipe.Definition, bool, error)

	// GetItem reports current stock of one item type. The bool is false
	// when the service holds none and has never seen the item.
	GetItem(ctx context.Context, ref item.Ref) (item.Stack, bool, error)

	// ScheduleTask submits one crafting request for quantity executions
	// of the identified recipe.
	ScheduleTask(ctx context.Context, info recipe.PatternInfo, quantity int) error

	// Connected reports whether the handle currently has a live link to
	// the crafting service.
	Connected(ctx context.Context) bool
}
