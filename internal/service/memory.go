package service

import (
	"context"

	"compactor/internal/item"
	"compactor/internal/recipe"
)

// Memory is an in-memory Inventory. It is the shared test double for the
// pipeline packages: patterns and stock are seeded directly, and every
// accepted ScheduleTask call is recorded in Scheduled.
type Memory struct {
	patterns  []recipe.PatternInfo
	defs      map[recipe.PatternInfo]recipe.Definition
	stock     map[item.Ref]int
	offline   bool
	schedErr  error
	failAfter int

	// Scheduled holds every submission accepted so far, in order.
	Scheduled []ScheduledTask

	// ListCalls counts ListPatterns invocations.
	ListCalls int
}

// ScheduledTask is one recorded ScheduleTask submission.
type ScheduledTask struct {
	Info     recipe.PatternInfo
	Quantity int
}

// NewMemory returns an empty, connected in-memory inventory.
func NewMemory() *Memory {
	return &Memory{
		defs:  make(map[recipe.PatternInfo]recipe.Definition),
		stock: make(map[item.Ref]int),
	}
}

// AddPattern registers an identifier and its definition.
func (m *Memory) AddPattern(info recipe.PatternInfo, def recipe.Definition) {
	m.patterns = append(m.patterns, info)
	m.defs[info] = def
}

// AddIdentifier registers an identifier with no resolvable definition,
// simulating a stale or deleted recipe.
func (m *Memory) AddIdentifier(info recipe.PatternInfo) {
	m.patterns = append(m.patterns, info)
}

// SetStock sets the current stock of one item type.
func (m *Memory) SetStock(ref item.Ref, size int) {
	m.stock[ref] = size
}

// SetOffline controls the Connected answer.
func (m *Memory) SetOffline(offline bool) {
	m.offline = offline
}

// FailSchedules makes every ScheduleTask call fail with err.
func (m *Memory) FailSchedules(err error) {
	m.FailSchedulesAfter(0, err)
}

// FailSchedulesAfter accepts the first n submissions and fails the rest
// with err.
func (m *Memory) FailSchedulesAfter(n int, err error) {
	m.failAfter = n
	m.schedErr = err
}

func (m *Memory) ListPatterns(ctx context.Context) ([]recipe.PatternInfo, error) {
	m.ListCalls++
	out := make([]recipe.PatternInfo, len(m.patterns))
	copy(out, m.patterns)
	return out, nil
}

func (m *Memory) GetPattern(ctx context.Context, info recipe.PatternInfo) (recipe.Definition, bool, error) {
	def, ok := m.defs[info]
	return def, ok, nil
}

func (m *Memory) GetItem(ctx context.Context, ref item.Ref) (item.Stack, bool, error) {
	size, ok := m.stock[ref]
	if !ok {
		return item.Stack{}, false, nil
	}
	return item.Stack{Name: ref.Name, Damage: ref.Damage, Size: size}, true, nil
}

func (m *Memory) ScheduleTask(ctx context.Context, info recipe.PatternInfo, quantity int) error {
	if m.schedErr != nil && len(m.Scheduled) >= m.failAfter {
		return m.schedErr
	}
	m.Scheduled = append(m.Scheduled, ScheduledTask{Info: info, Quantity: quantity})
	return nil
}

func (m *Memory) Connected(ctx context.Context) bool {
	return !m.offline
}
