package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compactor/internal/compact"
	"compactor/internal/recipe"
	"compactor/internal/store"
)

func seedHistory(t *testing.T) *store.History {
	t.Helper()
	h, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	tasks := []compact.Task{
		{Info: recipe.PatternInfo{Name: "minecraft:stone", Label: "Stone Block"}, Quantity: 3, SlotsSaved: 24},
		{Info: recipe.PatternInfo{Name: "minecraft:iron_block", Label: "Iron Block"}, Quantity: 1, SlotsSaved: 8},
	}
	started := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, h.Record("run-1", started, tasks, 32))
	return h
}

func TestShowHistory_Summaries(t *testing.T) {
	h := seedHistory(t)

	var out strings.Builder
	require.NoError(t, showHistory(h, 10, "", &out))
	assert.Contains(t, out.String(), "run-1")
	assert.Contains(t, out.String(), "2 task(s)")
	assert.Contains(t, out.String(), "32 slots")
}

func TestShowHistory_RunDetail(t *testing.T) {
	h := seedHistory(t)

	var out strings.Builder
	require.NoError(t, showHistory(h, 10, "run-1", &out))
	assert.Contains(t, out.String(), "Stone Block")
	assert.Contains(t, out.String(), "Iron Block")
	assert.Contains(t, out.String(), "3x")
	assert.Contains(t, out.String(), "+24 slots")
}

func TestShowHistory_UnknownRun(t *testing.T) {
	h := seedHistory(t)

	var out strings.Builder
	require.NoError(t, showHistory(h, 10, "run-missing", &out))
	assert.Contains(t, out.String(), "No tasks recorded for run run-missing")
}

func TestShowHistory_Empty(t *testing.T) {
	h, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	var out strings.Builder
	require.NoError(t, showHistory(h, 10, "", &out))
	assert.Contains(t, out.String(), "No runs recorded.")
}
