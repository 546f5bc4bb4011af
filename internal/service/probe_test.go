package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compactor/internal/recipe"
)

// partialHandle exposes only part of the required capability set.
type partialHandle struct{}

func (partialHandle) ListPatterns(ctx context.Context) ([]recipe.PatternInfo, error) {
	return nil, nil
}

func (partialHandle) Connected(ctx context.Context) bool {
	return true
}

func TestSelect_FirstConformingHandle(t *testing.T) {
	first := NewMemory()
	second := NewMemory()

	inv, err := Select(partialHandle{}, first, second)
	require.NoError(t, err)
	assert.Same(t, first, inv)
}

func TestSelect_RejectsPartialHandles(t *testing.T) {
	_, err := Select(partialHandle{})
	assert.ErrorIs(t, err, ErrNoService)
}

func TestSelect_NoCandidates(t *testing.T) {
	_, err := Select()
	assert.ErrorIs(t, err, ErrNoService)
}
