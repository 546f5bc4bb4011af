package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"compactor/internal/config"
	"compactor/internal/item"
	"compactor/internal/recipe"
	"compactor/internal/service"
)

func watchStack(name string, size int) item.Stack {
	return item.Stack{Name: name, Damage: 0, Size: size}
}

func compactionDef(name string) recipe.Definition {
	def := recipe.Definition{Inputs: make([]recipe.Slot, 9)}
	for i := range def.Inputs {
		def.Inputs[i] = recipe.Slot{watchStack(name, 1)}
	}
	return def
}

func TestIsConfigRewrite(t *testing.T) {
	path := filepath.Join("conf", "config.yaml")

	assert.True(t, isConfigRewrite(fsnotify.Event{Name: path, Op: fsnotify.Write}, path))
	assert.True(t, isConfigRewrite(fsnotify.Event{Name: path, Op: fsnotify.Create}, path))

	// Other files in the watched directory are ignored.
	other := filepath.Join("conf", "config.yaml.swp")
	assert.False(t, isConfigRewrite(fsnotify.Event{Name: other, Op: fsnotify.Write}, path))
	// So are non-rewrite operations on the config file itself.
	assert.False(t, isConfigRewrite(fsnotify.Event{Name: path, Op: fsnotify.Chmod}, path))
	assert.False(t, isConfigRewrite(fsnotify.Event{Name: path, Op: fsnotify.Remove}, path))
}

// A rewritten whitelist applies to the run after the reload.
func TestWatchReloadAppliesNewWhitelist(t *testing.T) {
	logger = zap.NewNop()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	stone := recipe.PatternInfo{Name: "minecraft:stone", Label: "Stone Block", Damage: 0}
	iron := recipe.PatternInfo{Name: "minecraft:iron_block", Label: "Iron Block", Damage: 0}

	m := service.NewMemory()
	m.AddPattern(stone, compactionDef("minecraft:stone"))
	m.AddPattern(iron, compactionDef("minecraft:iron_ingot"))
	m.SetStock(item.Ref{Name: "minecraft:stone", Damage: 0}, 27)
	m.SetStock(item.Ref{Name: "minecraft:iron_ingot", Damage: 0}, 18)

	cfg := config.DefaultConfig()
	cfg.History.Path = filepath.Join(dir, "history.db")
	cfg.SetWhitelist([]recipe.PatternInfo{stone})
	require.NoError(t, cfg.Save(path))

	current, err := config.Load(path, true)
	require.NoError(t, err)

	require.NoError(t, craftOnce(ctx, current, m))
	require.Len(t, m.Scheduled, 1)
	assert.Equal(t, stone, m.Scheduled[0].Info)

	// Rewrite the whitelist on disk and feed the watcher event through the
	// reload decision.
	cfg.SetWhitelist([]recipe.PatternInfo{iron})
	require.NoError(t, cfg.Save(path))

	ev := fsnotify.Event{Name: path, Op: fsnotify.Write}
	require.True(t, isConfigRewrite(ev, path))
	current = reloadConfig(path, current)
	require.Len(t, current.Whitelist, 1)
	assert.Equal(t, "minecraft:iron_block", current.Whitelist[0].Name)

	require.NoError(t, craftOnce(ctx, current, m))
	require.Len(t, m.Scheduled, 2)
	assert.Equal(t, iron, m.Scheduled[1].Info)
	assert.Equal(t, 2, m.Scheduled[1].Quantity)
}

func TestReloadConfig_KeepsPreviousOnBadFile(t *testing.T) {
	logger = zap.NewNop()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := config.DefaultConfig()
	cfg.SetWhitelist([]recipe.PatternInfo{{Name: "minecraft:stone", Label: "Stone Block"}})
	require.NoError(t, cfg.Save(path))

	current, err := config.Load(path, true)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("whitelist: [broken"), 0644))
	got := reloadConfig(path, current)
	assert.Same(t, current, got)
	assert.Len(t, got.Whitelist, 1)
}
