package compact

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compactor/internal/recipe"
	"compactor/internal/service"
)

// seedCatalog fills a Memory with two compaction recipes, one ordinary
// recipe, and one stale identifier with no resolvable definition.
func seedCatalog(t *testing.T) (*service.Memory, []recipe.PatternInfo) {
	t.Helper()
	m := service.NewMemory()

	stone := recipe.PatternInfo{Name: "minecraft:stone", Label: "Stone Block", Damage: 0}
	iron := recipe.PatternInfo{Name: "minecraft:iron_block", Label: "Iron Block", Damage: 0}
	sword := recipe.PatternInfo{Name: "minecraft:iron_sword", Label: "Iron Sword", Damage: 0}
	stale := recipe.PatternInfo{Name: "mod:removed", Label: "Removed", Damage: 0}

	m.AddPattern(stone, uniformDef(recipe.Slot{stack("minecraft:stone", 0, 1)}, 9))
	m.AddPattern(sword, recipe.Definition{Inputs: []recipe.Slot{
		{stack("minecraft:iron_ingot", 0, 1)},
		{stack("minecraft:iron_ingot", 0, 1)},
		{stack("minecraft:stick", 0, 1)},
	}})
	m.AddPattern(iron, uniformDef(recipe.Slot{stack("minecraft:iron_ingot", 0, 1)}, 9))
	m.AddIdentifier(stale)

	return m, []recipe.PatternInfo{stone, iron}
}

func TestListCandidates_FullScan(t *testing.T) {
	m, want := seedCatalog(t)

	patterns, err := ListCandidates(context.Background(), m, nil)
	require.NoError(t, err)

	got := GenerateWhitelist(patterns)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidate mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, m.ListCalls)
}

func TestListCandidates_WhitelistSkipsEnumeration(t *testing.T) {
	m, infos := seedCatalog(t)

	patterns, err := ListCandidates(context.Background(), m, infos[:1])
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, infos[0], patterns[0].Info)
	assert.Zero(t, m.ListCalls, "whitelist runs must not enumerate the catalog")
}

func TestListCandidates_SkipsStaleWhitelistEntries(t *testing.T) {
	m, infos := seedCatalog(t)
	whitelist := append([]recipe.PatternInfo{{Name: "mod:gone", Label: "Gone"}}, infos...)

	patterns, err := ListCandidates(context.Background(), m, whitelist)
	require.NoError(t, err)
	assert.Equal(t, infos, GenerateWhitelist(patterns))
}

// A generated whitelist fed back into the catalog reproduces the same
// pattern set as the unrestricted scan.
func TestGenerateWhitelist_RoundTrip(t *testing.T) {
	m, _ := seedCatalog(t)
	ctx := context.Background()

	full, err := ListCandidates(ctx, m, nil)
	require.NoError(t, err)

	restricted, err := ListCandidates(ctx, m, GenerateWhitelist(full))
	require.NoError(t, err)

	if diff := cmp.Diff(GenerateWhitelist(full), GenerateWhitelist(restricted)); diff != "" {
		t.Errorf("round-trip mismatch (-full +restricted):\n%s", diff)
	}
}
