package compact

import (
	"context"
	"fmt"

	"compactor/internal/recipe"
	"compactor/internal/service"
)

// ListCandidates fetches recipe definitions from the service and returns
// the ones that classify as compaction patterns, in identifier order.
//
// When whitelist is empty the full identifier set is enumerated from the
// service; otherwise the whitelist itself is the identifier set and no
// enumeration call is made. Identifiers the service can no longer resolve
// are skipped silently: a stale whitelist entry or deleted recipe is not
// an error.
func ListCandidates(ctx context.Context, inv service.Inventory, whitelist []recipe.PatternInfo) ([]Pattern, error) {
	infos := whitelist
	if len(infos) == 0 {
		var err error
		infos, err = inv.ListPatterns(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list patterns: %w", err)
		}
	}

	var patterns []Pattern
	for _, info := range infos {
		def, ok, err := inv.GetPattern(ctx, info)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pattern %s: %w", info.Name, err)
		}
		if !ok {
			continue
		}
		p, ok := Classify(def)
		if !ok {
			continue
		}
		p.Info = info
		patterns = append(patterns, p)
	}
	return patterns, nil
}
