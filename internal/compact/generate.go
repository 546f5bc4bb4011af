package compact

import "compactor/internal/recipe"

// GenerateWhitelist projects compaction patterns down to the identifiers a
// future run can feed back to ListCandidates instead of scanning the full
// catalog. Pure projection; persisting the result belongs to the config
// layer.
func GenerateWhitelist(patterns []Pattern) []recipe.PatternInfo {
	infos := make([]recipe.PatternInfo, 0, len(patterns))
	for _, p := range patterns {
		infos = append(infos, p.Info)
	}
	return infos
}
