// Package compact implements the compaction pipeline: classifying catalog
// recipes as compaction patterns, planning affordable quantities against
// live stock, and submitting the resulting tasks to the remote scheduler.
package compact

import "compactor/internal/recipe"

// A compaction pattern combines nine of one item into a single output.
const inputsPerOutput = 9

// Pattern is a recipe classified as a compaction pattern. Inputs is the
// representative slot; the classifier guarantees every one of the nine
// original slots is multiset-equal to it.
type Pattern struct {
	Info            recipe.PatternInfo
	Inputs          recipe.Slot
	InputsPerOutput int
}

// Classify reports whether a recipe definition is a compaction pattern:
// exactly nine input slots, all multiset-equal to the first. The returned
// Pattern carries no identifier; the catalog pairs it with the originating
// PatternInfo.
//
// Nine-identical-inputs is a heuristic. It has false negatives (compaction
// recipes whose slots enumerate the same item in different orders of
// different stacks) but no known false positives for the recipe shapes the
// service produces.
func Classify(def recipe.Definition) (Pattern, bool) {
	if len(def.Inputs) != inputsPerOutput {
		return Pattern{}, false
	}
	first := def.Inputs[0]
	for _, slot := range def.Inputs[1:] {
		if !slotsEqual(first, slot) {
			return Pattern{}, false
		}
	}
	return Pattern{Inputs: first, InputsPerOutput: inputsPerOutput}, true
}

// slotsEqual tests multiset equality of two input slots with a counted map
// over stack keys: build counts from a, decrement per entry of b, and
// require the map fully drained. Stack keys include the size, so the same
// item type in a different quantity does not match.
func slotsEqual(a, b recipe.Slot) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s.Key()]++
	}
	for _, s := range b {
		key := s.Key()
		n, ok := counts[key]
		if !ok {
			return false
		}
		if n == 1 {
			delete(counts, key)
		} else {
			counts[key] = n - 1
		}
	}
	return len(counts) == 0
}
