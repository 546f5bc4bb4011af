// Package recipe holds the wire-level recipe types returned by the remote
// crafting service.
package recipe

import "compactor/internal/item"

// PatternInfo is a lightweight recipe handle: enough to re-request the full
// definition or to schedule the recipe, nothing more. It carries no inputs
// or outputs itself.
type PatternInfo struct {
	Name   string `json:"name" yaml:"name"`
	Label  string `json:"label" yaml:"label"`
	Damage int    `json:"damage" yaml:"damage"`
}

// Slot is the multiset of stacks accepted at one input position ("any one
// of these may fill this slot").
type Slot []item.Stack

// Definition is a full recipe: an ordered sequence of input slots.
type Definition struct {
	Inputs []Slot `json:"inputs"`
}
