// Package item defines the item identity and quantity types shared by the
// catalog, planner, and service boundary.
package item

import "fmt"

// Stack is an item type plus a quantity. Identity is (Name, Damage); Size
// is how many are present and never participates in identity.
type Stack struct {
	Name   string `json:"name"`
	Damage int    `json:"damage"`
	Size   int    `json:"size"`
}

// Ref identifies an item type without a quantity. Stock queries go by Ref.
type Ref struct {
	Name   string `json:"name"`
	Damage int    `json:"damage"`
}

// Ref returns the identity-only handle for the stack.
func (s Stack) Ref() Ref {
	return Ref{Name: s.Name, Damage: s.Damage}
}

// Key is the composite equality key used by the compaction classifier.
// Size participates: two recipe slots are equal only if they offer the
// exact same stack quantities, not merely the same item types.
func (s Stack) Key() string {
	return fmt.Sprintf("%s@%d@%d", s.Name, s.Damage, s.Size)
}

func (r Ref) String() string {
	return fmt.Sprintf("%s@%d", r.Name, r.Damage)
}
