package service

// Select probes candidate handles for the full Inventory capability set
// and returns the first one that provides it. Handles missing any of the
// five required operations are skipped. When no candidate conforms the
// result is ErrNoService.
func Select(handles ...any) (Inventory, error) {
	for _, h := range handles {
		if inv, ok := h.(Inventory); ok {
			return inv, nil
		}
	}
	return nil, ErrNoService
}
