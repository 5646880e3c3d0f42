package domain

// FindInventoryItem returns a pointer into the inventory by exact name
// match, or nil.
func (s *PlayerState) FindInventoryItem(name string) *InventoryItem {
	for i := range s.Inventory {
		if s.Inventory[i].Name == name {
			return &s.Inventory[i]
		}
	}
	return nil
}

// AddInventoryItem merges quantity into an existing stack, matching by id
// first and exact name second, or appends a new stack. Returns the
// resulting item.
func (s *PlayerState) AddInventoryItem(item InventoryItem) InventoryItem {
	var existing *InventoryItem
	if item.ID != "" {
		for i := range s.Inventory {
			if s.Inventory[i].ID == item.ID {
				existing = &s.Inventory[i]
				break
			}
		}
	}
	if existing == nil {
		existing = s.FindInventoryItem(item.Name)
	}
	if existing != nil {
		existing.Quantity += item.Quantity
		for key, value := range item.Properties {
			if existing.Properties == nil {
				existing.Properties = map[string]any{}
			}
			existing.Properties[key] = value
		}
		return *existing
	}
	if item.Properties == nil {
		item.Properties = map[string]any{}
	}
	s.Inventory = append(s.Inventory, item)
	return item
}

// RemoveInventoryItem decrements a stack's quantity, dropping the entry
// entirely when the requested quantity meets or exceeds what is held.
// Returns the quantity actually removed and whether the item existed.
func (s *PlayerState) RemoveInventoryItem(name string, quantity int) (int, bool) {
	for i := range s.Inventory {
		if s.Inventory[i].Name != name {
			continue
		}
		held := s.Inventory[i].Quantity
		if quantity >= held {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return held, true
		}
		s.Inventory[i].Quantity -= quantity
		return quantity, true
	}
	return 0, false
}

// RemoveInventoryItemByID behaves like RemoveInventoryItem but matches on
// the stack's id instead of its name.
func (s *PlayerState) RemoveInventoryItemByID(id string, quantity int) (int, bool) {
	for i := range s.Inventory {
		if s.Inventory[i].ID != id {
			continue
		}
		held := s.Inventory[i].Quantity
		if quantity >= held {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return held, true
		}
		s.Inventory[i].Quantity -= quantity
		return quantity, true
	}
	return 0, false
}

// Consumable reports whether an item's properties flag it as consumable.
func (i InventoryItem) Consumable() bool {
	flag, ok := i.Properties["consumable"]
	if !ok {
		return false
	}
	switch v := flag.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
