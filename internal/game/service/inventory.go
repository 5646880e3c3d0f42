package service

import (
	"context"
	"time"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

// Inventory actions accepted by ManageInventory.
const (
	InventoryActionAdd    = "add"
	InventoryActionRemove = "remove"
	InventoryActionUpdate = "update"
	InventoryActionCheck  = "check"
	InventoryActionList   = "list"
	InventoryActionUse    = "use"
)

// InventoryResult reports an inventory operation.
type InventoryResult struct {
	Action          string                 `json:"action"`
	Item            *domain.InventoryItem  `json:"item,omitempty"`
	Found           bool                   `json:"found"`
	RemovedQuantity int                    `json:"removed_quantity,omitempty"`
	Consumed        bool                   `json:"consumed,omitempty"`
	Inventory       []domain.InventoryItem `json:"inventory,omitempty"`
}

// ManageInventory applies one inventory operation. Items merge by exact name
// match; a stack is dropped entirely when its quantity reaches zero. Using a
// consumable removes one; using anything else bumps a use_count property and
// stamps last_used, leaving quantity untouched.
func (e *Engine) ManageInventory(ctx context.Context, sessionID, action, itemName, description string, quantity int, properties map[string]any) (InventoryResult, error) {
	session, err := e.session(ctx, sessionID)
	if err != nil {
		return InventoryResult{}, err
	}
	if action != InventoryActionList && itemName == "" {
		return InventoryResult{}, apperrors.New(apperrors.CodeInvalidArgument,
			"item name is required for %s action", action)
	}
	if quantity <= 0 {
		quantity = 1
	}

	result := InventoryResult{Action: action}
	switch action {
	case InventoryActionAdd:
		itemID, err := e.generateID()
		if err != nil {
			return InventoryResult{}, err
		}
		added := session.State.AddInventoryItem(domain.InventoryItem{
			ID:          itemID,
			Name:        itemName,
			Description: description,
			Quantity:    quantity,
			Properties:  properties,
		})
		result.Item = &added
		result.Found = true

	case InventoryActionRemove:
		removed, found := session.State.RemoveInventoryItem(itemName, quantity)
		if !found {
			return InventoryResult{}, apperrors.New(apperrors.CodeItemNotFound,
				"item %q not found in inventory", itemName)
		}
		result.Found = true
		result.RemovedQuantity = removed

	case InventoryActionUpdate:
		item := session.State.FindInventoryItem(itemName)
		if item == nil {
			return InventoryResult{}, apperrors.New(apperrors.CodeItemNotFound,
				"item %q not found in inventory", itemName)
		}
		if description != "" {
			item.Description = description
		}
		if item.Properties == nil {
			item.Properties = map[string]any{}
		}
		for key, value := range properties {
			item.Properties[key] = value
		}
		result.Item = item
		result.Found = true

	case InventoryActionCheck:
		item := session.State.FindInventoryItem(itemName)
		result.Found = item != nil
		result.Item = item
		return result, nil

	case InventoryActionList:
		result.Found = true
		result.Inventory = session.State.Inventory
		return result, nil

	case InventoryActionUse:
		item := session.State.FindInventoryItem(itemName)
		if item == nil {
			return InventoryResult{}, apperrors.New(apperrors.CodeItemNotFound,
				"item %q not found in inventory", itemName)
		}
		result.Found = true
		if item.Consumable() {
			removed, _ := session.State.RemoveInventoryItem(itemName, 1)
			result.RemovedQuantity = removed
			result.Consumed = true
		} else {
			if item.Properties == nil {
				item.Properties = map[string]any{}
			}
			item.Properties["use_count"] = propertyCount(item.Properties["use_count"]) + 1
			item.Properties["last_used"] = e.clock().UTC().Format(time.RFC3339)
			result.Item = item
		}

	default:
		return InventoryResult{}, apperrors.New(apperrors.CodeInvalidArgument,
			"unknown inventory action %q", action)
	}

	if err := e.saveSession(ctx, &session); err != nil {
		return InventoryResult{}, err
	}
	return result, nil
}

// propertyCount reads a numeric counter out of a loosely-typed properties
// map. Counters round-trip through JSON as float64.
func propertyCount(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
