package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// Economy actions accepted by ManageEconomy.
const (
	EconomyActionAddCurrency    = "add_currency"
	EconomyActionRemoveCurrency = "remove_currency"
	EconomyActionBuyItem        = "buy_item"
	EconomyActionSellItem       = "sell_item"
	EconomyActionTransferItem   = "transfer_item"
)

// EconomyRequest carries the parameters of an economy operation. Amount is
// the currency delta for currency actions and overrides the item's price
// property for buy/sell when positive.
type EconomyRequest struct {
	Action     string
	Amount     int
	ItemID     string
	ToLocation string
}

// EconomyResult reports an economy operation.
type EconomyResult struct {
	Action       string                `json:"action"`
	Balance      int                   `json:"balance"`
	Change       int                   `json:"change,omitempty"`
	CurrencyName string                `json:"currency_name,omitempty"`
	Item         *domain.Item          `json:"item,omitempty"`
	Acquired     *domain.InventoryItem `json:"acquired,omitempty"`
}

// ManageEconomy applies an economy operation. The whole category is gated by
// the adventure's currency feature flag. Removal checks funds before
// deducting: an insufficient balance fails without a partial deduction.
func (e *Engine) ManageEconomy(ctx context.Context, sessionID string, req EconomyRequest) (EconomyResult, error) {
	session, adventure, err := e.sessionWithAdventure(ctx, sessionID)
	if err != nil {
		return EconomyResult{}, err
	}
	if err := requireFeature(adventure, featureCurrency); err != nil {
		return EconomyResult{}, err
	}

	result := EconomyResult{Action: req.Action, CurrencyName: adventure.CurrencyConfig.Name}
	switch req.Action {
	case EconomyActionAddCurrency:
		if req.Amount <= 0 {
			return EconomyResult{}, apperrors.New(apperrors.CodeInvalidArgument,
				"amount must be positive")
		}
		session.State.Currency += req.Amount
		result.Change = req.Amount

	case EconomyActionRemoveCurrency:
		if req.Amount <= 0 {
			return EconomyResult{}, apperrors.New(apperrors.CodeInvalidArgument,
				"amount must be positive")
		}
		if session.State.Currency < req.Amount {
			return EconomyResult{}, apperrors.New(apperrors.CodeInsufficientFunds,
				"need %d but only have %d", req.Amount, session.State.Currency)
		}
		session.State.Currency -= req.Amount
		result.Change = -req.Amount

	case EconomyActionBuyItem:
		return e.buyItem(ctx, session, req)

	case EconomyActionSellItem:
		return e.sellItem(ctx, session, req)

	case EconomyActionTransferItem:
		return e.transferItem(ctx, session, req, result)

	default:
		return EconomyResult{}, apperrors.New(apperrors.CodeInvalidArgument,
			"unknown economy action %q", req.Action)
	}

	if err := e.saveSession(ctx, &session); err != nil {
		return EconomyResult{}, err
	}
	result.Balance = session.State.Currency
	return result, nil
}

// buyItem moves a purchasable world item into the inventory. The transfer is
// destructive: the standalone world-item record is deleted, not copied.
func (e *Engine) buyItem(ctx context.Context, session domain.GameSession, req EconomyRequest) (EconomyResult, error) {
	item, err := e.worldItem(ctx, session.ID, req.ItemID)
	if err != nil {
		return EconomyResult{}, err
	}
	if item.Location == nil {
		return EconomyResult{}, apperrors.New(apperrors.CodeInvalidArgument,
			"item %q is already in the inventory and cannot be bought", item.Name)
	}

	price := req.Amount
	if price <= 0 {
		price = propertyCount(item.Properties["price"])
	}
	if session.State.Currency < price {
		return EconomyResult{}, apperrors.New(apperrors.CodeInsufficientFunds,
			"need %d but only have %d", price, session.State.Currency)
	}

	session.State.Currency -= price
	acquired := session.State.AddInventoryItem(domain.InventoryItem{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    1,
		Properties:  item.Properties,
	})
	if err := e.store.DeleteItem(ctx, item.ID); err != nil {
		return EconomyResult{}, fmt.Errorf("delete bought item: %w", err)
	}
	if err := e.saveSession(ctx, &session); err != nil {
		return EconomyResult{}, err
	}

	return EconomyResult{
		Action:   req.Action,
		Balance:  session.State.Currency,
		Change:   -price,
		Acquired: &acquired,
	}, nil
}

// sellItem removes one of an inventory stack, matched by id, and credits the
// sale price.
func (e *Engine) sellItem(ctx context.Context, session domain.GameSession, req EconomyRequest) (EconomyResult, error) {
	var held *domain.InventoryItem
	for i := range session.State.Inventory {
		if session.State.Inventory[i].ID == req.ItemID {
			held = &session.State.Inventory[i]
			break
		}
	}
	if held == nil {
		return EconomyResult{}, apperrors.New(apperrors.CodeItemNotFound,
			"item %q not found in inventory", req.ItemID)
	}

	price := req.Amount
	if price <= 0 {
		price = propertyCount(held.Properties["price"])
	}

	session.State.RemoveInventoryItemByID(req.ItemID, 1)
	session.State.Currency += price
	if err := e.saveSession(ctx, &session); err != nil {
		return EconomyResult{}, err
	}

	return EconomyResult{
		Action:  req.Action,
		Balance: session.State.Currency,
		Change:  price,
	}, nil
}

// transferItem relocates a world item between named locations without
// touching currency or the inventory.
func (e *Engine) transferItem(ctx context.Context, session domain.GameSession, req EconomyRequest, result EconomyResult) (EconomyResult, error) {
	if req.ToLocation == "" {
		return EconomyResult{}, apperrors.New(apperrors.CodeInvalidArgument,
			"destination location is required")
	}
	item, err := e.worldItem(ctx, session.ID, req.ItemID)
	if err != nil {
		return EconomyResult{}, err
	}

	destination := req.ToLocation
	item.Location = &destination
	if err := e.store.PutItem(ctx, item); err != nil {
		return EconomyResult{}, fmt.Errorf("persist item: %w", err)
	}

	result.Balance = session.State.Currency
	result.Item = &item
	return result, nil
}

// worldItem loads a world item and verifies it belongs to the session.
func (e *Engine) worldItem(ctx context.Context, sessionID, itemID string) (domain.Item, error) {
	if itemID == "" {
		return domain.Item{}, apperrors.New(apperrors.CodeInvalidArgument, "item id is required")
	}
	item, err := e.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Item{}, apperrors.New(apperrors.CodeItemNotFound, "item %q not found", itemID)
		}
		return domain.Item{}, fmt.Errorf("load item: %w", err)
	}
	if item.SessionID != sessionID {
		return domain.Item{}, apperrors.New(apperrors.CodeItemNotFound, "item %q not found", itemID)
	}
	return item, nil
}
