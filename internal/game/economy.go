package game

import "errors"

var (
	ErrInsufficientFunds = errors.New("not enough taggerz")
	ErrAlreadyOwned      = errors.New("item already purchased")
)

// ShopItem is one purchasable entry in the pricing table.
type ShopItem struct {
	ID   string `json:"id"`
	Cost int    `json:"cost"`
}

var shopItems = []ShopItem{
	{ID: "color-purple", Cost: 50},
	{ID: "color-gold", Cost: 50},
	{ID: BoostUnlock, Cost: 100},
}

// Catalog returns the purchasable items.
func Catalog() []ShopItem {
	return append([]ShopItem(nil), shopItems...)
}

// ItemCost returns the price of an item. Unknown items report ok=false and
// can never be afforded.
func ItemCost(item string) (cost int, ok bool) {
	for _, it := range shopItems {
		if it.ID == item {
			return it.Cost, true
		}
	}
	return 0, false
}

// Purchase debits the player's balance and records ownership. It has no
// side effects beyond the player passed in; callers notify observers.
func Purchase(p *Player, item string) error {
	cost, ok := ItemCost(item)
	if !ok || p.Taggerz < cost {
		return ErrInsufficientFunds
	}
	if p.Owns(item) {
		return ErrAlreadyOwned
	}
	p.Taggerz -= cost
	p.Purchased = append(p.Purchased, item)
	return nil
}

// Credit adds amount to the player's balance. Negative amounts are ignored.
func Credit(p *Player, amount int) {
	if amount < 0 {
		return
	}
	p.Taggerz += amount
}
