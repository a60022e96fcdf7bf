package models

import (
	"fmt"
	"strings"
)

// Validate checks player data for internal consistency before planning.
// It returns an *InvalidInventoryError describing the first problem found.
func (p *PlayerData) Validate() error {
	if p.Profile.KingLevel < 1 {
		return &InvalidInventoryError{Field: "king_level", Reason: fmt.Sprintf("must be at least 1, got %d", p.Profile.KingLevel)}
	}
	if p.Profile.XPIntoLevel < 0 {
		return &InvalidInventoryError{Field: "xp_into_level", Reason: fmt.Sprintf("must not be negative, got %d", p.Profile.XPIntoLevel)}
	}
	if p.Inventory.Gold < 0 {
		return &InvalidInventoryError{Field: "gold", Reason: fmt.Sprintf("must not be negative, got %d", p.Inventory.Gold)}
	}
	if p.Inventory.Gems < 0 {
		return &InvalidInventoryError{Field: "gems", Reason: fmt.Sprintf("must not be negative, got %d", p.Inventory.Gems)}
	}
	for rarity, count := range p.Inventory.WildCards {
		if _, err := ParseRarity(string(rarity)); err != nil {
			return &InvalidInventoryError{Field: "wild_cards", Reason: fmt.Sprintf("unknown rarity %q", rarity)}
		}
		if count < 0 {
			return &InvalidInventoryError{
				Field:  "wild_cards",
				Reason: fmt.Sprintf("%s count must not be negative, got %d", rarity, count),
			}
		}
	}

	seen := make(map[string]string, len(p.Cards))
	for i, card := range p.Cards {
		field := fmt.Sprintf("cards[%d]", i)
		if strings.TrimSpace(card.Name) == "" {
			return &InvalidInventoryError{Field: field, Reason: "card name is empty"}
		}
		if _, err := ParseRarity(string(card.Rarity)); err != nil {
			return &InvalidInventoryError{Field: field, Reason: fmt.Sprintf("%s: unknown rarity %q", card.Name, card.Rarity)}
		}
		if card.Level < 1 || card.Level > MaxCardLevel {
			return &InvalidInventoryError{
				Field:  field,
				Reason: fmt.Sprintf("%s: level %d outside [1, %d]", card.Name, card.Level, MaxCardLevel),
			}
		}
		if card.Count < 0 {
			return &InvalidInventoryError{Field: field, Reason: fmt.Sprintf("%s: count must not be negative, got %d", card.Name, card.Count)}
		}
		key := strings.ToLower(card.Name)
		if prev, dup := seen[key]; dup {
			return &InvalidInventoryError{
				Field:  field,
				Reason: fmt.Sprintf("duplicate card %q (already listed as %q)", card.Name, prev),
			}
		}
		seen[key] = card.Name
	}
	return nil
}
