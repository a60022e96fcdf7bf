package models

import (
	"fmt"
	"strings"
)

// Rarity represents the card rarity tiers
type Rarity string

const (
	Common    Rarity = "Common"
	Rare      Rarity = "Rare"
	Epic      Rarity = "Epic"
	Legendary Rarity = "Legendary"
	Champion  Rarity = "Champion"
)

// AllRarities returns all rarities in deterministic order
func AllRarities() []Rarity {
	return []Rarity{Common, Rare, Epic, Legendary, Champion}
}

// ParseRarity normalizes a rarity string ("common", "COMMON") to its
// canonical form. Unknown values return an error.
func ParseRarity(s string) (Rarity, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("empty rarity")
	}
	canonical := strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:])
	r := Rarity(canonical)
	for _, known := range AllRarities() {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rarity %q", s)
}

// MaxCardLevel is the highest upgradeable card level
const MaxCardLevel = 16

// Card is one entry in the player's collection
type Card struct {
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
	Level  int    `json:"level"`
	Count  int    `json:"count"`
}

// NextLevel returns the next upgrade target, or 0 if the card is maxed
func (c Card) NextLevel() int {
	if c.Level >= MaxCardLevel {
		return 0
	}
	return c.Level + 1
}

// Inventory holds the spendable resources of a snapshot
type Inventory struct {
	Gold      int            `json:"gold"`
	Gems      int            `json:"gems"`
	WildCards map[Rarity]int `json:"wild_cards"`
}

// WildCount returns the wild-card pool for a rarity (missing = 0)
func (inv Inventory) WildCount(r Rarity) int {
	return inv.WildCards[r]
}

// Profile is the king tower progression state
type Profile struct {
	KingLevel   int `json:"king_level"`
	XPIntoLevel int `json:"xp_into_level"`
}

// PlayerData is one complete inventory snapshot: profile, resources and
// collection. A snapshot is owned by exactly one planning run; callers that
// need several runs hand each its own Clone.
type PlayerData struct {
	Profile   Profile   `json:"profile"`
	Inventory Inventory `json:"inventory"`
	Cards     []Card    `json:"cards"`
}

// Clone creates a deep copy of the snapshot
func (p *PlayerData) Clone() *PlayerData {
	clone := &PlayerData{
		Profile: p.Profile,
		Inventory: Inventory{
			Gold:      p.Inventory.Gold,
			Gems:      p.Inventory.Gems,
			WildCards: make(map[Rarity]int, len(p.Inventory.WildCards)),
		},
		Cards: make([]Card, len(p.Cards)),
	}
	for r, n := range p.Inventory.WildCards {
		clone.Inventory.WildCards[r] = n
	}
	copy(clone.Cards, p.Cards)
	return clone
}
