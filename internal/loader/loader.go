// Package loader builds validated player data from the two supported
// sources: offline JSON files and live API snapshots. Both paths produce a
// PlayerData that passed validation, so the planner never sees raw input.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/catalog"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
)

// playerFileJSON is the on-disk player data document.
type playerFileJSON struct {
	Profile   profileJSON   `json:"profile"`
	Inventory inventoryJSON `json:"inventory"`
	Cards     []cardJSON    `json:"cards"`
}

type profileJSON struct {
	KingLevel   int `json:"king_level"`
	XPIntoLevel int `json:"xp_into_level"`
}

type inventoryJSON struct {
	Gold      int            `json:"gold"`
	Gems      int            `json:"gems"`
	WildCards map[string]int `json:"wild_cards"`
}

type cardJSON struct {
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Level  int    `json:"level"`
	Count  int    `json:"count"`
}

// FromFile reads a player data JSON file. Cards without a rarity are
// completed from the catalog; an unknown name there is a hard failure. The
// result is fully validated.
func FromFile(path string, cat *catalog.Catalog) (*models.PlayerData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read player data: %w", err)
	}
	player, err := FromBytes(data, cat)
	if err != nil {
		return nil, fmt.Errorf("player data %s: %w", path, err)
	}
	return player, nil
}

// FromBytes parses a player data document, for callers that already hold
// the JSON, for example a pasted web form payload.
func FromBytes(data []byte, cat *catalog.Catalog) (*models.PlayerData, error) {
	var raw playerFileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse player data: %w", err)
	}

	player := &models.PlayerData{
		Profile: models.Profile{
			KingLevel:   raw.Profile.KingLevel,
			XPIntoLevel: raw.Profile.XPIntoLevel,
		},
		Inventory: models.Inventory{
			Gold:      raw.Inventory.Gold,
			Gems:      raw.Inventory.Gems,
			WildCards: make(map[models.Rarity]int, len(raw.Inventory.WildCards)),
		},
		Cards: make([]models.Card, 0, len(raw.Cards)),
	}

	for key, count := range raw.Inventory.WildCards {
		rarity, err := models.ParseRarity(key)
		if err != nil {
			return nil, &models.InvalidInventoryError{
				Field:  "wild_cards",
				Reason: fmt.Sprintf("unknown rarity %q", key),
			}
		}
		player.Inventory.WildCards[rarity] = count
	}

	for i, raw := range raw.Cards {
		var rarity models.Rarity
		if raw.Rarity == "" {
			resolved, err := cat.ResolveRarity(raw.Name)
			if err != nil {
				return nil, err
			}
			rarity = resolved
		} else {
			parsed, err := models.ParseRarity(raw.Rarity)
			if err != nil {
				return nil, &models.InvalidInventoryError{
					Field:  fmt.Sprintf("cards[%d]", i),
					Reason: fmt.Sprintf("%s: %v", raw.Name, err),
				}
			}
			rarity = parsed
		}
		player.Cards = append(player.Cards, models.Card{
			Name:   raw.Name,
			Rarity: rarity,
			Level:  raw.Level,
			Count:  raw.Count,
		})
	}

	if err := player.Validate(); err != nil {
		return nil, err
	}
	return player, nil
}
