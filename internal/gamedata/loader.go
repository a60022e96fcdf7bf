package gamedata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
)

// Override is a partial economy document merged over the defaults. Map
// sections merge per key; king_xp replaces the whole curve when provided.
type Override struct {
	SnapshotDate     string                 `yaml:"snapshot_date"`
	GoldCosts        map[int]int            `yaml:"gold_costs"`
	XPRewards        map[int]int            `yaml:"xp_rewards"`
	CardRequirements map[string]map[int]int `yaml:"card_requirements"`
	GemPrices        map[string]float64     `yaml:"gem_prices"`
	WildCardRates    map[string]int         `yaml:"wild_card_rates"`
	KingXP           []int                  `yaml:"king_xp"`
}

// LoadEconomyFile reads a YAML override document and applies it to the
// built-in economy, re-validating the merged result.
func LoadEconomyFile(path string) (*Economy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read economy file: %w", err)
	}
	var o Override
	if err := yaml.Unmarshal(b, &o); err != nil {
		return nil, fmt.Errorf("parse economy file %s: %w", path, err)
	}
	e, err := Default().WithOverride(o)
	if err != nil {
		return nil, fmt.Errorf("economy file %s: %w", path, err)
	}
	return e, nil
}

// WithOverride returns a new Economy with the override merged over e.
// The receiver is never mutated.
func (e *Economy) WithOverride(o Override) (*Economy, error) {
	snapshotDate := e.snapshotDate
	if o.SnapshotDate != "" {
		snapshotDate = o.SnapshotDate
	}

	goldCosts := copyIntMap(e.goldCosts)
	for level, gold := range o.GoldCosts {
		goldCosts[level] = gold
	}
	xpRewards := copyIntMap(e.xpRewards)
	for level, xp := range o.XPRewards {
		xpRewards[level] = xp
	}

	copyReqs := make(map[models.Rarity]map[int]int, len(e.copyReqs))
	for rarity, levels := range e.copyReqs {
		copyReqs[rarity] = copyIntMap(levels)
	}
	for raw, levels := range o.CardRequirements {
		rarity, err := models.ParseRarity(raw)
		if err != nil {
			return nil, fmt.Errorf("card_requirements: %w", err)
		}
		if copyReqs[rarity] == nil {
			copyReqs[rarity] = make(map[int]int, len(levels))
		}
		for level, copies := range levels {
			copyReqs[rarity][level] = copies
		}
	}

	gemPrices := make(map[models.Rarity]float64, len(e.gemPrices))
	for rarity, price := range e.gemPrices {
		gemPrices[rarity] = price
	}
	for raw, price := range o.GemPrices {
		rarity, err := models.ParseRarity(raw)
		if err != nil {
			return nil, fmt.Errorf("gem_prices: %w", err)
		}
		gemPrices[rarity] = price
	}

	wildRates := make(map[models.Rarity]int, len(e.wildRates))
	for rarity, rate := range e.wildRates {
		wildRates[rarity] = rate
	}
	for raw, rate := range o.WildCardRates {
		rarity, err := models.ParseRarity(raw)
		if err != nil {
			return nil, fmt.Errorf("wild_card_rates: %w", err)
		}
		wildRates[rarity] = rate
	}

	kingXP := e.kingXPToNext
	if len(o.KingXP) > 0 {
		kingXP = append([]int(nil), o.KingXP...)
	}

	return newEconomy(snapshotDate, goldCosts, xpRewards, copyReqs, gemPrices, wildRates, kingXP)
}

func copyIntMap(src map[int]int) map[int]int {
	dst := make(map[int]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
