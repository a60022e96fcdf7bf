// Package optimizer implements the upgrade allocation engine. Each run
// owns a cloned snapshot and loops: price every possible upgrade, commit
// the best one, re-price. Re-pricing after every commit is what lets a
// just-upgraded card immediately compete for its next level.
package optimizer

import (
	"math"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/gamedata"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
)

// UpgradeStep is one committed upgrade. Immutable once appended to a plan.
type UpgradeStep struct {
	CardName           string        `json:"card_name"`
	Rarity             models.Rarity `json:"rarity"`
	FromLevel          int           `json:"from_level"`
	ToLevel            int           `json:"to_level"`
	GoldCost           int           `json:"gold_cost"`
	CopiesUsed         int           `json:"copies_used"`
	WildCardsUsed      int           `json:"wild_cards_used"`
	GemsUsed           int           `json:"gems_used"`
	XPGained           int           `json:"xp_gained"`
	EfficiencyRatio    float64       `json:"efficiency_ratio"`
	MaterialEfficiency float64       `json:"material_efficiency"`
}

// Plan is the ordered result of one planning run.
type Plan struct {
	Steps          []UpgradeStep         `json:"steps"`
	TotalXPGained  int                   `json:"total_xp_gained"`
	TotalGoldSpent int                   `json:"total_gold_spent"`
	TotalGemsSpent int                   `json:"total_gems_spent"`
	WildCardsUsed  map[models.Rarity]int `json:"wild_cards_used"`
	FinalGold      int                   `json:"final_gold"`
	FinalGems      int                   `json:"final_gems"`
	FinalWildCards map[models.Rarity]int `json:"final_wild_cards"`
	FinalProfile   models.Profile        `json:"final_profile"`
	Truncated      bool                  `json:"truncated,omitempty"`
}

// Planner runs the allocation engine against one economy snapshot.
type Planner struct {
	economy  *gamedata.Economy
	settings models.Settings
}

// New builds a planner. Zero-valued tunables in settings pick up defaults.
func New(economy *gamedata.Economy, settings models.Settings) *Planner {
	return &Planner{
		economy:  economy,
		settings: settings.Normalize(),
	}
}

// Settings returns the normalized configuration the planner runs with.
func (p *Planner) Settings() models.Settings {
	return p.settings
}

// Plan produces an upgrade plan for the player. The input is validated
// first and never mutated; the run works on its own clone. Running out of
// affordable upgrades is the normal terminal state, not an error.
func (p *Planner) Plan(player *models.PlayerData) (*Plan, error) {
	if err := player.Validate(); err != nil {
		return nil, err
	}

	snap := player.Clone()
	if snap.Inventory.WildCards == nil {
		snap.Inventory.WildCards = make(map[models.Rarity]int, len(models.AllRarities()))
	}
	for _, rarity := range models.AllRarities() {
		if _, ok := snap.Inventory.WildCards[rarity]; !ok {
			snap.Inventory.WildCards[rarity] = 0
		}
	}

	// The reserve is fixed from the pre-run pools; spending never digs
	// into it, and later wild-card income is not modeled.
	reserve := make(map[models.Rarity]int, len(models.AllRarities()))
	for _, rarity := range models.AllRarities() {
		if p.settings.SpendAllWildCards {
			reserve[rarity] = 0
			continue
		}
		pool := snap.Inventory.WildCards[rarity]
		reserve[rarity] = int(math.Round(float64(pool) * p.settings.WildCardBufferFraction))
	}

	wildUsed := make(map[models.Rarity]int, len(models.AllRarities()))
	for _, rarity := range models.AllRarities() {
		wildUsed[rarity] = 0
	}

	xpTotal := p.economy.TotalXPForLevel(snap.Profile.KingLevel) + snap.Profile.XPIntoLevel

	var steps []UpgradeStep
	totalXP := 0
	totalGold := 0
	totalGems := 0
	truncated := false

	for {
		c, ok := p.selectCandidate(snap, reserve)
		if !ok {
			break
		}
		if len(steps) >= p.settings.MaxSteps {
			// Safety bound against pathological economy data; an
			// affordable candidate still exists, so flag the cut.
			truncated = true
			break
		}

		card := &snap.Cards[c.index]
		card.Count -= c.copiesUsed
		card.Level = c.toLevel

		if !p.settings.InfiniteGold {
			snap.Inventory.Gold -= c.goldCost
		}
		snap.Inventory.Gems -= c.gemsUsed
		snap.Inventory.WildCards[c.rarity] -= c.wildCardsUsed
		wildUsed[c.rarity] += c.wildCardsUsed

		totalXP += c.xpGained
		totalGold += c.goldCost
		totalGems += c.gemsUsed
		xpTotal += c.xpGained

		steps = append(steps, UpgradeStep{
			CardName:           c.name,
			Rarity:             c.rarity,
			FromLevel:          c.fromLevel,
			ToLevel:            c.toLevel,
			GoldCost:           c.goldCost,
			CopiesUsed:         c.copiesUsed,
			WildCardsUsed:      c.wildCardsUsed,
			GemsUsed:           c.gemsUsed,
			XPGained:           c.xpGained,
			EfficiencyRatio:    c.costPerXP,
			MaterialEfficiency: c.materialEfficiency,
		})
	}

	progress := p.economy.ProgressFromTotalXP(xpTotal)
	return &Plan{
		Steps:          steps,
		TotalXPGained:  totalXP,
		TotalGoldSpent: totalGold,
		TotalGemsSpent: totalGems,
		WildCardsUsed:  wildUsed,
		FinalGold:      snap.Inventory.Gold,
		FinalGems:      snap.Inventory.Gems,
		FinalWildCards: snap.Inventory.WildCards,
		FinalProfile: models.Profile{
			KingLevel:   progress.Level,
			XPIntoLevel: progress.XPIntoLevel,
		},
		Truncated: truncated,
	}, nil
}
