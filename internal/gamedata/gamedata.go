// Package gamedata holds the versioned upgrade-economy tables and the king
// level progression math. An Economy is immutable after construction and
// safe for concurrent reads; the engine receives one by value injection
// rather than reading process-wide state.
package gamedata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
)

// Progress locates a total-XP amount on the king progression curve.
type Progress struct {
	Level       int `json:"level"`
	XPIntoLevel int `json:"xp_into_level"`
	XPToNext    int `json:"xp_to_next"`
	TotalXP     int `json:"total_xp"`
}

// NextLevel returns the following king level, or false at the cap.
func (p Progress) NextLevel() (int, bool) {
	if p.XPToNext == 0 {
		return 0, false
	}
	return p.Level + 1, true
}

// Economy is one versioned snapshot of the upgrade cost tables.
type Economy struct {
	snapshotDate string
	goldCosts    map[int]int
	xpRewards    map[int]int
	copyReqs     map[models.Rarity]map[int]int
	gemPrices    map[models.Rarity]float64
	wildRates    map[models.Rarity]int
	kingXPToNext []int
	// cumulative XP required to reach each level, index = level-1
	kingCumulative []int
}

// Default returns the built-in economy snapshot.
func Default() *Economy {
	e, err := newEconomy(
		SnapshotDate,
		defaultGoldCosts,
		defaultXPRewards,
		defaultCopyRequirements,
		defaultGemPrices,
		defaultWildCardRates,
		defaultKingXPToNext,
	)
	if err != nil {
		panic(fmt.Sprintf("gamedata: built-in tables invalid: %v", err))
	}
	return e
}

func newEconomy(
	snapshotDate string,
	goldCosts, xpRewards map[int]int,
	copyReqs map[models.Rarity]map[int]int,
	gemPrices map[models.Rarity]float64,
	wildRates map[models.Rarity]int,
	kingXPToNext []int,
) (*Economy, error) {
	e := &Economy{
		snapshotDate: snapshotDate,
		goldCosts:    goldCosts,
		xpRewards:    xpRewards,
		copyReqs:     copyReqs,
		gemPrices:    gemPrices,
		wildRates:    wildRates,
		kingXPToNext: kingXPToNext,
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	e.kingCumulative = make([]int, len(kingXPToNext))
	for i := 1; i < len(kingXPToNext); i++ {
		e.kingCumulative[i] = e.kingCumulative[i-1] + kingXPToNext[i-1]
	}
	return e, nil
}

// validate checks the semantic constraints of the tables: positive costs,
// known rarities, contiguous per-rarity level ranges ending at the cap, and
// monotonic non-decreasing gold/copy costs as the target level rises.
func (e *Economy) validate() error {
	var errs []string

	prevGold := 0
	for level := 2; level <= models.MaxCardLevel; level++ {
		gold, ok := e.goldCosts[level]
		if !ok {
			errs = append(errs, fmt.Sprintf("gold_costs missing level %d", level))
			continue
		}
		if gold <= 0 {
			errs = append(errs, fmt.Sprintf("gold_costs[%d] must be positive, got %d", level, gold))
		}
		if gold < prevGold {
			errs = append(errs, fmt.Sprintf("gold_costs[%d]=%d decreases from level %d", level, gold, level-1))
		}
		prevGold = gold
	}
	for level := 2; level <= models.MaxCardLevel; level++ {
		xp, ok := e.xpRewards[level]
		if !ok {
			errs = append(errs, fmt.Sprintf("xp_rewards missing level %d", level))
		} else if xp <= 0 {
			errs = append(errs, fmt.Sprintf("xp_rewards[%d] must be positive, got %d", level, xp))
		}
	}

	for rarity, levels := range e.copyReqs {
		if _, err := models.ParseRarity(string(rarity)); err != nil {
			errs = append(errs, fmt.Sprintf("card_requirements: unknown rarity %q", rarity))
			continue
		}
		if len(levels) == 0 {
			errs = append(errs, fmt.Sprintf("card_requirements[%s] is empty", rarity))
			continue
		}
		sorted := make([]int, 0, len(levels))
		for level := range levels {
			sorted = append(sorted, level)
		}
		sort.Ints(sorted)
		if last := sorted[len(sorted)-1]; last != models.MaxCardLevel {
			errs = append(errs, fmt.Sprintf("card_requirements[%s] must end at level %d, ends at %d", rarity, models.MaxCardLevel, last))
		}
		prev := 0
		for i, level := range sorted {
			if i > 0 && level != sorted[i-1]+1 {
				errs = append(errs, fmt.Sprintf("card_requirements[%s] has a gap between levels %d and %d", rarity, sorted[i-1], level))
			}
			copies := levels[level]
			if copies <= 0 {
				errs = append(errs, fmt.Sprintf("card_requirements[%s][%d] must be positive, got %d", rarity, level, copies))
			}
			if copies < prev {
				errs = append(errs, fmt.Sprintf("card_requirements[%s][%d]=%d decreases from the previous level", rarity, level, copies))
			}
			prev = copies
		}
	}

	for _, rarity := range models.AllRarities() {
		if price, ok := e.gemPrices[rarity]; !ok {
			errs = append(errs, fmt.Sprintf("gem_prices missing rarity %s", rarity))
		} else if price <= 0 {
			errs = append(errs, fmt.Sprintf("gem_prices[%s] must be positive, got %v", rarity, price))
		}
		if rate, ok := e.wildRates[rarity]; !ok {
			errs = append(errs, fmt.Sprintf("wild_card_rates missing rarity %s", rarity))
		} else if rate < 1 {
			errs = append(errs, fmt.Sprintf("wild_card_rates[%s] must be at least 1, got %d", rarity, rate))
		}
	}

	if len(e.kingXPToNext) < 2 {
		errs = append(errs, "king_xp must cover at least two levels")
	} else {
		for i, xp := range e.kingXPToNext {
			last := i == len(e.kingXPToNext)-1
			if last && xp != 0 {
				errs = append(errs, fmt.Sprintf("king_xp[%d] is the cap and must be 0, got %d", i+1, xp))
			}
			if !last && xp <= 0 {
				errs = append(errs, fmt.Sprintf("king_xp[%d] must be positive, got %d", i+1, xp))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("economy validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// SnapshotDate reports which game-economy snapshot this data encodes.
func (e *Economy) SnapshotDate() string {
	return e.snapshotDate
}

// Cost returns the gold, card copies and XP reward for upgrading a card of
// the given rarity to targetLevel. ok is false when the rarity's ladder has
// no such level.
func (e *Economy) Cost(rarity models.Rarity, targetLevel int) (gold, copies, xp int, ok bool) {
	levels, found := e.copyReqs[rarity]
	if !found {
		return 0, 0, 0, false
	}
	copies, found = levels[targetLevel]
	if !found {
		return 0, 0, 0, false
	}
	gold, goldOK := e.goldCosts[targetLevel]
	xp, xpOK := e.xpRewards[targetLevel]
	if !goldOK || !xpOK {
		return 0, 0, 0, false
	}
	return gold, copies, xp, true
}

// GemPrice returns the gem cost per missing copy for a rarity, 0 if unknown.
func (e *Economy) GemPrice(rarity models.Rarity) float64 {
	return e.gemPrices[rarity]
}

// WildRate returns the card copies one wild card converts into, 0 if the
// rarity is unknown.
func (e *Economy) WildRate(rarity models.Rarity) int {
	return e.wildRates[rarity]
}

// MaxKingLevel returns the last level of the king progression curve.
func (e *Economy) MaxKingLevel() int {
	return len(e.kingXPToNext)
}

// TotalXPForLevel returns the cumulative XP required to reach a king level.
// Levels outside the curve clamp to its ends.
func (e *Economy) TotalXPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	if level > len(e.kingCumulative) {
		level = len(e.kingCumulative)
	}
	return e.kingCumulative[level-1]
}

// ProgressFromTotalXP maps cumulative XP onto the king curve. Past the cap
// the level pins to the maximum with no XP into it.
func (e *Economy) ProgressFromTotalXP(total int) Progress {
	if total < 0 {
		total = 0
	}
	// first level whose entry requirement exceeds total
	idx := sort.Search(len(e.kingCumulative), func(i int) bool {
		return e.kingCumulative[i] > total
	})
	level := idx
	if level < 1 {
		level = 1
	}
	xpToNext := e.kingXPToNext[level-1]
	into := total - e.kingCumulative[level-1]
	if xpToNext == 0 {
		into = 0
	}
	return Progress{
		Level:       level,
		XPIntoLevel: into,
		XPToNext:    xpToNext,
		TotalXP:     total,
	}
}
