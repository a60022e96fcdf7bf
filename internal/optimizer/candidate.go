package optimizer

import (
	"math"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
)

// candidate is one affordable upgrade under the current state, priced and
// ready to rank.
type candidate struct {
	index          int
	name           string
	rarity         models.Rarity
	fromLevel      int
	toLevel        int
	goldCost       int
	copiesRequired int
	copiesUsed     int
	wildCardsUsed  int
	gemsUsed       int
	xpGained       int
	// gold-equivalent cost per XP point, the main ranking key
	costPerXP float64
	// XP per required copy, reported for the card-bottleneck view
	materialEfficiency float64
}

// checkpointClass buckets target levels for ranking: finishing a card to
// the cap beats reaching the level below it, and both beat everything else.
func checkpointClass(toLevel int) int {
	switch toLevel {
	case models.MaxCardLevel:
		return 0
	case models.MaxCardLevel - 1:
		return 1
	default:
		return 2
	}
}

// better reports whether a should be committed before b. The order is
// total: checkpoint class, then cheapest gold-equivalent per XP, then
// higher XP, then card name.
func better(a, b candidate) bool {
	ca, cb := checkpointClass(a.toLevel), checkpointClass(b.toLevel)
	if ca != cb {
		return ca < cb
	}
	if a.costPerXP != b.costPerXP {
		return a.costPerXP < b.costPerXP
	}
	if a.xpGained != b.xpGained {
		return a.xpGained > b.xpGained
	}
	return a.name < b.name
}

// buildCandidate prices the next-level upgrade for one card, or reports
// that it is not affordable under the current state and settings.
// Shortfall coverage order is fixed: own copies, then wild cards above the
// reserve, then gems.
func (p *Planner) buildCandidate(snap *models.PlayerData, reserve map[models.Rarity]int, index int) (candidate, bool) {
	card := snap.Cards[index]

	// A card with no spare copies is never a candidate, regardless of
	// wild cards or gems on hand.
	if card.Count <= 0 {
		return candidate{}, false
	}
	toLevel := card.NextLevel()
	if toLevel == 0 {
		return candidate{}, false
	}
	gold, copiesRequired, xp, ok := p.economy.Cost(card.Rarity, toLevel)
	if !ok {
		return candidate{}, false
	}

	copiesUsed := copiesRequired
	if card.Count < copiesUsed {
		copiesUsed = card.Count
	}
	remaining := copiesRequired - copiesUsed

	wildCardsUsed := 0
	if remaining > 0 {
		rate := p.economy.WildRate(card.Rarity)
		if rate < 1 {
			rate = 1
		}
		available := snap.Inventory.WildCards[card.Rarity] - reserve[card.Rarity]
		if available < 0 {
			available = 0
		}
		wildCopies := available * rate
		if wildCopies > remaining {
			wildCopies = remaining
		}
		wildCardsUsed = (wildCopies + rate - 1) / rate
		remaining -= wildCopies
	}

	gemsUsed := 0
	if remaining > 0 {
		if !p.settings.UseGems {
			return candidate{}, false
		}
		gemsUsed = int(math.Round(float64(remaining) * p.economy.GemPrice(card.Rarity)))
		remaining = 0
	}

	if !p.settings.InfiniteGold && gold > snap.Inventory.Gold {
		return candidate{}, false
	}
	if gemsUsed > snap.Inventory.Gems {
		return candidate{}, false
	}

	effective := float64(gold) + float64(gemsUsed)*p.settings.GemGoldRatio
	return candidate{
		index:              index,
		name:               card.Name,
		rarity:             card.Rarity,
		fromLevel:          card.Level,
		toLevel:            toLevel,
		goldCost:           gold,
		copiesRequired:     copiesRequired,
		copiesUsed:         copiesUsed,
		wildCardsUsed:      wildCardsUsed,
		gemsUsed:           gemsUsed,
		xpGained:           xp,
		costPerXP:          effective / float64(xp),
		materialEfficiency: float64(xp) / float64(copiesRequired),
	}, true
}

// selectCandidate scans every card and returns the best affordable
// upgrade. The scan order never matters: the comparator is a total order.
func (p *Planner) selectCandidate(snap *models.PlayerData, reserve map[models.Rarity]int) (candidate, bool) {
	var best candidate
	found := false
	for index := range snap.Cards {
		c, ok := p.buildCandidate(snap, reserve, index)
		if !ok {
			continue
		}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}
