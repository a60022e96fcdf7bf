package gamedata

import "github.com/ningkaiyang/Clash-Level-Calculator/internal/models"

// SnapshotDate identifies the game-economy snapshot the default tables
// encode. Changing any table below means bumping this date.
const SnapshotDate = "2025-09-03"

// Gold cost per upgrade, keyed by absolute target level. The game charges
// the same gold at a given level regardless of rarity.
var defaultGoldCosts = map[int]int{
	2:  5,
	3:  20,
	4:  50,
	5:  150,
	6:  400,
	7:  1000,
	8:  2000,
	9:  4000,
	10: 8000,
	11: 20000,
	12: 35000,
	13: 75000,
	14: 100000,
	15: 150000,
	16: 250000,
}

// King XP granted per upgrade, keyed by absolute target level.
var defaultXPRewards = map[int]int{
	2:  4,
	3:  5,
	4:  6,
	5:  10,
	6:  25,
	7:  50,
	8:  100,
	9:  200,
	10: 400,
	11: 600,
	12: 800,
	13: 1600,
	14: 2000,
	15: 3000,
	16: 4500,
}

// Card copies required per upgrade, keyed by rarity and target level.
// Rarities enter the ladder at different base levels (Common 1, Rare 3,
// Epic 6, Legendary 9, Champion 11), so lower targets are absent for
// higher rarities.
var defaultCopyRequirements = map[models.Rarity]map[int]int{
	models.Common: {
		2: 2, 3: 4, 4: 10, 5: 20, 6: 50, 7: 100, 8: 200, 9: 400,
		10: 800, 11: 1000, 12: 1500, 13: 3000, 14: 5000, 15: 8000, 16: 12000,
	},
	models.Rare: {
		4: 2, 5: 4, 6: 10, 7: 20, 8: 50, 9: 100, 10: 200,
		11: 400, 12: 500, 13: 750, 14: 1250, 15: 2000, 16: 3000,
	},
	models.Epic: {
		7: 2, 8: 4, 9: 10, 10: 20, 11: 40, 12: 50,
		13: 100, 14: 200, 15: 300, 16: 500,
	},
	models.Legendary: {
		10: 2, 11: 4, 12: 10, 13: 20, 14: 40, 15: 60, 16: 100,
	},
	models.Champion: {
		12: 2, 13: 8, 14: 20, 15: 35, 16: 60,
	},
}

// Gems per missing card copy. Fractional prices round at purchase time.
var defaultGemPrices = map[models.Rarity]float64{
	models.Common:    0.25,
	models.Rare:      1.0,
	models.Epic:      10.0,
	models.Legendary: 150.0,
	models.Champion:  400.0,
}

// Card copies yielded per wild card. The current economy converts 1:1 for
// every rarity; kept per rarity so a snapshot can change the rate.
var defaultWildCardRates = map[models.Rarity]int{
	models.Common:    1,
	models.Rare:      1,
	models.Epic:      1,
	models.Legendary: 1,
	models.Champion:  1,
}

// XP required to advance from each king level to the next, index = level-1.
// The final level has no successor.
var defaultKingXPToNext = []int{
	// levels 1-10
	20, 40, 70, 120, 300, 500, 800, 1300, 2000, 2500,
	// levels 11-20
	3000, 3500, 4000, 4500, 5000, 5500, 6000, 6500, 7000, 7500,
	// levels 21-30
	8500, 9500, 10500, 11500, 12500, 14000, 15500, 17000, 19000, 21000,
	// levels 31-40
	23000, 25000, 27500, 30000, 32500, 35000, 37500, 40000, 42500, 45000,
	// levels 41-50
	47500, 50000, 52500, 55000, 57500, 60000, 62500, 65000, 67500, 70000,
	// levels 51-60
	72500, 75000, 77500, 80000, 82500, 85000, 87500, 90000, 92500, 95000,
	// levels 61-70
	97500, 100000, 105000, 110000, 115000, 120000, 125000, 130000, 135000, 0,
}
