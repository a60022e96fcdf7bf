package loader

import (
	"fmt"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/gamedata"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/royale"
)

// FromRoyaleSnapshot adapts a live API snapshot into planner input. The
// king level is derived from total XP, card levels clamp to the ladder,
// and wild cards are zeroed: the live payload carries no usable wild-card
// count, so the offline file path is the only way to plan with them.
func FromRoyaleSnapshot(snap *royale.PlayerSnapshot, gold, gems int, economy *gamedata.Economy) (*models.PlayerData, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}

	progress := economy.ProgressFromTotalXP(snap.ExpPoints)

	cards := make([]models.Card, 0, len(snap.Cards))
	for _, entry := range snap.Cards {
		if entry.Name == "" || entry.Rarity == "" || entry.Level <= 0 {
			continue
		}
		rarity, err := models.ParseRarity(entry.Rarity)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", entry.Name, err)
		}
		level := entry.Level
		if level > models.MaxCardLevel {
			level = models.MaxCardLevel
		}
		count := entry.Count
		if count < 0 {
			count = 0
		}
		cards = append(cards, models.Card{
			Name:   entry.Name,
			Rarity: rarity,
			Level:  level,
			Count:  count,
		})
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("snapshot for %s did not include any cards to plan with", snap.Tag)
	}

	wild := make(map[models.Rarity]int, len(models.AllRarities()))
	for _, rarity := range models.AllRarities() {
		wild[rarity] = 0
	}

	player := &models.PlayerData{
		Profile: models.Profile{
			KingLevel:   progress.Level,
			XPIntoLevel: progress.XPIntoLevel,
		},
		Inventory: models.Inventory{
			Gold:      gold,
			Gems:      gems,
			WildCards: wild,
		},
		Cards: cards,
	}
	if err := player.Validate(); err != nil {
		return nil, err
	}
	return player, nil
}
