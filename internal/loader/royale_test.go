package loader

import (
	"testing"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/gamedata"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/royale"
)

func TestFromRoyaleSnapshot(t *testing.T) {
	economy := gamedata.Default()
	snap := &royale.PlayerSnapshot{
		Tag:       "#ABC123",
		Name:      "TestPlayer",
		ExpPoints: 75, // level 3 starts at 60 XP
		Cards: []royale.PlayerCard{
			{Name: "Knight", Rarity: "Common", Level: 13, Count: 2500},
			{Name: "Mega Knight", Rarity: "Legendary", Level: 99, Count: -4},
			{Name: "", Rarity: "Common", Level: 10, Count: 5},
			{Name: "Wizard", Rarity: "", Level: 10, Count: 5},
			{Name: "Archers", Rarity: "Common", Level: 0, Count: 5},
		},
	}

	player, err := FromRoyaleSnapshot(snap, 50000, 200, economy)
	if err != nil {
		t.Fatalf("FromRoyaleSnapshot: %v", err)
	}

	if player.Profile.KingLevel != 3 {
		t.Errorf("king level from 75 XP: expected 3, got %d", player.Profile.KingLevel)
	}
	if player.Profile.XPIntoLevel != 15 {
		t.Errorf("xp into level: expected 15, got %d", player.Profile.XPIntoLevel)
	}

	// Entries with missing fields are dropped; the rest survive adapted.
	if len(player.Cards) != 2 {
		t.Fatalf("expected 2 usable cards, got %d: %+v", len(player.Cards), player.Cards)
	}
	if player.Cards[0].Name != "Knight" || player.Cards[0].Level != 13 {
		t.Errorf("knight adapted wrong: %+v", player.Cards[0])
	}
	// Out-of-range level and count clamp instead of failing.
	if player.Cards[1].Level != models.MaxCardLevel {
		t.Errorf("level clamp: expected %d, got %d", models.MaxCardLevel, player.Cards[1].Level)
	}
	if player.Cards[1].Count != 0 {
		t.Errorf("count clamp: expected 0, got %d", player.Cards[1].Count)
	}

	if player.Inventory.Gold != 50000 || player.Inventory.Gems != 200 {
		t.Errorf("inventory: %+v", player.Inventory)
	}
	// The live path never trusts wild cards.
	for _, rarity := range models.AllRarities() {
		if player.Inventory.WildCards[rarity] != 0 {
			t.Errorf("wild cards for %s must be zero, got %d", rarity, player.Inventory.WildCards[rarity])
		}
	}
}

func TestFromRoyaleSnapshotErrors(t *testing.T) {
	economy := gamedata.Default()

	if _, err := FromRoyaleSnapshot(nil, 0, 0, economy); err == nil {
		t.Error("nil snapshot: expected error")
	}

	empty := &royale.PlayerSnapshot{Tag: "#ABC", ExpPoints: 100}
	if _, err := FromRoyaleSnapshot(empty, 0, 0, economy); err == nil {
		t.Error("no cards: expected error")
	}

	allSkipped := &royale.PlayerSnapshot{
		Tag:       "#ABC",
		ExpPoints: 100,
		Cards:     []royale.PlayerCard{{Name: "", Rarity: "Common", Level: 5}},
	}
	if _, err := FromRoyaleSnapshot(allSkipped, 0, 0, economy); err == nil {
		t.Error("all cards skipped: expected error")
	}

	badRarity := &royale.PlayerSnapshot{
		Tag:       "#ABC",
		ExpPoints: 100,
		Cards:     []royale.PlayerCard{{Name: "Knight", Rarity: "Sparkly", Level: 5, Count: 1}},
	}
	if _, err := FromRoyaleSnapshot(badRarity, 0, 0, economy); err == nil {
		t.Error("unknown rarity: expected error")
	}
}
