package main

import (
	"strings"
	"testing"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/optimizer"
)

func sampleResults() (*models.PlayerData, []optimizer.RegimeResult) {
	player := &models.PlayerData{
		Profile: models.Profile{KingLevel: 11, XPIntoLevel: 4200},
		Inventory: models.Inventory{
			Gold: 185000,
			Gems: 430,
		},
	}

	allResources := &optimizer.Plan{
		Steps: []optimizer.UpgradeStep{
			{
				CardName: "Knight", Rarity: models.Common,
				FromLevel: 13, ToLevel: 14,
				GoldCost: 5000, CopiesUsed: 800, XPGained: 40,
			},
			{
				CardName: "Knight", Rarity: models.Common,
				FromLevel: 14, ToLevel: 15,
				GoldCost: 12000, CopiesUsed: 400, WildCardsUsed: 500, GemsUsed: 75, XPGained: 60,
			},
		},
		TotalXPGained:  100,
		TotalGoldSpent: 17000,
		TotalGemsSpent: 75,
		WildCardsUsed:  map[models.Rarity]int{models.Common: 500},
		FinalGold:      168000,
		FinalGems:      355,
		FinalProfile:   models.Profile{KingLevel: 11, XPIntoLevel: 4300},
	}
	goldOnly := &optimizer.Plan{
		Steps: []optimizer.UpgradeStep{
			{
				CardName: "Knight", Rarity: models.Common,
				FromLevel: 13, ToLevel: 14,
				GoldCost: 5000, CopiesUsed: 800, XPGained: 40,
			},
		},
		TotalXPGained:  40,
		TotalGoldSpent: 5000,
		WildCardsUsed:  map[models.Rarity]int{},
		FinalGold:      180000,
		FinalGems:      430,
		FinalProfile:   models.Profile{KingLevel: 11, XPIntoLevel: 4240},
		Truncated:      true,
	}
	bottleneck := &optimizer.Plan{
		WildCardsUsed: map[models.Rarity]int{},
		FinalGold:     185000,
		FinalGems:     430,
		FinalProfile:  models.Profile{KingLevel: 11, XPIntoLevel: 4200},
	}

	results := []optimizer.RegimeResult{
		{Regime: models.AllResources, Title: models.AllResources.Title(), Plan: allResources},
		{Regime: models.GoldAndCards, Title: models.GoldAndCards.Title(), Plan: goldOnly},
		{Regime: models.CardBottleneck, Title: models.CardBottleneck.Title(), Plan: bottleneck},
	}
	return player, results
}

func TestBuildReport(t *testing.T) {
	player, results := sampleResults()
	report := buildReport(player, results)

	for _, want := range []string{
		"Starting balances: 185,000 gold, 430 gems",
		"King Tower: level 11 (+4,200 XP)",
		"★ " + models.AllResources.Title(),
		"  " + models.GoldAndCards.Title(),
		"  " + models.CardBottleneck.Title(),
		"Knight 13→14: 5,000 gold, 800 copies (+40 XP)",
		"Knight 14→15: 12,000 gold, 400 copies, 500 wild, 75 gems (+60 XP)",
		"Wild cards spent: 500",
		"Plan cut at the step ceiling.",
		"No affordable upgrades.",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}

	// Only the best regime carries the marker.
	if got := strings.Count(report, "★"); got != 1 {
		t.Errorf("want exactly one best marker, got %d", got)
	}
}

func TestBuildReportBestFollowsXP(t *testing.T) {
	player, results := sampleResults()
	results[2].Plan.TotalXPGained = 999

	report := buildReport(player, results)
	if !strings.Contains(report, "★ "+models.CardBottleneck.Title()) {
		t.Errorf("marker did not move to the highest-XP regime\n%s", report)
	}
	if strings.Contains(report, "★ "+models.AllResources.Title()) {
		t.Errorf("stale marker on a beaten regime\n%s", report)
	}
}

func TestFormatInt(t *testing.T) {
	cases := map[int]string{
		0:        "0",
		5:        "5",
		999:      "999",
		1000:     "1,000",
		17000:    "17,000",
		1234567:  "1,234,567",
		-9100:    "-9,100",
		-100:     "-100",
		10000000: "10,000,000",
	}
	for n, want := range cases {
		if got := formatInt(n); got != want {
			t.Errorf("formatInt(%d) = %q, want %q", n, got, want)
		}
	}
}
