package optimizer

import (
	"reflect"
	"testing"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
)

// TestPlanDeterminism verifies that planning produces identical results for
// the same input across many runs. This guards against non-deterministic
// behavior from map iteration order or other sources of randomness; the
// board is built so that every card prices identically and only the name
// tie-break separates them.
func TestPlanDeterminism(t *testing.T) {
	economy := testEconomy(t)

	newPlayer := func() *models.PlayerData {
		return &models.PlayerData{
			Profile: models.Profile{KingLevel: 1},
			Inventory: models.Inventory{
				Gold:      25000,
				Gems:      100,
				WildCards: map[models.Rarity]int{models.Common: 50},
			},
			Cards: []models.Card{
				{Name: "Minions", Rarity: models.Common, Level: 13, Count: 800},
				{Name: "Cannon", Rarity: models.Common, Level: 13, Count: 800},
				{Name: "Archers", Rarity: models.Common, Level: 13, Count: 800},
				{Name: "Knight", Rarity: models.Common, Level: 13, Count: 800},
				{Name: "Bomber", Rarity: models.Common, Level: 13, Count: 800},
			},
		}
	}

	const iterations = 100

	planner := New(economy, models.DefaultSettings())
	first, err := planner.Plan(newPlayer())
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(first.Steps) == 0 {
		t.Fatal("First plan has no steps")
	}
	t.Logf("Baseline: %d steps, first=%s->%d, gold=%d",
		len(first.Steps), first.Steps[0].CardName, first.Steps[0].ToLevel, first.TotalGoldSpent)

	for i := 1; i < iterations; i++ {
		plan, err := planner.Plan(newPlayer())
		if err != nil {
			t.Fatalf("Iteration %d: Plan failed: %v", i, err)
		}
		if !reflect.DeepEqual(plan, first) {
			t.Fatalf("Iteration %d: plan differs from baseline\n got %+v\nwant %+v",
				i, plan, first)
		}
	}
}

// TestPlanNameTieBreak pins the final tie-break: five cards priced exactly
// the same commit in ascending name order, and 25000 gold funds all five.
func TestPlanNameTieBreak(t *testing.T) {
	economy := testEconomy(t)
	player := &models.PlayerData{
		Profile:   models.Profile{KingLevel: 1},
		Inventory: models.Inventory{Gold: 25000},
		Cards: []models.Card{
			{Name: "Minions", Rarity: models.Common, Level: 13, Count: 800},
			{Name: "Cannon", Rarity: models.Common, Level: 13, Count: 800},
			{Name: "Archers", Rarity: models.Common, Level: 13, Count: 800},
			{Name: "Knight", Rarity: models.Common, Level: 13, Count: 800},
			{Name: "Bomber", Rarity: models.Common, Level: 13, Count: 800},
		},
	}

	plan, err := New(economy, models.DefaultSettings()).Plan(player)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	wantOrder := []string{"Archers", "Bomber", "Cannon", "Knight", "Minions"}
	if len(plan.Steps) != len(wantOrder) {
		t.Fatalf("Step count: got %d, want %d", len(plan.Steps), len(wantOrder))
	}
	for i, step := range plan.Steps {
		if step.CardName != wantOrder[i] {
			t.Errorf("Step %d: got %s, want %s", i, step.CardName, wantOrder[i])
		}
		if step.ToLevel != 14 {
			t.Errorf("Step %d: got to-level %d, want 14", i, step.ToLevel)
		}
	}
	if plan.FinalGold != 0 {
		t.Errorf("FinalGold: got %d, want 0", plan.FinalGold)
	}
}
