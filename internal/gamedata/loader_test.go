package gamedata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
)

func TestWithOverrideMergesPerKey(t *testing.T) {
	base := Default()
	merged, err := base.WithOverride(Override{
		SnapshotDate: "2026-01-01",
		GoldCosts:    map[int]int{16: 300000},
		GemPrices:    map[string]float64{"common": 0.5},
		CardRequirements: map[string]map[int]int{
			"champion": {16: 80},
		},
	})
	if err != nil {
		t.Fatalf("WithOverride: %v", err)
	}

	if merged.SnapshotDate() != "2026-01-01" {
		t.Errorf("snapshot date: expected 2026-01-01, got %q", merged.SnapshotDate())
	}
	gold, _, _, ok := merged.Cost(models.Common, 16)
	if !ok || gold != 300000 {
		t.Errorf("overridden gold at 16: expected 300000, got %d (ok=%v)", gold, ok)
	}
	// Untouched levels keep default values.
	gold, _, _, _ = merged.Cost(models.Common, 15)
	if gold != 150000 {
		t.Errorf("default gold at 15: expected 150000, got %d", gold)
	}
	if price := merged.GemPrice(models.Common); price != 0.5 {
		t.Errorf("overridden gem price: expected 0.5, got %v", price)
	}
	if price := merged.GemPrice(models.Rare); price != 1.0 {
		t.Errorf("default gem price: expected 1.0, got %v", price)
	}
	_, copies, _, _ := merged.Cost(models.Champion, 16)
	if copies != 80 {
		t.Errorf("overridden champion copies at 16: expected 80, got %d", copies)
	}
	_, copies, _, _ = merged.Cost(models.Champion, 15)
	if copies != 35 {
		t.Errorf("default champion copies at 15: expected 35, got %d", copies)
	}

	// The base economy is untouched.
	gold, _, _, _ = base.Cost(models.Common, 16)
	if gold != 250000 {
		t.Errorf("base economy mutated: gold at 16 is %d", gold)
	}
}

func TestWithOverrideRejectsBrokenData(t *testing.T) {
	cases := map[string]Override{
		"non-monotonic gold": {
			GoldCosts: map[int]int{10: 1},
		},
		"zero copies": {
			CardRequirements: map[string]map[int]int{"common": {14: 0}},
		},
		"unknown rarity": {
			CardRequirements: map[string]map[int]int{"mythic": {14: 10}},
		},
		"negative gem price": {
			GemPrices: map[string]float64{"epic": -1},
		},
		"gap in ladder": {
			CardRequirements: map[string]map[int]int{"common": {18: 20000}},
		},
		"king curve without cap terminator": {
			KingXP: []int{10, 20, 30},
		},
	}
	for name, o := range cases {
		if _, err := Default().WithOverride(o); err == nil {
			t.Errorf("%s: expected error, got none", name)
		}
	}
}

func TestLoadEconomyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "economy.yaml")
	doc := `snapshot_date: "2026-02-02"
gold_costs:
  16: 275000
gem_prices:
  legendary: 120.0
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	e, err := LoadEconomyFile(path)
	if err != nil {
		t.Fatalf("LoadEconomyFile: %v", err)
	}
	if e.SnapshotDate() != "2026-02-02" {
		t.Errorf("snapshot date: expected 2026-02-02, got %q", e.SnapshotDate())
	}
	gold, _, _, _ := e.Cost(models.Epic, 16)
	if gold != 275000 {
		t.Errorf("gold at 16: expected 275000, got %d", gold)
	}
	if price := e.GemPrice(models.Legendary); price != 120.0 {
		t.Errorf("legendary gem price: expected 120.0, got %v", price)
	}
}

func TestLoadEconomyFileShippedSample(t *testing.T) {
	path := filepath.Join("..", "..", "examples", "economy_override.yaml")
	e, err := LoadEconomyFile(path)
	if err != nil {
		t.Fatalf("LoadEconomyFile(%s): %v", path, err)
	}

	if e.SnapshotDate() != "2025-12-01" {
		t.Errorf("snapshot date: expected 2025-12-01, got %q", e.SnapshotDate())
	}
	gold, copies, xp, ok := e.Cost(models.Champion, 16)
	if !ok {
		t.Fatal("champion cost at 16 missing")
	}
	if gold != 275000 || copies != 80 || xp != 5000 {
		t.Errorf("champion cost at 16: gold=%d copies=%d xp=%d", gold, copies, xp)
	}
	if price := e.GemPrice(models.Legendary); price != 120.0 {
		t.Errorf("legendary gem price: expected 120.0, got %v", price)
	}
	// Keys the sample leaves out keep their defaults.
	_, copies, _, _ = e.Cost(models.Champion, 15)
	if copies != 35 {
		t.Errorf("champion copies at 15: expected 35, got %d", copies)
	}
	if price := e.GemPrice(models.Epic); price != 10.0 {
		t.Errorf("epic gem price: expected 10.0, got %v", price)
	}
}

func TestLoadEconomyFileErrors(t *testing.T) {
	if _, err := LoadEconomyFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: expected error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("gold_costs: [not, a, map]"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadEconomyFile(bad); err == nil {
		t.Error("malformed document: expected error")
	}

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(broken, []byte("gold_costs:\n  10: 1\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadEconomyFile(broken); err == nil {
		t.Error("non-monotonic override: expected validation error")
	}
	if _, err := LoadEconomyFile(broken); err != nil && !strings.Contains(err.Error(), "gold_costs") {
		t.Errorf("validation error should name the field, got: %v", err)
	}
}
