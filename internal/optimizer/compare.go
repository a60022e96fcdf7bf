package optimizer

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/gamedata"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
)

// RegimeResult pairs one constraint regime with the plan it produced.
type RegimeResult struct {
	Regime models.Regime `json:"regime"`
	Title  string        `json:"title"`
	Plan   *Plan         `json:"plan"`
}

// CompareRegimes runs all three regimes against the same snapshot. Each
// run receives its own clone, so the runs are independent and safe to
// execute in parallel; the input is never mutated. Results come back in
// the fixed regime order.
func CompareRegimes(economy *gamedata.Economy, player *models.PlayerData, base models.Settings) ([]RegimeResult, error) {
	if err := player.Validate(); err != nil {
		return nil, err
	}

	regimes := models.AllRegimes()
	results := make([]RegimeResult, len(regimes))

	var g errgroup.Group
	for i, regime := range regimes {
		i, regime := i, regime
		clone := player.Clone()
		g.Go(func() error {
			planner := New(economy, regime.Settings(base))
			plan, err := planner.Plan(clone)
			if err != nil {
				return err
			}
			results[i] = RegimeResult{
				Regime: regime,
				Title:  regime.Title(),
				Plan:   plan,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RankByXP orders regime results by total XP gained, best first. Ties keep
// the fixed regime order. The input slice is not modified.
func RankByXP(results []RegimeResult) []RegimeResult {
	ranked := append([]RegimeResult(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Plan.TotalXPGained > ranked[j].Plan.TotalXPGained
	})
	return ranked
}
