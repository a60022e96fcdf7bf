package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/catalog"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/gamedata"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/loader"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/optimizer"
)

var (
	playerDataFile string
	economyFile    string
	useGems        bool
	infiniteGold   bool
	spendWildCards bool
	gemGoldRatio   float64
	quiet          bool
	jsonOutput     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plan",
		Short: "Clash Royale King Tower XP upgrade planner",
		Long: `Plans the card upgrade order that maximizes King Tower XP from a
player data file, under the gold, gem and wild-card balances it declares.`,
		Run: runPlan,
	}

	rootCmd.Flags().StringVarP(&playerDataFile, "player-data", "p", "", "Path to player data JSON file")
	rootCmd.Flags().StringVarP(&economyFile, "economy", "e", "", "Path to a YAML economy override")
	rootCmd.Flags().BoolVar(&useGems, "use-gems", false, "Spend gems on missing card copies")
	rootCmd.Flags().BoolVar(&infiniteGold, "infinite-gold", false, "Ignore the gold balance (card bottleneck view)")
	rootCmd.Flags().BoolVar(&spendWildCards, "spend-wild-cards", false, "Spend all wild cards, keeping no reserve")
	rootCmd.Flags().Float64Var(&gemGoldRatio, "gem-gold-ratio", models.DefaultGemGoldRatio, "Gold-equivalent value of one gem")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the plan as JSON")
	_ = rootCmd.Flags().MarkHidden("gem-gold-ratio")
	_ = rootCmd.MarkFlagRequired("player-data")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPlan(cmd *cobra.Command, args []string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	if !quiet && !jsonOutput {
		titleColor.Println("\n╭───────────────────────────╮")
		titleColor.Println("│  Clash Level Calculator   │")
		titleColor.Println("│  Upgrade Path Planner     │")
		titleColor.Println("╰───────────────────────────╯")
		fmt.Println()
	}

	economy := gamedata.Default()
	if economyFile != "" {
		loaded, err := gamedata.LoadEconomyFile(economyFile)
		if err != nil {
			color.Red("Error loading economy: %v", err)
			os.Exit(1)
		}
		economy = loaded
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cat := catalog.Load(ctx)

	if !quiet && !jsonOutput {
		infoColor.Printf("📇 Card catalog: %d cards (%s), costs dated %s\n\n",
			cat.Size(), cat.Source(), economy.SnapshotDate())
	}

	player, err := loader.FromFile(playerDataFile, cat)
	if err != nil {
		color.Red("Error loading player data: %v", err)
		os.Exit(1)
	}

	settings := models.Settings{
		UseGems:           useGems,
		InfiniteGold:      infiniteGold,
		SpendAllWildCards: spendWildCards,
		GemGoldRatio:      gemGoldRatio,
	}.Normalize()

	plan, err := optimizer.New(economy, settings).Plan(player)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			color.Red("Error encoding plan: %v", err)
			os.Exit(1)
		}
		return
	}

	if len(plan.Steps) == 0 {
		infoColor.Println("No affordable upgrades with the current balances.")
		return
	}

	if !quiet {
		printSteps(plan)
	}
	printSummary(player, plan, successColor)
}

func printSteps(plan *optimizer.Plan) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"#", "Card", "Rarity", "Level", "Gold", "Copies", "Wild", "Gems", "XP"}),
	)
	for i, step := range plan.Steps {
		row := []string{
			fmt.Sprintf("%d", i+1),
			step.CardName,
			string(step.Rarity),
			fmt.Sprintf("%d → %d", step.FromLevel, step.ToLevel),
			formatInt(step.GoldCost),
			formatInt(step.CopiesUsed),
			formatInt(step.WildCardsUsed),
			formatInt(step.GemsUsed),
			formatInt(step.XPGained),
		}
		_ = table.Append(row)
	}
	_ = table.Render()
}

func printSummary(player *models.PlayerData, plan *optimizer.Plan, successColor *color.Color) {
	successColor.Printf("\n✓ %d upgrades, %s King Tower XP gained\n", len(plan.Steps), formatInt(plan.TotalXPGained))

	fmt.Printf("💰 Gold spent: %s (%s left)\n", formatInt(plan.TotalGoldSpent), formatInt(plan.FinalGold))
	if plan.TotalGemsSpent > 0 {
		fmt.Printf("💎 Gems spent: %s (%s left)\n", formatInt(plan.TotalGemsSpent), formatInt(plan.FinalGems))
	}
	for _, rarity := range models.AllRarities() {
		if used := plan.WildCardsUsed[rarity]; used > 0 {
			fmt.Printf("🃏 %s wild cards spent: %s (%s left)\n",
				rarity, formatInt(used), formatInt(plan.FinalWildCards[rarity]))
		}
	}

	fmt.Printf("👑 King Tower: level %d (+%s XP) → level %d (+%s XP)\n",
		player.Profile.KingLevel, formatInt(player.Profile.XPIntoLevel),
		plan.FinalProfile.KingLevel, formatInt(plan.FinalProfile.XPIntoLevel))

	if plan.Truncated {
		color.Yellow("⚠ Plan cut at the step ceiling; more upgrades were still affordable.")
	}
}

// formatInt renders n with thousands separators.
func formatInt(n int) string {
	if n < 0 {
		return "-" + formatInt(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
