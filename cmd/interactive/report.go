package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/optimizer"
)

// buildReport renders the three-regime comparison as plain text, the same
// content the browser shows interactively. Written to --report files.
func buildReport(player *models.PlayerData, results []optimizer.RegimeResult) string {
	var b strings.Builder

	b.WriteString("CLASH LEVEL CALCULATOR: UPGRADE COMPARISON\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&b, "Starting balances: %s gold, %s gems\n",
		formatInt(player.Inventory.Gold), formatInt(player.Inventory.Gems))
	fmt.Fprintf(&b, "King Tower: level %d (+%s XP)\n\n",
		player.Profile.KingLevel, formatInt(player.Profile.XPIntoLevel))

	best := optimizer.RankByXP(results)[0].Regime
	for _, r := range results {
		marker := "  "
		if r.Regime == best {
			marker = "★ "
		}
		fmt.Fprintf(&b, "%s%s\n", marker, r.Title)
		b.WriteString(strings.Repeat("-", 60) + "\n")
		b.WriteString(planSummary(r.Plan))
		for i, step := range r.Plan.Steps {
			fmt.Fprintf(&b, "  %2d. %s\n", i+1, stepLine(step))
		}
		if len(r.Plan.Steps) == 0 {
			b.WriteString("  No affordable upgrades.\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func planSummary(plan *optimizer.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Upgrades: %d   XP gained: %s\n",
		len(plan.Steps), formatInt(plan.TotalXPGained))
	fmt.Fprintf(&b, "  Gold spent: %s   Gems spent: %s\n",
		formatInt(plan.TotalGoldSpent), formatInt(plan.TotalGemsSpent))
	wild := 0
	for _, used := range plan.WildCardsUsed {
		wild += used
	}
	if wild > 0 {
		fmt.Fprintf(&b, "  Wild cards spent: %s\n", formatInt(wild))
	}
	fmt.Fprintf(&b, "  Projected King Tower: level %d (+%s XP)\n",
		plan.FinalProfile.KingLevel, formatInt(plan.FinalProfile.XPIntoLevel))
	if plan.Truncated {
		b.WriteString("  Plan cut at the step ceiling.\n")
	}
	return b.String()
}

func stepLine(step optimizer.UpgradeStep) string {
	line := fmt.Sprintf("%s %d→%d: %s gold, %s copies",
		step.CardName, step.FromLevel, step.ToLevel,
		formatInt(step.GoldCost), formatInt(step.CopiesUsed))
	if step.WildCardsUsed > 0 {
		line += fmt.Sprintf(", %s wild", formatInt(step.WildCardsUsed))
	}
	if step.GemsUsed > 0 {
		line += fmt.Sprintf(", %s gems", formatInt(step.GemsUsed))
	}
	return line + fmt.Sprintf(" (+%s XP)", formatInt(step.XPGained))
}

// printPlain writes the comparison to stdout with one step table per
// regime, for --plain runs and non-terminal output.
func printPlain(player *models.PlayerData, results []optimizer.RegimeResult) {
	fmt.Printf("Starting balances: %s gold, %s gems. King Tower level %d (+%s XP).\n\n",
		formatInt(player.Inventory.Gold), formatInt(player.Inventory.Gems),
		player.Profile.KingLevel, formatInt(player.Profile.XPIntoLevel))

	best := optimizer.RankByXP(results)[0].Regime
	for _, r := range results {
		title := r.Title
		if r.Regime == best {
			title = "★ " + title
		}
		fmt.Println(title)
		fmt.Print(planSummary(r.Plan))
		if len(r.Plan.Steps) == 0 {
			fmt.Println("  No affordable upgrades.")
			fmt.Println()
			continue
		}
		table := tablewriter.NewTable(os.Stdout,
			tablewriter.WithHeader([]string{"#", "Card", "Level", "Gold", "Copies", "Wild", "Gems", "XP"}),
		)
		for i, step := range r.Plan.Steps {
			row := []string{
				fmt.Sprintf("%d", i+1),
				step.CardName,
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
		fmt.Println()
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
