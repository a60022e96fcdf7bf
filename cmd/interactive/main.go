package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/catalog"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/gamedata"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/loader"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/optimizer"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/royale"
)

var (
	playerTag      string
	goldFlag       int
	gemsFlag       int
	offlineFile    string
	economyFile    string
	reportFile     string
	apiToken       string
	plainOutput    bool
	spendWildCards bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "interactive",
		Short: "Compare upgrade plans across all three spending regimes",
		Long: `Fetches a player snapshot (live by tag, or from a file), asks for the
balances the API does not expose, and compares the upgrade plans of the
three spending regimes side by side.`,
		Run: runInteractive,
	}

	rootCmd.Flags().StringVarP(&playerTag, "tag", "t", "", "Player tag (skips the prompt)")
	rootCmd.Flags().IntVar(&goldFlag, "gold", -1, "Gold balance (skips the prompt)")
	rootCmd.Flags().IntVar(&gemsFlag, "gems", -1, "Gem balance (skips the prompt)")
	rootCmd.Flags().StringVarP(&offlineFile, "offline-file", "f", "", "Plan from a player data file instead of the live API")
	rootCmd.Flags().StringVarP(&economyFile, "economy", "e", "", "Path to a YAML economy override")
	rootCmd.Flags().StringVarP(&reportFile, "report", "r", "", "Write the comparison report to a file")
	rootCmd.Flags().StringVar(&apiToken, "token", "", "Clash Royale API token (defaults to $"+royale.EnvAPIKey+")")
	rootCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print the report instead of the interactive browser")
	rootCmd.Flags().BoolVar(&spendWildCards, "spend-wild-cards", false, "Spend all wild cards, keeping no reserve")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInteractive(cmd *cobra.Command, args []string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)

	titleColor.Println("\n╭───────────────────────────╮")
	titleColor.Println("│  Clash Level Calculator   │")
	titleColor.Println("│  Regime Comparison        │")
	titleColor.Println("╰───────────────────────────╯")
	fmt.Println()

	economy := gamedata.Default()
	if economyFile != "" {
		loaded, err := gamedata.LoadEconomyFile(economyFile)
		if err != nil {
			color.Red("Error loading economy: %v", err)
			os.Exit(1)
		}
		economy = loaded
	}

	reader := bufio.NewReader(os.Stdin)

	player, err := loadPlayer(reader, economy)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	infoColor.Printf("📦 %d cards loaded, %s gold, %s gems\n\n",
		len(player.Cards), formatInt(player.Inventory.Gold), formatInt(player.Inventory.Gems))

	base := models.DefaultSettings()
	base.SpendAllWildCards = spendWildCards

	results, err := optimizer.CompareRegimes(economy, player, base)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	if reportFile != "" {
		report := buildReport(player, results)
		if err := os.WriteFile(reportFile, []byte(report), 0o644); err != nil {
			color.Red("Error writing report: %v", err)
			os.Exit(1)
		}
		infoColor.Printf("📝 Report written to %s\n", reportFile)
	}

	if plainOutput || !isatty.IsTerminal(os.Stdout.Fd()) {
		printPlain(player, results)
		return
	}

	if err := runBrowser(results); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// loadPlayer builds the snapshot from the offline file when given one,
// otherwise fetches it live by tag, prompting for whatever the flags did
// not provide. Network timeouts start after the prompts so slow typing
// cannot expire them.
func loadPlayer(reader *bufio.Reader, economy *gamedata.Economy) (*models.PlayerData, error) {
	if offlineFile != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		player, err := loader.FromFile(offlineFile, catalog.Load(ctx))
		if err != nil {
			return nil, err
		}
		// Balance flags override what the file declares.
		if goldFlag >= 0 {
			player.Inventory.Gold = goldFlag
		}
		if gemsFlag >= 0 {
			player.Inventory.Gems = gemsFlag
		}
		return player, nil
	}

	token := apiToken
	if token == "" {
		token = royale.TokenFromEnv()
	}
	if token == "" {
		return nil, fmt.Errorf("no API token: set $%s, pass --token, or use --offline-file", royale.EnvAPIKey)
	}

	tag := strings.TrimSpace(playerTag)
	for tag == "" {
		tag = promptString(reader, "Player tag (e.g. #ABC123): ")
	}

	// The player API does not expose balances, so ask for them.
	gold := goldFlag
	if gold < 0 {
		gold = promptAmount(reader, "Gold balance", 0)
	}
	gems := gemsFlag
	if gems < 0 {
		gems = promptAmount(reader, "Gem balance", 0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fmt.Printf("Fetching %s...\n", tag)
	snap, err := royale.NewClient(token).FetchPlayer(ctx, tag)
	if err != nil {
		return nil, err
	}
	// The API reports no wild-card balances, so live plans run without
	// them.
	color.Yellow("Wild card balances are not in the API response; planning without them.")
	return loader.FromRoyaleSnapshot(snap, gold, gems, economy)
}

func promptString(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// promptAmount reads a non-negative integer, tolerating thousands
// separators ("1,234,567" or "1 234 567"). Empty input takes the default;
// bad input re-prompts.
func promptAmount(reader *bufio.Reader, label string, fallback int) int {
	for {
		line := promptString(reader, fmt.Sprintf("%s [%d]: ", label, fallback))
		if line == "" {
			return fallback
		}
		cleaned := strings.NewReplacer(",", "", " ", "", "_", "").Replace(line)
		v, err := strconv.Atoi(cleaned)
		if err != nil || v < 0 {
			color.Yellow("Enter a non-negative whole number.")
			continue
		}
		return v
	}
}
