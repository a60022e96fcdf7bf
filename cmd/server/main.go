package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/catalog"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/gamedata"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/royale"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/server"
)

var (
	listenAddr  string
	economyFile string
	apiToken    string
	cacheSize   int
	debugLog    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the upgrade planner over HTTP",
		Long: `Runs the planning API and the single-page web form. Player documents are
posted as JSON; live tag lookups are enabled when an API token is set.`,
		RunE: runServer,
	}

	rootCmd.Flags().StringVarP(&listenAddr, "addr", "a", ":8080", "Listen address")
	rootCmd.Flags().StringVarP(&economyFile, "economy", "e", "", "Path to a YAML economy override")
	rootCmd.Flags().StringVar(&apiToken, "token", "", "Clash Royale API token (defaults to $"+royale.EnvAPIKey+")")
	rootCmd.Flags().IntVar(&cacheSize, "cache-size", server.DefaultCacheSize, "Plan cache entries")
	rootCmd.Flags().BoolVar(&debugLog, "debug", false, "Log at debug level")
	_ = rootCmd.Flags().MarkHidden("cache-size")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if debugLog {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	economy := gamedata.Default()
	if economyFile != "" {
		loaded, err := gamedata.LoadEconomyFile(economyFile)
		if err != nil {
			return fmt.Errorf("loading economy: %w", err)
		}
		economy = loaded
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	cat := catalog.Load(ctx)

	token := apiToken
	if token == "" {
		token = royale.TokenFromEnv()
	}
	var client *royale.Client
	if token != "" {
		client = royale.NewClient(token)
	} else {
		log.Warn("no API token set, live player lookups disabled",
			slog.String("env", royale.EnvAPIKey))
	}

	srv := server.New(server.Config{
		Economy:   economy,
		Catalog:   cat,
		Client:    client,
		Logger:    log,
		CacheSize: cacheSize,
	})
	return srv.Run(listenAddr)
}
