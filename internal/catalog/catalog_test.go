package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
)

func TestEmbeddedDataset(t *testing.T) {
	c := Embedded()
	if c.Source() != "embedded" {
		t.Errorf("source: expected embedded, got %q", c.Source())
	}
	if c.Size() < 100 {
		t.Errorf("embedded dataset suspiciously small: %d cards", c.Size())
	}

	// Every entry must resolve to a known rarity.
	for _, entry := range c.entries {
		if _, err := models.ParseRarity(entry.Rarity); err != nil {
			t.Errorf("embedded card %q: %v", entry.Name, err)
		}
	}
}

func TestFind(t *testing.T) {
	c := Embedded()

	cases := []string{"Knight", "knight", "  KNIGHT  ", "Hog Rider", "hog-rider", "P.E.K.K.A", "pekka"}
	for _, identifier := range cases {
		if _, ok := c.Find(identifier); !ok {
			t.Errorf("Find(%q): expected a match", identifier)
		}
	}

	if _, ok := c.Find("Pancake Launcher"); ok {
		t.Error("Find for a made-up card: expected no match")
	}
}

func TestResolveRarity(t *testing.T) {
	c := Embedded()

	cases := map[string]models.Rarity{
		"Knight":       models.Common,
		"hog rider":    models.Rare,
		"P.E.K.K.A":    models.Epic,
		"mega-knight":  models.Legendary,
		"Archer Queen": models.Champion,
	}
	for name, expected := range cases {
		got, err := c.ResolveRarity(name)
		if err != nil {
			t.Errorf("ResolveRarity(%q): %v", name, err)
			continue
		}
		if got != expected {
			t.Errorf("ResolveRarity(%q): expected %s, got %s", name, expected, got)
		}
	}
}

func TestResolveRarityUnknownSuggests(t *testing.T) {
	c := Embedded()

	_, err := c.ResolveRarity("Knigt")
	if err == nil {
		t.Fatal("expected error for misspelled card")
	}
	var unknown *models.UnknownCardError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCardError, got %T", err)
	}
	if unknown.Name != "Knigt" {
		t.Errorf("error name: expected Knigt, got %q", unknown.Name)
	}
	if len(unknown.Suggestions) == 0 {
		t.Fatal("expected suggestions for a near miss")
	}
	found := false
	for _, s := range unknown.Suggestions {
		if s == "Knight" {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions should include Knight, got %v", unknown.Suggestions)
	}
	if len(unknown.Suggestions) > 3 {
		t.Errorf("at most 3 suggestions expected, got %d", len(unknown.Suggestions))
	}
}

func TestLoadFromLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"key":"knight","name":"Knight","rarity":"Common"}]`))
	}))
	defer srv.Close()

	c := LoadFrom(context.Background(), srv.Client(), srv.URL)
	if c.Source() != "live" {
		t.Errorf("source: expected live, got %q", c.Source())
	}
	if c.Size() != 1 {
		t.Errorf("size: expected 1, got %d", c.Size())
	}
}

func TestLoadFromFallsBack(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	c := LoadFrom(context.Background(), bad.Client(), bad.URL)
	if c.Source() != "embedded" {
		t.Errorf("upstream 500: expected embedded fallback, got %q", c.Source())
	}

	// Unreachable host falls back too.
	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := closed.URL
	closed.Close()
	c = LoadFrom(context.Background(), nil, url)
	if c.Source() != "embedded" {
		t.Errorf("dead host: expected embedded fallback, got %q", c.Source())
	}

	// Malformed payload falls back.
	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer garbage.Close()
	c = LoadFrom(context.Background(), garbage.Client(), garbage.URL)
	if c.Source() != "embedded" {
		t.Errorf("garbage payload: expected embedded fallback, got %q", c.Source())
	}
}
