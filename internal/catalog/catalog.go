// Package catalog provides the read-only card reference data used to
// resolve card names to rarities. It prefers the live RoyaleAPI open
// dataset and falls back to an embedded copy when the network is
// unavailable, so lookups always have data to work with.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
)

// DatasetURL is RoyaleAPI's open card dataset.
const DatasetURL = "https://royaleapi.github.io/cr-api-data/json/cards.json"

const (
	fetchTimeout   = 10 * time.Second
	maxSuggestions = 3
)

//go:embed cards.json
var embeddedCards []byte

// Entry is one card in the reference dataset.
type Entry struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
}

// entryNames implements fuzzy.Source over the dataset's display names.
type entryNames []Entry

func (e entryNames) Len() int            { return len(e) }
func (e entryNames) String(i int) string { return e[i].Name }

// Catalog maps card names and keys to their reference entries. Immutable
// after construction, safe for concurrent reads.
type Catalog struct {
	entries entryNames
	byName  map[string]int
	byKey   map[string]int
	source  string
}

// New builds a catalog from dataset entries. Entries without a name are
// dropped; duplicate names keep the last occurrence, matching the upstream
// dataset's own behavior.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]int, len(entries)),
		byKey:  make(map[string]int, len(entries)),
		source: "custom",
	}
	for _, entry := range entries {
		if strings.TrimSpace(entry.Name) == "" {
			continue
		}
		c.entries = append(c.entries, entry)
		idx := len(c.entries) - 1
		c.byName[strings.ToLower(entry.Name)] = idx
		if entry.Key != "" {
			c.byKey[strings.ToLower(entry.Key)] = idx
		}
	}
	if len(c.entries) == 0 {
		return nil, fmt.Errorf("card dataset is empty")
	}
	return c, nil
}

// Embedded returns the catalog built from the bundled dataset copy.
func Embedded() *Catalog {
	var entries []Entry
	if err := json.Unmarshal(embeddedCards, &entries); err != nil {
		panic(fmt.Sprintf("catalog: embedded cards.json invalid: %v", err))
	}
	c, err := New(entries)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded cards.json invalid: %v", err))
	}
	c.source = "embedded"
	return c
}

// Load fetches the live dataset, falling back to the embedded copy on any
// fetch or decode failure. It never fails.
func Load(ctx context.Context) *Catalog {
	return LoadFrom(ctx, nil, DatasetURL)
}

// LoadFrom is Load with an injectable HTTP client and URL.
func LoadFrom(ctx context.Context, client *http.Client, url string) *Catalog {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Embedded()
	}
	resp, err := client.Do(req)
	if err != nil {
		return Embedded()
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Embedded()
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return Embedded()
	}
	c, err := New(entries)
	if err != nil {
		return Embedded()
	}
	c.source = "live"
	return c
}

// Source reports where the dataset came from: "live", "embedded" or
// "custom".
func (c *Catalog) Source() string {
	return c.source
}

// Size returns the number of cards in the dataset.
func (c *Catalog) Size() int {
	return len(c.entries)
}

// Find looks a card up by display name or dataset key, case-insensitive.
func (c *Catalog) Find(identifier string) (Entry, bool) {
	token := strings.ToLower(strings.TrimSpace(identifier))
	if idx, ok := c.byName[token]; ok {
		return c.entries[idx], true
	}
	if idx, ok := c.byKey[token]; ok {
		return c.entries[idx], true
	}
	return Entry{}, false
}

// ResolveRarity maps a card name to its rarity. Unknown names produce an
// UnknownCardError carrying close-match suggestions.
func (c *Catalog) ResolveRarity(name string) (models.Rarity, error) {
	entry, ok := c.Find(name)
	if !ok {
		return "", &models.UnknownCardError{
			Name:        name,
			Suggestions: c.Suggest(name, maxSuggestions),
		}
	}
	rarity, err := models.ParseRarity(entry.Rarity)
	if err != nil {
		return "", fmt.Errorf("card %q: %w", entry.Name, err)
	}
	return rarity, nil
}

// Suggest returns up to limit dataset names closest to the given input,
// best match first.
func (c *Catalog) Suggest(name string, limit int) []string {
	matches := fuzzy.FindFrom(strings.TrimSpace(name), c.entries)
	if limit > len(matches) {
		limit = len(matches)
	}
	suggestions := make([]string, 0, limit)
	for _, match := range matches[:limit] {
		suggestions = append(suggestions, c.entries[match.Index].Name)
	}
	return suggestions
}
