package models

// Planner tuning defaults
const (
	// DefaultWildCardBufferFraction is the share of each wild-card pool kept
	// in reserve unless the caller opts into spending everything
	DefaultWildCardBufferFraction = 0.10

	// DefaultGemGoldRatio is the gold-equivalent value of one gem, used to
	// fold gem purchases into the effective-cost ranking
	DefaultGemGoldRatio = 125.0

	// DefaultMaxSteps bounds a planning run against pathological economy data
	DefaultMaxSteps = 10000
)

// Settings configures one planning run
type Settings struct {
	// UseGems allows buying missing card copies with gems
	UseGems bool `json:"use_gems"`

	// InfiniteGold lifts the gold balance as a constraint; gold costs are
	// still computed, ranked on and reported
	InfiniteGold bool `json:"infinite_gold"`

	// SpendAllWildCards removes the wild-card reserve
	SpendAllWildCards bool `json:"spend_all_wild_cards"`

	// WildCardBufferFraction is the reserved share of each wild-card pool
	WildCardBufferFraction float64 `json:"wild_card_buffer_fraction"`

	// GemGoldRatio converts gems to gold-equivalent for ranking
	GemGoldRatio float64 `json:"gem_gold_ratio"`

	// MaxSteps caps the number of upgrade steps in one plan
	MaxSteps int `json:"max_steps"`
}

// DefaultSettings returns the baseline configuration: no gem spending, real
// gold constraint, 10% wild-card reserve.
func DefaultSettings() Settings {
	return Settings{
		WildCardBufferFraction: DefaultWildCardBufferFraction,
		GemGoldRatio:           DefaultGemGoldRatio,
		MaxSteps:               DefaultMaxSteps,
	}
}

// Normalize fills zero-valued tunables with their defaults so that callers
// building Settings literally (JSON payloads, flag structs) get sane values.
func (s Settings) Normalize() Settings {
	if s.WildCardBufferFraction <= 0 {
		s.WildCardBufferFraction = DefaultWildCardBufferFraction
	}
	if s.GemGoldRatio <= 0 {
		s.GemGoldRatio = DefaultGemGoldRatio
	}
	if s.MaxSteps <= 0 {
		s.MaxSteps = DefaultMaxSteps
	}
	return s
}

// Regime selects one of the mutually exclusive constraint configurations
type Regime string

const (
	AllResources   Regime = "all_resources"
	GoldAndCards   Regime = "gold_and_cards"
	CardBottleneck Regime = "card_bottleneck"
)

// AllRegimes returns the regimes in presentation order
func AllRegimes() []Regime {
	return []Regime{AllResources, GoldAndCards, CardBottleneck}
}

// Title returns the display name used in comparison output
func (r Regime) Title() string {
	switch r {
	case AllResources:
		return "All Resources (Gold + Gems + Cards)"
	case GoldAndCards:
		return "Gold + Cards Only"
	case CardBottleneck:
		return "Card Bottleneck (Infinite Gold)"
	default:
		return string(r)
	}
}

// Settings applies the regime's constraint flags on top of a base
// configuration. Tunables (ratios, step cap) carry over from the base.
func (r Regime) Settings(base Settings) Settings {
	s := base.Normalize()
	switch r {
	case AllResources:
		s.UseGems = true
		s.InfiniteGold = false
	case GoldAndCards:
		s.UseGems = false
		s.InfiniteGold = false
	case CardBottleneck:
		s.UseGems = false
		s.InfiniteGold = true
	}
	return s
}
