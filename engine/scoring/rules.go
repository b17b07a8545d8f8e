// Package scoring implements the pure karma/guna/virtue scoring functions.
// All evaluation is driven by an ordered rule table so content can override
// the defaults; the functions themselves carry no state beyond an injected
// RNG for the single random fallback path.
package scoring

// KarmaRule maps a keyword group to a base karma amount. Rules are
// evaluated in slice order; the first matching group wins.
type KarmaRule struct {
	Name     string
	Keywords []string
	Base     int
}

// ContextRule maps a context keyword group to a karma multiplier.
// Mutually exclusive: only the first matching rule applies.
type ContextRule struct {
	Name       string
	Keywords   []string
	Multiplier float64
}

// Rules is the full scoring rule table.
type Rules struct {
	Action  []KarmaRule
	Context []ContextRule

	// Keyword groups for guna side effects.
	Contemplative []string
	Violent       []string

	// Keyword groups for virtue awards.
	Compassion   []string
	Truthfulness []string
	Courage      []string
}

// DefaultRules returns the built-in scoring table. Content may replace it
// wholesale via a ScoringRules block.
func DefaultRules() Rules {
	return Rules{
		Action: []KarmaRule{
			{Name: "help", Keywords: []string{"help", "assist", "support", "aid"}, Base: 15},
			{Name: "donate", Keywords: []string{"donate", "give", "charity", "generous"}, Base: 20},
			{Name: "meditate", Keywords: []string{"meditate", "pray", "worship", "devotion"}, Base: 12},
			{Name: "forgive", Keywords: []string{"forgive", "compassion", "mercy", "kindness"}, Base: 18},
			{Name: "truth", Keywords: []string{"truth", "honest", "sincere", "authentic"}, Base: 16},
			{Name: "lie", Keywords: []string{"lie", "deceive", "cheat", "fraud"}, Base: -20},
			{Name: "steal", Keywords: []string{"steal", "theft", "rob", "take"}, Base: -25},
			{Name: "harm", Keywords: []string{"harm", "hurt", "violence", "attack"}, Base: -30},
			{Name: "anger", Keywords: []string{"anger", "rage", "fury", "wrath"}, Base: -12},
		},
		Context: []ContextRule{
			{Name: "sacred", Keywords: []string{"temple", "sacred"}, Multiplier: 1.5},
			{Name: "festival", Keywords: []string{"festival", "celebration"}, Multiplier: 1.3},
			{Name: "crisis", Keywords: []string{"crisis", "emergency"}, Multiplier: 1.4},
			{Name: "family", Keywords: []string{"family", "loved ones"}, Multiplier: 1.2},
		},
		Contemplative: []string{"meditate", "pray", "study", "wisdom"},
		Violent:       []string{"anger", "violence", "harm", "attack"},
		Compassion:    []string{"help", "assist", "support", "care"},
		Truthfulness:  []string{"truth", "honest", "sincere", "authentic"},
		Courage:       []string{"brave", "courage", "stand up", "defend"},
	}
}
