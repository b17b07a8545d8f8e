package scoring

import (
	"math"
	"strings"

	"github.com/sanat/karmaverse/types"
)

// Rand is the random source for the fallback path. *engine.RNG satisfies it.
type Rand interface {
	Chance(percent int) bool
}

// Fallback karma for an action matching no keyword group: +5 with 30%
// probability ("spontaneous good action"), otherwise 0.
const (
	fallbackKarma  = 5
	fallbackChance = 30
)

// ActionImpact scores a free-text action against the rule table and returns
// the final karma delta plus the partial guna delta it implies.
//
// Pipeline: base amount from the first matching keyword group, times a
// context multiplier (first matching context group, default 1.0), times a
// level multiplier max(0.5, 1 + (level-1)*0.1), rounded half-up.
func ActionImpact(rules Rules, rng Rand, action, context string, level int) (int, types.GunaDelta) {
	base := baseKarma(rules, rng, action)
	ctxMult := contextMultiplier(rules, context)
	levelMult := math.Max(0.5, 1+float64(level-1)*0.1)

	karma := roundHalfUp(float64(base) * ctxMult * levelMult)
	return karma, gunaEffect(rules, action, karma)
}

func baseKarma(rules Rules, rng Rand, action string) int {
	lower := strings.ToLower(action)
	for _, rule := range rules.Action {
		if containsAny(lower, rule.Keywords) {
			return rule.Base
		}
	}
	if rng.Chance(fallbackChance) {
		return fallbackKarma
	}
	return 0
}

func contextMultiplier(rules Rules, context string) float64 {
	lower := strings.ToLower(context)
	for _, rule := range rules.Context {
		if containsAny(lower, rule.Keywords) {
			return rule.Multiplier
		}
	}
	return 1.0
}

// gunaEffect derives the partial guna delta for a scored action.
// Positive karma feeds sattva; contemplative actions feed it more and drain
// tamas. Negative karma has a guna effect only for violent actions.
func gunaEffect(rules Rules, action string, karma int) types.GunaDelta {
	lower := strings.ToLower(action)
	abs := math.Abs(float64(karma))
	var effect types.GunaDelta

	switch {
	case karma > 0:
		effect.Sattva = math.Min(10, abs/2)
		if containsAny(lower, rules.Contemplative) {
			effect.Sattva = math.Min(15, abs)
			effect.Tamas = -math.Min(5, abs/3)
		}
	case karma < 0:
		if containsAny(lower, rules.Violent) {
			effect.Rajas = math.Min(15, abs)
			effect.Tamas = math.Min(8, abs/2)
			effect.Sattva = -math.Min(10, abs/2)
		}
	}

	return effect
}

// VirtueImpact returns the partial virtue delta for a scored action.
// Only positive-karma actions award virtues; the groups are tested
// independently, so one action may feed several virtues.
func VirtueImpact(rules Rules, action string, karma int) types.VirtueDelta {
	var virtues types.VirtueDelta
	if karma <= 0 {
		return virtues
	}

	lower := strings.ToLower(action)
	base := math.Min(5, math.Abs(float64(karma))/4)

	if containsAny(lower, rules.Compassion) {
		virtues.Compassion = base
	}
	if containsAny(lower, rules.Truthfulness) {
		virtues.Truthfulness = base
	}
	if containsAny(lower, rules.Courage) {
		virtues.Courage = base
	}
	return virtues
}

// Reincarnation thresholds.
const (
	reincarnationSpiritual = 80
	reincarnationKarma     = 500
	reincarnationVirtue    = 80
	reincarnationSattva    = 85
)

// ShouldTriggerReincarnation evaluates the four attainment thresholds and
// returns true when fewer than 3 of them hold. The inverted polarity
// (insufficient attainment triggers reincarnation) is deliberate: souls
// that have not earned liberation return to the wheel.
func ShouldTriggerReincarnation(avatar *types.Avatar) bool {
	stats := avatar.Stats
	avgVirtue := float64(VirtueSum(stats.Virtues)) / 8

	met := 0
	if SpiritualLevel(stats) >= reincarnationSpiritual {
		met++
	}
	if stats.Karma.Total >= reincarnationKarma {
		met++
	}
	if avgVirtue >= reincarnationVirtue {
		met++
	}
	if stats.Gunas.Sattva >= reincarnationSattva {
		met++
	}
	return met < 3
}

// SpiritualLevel derives the avatar's spiritual level from virtue sum, a
// karma bonus, and a sattva bonus. Recomputed on demand — never cached.
func SpiritualLevel(stats types.Stats) int {
	virtueSum := float64(VirtueSum(stats.Virtues))
	karmaBonus := math.Max(0, float64(stats.Karma.Total)/100)
	sattvaBonus := float64(stats.Gunas.Sattva) / 10
	return int(math.Floor((virtueSum + karmaBonus + sattvaBonus) / 10))
}

// VirtueSum returns the sum of all eight virtue scores.
func VirtueSum(v types.VirtueTree) int {
	return v.Compassion + v.Wisdom + v.Courage + v.Temperance +
		v.Justice + v.Devotion + v.Detachment + v.Truthfulness
}

// WorldImpact derives the four environment scores from collective karma.
// Collective karma is normalized onto [0,100] and each score is a distinct
// linear scaling with its own floor and ceiling.
func WorldImpact(collectiveKarma int) types.EnvironmentScores {
	normalized := clampF(float64(collectiveKarma+1000)/20, 0, 100)
	return types.EnvironmentScores{
		Harmony:      roundHalfUp(clampF(normalized*0.8+10, 10, 95)),
		Prosperity:   roundHalfUp(clampF(normalized*0.7+20, 20, 90)),
		Spirituality: roundHalfUp(clampF(normalized*0.9+5, 15, 98)),
		Conflict:     roundHalfUp(clampF(90-normalized*0.8, 5, 85)),
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// roundHalfUp rounds to the nearest integer with ties toward +inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
