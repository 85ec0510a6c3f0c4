package rules

import (
	"fmt"
	"math"

	"github.com/terrain-analyst/internal/domain"
)

const (
	defaultBaseDifficulty  = 3
	defaultCrossingMinutes = 10.0
	defaultTierMultiplier  = 1.0
)

var baseDifficulty = map[domain.ObstacleType]int{
	domain.ObstacleSteepSlope:      3,
	domain.ObstacleWaterCrossing:   4,
	domain.ObstacleDenseVegetation: 2,
	domain.ObstacleFlashFlood:      5,
	domain.ObstacleSandyTerrain:    2,
	domain.ObstacleBoggyGround:     3,
	domain.ObstacleLowVisibility:   3,
	domain.ObstacleWindHazard:      2,
}

// ModifierRule - надбавка к сложности от погоды.
// An empty Type applies to every obstacle type.
type ModifierRule struct {
	Type  domain.ObstacleType
	When  func(w *domain.WeatherSnapshot) bool
	Delta int
}

// WeatherModifierRules are additive.
var WeatherModifierRules = []ModifierRule{
	{Type: domain.ObstacleWaterCrossing, Delta: 2, When: func(w *domain.WeatherSnapshot) bool { return w.Precipitation > 20 }},
	{Type: domain.ObstacleWaterCrossing, Delta: 1, When: func(w *domain.WeatherSnapshot) bool { return w.Temperature < 5 }},
	{Type: domain.ObstacleSteepSlope, Delta: 2, When: func(w *domain.WeatherSnapshot) bool { return w.Precipitation > 10 }},
	{Type: domain.ObstacleSteepSlope, Delta: 1, When: func(w *domain.WeatherSnapshot) bool { return w.WindSpeed > 30 }},
	{Type: domain.ObstacleDenseVegetation, Delta: 1, When: func(w *domain.WeatherSnapshot) bool { return w.WindSpeed > 20 }},
	{Delta: 1, When: func(w *domain.WeatherSnapshot) bool { return w.Visibility < 5 }},
}

var crossingRecommendations = map[domain.ObstacleType]map[domain.DifficultyTier]string{
	domain.ObstacleWaterCrossing: {
		domain.TierEasy:      "Safe to cross at marked points",
		domain.TierModerate:  "Use walking stick for stability; consider water shoes",
		domain.TierDifficult: "Use rope assist system; avoid crossing if alone",
		domain.TierExtreme:   "Do not attempt crossing; find alternate route",
	},
	domain.ObstacleSteepSlope: {
		domain.TierEasy:      "Use proper footwear with good traction",
		domain.TierModerate:  "Use hiking poles; take breaks on ascent",
		domain.TierDifficult: "Use climbing equipment; set safety lines",
		domain.TierExtreme:   "Technical climbing skills required; consider alternate route",
	},
	domain.ObstacleDenseVegetation: {
		domain.TierEasy:      "Follow established trails",
		domain.TierModerate:  "Use protective clothing; bring machete for clearing",
		domain.TierDifficult: "Seek animal trails; progress will be slow",
		domain.TierExtreme:   "Consider aerial extraction if available",
	},
	domain.ObstacleFlashFlood: {
		domain.TierEasy:      "Cross at shallow points; monitor upstream",
		domain.TierModerate:  "Delay crossing if water rising; use walking stick",
		domain.TierDifficult: "Find alternate route or wait for water to recede",
		domain.TierExtreme:   "Do not attempt crossing; seek higher ground",
	},
	domain.ObstacleBoggyGround: {
		domain.TierEasy:      "Stay on marked trails",
		domain.TierModerate:  "Test ground firmness before steps; use hiking poles",
		domain.TierDifficult: "Use snowshoe-like platforms to distribute weight",
		domain.TierExtreme:   "Avoid area completely; significant risk of sinking",
	},
}

// базовое время пересечения, минуты
var crossingMinutes = map[domain.ObstacleType]float64{
	domain.ObstacleWaterCrossing:   5,
	domain.ObstacleSteepSlope:      15,
	domain.ObstacleDenseVegetation: 10,
	domain.ObstacleSandyTerrain:    7,
	domain.ObstacleBoggyGround:     12,
	domain.ObstacleFlashFlood:      20,
	domain.ObstacleLowVisibility:   8,
	domain.ObstacleWindHazard:      5,
}

var tierMultipliers = map[domain.DifficultyTier]float64{
	domain.TierEasy:      0.7,
	domain.TierModerate:  1.0,
	domain.TierDifficult: 1.5,
	domain.TierExtreme:   2.5,
}

func BaseScore(t domain.ObstacleType) int {
	if score, ok := baseDifficulty[t]; ok {
		return score
	}
	return defaultBaseDifficulty
}

// WeatherModifier sums the modifier rules matching t. Nil weather adds nothing.
func WeatherModifier(t domain.ObstacleType, w *domain.WeatherSnapshot) int {
	if w == nil {
		return 0
	}
	total := 0
	for _, rule := range WeatherModifierRules {
		if rule.Type != "" && rule.Type != t {
			continue
		}
		if rule.When(w) {
			total += rule.Delta
		}
	}
	return total
}

func TierForScore(score int) domain.DifficultyTier {
	switch {
	case score <= 2:
		return domain.TierEasy
	case score <= 4:
		return domain.TierModerate
	case score <= 6:
		return domain.TierDifficult
	default:
		return domain.TierExtreme
	}
}

func Recommendation(t domain.ObstacleType, tier domain.DifficultyTier) string {
	if rec, ok := crossingRecommendations[t][tier]; ok {
		return rec
	}
	return fmt.Sprintf("Exercise caution appropriate to %s rating", tier)
}

// CrossingTime estimates minutes to cross o, rounded to 0.1.
// Size details replace the per-type base time where present.
func CrossingTime(o domain.Obstacle, tier domain.DifficultyTier) float64 {
	base, ok := crossingMinutes[o.Type]
	if !ok {
		base = defaultCrossingMinutes
	}
	d := o.Details
	switch {
	case o.Type == domain.ObstacleWaterCrossing && d.WidthMeters != nil:
		base = *d.WidthMeters * 0.5
	case o.Type == domain.ObstacleSteepSlope && d.LengthMeters != nil:
		base = *d.LengthMeters * 0.1
	case o.Type == domain.ObstacleDenseVegetation && d.AreaSqMeters != nil:
		base = math.Sqrt(*d.AreaSqMeters) * 0.2
	}
	mult, ok := tierMultipliers[tier]
	if !ok {
		mult = defaultTierMultiplier
	}
	return domain.Round(base*mult, 1)
}

// EvaluateCrossing scores every obstacle of type t. ObstacleID is the
// obstacle's index within obstacles.
func EvaluateCrossing(obstacles []domain.Obstacle, t domain.ObstacleType, w *domain.WeatherSnapshot) []domain.DifficultyEvaluation {
	var out []domain.DifficultyEvaluation
	for i, o := range obstacles {
		if o.Type != t {
			continue
		}
		base := BaseScore(t)
		mod := WeatherModifier(t, w)
		final := base + mod
		tier := TierForScore(final)
		out = append(out, domain.DifficultyEvaluation{
			ObstacleID:             i,
			Coordinates:            o.Coordinates,
			BaseDifficulty:         base,
			WeatherModifier:        mod,
			FinalDifficulty:        final,
			DifficultyRating:       tier,
			CrossingRecommendation: Recommendation(t, tier),
			EstimatedCrossingTime:  CrossingTime(o, tier),
		})
	}
	return out
}
