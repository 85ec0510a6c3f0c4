package rules

import (
	"slices"

	"github.com/agnivade/levenshtein"
	"gonum.org/v1/gonum/stat"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/pkg/utils"
)

const (
	WaypointJitter  = 0.02
	WalkingSpeedKmh = 3.0

	minWaypoints  = 3
	maxWaypoints  = 7
	maxChallenges = 3

	// suggestionMaxEdits - максимальное расстояние Левенштейна для подсказки
	suggestionMaxEdits = 3
)

var routeMultipliers = map[string]float64{
	domain.RouteEasy:    0.7,
	domain.RouteNormal:  1.0,
	domain.RouteHard:    1.5,
	domain.RouteExtreme: 2.0,
}

// TimeMultiplier - hours per km for a route difficulty; unknown values count as normal.
func TimeMultiplier(difficulty string) float64 {
	if m, ok := routeMultipliers[difficulty]; ok {
		return m
	}
	return 1.0
}

// DelayRule - доля базового времени, добавляемая погодой
type DelayRule struct {
	Key    string
	Factor float64
	When   func(avg domain.WeatherAverage) bool
}

// DelayRules are summed against the base time, not compounded.
var DelayRules = []DelayRule{
	{Key: "high_winds", Factor: 0.20, When: func(a domain.WeatherAverage) bool { return a.WindSpeed > 30 }},
	{Key: "heavy_precipitation", Factor: 0.30, When: func(a domain.WeatherAverage) bool { return a.Precipitation > 20 }},
	{Key: "low_visibility", Factor: 0.25, When: func(a domain.WeatherAverage) bool { return a.Visibility < 5 }},
	{Key: "extreme_temperature", Factor: 0.10, When: func(a domain.WeatherAverage) bool { return a.Temperature < 0 || a.Temperature > 35 }},
}

func DelayFactor(avg domain.WeatherAverage) float64 {
	total := 0.0
	for _, rule := range DelayRules {
		if rule.When(avg) {
			total += rule.Factor
		}
	}
	return total
}

// AverageWeather averages the non-nil snapshots attribute by attribute.
func AverageWeather(snapshots ...*domain.WeatherSnapshot) domain.WeatherAverage {
	var temp, wind, precip, vis []float64
	for _, s := range snapshots {
		if s == nil {
			continue
		}
		temp = append(temp, s.Temperature)
		wind = append(wind, s.WindSpeed)
		precip = append(precip, s.Precipitation)
		vis = append(vis, s.Visibility)
	}
	if len(temp) == 0 {
		return domain.WeatherAverage{
			Temperature: domain.DefaultTemperature,
			Visibility:  domain.DefaultVisibility,
		}
	}
	return domain.WeatherAverage{
		Temperature:   stat.Mean(temp, nil),
		WindSpeed:     stat.Mean(wind, nil),
		Precipitation: stat.Mean(precip, nil),
		Visibility:    stat.Mean(vis, nil),
	}
}

// Waypoints interpolates 3..7 jittered points strictly between start and end.
// Each carries the walking time in minutes from the previous point.
func Waypoints(r Rand, start, end domain.LonLat) []domain.Waypoint {
	n := IntBetween(r, minWaypoints, maxWaypoints)
	out := make([]domain.Waypoint, 0, n)
	prev := start
	for i := 1; i <= n; i++ {
		ratio := float64(i) / float64(n+1)
		p := Jitter(r, utils.Lerp(start, end, ratio), WaypointJitter)
		out = append(out, domain.Waypoint{
			ID:                        i,
			Coordinates:               p,
			EstimatedTimeFromPrevious: WalkingMinutes(prev, p),
		})
		prev = p
	}
	return out
}

// WalkingMinutes - время пешком между точками, минуты с точностью 0.1
func WalkingMinutes(a, b domain.LonLat) float64 {
	return domain.Round(utils.DistanceKm(a, b)/WalkingSpeedKmh*60, 1)
}

var challengeDescriptions = map[domain.ObstacleType][2]string{
	domain.ObstacleSteepSlope: {
		"Steep slope requiring technical climbing skills",
		"Use climbing equipment and establish safety lines",
	},
	domain.ObstacleWaterCrossing: {
		"Water crossing that may require equipment",
		"Find narrowest point or use inflatable raft",
	},
	domain.ObstacleDenseVegetation: {
		"Dense vegetation reducing visibility and speed",
		"Use machetes to clear path or find game trails",
	},
	domain.ObstacleSandyTerrain: {
		"Soft sand terrain reducing mobility and increasing energy expenditure",
		"Use wide footwear or boards to distribute weight",
	},
	domain.ObstacleBoggyGround: {
		"Boggy ground with risk of sinking or becoming stuck",
		"Probe ground before stepping, use walking sticks for stability",
	},
	domain.ObstacleFlashFlood: {
		"Area at risk of flash flooding, potentially impassable",
		"Monitor weather upstream and avoid known flood channels",
	},
	domain.ObstacleLowVisibility: {
		"Area with reduced visibility due to environmental factors",
		"Use GPS navigation and additional lighting",
	},
	domain.ObstacleWindHazard: {
		"Area with high winds that may affect balance and equipment",
		"Secure loose equipment and approach from sheltered direction",
	},
}

func ChallengeDescription(t domain.ObstacleType) string {
	if d, ok := challengeDescriptions[t]; ok {
		return d[0]
	}
	return "Challenging terrain feature"
}

func Mitigation(t domain.ObstacleType) string {
	if d, ok := challengeDescriptions[t]; ok {
		return d[1]
	}
	return "Proceed with caution"
}

// SelectChallenges samples 1..3 obstacles (capped by len) as route challenges.
func SelectChallenges(r Rand, obstacles []domain.Obstacle) []domain.TerrainChallenge {
	challenges := make([]domain.TerrainChallenge, 0, maxChallenges)
	if len(obstacles) == 0 {
		return challenges
	}
	k := IntBetween(r, 1, maxChallenges)
	for _, o := range Sample(r, obstacles, k) {
		challenges = append(challenges, domain.TerrainChallenge{
			Type:        o.Type,
			Severity:    o.Severity,
			Description: ChallengeDescription(o.Type),
			Mitigation:  Mitigation(o.Type),
		})
	}
	return challenges
}

var baselineEquipment = []string{"standard SAR kit", "communications equipment", "first aid supplies"}

var equipmentByChallenge = map[domain.ObstacleType][]string{
	domain.ObstacleSteepSlope:      {"climbing rope", "harnesses", "carabiners", "helmets"},
	domain.ObstacleWaterCrossing:   {"water-resistant boots", "trekking poles", "life vests"},
	domain.ObstacleDenseVegetation: {"machetes", "heavy gloves", "protective clothing"},
	domain.ObstacleSandyTerrain:    {"gaiters", "wide-base footwear"},
	domain.ObstacleBoggyGround:     {"trekking poles", "mud boots", "extraction equipment"},
	domain.ObstacleFlashFlood:      {"water-resistant gear", "emergency flotation devices"},
	domain.ObstacleLowVisibility:   {"high-powered flashlights", "reflective markers"},
	domain.ObstacleWindHazard:      {"wind-resistant clothing", "face protection"},
}

// RecommendEquipment returns the baseline kit plus per-challenge equipment,
// deduplicated in first-seen order.
func RecommendEquipment(challenges []domain.TerrainChallenge) []string {
	out := slices.Clone(baselineEquipment)
	seen := make(map[string]struct{}, len(out))
	for _, item := range out {
		seen[item] = struct{}{}
	}
	for _, c := range challenges {
		for _, item := range equipmentByChallenge[c.Type] {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// SuggestObstacleType returns the candidate closest to query by edit distance.
func SuggestObstacleType(query string, candidates []domain.ObstacleType) (domain.ObstacleType, bool) {
	best := domain.ObstacleType("")
	bestDist := suggestionMaxEdits + 1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(query, string(cand))
		if dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, best != ""
}
