package weather

import "github.com/terrain-analyst/internal/domain"

// RiskRule - погодный риск, не зависящий от местности
type RiskRule struct {
	Type        string
	Description string
	When        func(w *domain.WeatherSnapshot) bool
	Severity    func(w *domain.WeatherSnapshot) domain.Severity
}

func severity(s domain.Severity) func(*domain.WeatherSnapshot) domain.Severity {
	return func(*domain.WeatherSnapshot) domain.Severity { return s }
}

var RiskRules = []RiskRule{
	{
		Type:        "high_winds",
		Description: "Strong winds affecting movement and aerial operations",
		When:        func(w *domain.WeatherSnapshot) bool { return w.WindSpeed > 40 },
		Severity: func(w *domain.WeatherSnapshot) domain.Severity {
			if w.WindSpeed > 60 {
				return domain.SeverityExtreme
			}
			return domain.SeverityHigh
		},
	},
	{
		Type:        "heavy_precipitation",
		Description: "Heavy precipitation reducing traction and raising water levels",
		When:        func(w *domain.WeatherSnapshot) bool { return w.Precipitation > 30 },
		Severity:    severity(domain.SeverityHigh),
	},
	{
		Type:        "low_visibility",
		Description: "Visibility below safe navigation threshold",
		When:        func(w *domain.WeatherSnapshot) bool { return w.Visibility < 3 },
		Severity: func(w *domain.WeatherSnapshot) domain.Severity {
			if w.Visibility < 1 {
				return domain.SeverityExtreme
			}
			return domain.SeverityHigh
		},
	},
	{
		Type:        "extreme_cold",
		Description: "Hypothermia and frostbite risk",
		When:        func(w *domain.WeatherSnapshot) bool { return w.Temperature < -5 },
		Severity:    severity(domain.SeverityHigh),
	},
	{
		Type:        "extreme_heat",
		Description: "Heat exhaustion and dehydration risk",
		When:        func(w *domain.WeatherSnapshot) bool { return w.Temperature > 35 },
		Severity:    severity(domain.SeverityHigh),
	},
}

// AssessRisks returns the risks triggered by w in rule order.
func AssessRisks(w *domain.WeatherSnapshot) []domain.WeatherRisk {
	risks := make([]domain.WeatherRisk, 0)
	if w == nil {
		return risks
	}
	for _, rule := range RiskRules {
		if !rule.When(w) {
			continue
		}
		risks = append(risks, domain.WeatherRisk{
			Type:        rule.Type,
			Severity:    rule.Severity(w),
			Description: rule.Description,
		})
	}
	return risks
}
