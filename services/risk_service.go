package services

import "vitalog/models"

// RiskThreshold is the minimum score at which collaborators (alerting,
// notification scheduling) may act on a forecast; below it the signal is
// treated as noise.
const RiskThreshold = 55

type FocusArea string

const (
	FocusSleep    FocusArea = "sleep"
	FocusStress   FocusArea = "stress"
	FocusCravings FocusArea = "cravings"
	FocusMovement FocusArea = "movement"
	FocusNone     FocusArea = "none"
)

type CravingsRisk struct {
	Score            int       `json:"score"`
	Label            string    `json:"label"` // "alto" | "medio" | "bajo"
	RecommendedFocus FocusArea `json:"recommendedFocus"`
}

// PredictCravingsRisk forecasts next-day craving likelihood from today's
// check-in, with a small carry-over term from yesterday. The focus
// ordering (sleep > stress > cravings > movement) is a product decision:
// sleep is treated as the highest-leverage single lever. Keep it stable.
func PredictCravingsRisk(latest models.Checkin, yesterday *models.Checkin) CravingsRisk {
	score := 35.0
	if latest.SleepHours < 7 {
		score += 18
	}
	if latest.Stress >= 4 {
		score += 18
	}
	if latest.MovementMinutes < 20 {
		score += 12
	}
	if latest.Cravings >= 2 {
		score += 20
	}
	if yesterday != nil && yesterday.Cravings >= 2 {
		score += 8
	}
	final := int(clamp(score, 0, 100))

	label := "bajo"
	switch {
	case final >= 75:
		label = "alto"
	case final >= 55:
		label = "medio"
	}

	focus := FocusNone
	switch {
	case latest.SleepHours < 7:
		focus = FocusSleep
	case latest.Stress >= 4:
		focus = FocusStress
	case latest.Cravings >= 2:
		focus = FocusCravings
	case latest.MovementMinutes < 20:
		focus = FocusMovement
	}

	return CravingsRisk{Score: final, Label: label, RecommendedFocus: focus}
}
