package services

import (
	"math"

	"vitalog/models"
)

// Neutral partial credits used when a day has a checklist but no
// check-in, so the day is not scored as if everything were zero.
const (
	neutralSleep    = 6.0
	neutralMovement = 6.0
	neutralStress   = 5.0
	neutralCravings = 4.0
)

// WellnessScore maps one day's checklist and check-in into a 0-100
// composite. Deterministic and side-effect free; used both for the live
// "today" card and historical recomputation.
func WellnessScore(cl models.Checklist, c *models.Checkin) int {
	sleep, movement, stress, cravings := neutralSleep, neutralMovement, neutralStress, neutralCravings
	if c != nil {
		sleep = c.SleepHours
		movement = c.MovementMinutes
		stress = c.Stress
		cravings = c.Cravings
	}

	score := 45.0
	score += 12 * float64(cl.DoneCount())
	score += clamp((sleep-5)*7, 0, 14)
	score += clamp(movement/5, 0, 12)
	score += clamp((6-stress)*2.5, 0, 10)
	score += clamp((3-cravings)*2.5, 0, 7)

	return int(math.Round(clamp(score, 0, 100)))
}
