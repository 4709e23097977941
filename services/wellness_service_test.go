package services

import (
	"testing"

	"vitalog/models"

	"github.com/stretchr/testify/require"
)

func TestWellnessScore_FullDayClampsTo100(t *testing.T) {
	cl := models.Checklist{true, true, true}
	c := &models.Checkin{SleepHours: 8, Stress: 2, Cravings: 0, MovementMinutes: 30}

	// 45 + 36 + 14 (21 clamped) + 6 + 10 + 7 = 118 → 100
	require.Equal(t, 100, WellnessScore(cl, c))
}

func TestWellnessScore_NilCheckinGetsNeutralCredit(t *testing.T) {
	cl := models.Checklist{true, true, true}

	withNeutral := WellnessScore(cl, nil)
	withZeroes := WellnessScore(cl, &models.Checkin{SleepHours: 0, Stress: 5, Cravings: 3, MovementMinutes: 0})

	// a checklist-only day is not punished as hard as an actively bad day
	require.Greater(t, withNeutral, withZeroes)

	// 45 + 36 + 7 + 1.2 + 2.5 + 0 = 91.7 → 92
	require.Equal(t, 92, withNeutral)
}

func TestWellnessScore_Bounds(t *testing.T) {
	worst := WellnessScore(models.Checklist{}, &models.Checkin{SleepHours: 0, Stress: 5, Cravings: 3, MovementMinutes: 0})
	require.GreaterOrEqual(t, worst, 0)
	// 45 + 0 + 0 + 2.5 (stress capped at 5) + 0 = 47.5 → 48
	require.Equal(t, 48, worst)

	best := WellnessScore(models.Checklist{true, true, true}, &models.Checkin{SleepHours: 12, Stress: 1, Cravings: 0, MovementMinutes: 300})
	require.LessOrEqual(t, best, 100)
}

func TestWellnessScore_Monotonicity(t *testing.T) {
	base := models.Checkin{SleepHours: 6, Stress: 3, Cravings: 1, MovementMinutes: 20}
	cl := models.Checklist{true, false, false}
	ref := WellnessScore(cl, &base)

	moreSleep := base
	moreSleep.SleepHours = 7
	require.GreaterOrEqual(t, WellnessScore(cl, &moreSleep), ref)

	moreMovement := base
	moreMovement.MovementMinutes = 40
	require.GreaterOrEqual(t, WellnessScore(cl, &moreMovement), ref)

	lessStress := base
	lessStress.Stress = 2
	require.GreaterOrEqual(t, WellnessScore(cl, &lessStress), ref)

	lessCravings := base
	lessCravings.Cravings = 0
	require.GreaterOrEqual(t, WellnessScore(cl, &lessCravings), ref)

	require.GreaterOrEqual(t, WellnessScore(models.Checklist{true, true, false}, &base), ref)
}

func TestWellnessScore_Deterministic(t *testing.T) {
	cl := models.Checklist{true, false, true}
	c := &models.Checkin{SleepHours: 6.5, Stress: 3, Cravings: 2, MovementMinutes: 45}
	first := WellnessScore(cl, c)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, WellnessScore(cl, c))
	}
}
