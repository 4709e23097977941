package services

import (
	"testing"

	"vitalog/models"

	"github.com/stretchr/testify/require"
)

func TestPredictCravingsRisk_WorstCaseIs100(t *testing.T) {
	latest := models.Checkin{SleepHours: 5, Stress: 5, Cravings: 3, MovementMinutes: 0}
	yesterday := &models.Checkin{SleepHours: 7, Stress: 3, Cravings: 2, MovementMinutes: 30}

	r := PredictCravingsRisk(latest, yesterday)

	// 35 + 18 + 18 + 12 + 20 + 8 = 111 → 100
	require.Equal(t, 100, r.Score)
	require.Equal(t, "alto", r.Label)
	require.Equal(t, FocusSleep, r.RecommendedFocus)
}

func TestPredictCravingsRisk_BaselineIsCalm(t *testing.T) {
	latest := models.Checkin{SleepHours: 8, Stress: 2, Cravings: 0, MovementMinutes: 45}

	r := PredictCravingsRisk(latest, nil)
	require.Equal(t, 35, r.Score)
	require.Equal(t, "bajo", r.Label)
	require.Equal(t, FocusNone, r.RecommendedFocus)
}

func TestPredictCravingsRisk_LabelThresholds(t *testing.T) {
	// 35 + 18 = 53 → bajo (below the 55 boundary)
	low := PredictCravingsRisk(models.Checkin{SleepHours: 6, Stress: 2, Cravings: 0, MovementMinutes: 45}, nil)
	require.Equal(t, 53, low.Score)
	require.Equal(t, "bajo", low.Label)

	// 35 + 20 = 55 → medio (boundary is inclusive)
	mid := PredictCravingsRisk(models.Checkin{SleepHours: 8, Stress: 2, Cravings: 2, MovementMinutes: 45}, nil)
	require.Equal(t, 55, mid.Score)
	require.Equal(t, "medio", mid.Label)

	// 35 + 18 + 20 = 73 → still medio
	mid2 := PredictCravingsRisk(models.Checkin{SleepHours: 6, Stress: 2, Cravings: 2, MovementMinutes: 45}, nil)
	require.Equal(t, 73, mid2.Score)
	require.Equal(t, "medio", mid2.Label)

	// 35 + 12 + 20 + 8 = 75 → alto (boundary is inclusive)
	high := PredictCravingsRisk(
		models.Checkin{SleepHours: 8, Stress: 2, Cravings: 2, MovementMinutes: 10},
		&models.Checkin{SleepHours: 8, Stress: 2, Cravings: 2, MovementMinutes: 30},
	)
	require.Equal(t, 75, high.Score)
	require.Equal(t, "alto", high.Label)
}

func TestPredictCravingsRisk_FocusPriorityOrdering(t *testing.T) {
	// everything bad → sleep wins
	all := PredictCravingsRisk(models.Checkin{SleepHours: 5, Stress: 5, Cravings: 3, MovementMinutes: 0}, nil)
	require.Equal(t, FocusSleep, all.RecommendedFocus)

	// sleep fine → stress wins
	noSleepIssue := PredictCravingsRisk(models.Checkin{SleepHours: 8, Stress: 5, Cravings: 3, MovementMinutes: 0}, nil)
	require.Equal(t, FocusStress, noSleepIssue.RecommendedFocus)

	// sleep and stress fine → cravings wins
	cravingsOnly := PredictCravingsRisk(models.Checkin{SleepHours: 8, Stress: 2, Cravings: 3, MovementMinutes: 0}, nil)
	require.Equal(t, FocusCravings, cravingsOnly.RecommendedFocus)

	// only movement low
	movementOnly := PredictCravingsRisk(models.Checkin{SleepHours: 8, Stress: 2, Cravings: 0, MovementMinutes: 5}, nil)
	require.Equal(t, FocusMovement, movementOnly.RecommendedFocus)
}

func TestPredictCravingsRisk_YesterdayCarryOver(t *testing.T) {
	latest := models.Checkin{SleepHours: 8, Stress: 2, Cravings: 0, MovementMinutes: 45}

	without := PredictCravingsRisk(latest, nil)
	with := PredictCravingsRisk(latest, &models.Checkin{Cravings: 2})

	require.Equal(t, without.Score+8, with.Score)
}

func TestPredictCravingsRisk_AlwaysInRange(t *testing.T) {
	for sleep := 0.0; sleep <= 12; sleep += 3 {
		for stress := 1.0; stress <= 5; stress += 2 {
			r := PredictCravingsRisk(models.Checkin{SleepHours: sleep, Stress: stress, Cravings: 3, MovementMinutes: 0},
				&models.Checkin{Cravings: 3})
			require.GreaterOrEqual(t, r.Score, 0)
			require.LessOrEqual(t, r.Score, 100)
		}
	}
}
