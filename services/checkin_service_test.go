package services

import (
	"context"
	"testing"
	"time"

	"vitalog/models"

	"github.com/stretchr/testify/require"
)

func newCheckinFixture() (*MemoryKV, *RecordStore, *CheckinService) {
	kv := NewMemoryKV()
	store := NewRecordStore(kv)
	streaks := NewStreakService(store, 60)
	achievements := NewAchievementService(store, streaks)
	return kv, store, NewCheckinService(store, streaks, achievements)
}

func TestSaveCheckin_RunsFullPipeline(t *testing.T) {
	_, _, svc := newCheckinFixture()
	ctx := context.Background()
	now := time.Now()

	res, err := svc.SaveCheckin(ctx, 1, now, models.Checkin{
		SleepHours: 5, Stress: 5, Cravings: 3, MovementMinutes: 0,
	})
	require.NoError(t, err)

	require.Equal(t, 1, res.Streaks.Current)
	require.GreaterOrEqual(t, res.Risk.Score, RiskThreshold)
	require.Equal(t, "alto", res.Risk.Label)

	var ids []string
	for _, u := range res.NewlyUnlocked {
		ids = append(ids, u.ID)
	}
	require.Contains(t, ids, "first_checkin")
}

func TestSaveCheckin_OverwritesInPlace(t *testing.T) {
	_, store, svc := newCheckinFixture()
	ctx := context.Background()
	now := time.Now()

	_, err := svc.SaveCheckin(ctx, 1, now, models.Checkin{SleepHours: 4, Stress: 4, Cravings: 2, MovementMinutes: 10})
	require.NoError(t, err)
	_, err = svc.SaveCheckin(ctx, 1, now, models.Checkin{SleepHours: 8, Stress: 2, Cravings: 0, MovementMinutes: 40})
	require.NoError(t, err)

	c, err := store.GetCheckin(ctx, 1, DateKey(now))
	require.NoError(t, err)
	require.Equal(t, 8.0, c.SleepHours) // replaced, no edit history
}

func TestSaveCheckin_UsesYesterdayForRisk(t *testing.T) {
	kv, _, svc := newCheckinFixture()
	ctx := context.Background()
	now := time.Now()

	calm := models.Checkin{SleepHours: 8, Stress: 2, Cravings: 0, MovementMinutes: 45}

	res, err := svc.SaveCheckin(ctx, 1, now, calm)
	require.NoError(t, err)
	baseline := res.Risk.Score

	seedCheckin(t, kv, 1, DateKey(now.AddDate(0, 0, -1)),
		`{"sleepHours":8,"stress":2,"cravings":2,"movementMinutes":45}`)

	res, err = svc.SaveCheckin(ctx, 1, now, calm)
	require.NoError(t, err)
	require.Equal(t, baseline+8, res.Risk.Score)
}

func TestDaySummary_AggregatesMealsAndScore(t *testing.T) {
	_, store, svc := newCheckinFixture()
	ctx := context.Background()
	now := time.Now()
	dateKey := DateKey(now)

	_, err := store.SaveCheckin(ctx, 1, dateKey, models.Checkin{SleepHours: 8, Stress: 2, Cravings: 0, MovementMinutes: 30})
	require.NoError(t, err)
	require.NoError(t, store.SaveChecklist(ctx, 1, dateKey, [3]bool{true, true, true}))

	_, err = store.AddMeal(ctx, 1, models.MealEntry{
		DateKey: dateKey,
		Totals:  models.MealTotals{Calories: 400, ProteinGrams: 20, CarbsGrams: 30, FatGrams: 15},
	})
	require.NoError(t, err)
	_, err = store.AddMeal(ctx, 1, models.MealEntry{
		DateKey: dateKey,
		Totals:  models.MealTotals{Calories: 250, ProteinGrams: 10, CarbsGrams: 20, FatGrams: 10},
	})
	require.NoError(t, err)

	out, err := svc.DaySummary(ctx, 1, now)
	require.NoError(t, err)

	require.Equal(t, 100, out.Score)
	require.Equal(t, 650.0, out.MealTotals.Calories)
	require.Equal(t, 30.0, out.MealTotals.ProteinGrams)
	require.Len(t, out.Meals, 2)
	require.NotNil(t, out.Risk)
	require.Equal(t, 1, out.Streaks.Current)
	require.Equal(t, 1, out.PerfectStreaks.Current)
}

func TestDaySummary_NoCheckinMeansNoRisk(t *testing.T) {
	_, _, svc := newCheckinFixture()

	out, err := svc.DaySummary(context.Background(), 1, time.Now())
	require.NoError(t, err)
	require.Nil(t, out.Checkin)
	require.Nil(t, out.Risk)
	require.Equal(t, 0, out.Streaks.Current)
	// neutral partial credit keeps the score mid-range rather than zero
	require.Greater(t, out.Score, 40)
}
